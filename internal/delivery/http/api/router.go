package api

import (
	"net/http"
	"os"
	"strings"
	"time"

	"hosteria-web/config"
	"hosteria-web/internal/delivery/http/middleware"
	"hosteria-web/internal/delivery/http/response"
	"hosteria-web/internal/delivery/http/web"
	"hosteria-web/internal/domain"
	"hosteria-web/internal/usecase"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	OAuthUC   domain.OAuthUsecase
	Site      *domain.Site
	Renderer  *web.Renderer
	Redis     *goredis.Client // nil: rate limits kept in memory
	Health    usecase.HealthUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.CMSAllowedOrigins, cfg.IsRelease())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsRelease()))
	r.Use(middleware.ErrorHandler())

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	contactLimit := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(deps.Redis, cfg.RateLimitContactThreshold, window))
	authLimit := middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig(deps.Redis, cfg.RateLimitAuthThreshold, window))

	// Health Check
	r.GET("/healthz", func(c *gin.Context) {
		var checks map[string]string
		if deps.Health != nil {
			checks = deps.Health.Check(c.Request.Context())
		}
		response.Success(c, http.StatusOK, "System operational", checks)
	})

	api := r.Group("/api")
	NewContactHandler(api, deps.ContactUC, contactLimit)
	NewOAuthHandler(api, deps.OAuthUC, domain.ProviderGitHub, cfg.SiteURL, cfg.CMSAllowedOrigins, authLimit)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Pages
	web.RegisterStatic(r)
	if info, err := os.Stat(cfg.MediaDir); err == nil && info.IsDir() {
		r.Static("/images", cfg.MediaDir)
	}
	pages := web.NewPageHandler(r, deps.Site, deps.ContactUC, deps.Renderer,
		[]gin.HandlerFunc{contactLimit},
		middleware.CSRFMiddleware(cfg.IsRelease()),
	)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.Error(c, http.StatusNotFound, "Not found")
			return
		}
		pages.NotFound(c)
	})

	return r
}
