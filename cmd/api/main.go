package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hosteria-web/config"
	_ "hosteria-web/docs" // Important for Swagger
	oauthadapter "hosteria-web/internal/adapter/auth"
	"hosteria-web/internal/delivery/http/api"
	"hosteria-web/internal/delivery/http/web"
	"hosteria-web/internal/domain"
	"hosteria-web/internal/repository/content"
	"hosteria-web/internal/repository/memory"
	redisrepo "hosteria-web/internal/repository/redis"
	"hosteria-web/internal/usecase"
	"hosteria-web/pkg/auth"
	"hosteria-web/pkg/email"
	"hosteria-web/pkg/logger"
	"hosteria-web/pkg/redis"
	"hosteria-web/pkg/security"
	"hosteria-web/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Hostería Web API
// @version         1.0
// @description     Contact relay and CMS login handoff for the hostería website.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Refusing to start: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(cfg.IsRelease())
	env := "development"
	if cfg.IsRelease() {
		env = "production"
	}
	secLogger := security.InitSecurityLogger("hosteria-web", env)
	defer func() { _ = secLogger.Sync() }()
	logger.Log.Info("Starting hosteria web", "port", cfg.Port)

	// 3. Setup Redis (optional)
	var states domain.OAuthStateRepository
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory stores", "error", err)
		}
		states = memory.NewOAuthStateRepository()
	} else {
		defer func() { _ = redis.Close() }()
		states = redisrepo.NewOAuthStateRepository(redis.Client())
	}

	// 4. Load Site Content
	site, err := content.NewSiteRepository(cfg.ContentPath).Load(context.Background())
	if err != nil {
		logger.Log.Error("Failed to load site content", "path", cfg.ContentPath, "error", err)
		os.Exit(1)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Log.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)

	// 6. Setup UseCases
	outboundTimeout := time.Duration(cfg.OutboundTimeoutSeconds) * time.Second
	validate := validation.New()
	contactUC := usecase.NewContactUsecase(emailService, validate, outboundTimeout)

	provider := oauthadapter.NewGitHubProvider(
		cfg.OAuthClientID,
		cfg.OAuthClientSecret,
		cfg.OAuthAuthorizeURL,
		cfg.OAuthTokenURL,
		cfg.OAuthScope,
		outboundTimeout,
	)
	oauthConfigured := cfg.OAuthClientID != "" && cfg.OAuthClientSecret != ""
	oauthUC := usecase.NewOAuthUsecase(provider, states, auth.NewStateSigner(cfg.OAuthStateSecret), oauthConfigured, outboundTimeout)

	// 7. Setup Router
	router := api.NewRouter(api.RouterDeps{
		ContactUC: contactUC,
		OAuthUC:   oauthUC,
		Site:      site,
		Renderer:  renderer,
		Redis:     redis.Client(),
		Health:    usecase.NewHealthUsecase(map[string]usecase.HealthProbe{"redis": redisProbe()}),
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// redisProbe is nil when the process runs on the in-memory fallback
func redisProbe() usecase.HealthProbe {
	if redis.Client() == nil {
		return nil
	}
	return redis.HealthCheck
}
