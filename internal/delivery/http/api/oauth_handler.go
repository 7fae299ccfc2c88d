package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"hosteria-web/internal/domain"
	"hosteria-web/pkg/logger"
	"hosteria-web/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	stateCookieName = "oauth_state"
	stateCookiePath = "/api"
)

type OAuthHandler struct {
	oauthUC        domain.OAuthUsecase
	provider       string
	siteURL        string
	allowedOrigins []string
}

// NewOAuthHandler registers the CMS login handoff: /auth starts it and the
// provider sends the browser back to /callback.
func NewOAuthHandler(public *gin.RouterGroup, oauthUC domain.OAuthUsecase, provider, siteURL string, allowedOrigins []string, mw ...gin.HandlerFunc) {
	handler := &OAuthHandler{
		oauthUC:        oauthUC,
		provider:       provider,
		siteURL:        strings.TrimRight(siteURL, "/"),
		allowedOrigins: append([]string{}, allowedOrigins...),
	}

	routes := public.Group("", mw...)
	routes.GET("/auth", handler.Authorize)
	routes.GET("/callback", handler.Callback)
}

// Authorize godoc
// @Summary      Start CMS Login
// @Description  Redirects the browser to the provider's authorization page with a fresh single-use state.
// @Tags         oauth
// @Produce      plain
// @Success      302
// @Failure      500  {string}  string  "Config Error: Missing OAUTH_CLIENT_ID"
// @Router       /auth [get]
func (h *OAuthHandler) Authorize(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.oauthUC.Configured() {
		logConfigurationMissing(c, "OAUTH_CLIENT_ID")
		c.String(http.StatusInternalServerError, "Config Error: Missing OAUTH_CLIENT_ID")
		return
	}

	authReq, err := h.oauthUC.BeginAuthorization(ctx, h.callbackURL(c))
	if err != nil {
		logger.Log.Error("Failed to start authorization", "request_id", c.GetString("RequestID"), "error", err)
		c.String(http.StatusInternalServerError, "Internal Error")
		return
	}

	maxAge := int(time.Until(authReq.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, authReq.StateCookie, maxAge, stateCookiePath, "", h.isSecure(c), true)

	security.DefaultLogger().Log(ctx, security.SecurityEvent{
		Event:     security.EventOAuthStarted,
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: c.GetString("RequestID"),
	})

	c.Redirect(http.StatusFound, authReq.URL)
}

// Callback godoc
// @Summary      CMS Login Callback
// @Description  Exchanges the authorization code for a token and hands it to the CMS window that opened the popup.
// @Tags         oauth
// @Produce      html
// @Param        code   query     string  true  "Authorization code"
// @Param        state  query     string  true  "State returned by the provider"
// @Success      200    {string}  string  "Handshake page"
// @Failure      400    {string}  string  "No code provided"
// @Failure      403    {string}  string  "Invalid state"
// @Failure      500    {string}  string  "Provider Error"
// @Router       /callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	code := c.Query("code")
	if code == "" {
		c.String(http.StatusBadRequest, "No code provided")
		return
	}

	if !h.oauthUC.Configured() {
		logConfigurationMissing(c, "OAUTH_CLIENT_ID/OAUTH_CLIENT_SECRET")
		c.String(http.StatusInternalServerError, "Missing OAUTH credentials")
		return
	}

	// The nonce is single-use: whatever happens next, the cookie goes away
	stateCookie, _ := c.Cookie(stateCookieName)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, "", -1, stateCookiePath, "", h.isSecure(c), true)

	state := c.Query("state")
	result, err := h.oauthUC.CompleteAuthorization(ctx, code, state, stateCookie)
	if err != nil {
		h.renderFailure(c, state, err)
		return
	}

	security.DefaultLogger().Log(ctx, security.SecurityEvent{
		Event:     security.EventOAuthTokenIssued,
		IP:        c.ClientIP(),
		RequestID: c.GetString("RequestID"),
		Details:   map[string]interface{}{"provider": result.Provider},
	})

	h.renderHandshake(c, result)
}

func (h *OAuthHandler) renderFailure(c *gin.Context, state string, err error) {
	ctx := c.Request.Context()
	reqID := c.GetString("RequestID")

	var providerErr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		security.DefaultLogger().LogStateMismatch(ctx, state, c.ClientIP(), c.GetHeader("User-Agent"), reqID)
		c.String(http.StatusForbidden, "Invalid state")
	case errors.Is(err, domain.ErrOAuthNotConfigured):
		logConfigurationMissing(c, "OAUTH_CLIENT_ID/OAUTH_CLIENT_SECRET")
		c.String(http.StatusInternalServerError, "Missing OAUTH credentials")
	case errors.As(err, &providerErr):
		security.DefaultLogger().Log(ctx, security.SecurityEvent{
			Event:     security.EventOAuthExchangeFailed,
			IP:        c.ClientIP(),
			RequestID: reqID,
			Details:   map[string]interface{}{"reason": "missing_access_token"},
		})
		c.String(http.StatusInternalServerError, "Provider Error: "+string(providerErr.Payload))
	default:
		logger.Log.Error("Token exchange failed", "request_id", reqID, "error", err)
		c.String(http.StatusInternalServerError, "Internal Error")
	}
}

func (h *OAuthHandler) renderHandshake(c *gin.Context, result *domain.TokenResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal Error")
		return
	}

	nonce, err := newNonce()
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal Error")
		return
	}

	var buf bytes.Buffer
	err = handshakeTemplate.Execute(&buf, handshakeData{
		Nonce:          nonce,
		AllowedOrigins: h.allowedOrigins,
		Message:        "authorization:" + h.provider + ":success:" + string(payload),
		Notify:         "authorizing:" + h.provider,
	})
	if err != nil {
		logger.Log.Error("Failed to render handshake", "request_id", c.GetString("RequestID"), "error", err)
		c.String(http.StatusInternalServerError, "Internal Error")
		return
	}

	c.Header("Content-Security-Policy", handshakeCSP(nonce))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// callbackURL is SITE_URL when configured, else the origin of this request
func (h *OAuthHandler) callbackURL(c *gin.Context) string {
	origin := h.siteURL
	if origin == "" {
		scheme := "http"
		if requestIsHTTPS(c) {
			scheme = "https"
		}
		origin = scheme + "://" + c.Request.Host
	}
	return origin + "/api/callback"
}

func (h *OAuthHandler) isSecure(c *gin.Context) bool {
	return requestIsHTTPS(c) || strings.HasPrefix(h.siteURL, "https://")
}

func requestIsHTTPS(c *gin.Context) bool {
	return c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https")
}

func logConfigurationMissing(c *gin.Context, variable string) {
	security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
		Event:     security.EventConfigurationMissing,
		RequestID: c.GetString("RequestID"),
		Details:   map[string]interface{}{"variable": variable},
	})
}
