package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"hosteria-web/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the header a script may use instead of the form field
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenFormField is the hidden input rendered into server-side forms
	CSRFTokenFormField = "csrf_token"
	// CSRFTokenContextKey exposes the current token to page handlers
	CSRFTokenContextKey = "CSRFToken"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern for the
// server-rendered forms. Safe requests get a token cookie; state-changing
// requests must echo it in the form field or the X-CSRF-Token header.
func CSRFMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)

		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			if err != nil || csrfCookie == "" {
				newToken, err := generateCSRFToken()
				if err != nil {
					_ = c.AbortWithError(http.StatusInternalServerError, err)
					return
				}

				// SameSite=Lax keeps the cookie off cross-site subrequests
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(
					CSRFTokenCookieName,
					newToken,
					int(CSRFTokenExpiry.Seconds()),
					"/",
					"",     // Domain (empty = current domain)
					secure, // Secure once served over HTTPS
					true,   // Forms read it from the page, not from JS
				)
				csrfCookie = newToken
			}
			c.Set(CSRFTokenContextKey, csrfCookie)
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFTokenHeaderName)
		if submitted == "" {
			submitted = c.PostForm(CSRFTokenFormField)
		}

		if err != nil || csrfCookie == "" || submitted == "" ||
			subtle.ConstantTimeCompare([]byte(submitted), []byte(csrfCookie)) != 1 {
			security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
				Event:     security.EventCSRFViolation,
				IP:        c.ClientIP(),
				UserAgent: c.GetHeader("User-Agent"),
				RequestID: c.GetString("RequestID"),
				Details:   map[string]interface{}{"path": c.Request.URL.Path, "cookie_present": csrfCookie != ""},
			})
			c.String(http.StatusForbidden, "Formulario vencido. Recargá la página e intentá nuevamente.")
			c.Abort()
			return
		}

		c.Set(CSRFTokenContextKey, csrfCookie)
		c.Next()
	}
}
