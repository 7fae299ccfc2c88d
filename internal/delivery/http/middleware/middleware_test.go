package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hosteria-web/internal/delivery/http/response"
	"hosteria-web/internal/domain"
	"hosteria-web/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		fromCtx, _ := c.Request.Context().Value(domain.KeyRequestID).(string)
		c.String(http.StatusOK, fromCtx)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-1234")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-1234", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://cms.example.com"}, true))
	r.POST("/api/send-mail", func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"allowed preflight", http.MethodOptions, "https://cms.example.com", http.StatusNoContent, "https://cms.example.com"},
		{"foreign preflight", http.MethodOptions, "https://evil.example", http.StatusForbidden, ""},
		{"dev origin in release", http.MethodOptions, "http://localhost:4321", http.StatusForbidden, ""},
		{"same origin post", http.MethodPost, "", http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/send-mail", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "Origin", w.Header().Get("Vary"))
		})
	}
}

func TestCORSAllowsDevOriginsOutsideRelease(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(nil, false))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:4321")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	for _, release := range []bool{false, true} {
		r := gin.New()
		r.Use(SecurityHeadersMiddleware(release))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, DefaultContentSecurityPolicy, w.Header().Get("Content-Security-Policy"))
		assert.Equal(t, release, w.Header().Get("Strict-Transport-Security") != "")
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperror.BadRequest("invalid data")) })
	r.GET("/internal", func(c *gin.Context) { _ = c.Error(apperror.Internal(errors.New("smtp down"))) })
	r.GET("/raw", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })

	cases := map[string]struct {
		code int
		msg  string
	}{
		"/app":      {http.StatusBadRequest, "invalid data"},
		"/internal": {http.StatusInternalServerError, "Internal Server Error"},
		"/raw":      {http.StatusInternalServerError, "An unexpected error occurred. Please try again later."},
	}
	for path, want := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, want.code, w.Code, path)
		var body response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, want.msg, body.Error)
		assert.Equal(t, w.Header().Get(RequestIDHeader), body.RequestID)
		assert.NotContains(t, w.Body.String(), "smtp down")
	}
}

func TestCSRFMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CSRFMiddleware(false))
	r.GET("/contacto", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CSRFTokenContextKey)) })
	r.POST("/contacto", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contacto", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value
	assert.Len(t, token, 64)
	assert.Equal(t, token, w.Body.String())

	post := func(formToken string, withCookie bool) int {
		req := httptest.NewRequest(http.MethodPost, "/contacto", strings.NewReader("csrf_token="+formToken))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if withCookie {
			req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: token})
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, post(token, true))
	assert.Equal(t, http.StatusForbidden, post("forged", true))
	assert.Equal(t, http.StatusForbidden, post(token, false))
	assert.Equal(t, http.StatusForbidden, post("", true))
}
