package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hosteria-web/internal/delivery/http/middleware"
	"hosteria-web/internal/domain"
	"hosteria-web/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	return m.Called(ctx, req).Error(0)
}

func testSite() *domain.Site {
	return &domain.Site{
		Name:    "Altos de Soberana",
		Tagline: "Hostería en la Patagonia",
		Rooms: []domain.Room{
			{Slug: "familiar", Name: "Familiar", Capacity: 4, Amenities: []string{"Frigobar"}, Images: []string{"/images/familiar.jpg"}},
		},
		Services: []domain.Service{
			{Icon: domain.IconWifi, Title: "Wi-Fi"},
			{Icon: domain.ParseServiceIcon("Jacuzzi"), Title: "Spa"},
		},
		Gallery: []domain.GalleryImage{
			{Image: "/images/lago.jpg", Alt: "Lago", Category: "Entorno"},
			{Image: "/images/doble.jpg", Alt: "Doble", Category: "Habitaciones"},
		},
		Contact: domain.ContactInfo{Email: "reservas@example.com"},
	}
}

func newPageRouter(t *testing.T, contactUC domain.ContactUsecase) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := NewRenderer()
	require.NoError(t, err)

	r := gin.New()
	RegisterStatic(r)
	NewPageHandler(r, testSite(), contactUC, renderer, nil, middleware.CSRFMiddleware(false))
	return r
}

func TestPagesRender(t *testing.T) {
	r := newPageRouter(t, new(MockContactUsecase))

	cases := map[string]string{
		"/":                      "Consultar disponibilidad",
		"/habitaciones":          "Hasta 4 personas",
		"/habitaciones/familiar": "Frigobar",
		"/servicios":             "Wi-Fi",
		"/galeria":               "/images/lago.jpg",
		"/contacto":              `name="csrf_token"`,
	}
	for path, want := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"), path)
		assert.Contains(t, w.Body.String(), want, path)
		assert.Contains(t, w.Body.String(), "<title>", path)
	}
}

func TestNavMarksCurrentPage(t *testing.T) {
	r := newPageRouter(t, new(MockContactUsecase))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/habitaciones/familiar", nil))

	assert.Contains(t, w.Body.String(), `<a href="/habitaciones" aria-current="page">`)
	assert.NotContains(t, w.Body.String(), `<a href="/" aria-current="page">`)
}

func TestUnknownRoomIsNotFound(t *testing.T) {
	r := newPageRouter(t, new(MockContactUsecase))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/habitaciones/suite", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServicesFallBackToHelpIcon(t *testing.T) {
	r := newPageRouter(t, new(MockContactUsecase))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/servicios", nil))

	assert.Contains(t, w.Body.String(), iconPaths[domain.IconWifi])
	assert.Contains(t, w.Body.String(), iconPaths[domain.IconHelp])
}

func TestGalleryFilter(t *testing.T) {
	r := newPageRouter(t, new(MockContactUsecase))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/galeria?categoria=Entorno", nil))
	assert.Contains(t, w.Body.String(), "/images/lago.jpg")
	assert.NotContains(t, w.Body.String(), "/images/doble.jpg")

	// unknown filters show everything
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/galeria?categoria=Piscina", nil))
	assert.Contains(t, w.Body.String(), "/images/doble.jpg")
}

func TestStaticAssets(t *testing.T) {
	r := newPageRouter(t, new(MockContactUsecase))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".service-icon")
}

// csrfSession fetches the contact page and returns its token cookie.
func csrfSession(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contacto", nil))
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CSRFTokenCookieName {
			return c
		}
	}
	t.Fatal("no csrf cookie")
	return nil
}

func submit(r *gin.Engine, cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	form.Set(middleware.CSRFTokenFormField, cookie.Value)
	req := httptest.NewRequest(http.MethodPost, "/contacto", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitContact(t *testing.T) {
	form := url.Values{
		"name":    {"José Núñez"},
		"email":   {"jose@example.com"},
		"phone":   {""},
		"message": {"Hola, ¿tienen lugar para dos en marzo?"},
	}

	t.Run("Success redirects", func(t *testing.T) {
		contactUC := new(MockContactUsecase)
		contactUC.On("SendContactMessage", mock.Anything, mock.MatchedBy(func(req *domain.ContactRequest) bool {
			return req.Name == "José Núñez" && req.Phone == nil
		})).Return(nil).Once()
		r := newPageRouter(t, contactUC)

		w := submit(r, csrfSession(t, r), form)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/contacto?enviado=1", w.Header().Get("Location"))
		contactUC.AssertExpectations(t)
	})

	t.Run("Validation errors are shown next to fields", func(t *testing.T) {
		v := validation.New()
		verr := v.Struct(&domain.ContactRequest{Name: "Juan2", Email: "juan@example.com", Message: "corto"})
		require.Error(t, verr)

		contactUC := new(MockContactUsecase)
		contactUC.On("SendContactMessage", mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: %w", domain.ErrInvalidContact, verr)).Once()
		r := newPageRouter(t, contactUC)

		w := submit(r, csrfSession(t, r), url.Values{"name": {"Juan2"}, "email": {"juan@example.com"}, "message": {"corto"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Solo se permiten letras")
		assert.Contains(t, body, "Mínimo 10 caracteres")
		assert.Contains(t, body, `value="Juan2"`)
	})

	t.Run("Mailer failure keeps the values", func(t *testing.T) {
		contactUC := new(MockContactUsecase)
		contactUC.On("SendContactMessage", mock.Anything, mock.Anything).Return(errors.New("smtp timeout")).Once()
		r := newPageRouter(t, contactUC)

		w := submit(r, csrfSession(t, r), form)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), msgSendFailed)
		assert.Contains(t, w.Body.String(), "jose@example.com")
		assert.NotContains(t, w.Body.String(), "smtp timeout")
	})

	t.Run("Missing CSRF token", func(t *testing.T) {
		contactUC := new(MockContactUsecase)
		r := newPageRouter(t, contactUC)

		req := httptest.NewRequest(http.MethodPost, "/contacto", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		contactUC.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything)
	})
}

func TestContactSentNotice(t *testing.T) {
	r := newPageRouter(t, new(MockContactUsecase))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contacto?enviado=1", nil))

	assert.Contains(t, w.Body.String(), "Recibimos tu consulta")
}
