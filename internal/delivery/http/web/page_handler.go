package web

import (
	"bytes"
	"errors"
	"net/http"
	"slices"
	"strings"

	"hosteria-web/internal/delivery/http/middleware"
	"hosteria-web/internal/domain"
	"hosteria-web/pkg/logger"
	"hosteria-web/pkg/validation"

	"github.com/gin-gonic/gin"
)

const (
	msgFormInvalid = "Revisá los datos del formulario."
	msgSendFailed  = "No pudimos enviar tu consulta. Intentá nuevamente en unos minutos."
)

type navLink struct {
	Name   string
	Href   string
	Active bool
}

var navItems = []navLink{
	{Name: "Inicio", Href: "/"},
	{Name: "Habitaciones", Href: "/habitaciones"},
	{Name: "Servicios", Href: "/servicios"},
	{Name: "Galería", Href: "/galeria"},
	{Name: "Contacto", Href: "/contacto"},
}

// contactForm is the urlencoded body of the /contacto form.
type contactForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Message string `form:"message"`
}

// toRequest treats an empty phone input as no phone at all.
func (f contactForm) toRequest() *domain.ContactRequest {
	req := &domain.ContactRequest{
		Name:    f.Name,
		Email:   f.Email,
		Message: f.Message,
	}
	if f.Phone != "" {
		phone := f.Phone
		req.Phone = &phone
	}
	return req
}

type pageData struct {
	Title          string
	Site           *domain.Site
	Nav            []navLink
	Room           *domain.Room
	Categories     []string
	ActiveCategory string
	Gallery        []domain.GalleryImage
	Form           contactForm
	FieldErrors    map[string]string
	FormError      string
	Sent           bool
	CSRFToken      string
}

type PageHandler struct {
	site      *domain.Site
	contactUC domain.ContactUsecase
	renderer  *Renderer
}

// NewPageHandler registers the marketing pages. submit runs in front of the
// contact form POST only; mw wraps every page.
func NewPageHandler(router gin.IRouter, site *domain.Site, contactUC domain.ContactUsecase, renderer *Renderer, submit []gin.HandlerFunc, mw ...gin.HandlerFunc) *PageHandler {
	handler := &PageHandler{
		site:      site,
		contactUC: contactUC,
		renderer:  renderer,
	}

	pages := router.Group("", mw...)
	pages.GET("/", handler.Home)
	pages.GET("/habitaciones", handler.Rooms)
	pages.GET("/habitaciones/:slug", handler.Room)
	pages.GET("/servicios", handler.Services)
	pages.GET("/galeria", handler.Gallery)
	pages.GET("/contacto", handler.Contact)

	submitChain := make([]gin.HandlerFunc, 0, len(submit)+1)
	submitChain = append(submitChain, submit...)
	submitChain = append(submitChain, handler.SubmitContact)
	pages.POST("/contacto", submitChain...)

	return handler
}

func (h *PageHandler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, "home", h.page(c, ""))
}

func (h *PageHandler) Rooms(c *gin.Context) {
	h.render(c, http.StatusOK, "rooms", h.page(c, "Habitaciones"))
}

func (h *PageHandler) Room(c *gin.Context) {
	room, ok := h.site.Room(c.Param("slug"))
	if !ok {
		h.NotFound(c)
		return
	}
	data := h.page(c, room.Name)
	data.Room = room
	h.render(c, http.StatusOK, "room", data)
}

func (h *PageHandler) Services(c *gin.Context) {
	h.render(c, http.StatusOK, "services", h.page(c, "Servicios"))
}

func (h *PageHandler) Gallery(c *gin.Context) {
	category := c.Query("categoria")
	if !slices.Contains(domain.GalleryCategories, category) {
		category = domain.GalleryCategoryAll
	}

	data := h.page(c, "Galería")
	data.Categories = domain.GalleryCategories
	data.ActiveCategory = category
	data.Gallery = h.site.GalleryByCategory(category)
	h.render(c, http.StatusOK, "gallery", data)
}

func (h *PageHandler) Contact(c *gin.Context) {
	data := h.page(c, "Contacto")
	data.Sent = c.Query("enviado") == "1"
	h.render(c, http.StatusOK, "contact", data)
}

// SubmitContact is the no-JavaScript path of the contact form. It shares the
// usecase, and therefore the validation rules, with POST /api/send-mail.
func (h *PageHandler) SubmitContact(c *gin.Context) {
	data := h.page(c, "Contacto")

	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		data.FormError = msgFormInvalid
		h.render(c, http.StatusBadRequest, "contact", data)
		return
	}
	data.Form = form

	err := h.contactUC.SendContactMessage(c.Request.Context(), form.toRequest())
	switch {
	case err == nil:
		// Post/Redirect/Get so a reload does not send the mail twice
		c.Redirect(http.StatusSeeOther, "/contacto?enviado=1")
	case errors.Is(err, domain.ErrInvalidContact):
		data.FieldErrors = validation.FieldMessages(err)
		data.FormError = msgFormInvalid
		h.render(c, http.StatusBadRequest, "contact", data)
	default:
		logger.Log.Error("Contact form submission failed", "request_id", c.GetString("RequestID"), "error", err)
		data.FormError = msgSendFailed
		h.render(c, http.StatusInternalServerError, "contact", data)
	}
}

func (h *PageHandler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "not_found", h.page(c, "Página no encontrada"))
}

func (h *PageHandler) page(c *gin.Context, title string) pageData {
	path := c.Request.URL.Path
	nav := make([]navLink, len(navItems))
	for i, item := range navItems {
		item.Active = path == item.Href || (item.Href != "/" && strings.HasPrefix(path, item.Href+"/"))
		nav[i] = item
	}

	return pageData{
		Title:     title,
		Site:      h.site,
		Nav:       nav,
		CSRFToken: c.GetString(middleware.CSRFTokenContextKey),
	}
}

func (h *PageHandler) render(c *gin.Context, status int, page string, data pageData) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page, data); err != nil {
		logger.Log.Error("Failed to render page", "page", page, "request_id", c.GetString("RequestID"), "error", err)
		c.String(http.StatusInternalServerError, "Internal Error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
