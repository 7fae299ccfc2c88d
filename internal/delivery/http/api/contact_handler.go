package api

import (
	"errors"
	"net/http"
	"sort"

	"hosteria-web/internal/delivery/http/response"
	"hosteria-web/internal/domain"
	"hosteria-web/pkg/apperror"
	"hosteria-web/pkg/security"
	"hosteria-web/pkg/validation"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidData = "invalid data"
	msgSendFailed  = "internal error while sending mail"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact relay (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, mw ...gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	routes := public.Group("", mw...)
	routes.POST("/send-mail", handler.SendMail)
}

// SendMail godoc
// @Summary      Send Contact Mail
// @Description  Validates a contact form submission and relays it to the hotel inbox by SMTP.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /send-mail [post]
func (h *ContactHandler) SendMail(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest(msgInvalidData))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrInvalidContact) {
			logValidationFailed(c, req.Email, err)
			_ = c.Error(apperror.BadRequest(msgInvalidData))
			return
		}
		_ = c.Error(apperror.New(http.StatusInternalServerError, msgSendFailed, err))
		return
	}

	response.Success(c, http.StatusOK, "", nil)
}

// logValidationFailed records which fields failed, never their values
func logValidationFailed(c *gin.Context, email string, err error) {
	fields := make([]string, 0, 4)
	for field := range validation.FieldMessages(err) {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	security.DefaultLogger().LogValidationFailed(
		c.Request.Context(),
		email,
		c.ClientIP(),
		c.GetString("RequestID"),
		fields,
	)
}
