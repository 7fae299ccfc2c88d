package usecase

import (
	"context"
	"fmt"
	"time"

	"hosteria-web/internal/domain"
	"hosteria-web/pkg/email"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	mailer      domain.ContactMailer
	validate    *validator.Validate
	sendTimeout time.Duration
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(mailer domain.ContactMailer, validate *validator.Validate, sendTimeout time.Duration) domain.ContactUsecase {
	return &contactUsecase{
		mailer:      mailer,
		validate:    validate,
		sendTimeout: sendTimeout,
	}
}

// SendContactMessage validates the contact request and sends the email.
// Validation runs here regardless of what the browser already checked.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil {
		return domain.ErrInvalidContact
	}
	if err := uc.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidContact, err)
	}

	if !uc.mailer.IsConfigured() {
		return domain.ErrMailerNotConfigured
	}

	emailData := email.ContactEmailData{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Phone:       req.PhoneOrPlaceholder(),
		Message:     req.Message,
	}

	// The visitor may close the page; the mail still goes out
	sendCtx := context.WithoutCancel(ctx)
	if uc.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(sendCtx, uc.sendTimeout)
		defer cancel()
	}

	if err := uc.mailer.SendContactEmail(sendCtx, emailData); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}

	return nil
}
