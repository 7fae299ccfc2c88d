package domain

import (
	"context"
	"errors"

	"hosteria-web/pkg/email"
)

// PhonePlaceholder is rendered when the phone field is absent from the payload.
const PhonePlaceholder = "N/A"

var (
	ErrInvalidContact      = errors.New("invalid contact submission")
	ErrMailerNotConfigured = errors.New("email service is not configured")
)

// ContactRequest represents a contact form submission.
// Phone is a pointer so an absent field can be told apart from an empty one.
type ContactRequest struct {
	Name    string  `json:"name" validate:"required,max=30,letters_spaces"`
	Email   string  `json:"email" validate:"email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,digits_only"`
	Message string  `json:"message" validate:"min=10,max=999"`
}

// PhoneOrPlaceholder returns the phone as submitted, or PhonePlaceholder when it was omitted.
func (r *ContactRequest) PhoneOrPlaceholder() string {
	if r.Phone == nil {
		return PhonePlaceholder
	}
	return *r.Phone
}

// ContactMailer delivers contact notifications to the hotel inbox
type ContactMailer interface {
	SendContactEmail(ctx context.Context, data email.ContactEmailData) error
	IsConfigured() bool
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates and sends a contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
