// Package contactform is the client side of the hotel contact form: field
// values, per-field validation, touched flags and the submission lifecycle.
//
// Errors are always computed from the current values; whether they are shown
// depends only on the touched flag. The submit gate depends only on whole
// record validity and status.
package contactform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"hosteria-web/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldMessage Field = "message"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldMessage}

// structFields maps a form field to its Go field name, as StructPartial expects.
var structFields = map[Field]string{
	FieldName:    "Name",
	FieldEmail:   "Email",
	FieldPhone:   "Phone",
	FieldMessage: "Message",
}

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

var (
	ErrUnknownField     = errors.New("contactform: unknown field")
	ErrInvalid          = errors.New("contactform: form is not valid")
	ErrSubmitInProgress = errors.New("contactform: submission already in progress")
	ErrAlreadySent      = errors.New("contactform: message already sent")
)

// Values is the record sent to the relay. Phone is always present, possibly empty.
type Values struct {
	Name    string `json:"name" validate:"required,max=30,letters_spaces"`
	Email   string `json:"email" validate:"email"`
	Phone   string `json:"phone" validate:"omitempty,digits_only"`
	Message string `json:"message" validate:"min=10,max=999"`
}

// Sender delivers a validated record. Any error moves the form to StatusError.
type Sender interface {
	Send(ctx context.Context, values Values) error
}

type Form struct {
	mu       sync.Mutex
	values   Values
	touched  map[Field]bool
	errors   map[Field]string
	valid    bool
	status   Status
	validate *validator.Validate
	sender   Sender
}

func New(sender Sender) *Form {
	f := &Form{
		touched:  make(map[Field]bool),
		errors:   make(map[Field]string),
		status:   StatusIdle,
		validate: validation.New(),
		sender:   sender,
	}
	f.revalidate()
	return f
}

// Change sets a field value and re-validates the whole record in the same call.
// Editing after a finished submission returns the form to idle.
func (f *Form) Change(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.set(field, value); err != nil {
		return err
	}
	if f.status == StatusSuccess || f.status == StatusError {
		f.status = StatusIdle
	}
	f.revalidate()
	return nil
}

// Blur marks the field touched and re-validates that field alone.
func (f *Form) Blur(field Field) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	name, ok := structFields[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	f.touched[field] = true

	msgs := validation.FieldMessages(f.validate.StructPartial(f.values, name))
	if msg, failed := msgs[string(field)]; failed {
		f.errors[field] = msg
	} else {
		delete(f.errors, field)
	}
	return nil
}

// Submit sends the record when it is valid and the form is idle or errored.
// On success every field and touched flag is cleared; on failure values are kept.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch {
	case f.status == StatusSubmitting:
		f.mu.Unlock()
		return ErrSubmitInProgress
	case f.status == StatusSuccess:
		f.mu.Unlock()
		return ErrAlreadySent
	case !f.valid:
		f.mu.Unlock()
		return ErrInvalid
	}
	f.status = StatusSubmitting
	values := f.values
	f.mu.Unlock()

	err := f.sender.Send(ctx, values)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.status = StatusError
		return err
	}

	f.values = Values{}
	f.touched = make(map[Field]bool)
	f.status = StatusSuccess
	f.revalidate()
	return nil
}

func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Form) IsValid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valid
}

func (f *Form) Touched(field Field) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[field]
}

// Error returns the message to display for field: only touched fields show one.
func (f *Form) Error(field Field) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.touched[field] {
		return "", false
	}
	msg, ok := f.errors[field]
	return msg, ok
}

// CanSubmit mirrors the submit button: enabled for a valid record while idle or after an error.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valid && (f.status == StatusIdle || f.status == StatusError)
}

func (f *Form) set(field Field, value string) error {
	switch field {
	case FieldName:
		f.values.Name = value
	case FieldEmail:
		f.values.Email = value
	case FieldPhone:
		f.values.Phone = value
	case FieldMessage:
		f.values.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// revalidate must be called with mu held.
func (f *Form) revalidate() {
	err := f.validate.Struct(f.values)
	f.valid = err == nil

	f.errors = make(map[Field]string)
	for name, msg := range validation.FieldMessages(err) {
		f.errors[Field(name)] = msg
	}
}
