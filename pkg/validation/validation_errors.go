package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to the Spanish labels shown on the site
var FieldLabels = map[string]string{
	"name":    "El nombre",
	"email":   "El email",
	"phone":   "El teléfono",
	"message": "El mensaje",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// FieldMessages keys the first failure of every field by its json name.
// A nil or non-validation error yields an empty map.
func FieldMessages(err error) map[string]string {
	messages := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return messages
	}

	for _, e := range validationErrors {
		if _, seen := messages[e.Field()]; !seen {
			messages[e.Field()] = formatSingleError(e)
		}
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", getFieldLabel(e.Field()))
	case "min":
		return fmt.Sprintf("Mínimo %s caracteres", param)
	case "max":
		return fmt.Sprintf("Máximo %s caracteres", param)
	case "email":
		return "Email inválido"
	case "letters_spaces":
		return "Solo se permiten letras"
	case "digits_only":
		return "Solo números"
	default:
		return fmt.Sprintf("%s no es válido", getFieldLabel(e.Field()))
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}
