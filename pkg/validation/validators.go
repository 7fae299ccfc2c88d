package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Letters (any script, so "José Núñez" passes) and whitespace only
	lettersSpacesRegex = regexp.MustCompile(`^[\p{L}\s]*$`)

	// Digits only; the empty string is accepted because the phone is optional
	digitsRegex = regexp.MustCompile(`^[0-9]*$`)
)

// New returns a validator with the custom tags registered and field names
// reported by their json tag ("name" instead of "Name").
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("letters_spaces", LettersSpaces)
	_ = v.RegisterValidation("digits_only", DigitsOnly)
}

// LettersSpaces rejects digits, punctuation and symbols.
func LettersSpaces(fl validator.FieldLevel) bool {
	return lettersSpacesRegex.MatchString(fl.Field().String())
}

// DigitsOnly accepts "" or a run of ASCII digits.
func DigitsOnly(fl validator.FieldLevel) bool {
	return digitsRegex.MatchString(fl.Field().String())
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
