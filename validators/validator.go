package validators

import (
	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to echo.Validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate validates a struct using its `validate` tags
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// IsRequiredViolation reports whether err only contains failures of the
// required / required_without family, i.e. missing content
func IsRequiredViolation(err error) bool {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return false
	}
	for _, fe := range errs {
		switch fe.Tag() {
		case "required", "required_without", "required_with":
		default:
			return false
		}
	}
	return true
}
