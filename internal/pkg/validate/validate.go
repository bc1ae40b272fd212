// Package validate wraps go-playground/validator with the project's
// first-failing-field error convention.
package validate

import (
	"fmt"
	"strings"

	"spacefinders/internal/core/domain"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Struct validates a tagged struct. On failure it returns a Validation error
// carrying only the first failing field's message.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return fmt.Errorf("%w: invalid input", domain.ErrValidation)
	}

	first := errs[0]
	return fmt.Errorf("%w: %s", domain.ErrValidation, fieldMessage(first))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "e164":
		return field + " must be a valid phone number"
	default:
		return field + " is invalid"
	}
}
