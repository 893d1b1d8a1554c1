// Package validation checks entities against the constraints declared in
// their `validate` struct tags and reports every violation found.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"bilemo-api/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 .\-]{5,19}$`)

// Validator wraps a configured go-playground validator.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("field"); name != "" && name != "-" {
			return name
		}
		return fld.Name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	return &Validator{validate: v}
}

// Validate returns one violation per failed constraint, in field order.
// The error is only set when the value cannot be validated at all.
func (v *Validator) Validate(value any) ([]domain.Violation, error) {
	err := v.validate.Struct(value)
	if err == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("validate: %w", err)
	}

	violations := make([]domain.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, domain.Violation{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return violations, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "phone":
		return "must be a valid phone number"
	case "email":
		return "must be a valid email address"
	}
	return fmt.Sprintf("failed the %q constraint", fe.Tag())
}
