// Package validator
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"caredesk/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type Validator interface {
	// Validate returns a *domain.ValidationError when payload is invalid.
	Validate(payload any) error
}

type structValidator struct {
	validate *validator.Validate
}

func New() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	return &structValidator{validate: v}
}

func (s *structValidator) Validate(payload any) error {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.NewValidationError(map[string]string{"payload": "The payload is invalid."})
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Field()] = message(fe)
	}

	return domain.NewValidationError(fields)
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "notblank":
		return fmt.Sprintf("The %s field cannot be empty.", field)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
		}
		if fe.Param() == "1" {
			return fmt.Sprintf("The %s field cannot be empty.", field)
		}
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
