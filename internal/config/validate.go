package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name, _, _ := strings.Cut(f.Tag.Get("flag"), ","); name != "" {
			return name
		}
		if name, _, _ := strings.Cut(f.Tag.Get("yaml"), ","); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return v
}

// ValidationError is a problem with one option.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors holds every problem found in a set of options.
type ValidationErrors struct {
	Errors []ValidationError
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "invalid options"
	}
	messages := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		messages[i] = e.Message
	}
	return "invalid options: " + strings.Join(messages, "; ")
}

// Validate checks the validate tags of s, then its Validate method if it
// has one.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		verrs := &ValidationErrors{}
		for _, e := range fieldErrs {
			verrs.Errors = append(verrs.Errors, ValidationError{
				Field:   e.Field(),
				Message: formatMessage(e),
			})
		}
		return verrs
	}

	if v, ok := s.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return &ValidationErrors{
				Errors: []ValidationError{{Message: err.Error()}},
			}
		}
	}
	return nil
}

func formatMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required", "required_if", "required_unless":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, e.Tag())
	}
}
