package validator

import (
	"errors"
	"fmt"
	"reflect"

	val "github.com/go-playground/validator/v10"
)

type messageFunc func(field, param string, kind reflect.Kind) string

var messages = map[string]messageFunc{
	"required": func(field, _ string, _ reflect.Kind) string {
		return field + " is required"
	},
	"oneof": func(field, param string, _ reflect.Kind) string {
		return fmt.Sprintf("%s must be one of %s", field, param)
	},
	"min": func(field, param string, kind reflect.Kind) string {
		if kind == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}

		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	},
	"max": func(field, param string, kind reflect.Kind) string {
		if kind == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}

		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	},
	"len": func(field, param string, _ reflect.Kind) string {
		return fmt.Sprintf("%s must be exactly %s characters long", field, param)
	},
	"number": func(field, _ string, _ reflect.Kind) string {
		return field + " must contain digits only"
	},
	"datetime": func(field, param string, _ reflect.Kind) string {
		return fmt.Sprintf("%s must match the format %s", field, param)
	},
	"trimmed": func(field, _ string, _ reflect.Kind) string {
		return field + " must not start or end with spaces"
	},
}

// message describes the first failed rule that has a readable form.
func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		if describe, ok := messages[valErr.Tag()]; ok {
			return describe(valErr.Field(), valErr.Param(), valErr.Kind())
		}
	}

	return valErrors.Error()
}
