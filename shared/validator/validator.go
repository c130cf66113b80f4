package validator

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"hotel/shared/failure"

	val "github.com/go-playground/validator/v10"
)

const MessageInvalidJSON = "Invalid JSON body"

var validate *val.Validate

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("trimmed", func(fl val.FieldLevel) bool {
		str := fl.Field().String()

		return str == strings.TrimSpace(str)
	})
	if err != nil {
		panic(err)
	}
}

// Decode reads one JSON document from r into data. An empty body leaves data untouched.
func Decode[T any](r io.Reader, data *T) error {
	err := json.NewDecoder(r).Decode(data)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	return failure.BadRequestFromString(MessageInvalidJSON) //nolint:wrapcheck
}

// Validate decodes the body into data and then runs the struct tags through
// go-playground/validator.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := Decode(r, data); err != nil {
		return err
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

// Check reports whether field satisfies tag.
func Check(field any, tag string) bool {
	return validate.Var(field, tag) == nil
}
