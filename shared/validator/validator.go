package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"vietour/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// caseInsensitiveOneOf accepts a string matching any space separated param regardless of case.
func caseInsensitiveOneOf(field val.FieldLevel) bool {
	if field.Field().Kind() != reflect.String {
		return false
	}

	value := field.Field().String()

	for _, allowed := range strings.Fields(field.Param()) {
		if strings.EqualFold(value, allowed) {
			return true
		}
	}

	return false
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	if err := validate.RegisterValidation("ci_oneof", caseInsensitiveOneOf); err != nil {
		panic(err)
	}
}

// Validate decodes JSON from r into data and validates the result.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
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
