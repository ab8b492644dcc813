package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"len":      "{field} must be exactly {param} characters long",
	"max":      "{field} must be at most {param} characters long",
	"min":      "{field} must be at least {param} characters long",
	"gt":       "{field} must be greater than {param}",
	"oneof":    "{field} must be one of {param}",
	"ci_oneof": "{field} must be one of {param}",
	"uuid":     "{field} must be a valid UUID",
	"iso4217":  "{field} must be a valid ISO 4217 currency code",
}

// message renders the first failed rule. Rules without a template fall back to the validator's text.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return err.Error()
	}

	first := valErrors[0]

	template, ok := messages[first.Tag()]
	if !ok {
		return first.Error()
	}

	return strings.NewReplacer("{field}", first.Field(), "{param}", first.Param()).Replace(template)
}
