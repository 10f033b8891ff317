package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "govos/pkg/domain-errors"
	s "govos/pkg/string"
)

const genericMessage = "invalid request body"

var structValidator = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank rejects whitespace-only chat lines and replies.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}()

// tagMessages renders the first failing tag; %[1]s is the field, %[2]s the param.
var tagMessages = map[string]string{
	"required": "%[1]s is required",
	"notblank": "%[1]s must not be blank",
	"min":      "%[1]s must be at least %[2]s",
	"max":      "%[1]s must be at most %[2]s",
	"gte":      "%[1]s must be greater than or equal to %[2]s",
	"lte":      "%[1]s must be less than or equal to %[2]s",
	"oneof":    "%[1]s must be one of [%[2]s]",
}

// Validate runs the struct's validate tags and reports the first failure as
// a CodeValidation error.
func Validate(req any) error {
	if err := structValidator.Struct(req); err != nil {
		return dErrors.New(dErrors.CodeValidation, ErrorMessage(err))
	}
	return nil
}

// ErrorMessage turns a validator error into "<snake_field> <problem>".
func ErrorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return genericMessage
	}
	fe := fieldErrs[0]
	name := fe.Field()
	if name == "" {
		name = fe.StructField()
	}
	field := s.ToSnakeCase(name)

	if format, ok := tagMessages[fe.ActualTag()]; ok {
		return fmt.Sprintf(format, field, fe.Param())
	}
	if field == "" {
		return genericMessage
	}
	return field + " is invalid"
}
