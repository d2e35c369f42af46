package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"marketplace-service/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// requestValidator backs echo's c.Validate with struct tags. Field errors are reported
// under their JSON names.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.Validation("invalid request data")
	}
	// first failure only; clients show a single message
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return apperror.Validation(fe.Field() + " is required")
	case "min":
		return apperror.Validation(fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
	default:
		return apperror.Validation("invalid " + fe.Field())
	}
}
