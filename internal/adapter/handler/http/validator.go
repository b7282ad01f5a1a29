package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/wekeepgrowing/payment-recovery/pkg/errors"
)

// RequestValidator implements echo.Validator with go-playground/validator
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate returns an INVALID_ARGUMENT AppError naming the first failing field
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return pkgerrors.InvalidArgument(fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()), err)
	}
	return pkgerrors.InvalidArgument("Invalid request", err)
}
