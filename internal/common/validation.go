package common

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// UseJSONFieldNames makes v report fields by their json tag.
func UseJSONFieldNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// BindingError maps an error from gin's ShouldBind* to an APIError.
// Only "required" failures count as missing fields.
func BindingError(err error) *APIError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return ErrBadRequest.WithDetails(err.Error())
	}
	details := FormatValidationErrors(ve)
	for _, fe := range ve {
		if fe.Tag() != "required" {
			return NewValidationAPIError(details)
		}
	}
	return ErrMissingFields.WithDetails(details)
}
