package handler

import (
	"reflect"
	"strings"

	"github.com/ardelio/heart-risk-api/internal/api/response"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the wire field name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldViolations maps validator errors to an ordered list of
// field-level violations
func fieldViolations(err error) []response.FieldError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []response.FieldError{{Field: "body", Message: err.Error()}}
	}

	violations := make([]response.FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		var msg string
		switch e.Tag() {
		case "required":
			msg = "field is required"
		case "min":
			msg = "must be at least " + e.Param()
		case "max":
			msg = "must be at most " + e.Param()
		case "oneof":
			msg = "must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
		default:
			msg = "validation failed on " + e.Tag()
		}
		violations = append(violations, response.FieldError{
			Field:   e.Field(),
			Message: msg,
		})
	}

	return violations
}
