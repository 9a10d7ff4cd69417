// Package inputval validates request inputs declared with `validate`
// struct tags, returning messages phrased with the field's `label` tag so
// they can go straight into API error responses.
package inputval

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field names from the `label` tag when present.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})
	return v
}

// Result collects validation failures for one input struct. HasErrors
// and First are plain fields so handlers can branch and respond without
// extra calls.
type Result struct {
	HasErrors bool
	First     string
	Errors    []string
}

func newResult(errs []string) Result {
	r := Result{Errors: errs}
	if len(errs) > 0 {
		r.HasErrors = true
		r.First = errs[0]
	}
	return r
}

// Validate runs the struct's validate tags and converts failures into
// human-readable messages.
func Validate(input any) Result {
	err := validate.Struct(input)
	if err == nil {
		return Result{}
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return newResult([]string{err.Error()})
	}

	var errs []string
	for _, fe := range verrs {
		errs = append(errs, message(fe))
	}
	return newResult(errs)
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("%s must match the format %s", label, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
