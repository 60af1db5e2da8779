// Package validation validates request and answer payloads with
// go-playground/validator and reports failures as apperrors.ValidationError,
// keyed by the JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/clickwork/clickwork/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()
	idRegexp = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

func init() {
	// Report fields by their JSON name so clients can map errors to inputs.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	// custom_id accepts letters, digits, hyphens and underscores, as used for
	// user ids. Empty strings are left to the 'required' tag.
	err := validate.RegisterValidation("custom_id", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			return true
		}

		return idRegexp.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register custom validation: %v", err))
	}
}

// ValidateStruct validates s against its `validate` tags. A failure is
// returned as *apperrors.ValidationError with one message per field.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation: %w", err)
	}

	verr := apperrors.NewValidationError("invalid input")
	for _, fe := range fieldErrs {
		verr.WithField(fieldPath(fe), message(fe))
	}

	return verr
}

func fieldPath(fe validator.FieldError) string {
	// Namespace is "Struct.field.sub"; drop the root struct name.
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}

	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "unique":
		return "must not contain duplicates"
	case "custom_id":
		return "must contain only letters, numbers, hyphens, and underscores"
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}
