package tenancy

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/beesaferoot/tenancy/internal/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Amounts are compared as numbers by gt/gte.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// validateInput checks the validate tags of a struct and reports the first
// failing field as a validation error on entity.
func validateInput(entity string, in any) error {
	if err := validate.Struct(in); err != nil {
		return validationError(entity, "", err)
	}
	return nil
}

// validateValue checks a single value against tag.
func validateValue(entity, field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return validationError(entity, field, err)
	}
	return nil
}

func validationError(entity, field string, err error) error {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return apperr.Internal(entity, err, "validate input")
	}

	fe := fields[0]
	name := field
	if name == "" {
		name = label(fe.StructField())
	}
	switch fe.Tag() {
	case "required", "notblank":
		return apperr.Validation(entity, "%s is required", name)
	case "email":
		return apperr.Validation(entity, "%s %q is not valid", name, fe.Value())
	case "gt":
		return apperr.Validation(entity, "%s must be greater than %s", name, fe.Param())
	case "gte":
		return apperr.Validation(entity, "%s cannot be less than %s", name, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return apperr.Validation(entity, "at least %s %s required", fe.Param(), name)
		}
		return apperr.Validation(entity, "%s cannot be less than %s", name, fe.Param())
	case "gtefield":
		return apperr.Validation(entity, "%s cannot be before %s", name, label(fe.Param()))
	default:
		return apperr.Validation(entity, "%s failed %s", name, fe.Tag())
	}
}

// label turns a Go field name into words: ZipCode -> "zip code".
func label(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
