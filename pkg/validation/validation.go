// Package validation builds the struct validators used by the services and
// turns their failures into validation errors keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/tailorline/storefront/pkg/errors"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]+$`)

// Rule checks a single string field.
type Rule func(string) bool

// New returns a validator that names fields by their json tag and knows the
// "phone" tag plus any extra rules.
func New(rules map[string]Rule) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	all := map[string]Rule{"phone": phonePattern.MatchString}
	for tag, rule := range rules {
		all[tag] = rule
	}
	for tag, rule := range all {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register %q: %v", tag, err))
		}
	}
	return v
}

// Error converts validator output into a CodeValidation error whose message
// is the first field message and whose details list every message per
// field. It returns nil for a nil err.
func Error(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}
	details := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = append(details[fe.Field()], Message(fe.Field(), fe.Tag(), fe.Param()))
	}
	first := fieldErrs[0]
	return pkgerrors.New(pkgerrors.CodeValidation, Message(first.Field(), first.Tag(), first.Param())).WithDetails(details)
}

// Message is the readable sentence for a failed tag on field.
func Message(field, tag, param string) string {
	field = strings.ReplaceAll(field, "_", " ")
	switch tag {
	case "required", "required_if":
		return fmt.Sprintf("The %s field is required.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, param)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, param)
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	}
	return fmt.Sprintf("The %s field is invalid.", field)
}
