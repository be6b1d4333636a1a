package domain

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report json field names so messages match the persisted schema
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation("assetstatus", func(fl validator.FieldLevel) bool {
		return AssetStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("changetype", func(fl validator.FieldLevel) bool {
		return ChangeType(fl.Field().String()).Valid()
	})

	return v
}

// ValidationError maps draft field names to human-readable problems
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s %s", name, e.Fields[name])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Has reports whether the named field failed validation
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "assetstatus":
		return "must be one of Active, Maintenance, Retired"
	case "changetype":
		return "must be one of Hardware, Software, Operating System, Maintenance"
	default:
		return "is invalid"
	}
}
