package app

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/mindgrid/pkg/entity"
)

// ValidationError lists the fields that failed validation, keyed by their
// JSON name. It is user facing and never reaches the store.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
		_, err := entity.NormalizeColor(fl.Field().String(), "")
		return err == nil
	})
	_ = v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return true
		}
		_, err := parseMonthKey(raw)
		return err == nil
	})
	v.RegisterStructValidation(eventWindow, EventInput{})
	return v
}

// eventWindow requires the end to follow the start unless the event is all
// day, in which case the times are normalised anyway.
func eventWindow(sl validator.StructLevel) {
	in := sl.Current().Interface().(EventInput)
	if in.AllDay || in.Start.IsZero() || in.End.IsZero() {
		return
	}
	if !in.End.After(in.Start) {
		sl.ReportError(in.End, "end", "End", "after_start", "")
	}
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(errs))}
	for _, fe := range errs {
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "color":
		return "must be a hex color"
	case "month":
		return "must be YYYY-MM"
	case "after_start":
		return "must be after start"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
