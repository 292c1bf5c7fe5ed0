package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report the wire name rather than the Go field name.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, key := range []string{"json", "url", "path", "form"} {
				name := strings.Split(f.Tag.Get(key), ",")[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
	return validate
}

// ValidateNotNil returns a ParamError if value is nil or a nil pointer.
func ValidateNotNil(value any, name string) error {
	if isNil(value) {
		return &ParamError{Field: name, Message: "cannot be nil"}
	}
	return nil
}

// ValidateStruct checks the `validate` tags of an options struct. The first
// failing field is reported.
func ValidateStruct(value any, name string) error {
	if err := ValidateNotNil(value, name); err != nil {
		return err
	}
	err := structValidator().Struct(value)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ParamError{Field: fe.Field(), Message: describeTag(fe)}
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return &ParamError{Field: name, Message: invalid.Error()}
	}
	return &ParamError{Field: name, Message: err.Error()}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "ne":
		return fmt.Sprintf("must not be %q", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
