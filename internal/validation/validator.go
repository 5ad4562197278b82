// Package validation wraps go-playground/validator for the admin forms.  A
// single validator instance is shared (it caches struct metadata) and is
// exposed to echo through EchoValidator so handlers can call c.Validate.
//
// Field names in messages come from the `form` tag, so errors read the same
// as the inputs on the page:
//
//	type ActorForm struct {
//	    FirstName string `form:"first_name" validate:"required,max=45"`
//	}
//	// -> "first_name must be at most 45 characters"
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
			}
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// FormError lists every field that failed validation.
type FormError struct {
	Fields   []string
	Messages []string
}

func (e *FormError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ValidateStruct validates s and returns a *FormError describing each failed
// field, or nil.
func ValidateStruct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := &FormError{}
	for _, v := range verrs {
		fe.Fields = append(fe.Fields, v.Field())
		fe.Messages = append(fe.Messages, translate(v))
	}
	return fe
}

func translate(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "dive":
		return fmt.Sprintf("%s contains an invalid entry", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// EchoValidator adapts ValidateStruct to echo.Validator.
type EchoValidator struct{}

func (EchoValidator) Validate(i any) error {
	return ValidateStruct(i)
}
