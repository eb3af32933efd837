package location

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind discriminates the two ways a location can be given.
type Kind string

const (
	KindAddress Kind = "address"
	KindAuto    Kind = "auto"
)

// Input is a location as entered on the search form.
// Street, City and State only matter for KindAddress.
type Input struct {
	Kind   Kind   `json:"kind"`
	Street string `json:"street" form:"street" validate:"required"`
	City   string `json:"city" form:"city" validate:"required"`
	State  string `json:"state" form:"state" validate:"required"`
}

// Address builds the free-text address submitted to the geocoder.
func (in Input) Address() string {
	return fmt.Sprintf("%s, %s, %s", in.Street, in.City, in.State)
}

// ValidationError names the first required field that was left empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Message is the inline hint shown next to the offending field.
func (e *ValidationError) Message() string {
	if e.Field == "state" {
		return "Select an item in the list"
	}
	return "Fill out this field"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate reports the first missing field, checked in order street, city, state.
// Auto-detect input has nothing to validate.
func (in Input) Validate() error {
	switch in.Kind {
	case KindAuto:
		return nil
	case KindAddress:
	default:
		return fmt.Errorf("unknown location kind %q", in.Kind)
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		// Field errors come back in declaration order; only the first is reported.
		return &ValidationError{Field: verrs[0].Field()}
	}
	return err
}
