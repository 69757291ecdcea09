package rut

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Tag is the struct tag name registered by RegisterValidation.
const Tag = "rut"

// RegisterValidation adds the "rut" tag to v. String fields pass when Validate
// accepts them; any other kind fails.
//
//	type EmployeeDraft struct {
//		RUT string `validate:"required,rut"`
//	}
func RegisterValidation(v *validator.Validate) error {
	return v.RegisterValidation(Tag, validateField)
}

func validateField(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return Validate(field.String())
}
