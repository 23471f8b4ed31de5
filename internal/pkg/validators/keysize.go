package validators

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// RSAModulusValidation validates the modulus length of a generated RSA signing key.
func RSAModulusValidation(fl validator.FieldLevel) bool {
	var bits uint64
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Int() < 0 {
			return false
		}
		bits = uint64(field.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		bits = field.Uint()
	default:
		return false
	}

	switch bits {
	case 2048, 3072, 4096:
		return true
	default:
		return false
	}
}
