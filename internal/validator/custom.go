package validator

import (
	"math"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	equipmentNameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9 ._#-]*[a-zA-Z0-9])?$`)
)

const maxEquipmentNameLength = 50

func finiteValidator(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return false
	}
}

func equipmentNameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	// Must start and end with alphanumeric character
	return len(val) <= maxEquipmentNameLength && equipmentNameRegex.MatchString(val)
}
