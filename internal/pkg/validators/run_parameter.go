package validators

import (
	"github.com/go-playground/validator/v10"
)

// RunParameterValidation validates the numeric parameter of a run based on its kind.
// Pi runs take an iteration count, generator and stress runs an exclusive upper bound,
// program runs the source length.
func RunParameterValidation(fl validator.FieldLevel) bool {
	kind := fl.Parent().FieldByName("Kind").String()
	parameter := fl.Field().Int()

	switch kind {
	case "pi", "program":
		return parameter >= 0
	case "procgen", "stress":
		return parameter >= 1
	default:
		return false
	}
}
