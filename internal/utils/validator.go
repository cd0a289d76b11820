package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New(validator.WithRequiredStructEnabled())
}

// FirstInvalidField names the struct field of the first failed rule in err, or
// "" when err is not a validation failure. Fields are reported in declaration order.
func FirstInvalidField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].StructField()
	}
	return ""
}
