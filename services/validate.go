package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/yeremiapane/foodiego/utils"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput checks struct tags and collapses any violation into
// ErrInvalidFields; the field details only go to the debug log.
func validateInput(input interface{}) error {
	if err := validate.Struct(input); err != nil {
		utils.InfoLogger.WithError(err).Debug("input validation failed")
		return fmt.Errorf("%w: %v", ErrInvalidFields, err)
	}
	return nil
}
