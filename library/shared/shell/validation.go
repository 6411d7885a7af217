package shell

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/AntonStoeckl/library-loans-go/library/shared/core"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidateCommand checks the `validate` struct tags of a command.
// Violations are reported as core.ErrInvalidCommand with one "field: message" detail per failing field.
func ValidateCommand(command Command) error {
	validateOnce.Do(func() {
		validate = validator.New()
	})

	err := validate.Struct(command)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Join(core.ErrInvalidCommand, err)
	}

	details := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, fieldErr.Field()+": "+friendlyMessage(fieldErr))
	}
	slices.Sort(details)

	return fmt.Errorf("%w: %s %s", core.ErrInvalidCommand, command.CommandType(), strings.Join(details, ", "))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "isbn":
		return "must be a valid ISBN-10 or ISBN-13"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must not exceed " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
