package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/entroverse/entroverse-api/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()
	_ = v.RegisterValidation("equipslot", validateEquipSlot)
	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

func validateEquipSlot(fl validator.FieldLevel) bool {
	return domain.EquipSlot(fl.Field().String()).IsValid()
}

// FormatValidationError formats validation errors into a field map without
// leaking internal struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}
	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "is required"
		case "uuid":
			errs[field] = "must be a valid UUID"
		case "min":
			errs[field] = fmt.Sprintf("must be at least %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("must be at most %s", e.Param())
		case "oneof":
			errs[field] = fmt.Sprintf("must be one of: %s", e.Param())
		case "equipslot":
			errs[field] = "must be a valid cosmetic slot"
		default:
			errs[field] = fmt.Sprintf("failed %s validation", e.Tag())
		}
	}
	return errs
}
