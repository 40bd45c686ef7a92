package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// InitValidator builds the shared validator with the custom tags
func InitValidator() {
	v := validator.New()
	_ = v.RegisterValidation("pin", validatePin)
	_ = v.RegisterValidation("statkey", validateStatKey)
	_ = v.RegisterValidation("frequency", validateFrequency)
	validate = &Validator{validate: v}
}

// GetValidator returns the shared validator
func GetValidator() *Validator {
	validateOnce.Do(InitValidator)
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError turns validator errors into a field -> message map
// without leaking struct names
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
			errs[field] = "This field is required"
		case "pin":
			errs[field] = ErrMsgInvalidPin
		case "statkey":
			errs[field] = "Unknown category"
		case "frequency":
			errs[field] = "Frequency must be DAILY, WEEKLY or MONTHLY"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min", "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}
	return errs
}

func validatePin(fl validator.FieldLevel) bool {
	return domain.ValidatePin(fl.Field().String()) == nil
}

func validateStatKey(fl validator.FieldLevel) bool {
	return domain.StatKey(fl.Field().String()).Valid()
}

// empty is allowed, the engine defaults it to DAILY
func validateFrequency(fl validator.FieldLevel) bool {
	f := fl.Field().String()
	return f == "" || domain.Frequency(f).Valid()
}
