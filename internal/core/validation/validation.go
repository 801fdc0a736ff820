package validation

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/SscSPs/household_ledger/internal/apperrors"
	"github.com/SscSPs/household_ledger/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so errors line up with the payload the caller sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return isMoney(fl.Field().Float())
	})
	_ = v.RegisterValidation("goalstatus", func(fl validator.FieldLevel) bool {
		switch domain.GoalStatus(fl.Field().String()) {
		case domain.GoalNotStarted, domain.GoalInProgress, domain.GoalCompleted:
			return true
		}
		return false
	})
	return v
}

func isMoney(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}

// ValidateMonetaryValue returns value unchanged when it is finite and
// non-negative, and a VALIDATION error naming field otherwise.
func ValidateMonetaryValue(value float64, field string) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, apperrors.NewValidationError(field, field+" must be a finite number")
	}
	if value < 0 {
		return 0, apperrors.NewValidationError(field, field+" must not be negative")
	}
	return value, nil
}

// toAppError converts the first validator failure into a VALIDATION error.
func toAppError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationFailedError("invalid input", err)
	}
	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return apperrors.NewValidationError(field, field+" is required")
	case "money":
		if f, ok := fe.Value().(float64); ok && f < 0 {
			return apperrors.NewValidationError(field, field+" must not be negative")
		}
		return apperrors.NewValidationError(field, field+" must be a finite number")
	case "datetime":
		return apperrors.NewValidationError(field, field+" must be a YYYY-MM-DD date")
	case "gt":
		return apperrors.NewValidationError(field, field+" must be greater than "+fe.Param())
	case "goalstatus":
		return apperrors.NewValidationError(field, field+" must be one of 'not started', 'in progress', 'completed'")
	}
	return apperrors.NewValidationError(field, field+" failed '"+fe.Tag()+"' check")
}
