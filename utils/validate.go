package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"TripPlanner/internal/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in errors use json tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("expense_category", func(fl validator.FieldLevel) bool {
			return IsExpenseCategory(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func ValidateStruct(s interface{}) error {
	return Validator().Struct(s)
}

func IsExpenseCategory(c string) bool {
	for _, known := range model.ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ProcessValidationErrors maps each failing field to the rule it broke.
func ProcessValidationErrors(err error) map[string]interface{} {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}

	out := make(map[string]interface{}, len(ves))
	for _, ve := range ves {
		out[ve.Field()] = ve.Tag()
	}
	return out
}

// ValidationMessage turns validator errors into one readable sentence.
func ValidationMessage(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err.Error()
	}

	parts := make([]string, 0, len(ves))
	for _, ve := range ves {
		switch ve.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", ve.Field()))
		case "min", "max":
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", ve.Field(), ve.Tag(), ve.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of %s", ve.Field(), ve.Param()))
		case "expense_category":
			parts = append(parts, fmt.Sprintf("%s must be one of %s", ve.Field(), strings.Join(model.ExpenseCategories, ", ")))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", ve.Field()))
		}
	}
	return strings.Join(parts, "; ")
}
