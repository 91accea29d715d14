package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/nationsapi/nations-service/pkg/util"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks a request payload against its validate tags and returns a
// 400 DomainError listing every failing field.
func Validate(payload any) error {
	err := getValidator().Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	messages := make([]string, 0, len(fieldErrs))
	fields := make([]map[string]any, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fieldMessage(fe)
		messages = append(messages, msg)
		fields = append(fields, map[string]any{
			"field":   fe.Field(),
			"tag":     fe.Tag(),
			"message": msg,
		})
	}
	return apperrors.NewValidationError(strings.Join(messages, "; "), map[string]any{"fields": fields})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
