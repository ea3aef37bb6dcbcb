package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/plamenbalkanski/meetup-scheduler/pkg/logger"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	messages := make([]string, len(v))
	for i, err := range v {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "; ")
}

type ResponseValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewResponseValidator(log *logger.Logger) *ResponseValidator {
	return &ResponseValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (v *ResponseValidator) ValidateCreate(create *model.ResponseCreate) error {
	if err := v.validate.Struct(create); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return v.translateValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

func (v *ResponseValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	result := make(ValidationErrors, 0, len(errs))
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		var message string
		switch err.Tag() {
		case "required":
			message = "is required"
		case "min":
			if err.Kind().String() == "slice" {
				message = fmt.Sprintf("must contain at least %s item", err.Param())
			} else {
				message = fmt.Sprintf("must be at least %s characters", err.Param())
			}
		case "max":
			message = fmt.Sprintf("must be at most %s characters", err.Param())
		default:
			message = fmt.Sprintf("failed %s validation", err.Tag())
		}
		result = append(result, ValidationError{Field: field, Message: message})
	}
	return result
}
