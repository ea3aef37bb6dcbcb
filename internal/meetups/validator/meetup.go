package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/plamenbalkanski/meetup-scheduler/pkg/logger"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/schedule"
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
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type MeetupValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewMeetupValidator(log *logger.Logger) *MeetupValidator {
	v := validator.New()

	if err := v.RegisterValidation("hour_marker", validateHourMarker); err != nil {
		log.Fatal("Failed to register 'hour_marker' validator", "error", err)
	}

	log.Info("Meetup validator initialized successfully")

	return &MeetupValidator{
		validate: v,
		logger:   log,
	}
}

// validateHourMarker accepts whole-hour "HH:MM" markers like "09:00".
func validateHourMarker(fl validator.FieldLevel) bool {
	marker := strings.TrimSpace(fl.Field().String())
	if marker == "" {
		return true
	}
	_, err := schedule.ParseHourMarker(marker)
	return err == nil
}

func (v *MeetupValidator) ValidateCreate(create *model.MeetupCreate) error {
	if err := v.validate.Struct(create); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	start, err := time.Parse("2006-01-02", create.StartDate)
	if err != nil {
		return ValidationErrors{ValidationError{Field: "StartDate", Message: "start_date must be a YYYY-MM-DD date"}}
	}
	end, err := time.Parse("2006-01-02", create.EndDate)
	if err != nil {
		return ValidationErrors{ValidationError{Field: "EndDate", Message: "end_date must be a YYYY-MM-DD date"}}
	}
	if end.Before(start) {
		return ValidationErrors{ValidationError{Field: "EndDate", Message: "end_date must not be before start_date"}}
	}

	if create.UseTimeRanges {
		if create.StartTime == "" || create.EndTime == "" {
			return ValidationErrors{ValidationError{Field: "StartTime", Message: "start_time and end_time are required when use_time_ranges is set"}}
		}
		startHour, err := schedule.ParseHourMarker(create.StartTime)
		if err != nil {
			return ValidationErrors{ValidationError{Field: "StartTime", Message: "start_time must be a whole-hour HH:MM marker"}}
		}
		endHour, err := schedule.ParseHourMarker(create.EndTime)
		if err != nil {
			return ValidationErrors{ValidationError{Field: "EndTime", Message: "end_time must be a whole-hour HH:MM marker"}}
		}
		if endHour <= startHour {
			return ValidationErrors{ValidationError{Field: "EndTime", Message: "end_time must be after start_time"}}
		}
	}

	return nil
}

func (v *MeetupValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "datetime":
			message = fmt.Sprintf("%s must be a YYYY-MM-DD date", err.Field())
		case "hour_marker":
			message = fmt.Sprintf("%s must be a whole-hour HH:MM marker (e.g., 09:00)", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
