package validator

import (
	"testing"

	"github.com/plamenbalkanski/meetup-scheduler/pkg/logger"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
)

func newTestValidator() *MeetupValidator {
	log := logger.New(logger.Config{Level: logger.ERROR, Service: "test"})
	return NewMeetupValidator(log)
}

func validCreate() *model.MeetupCreate {
	return &model.MeetupCreate{
		Title:        "Team offsite",
		CreatorEmail: "alice@example.com",
		StartDate:    "2024-06-01",
		EndDate:      "2024-06-03",
	}
}

func TestValidateCreate_Valid(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateCreate(validCreate()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	withHours := validCreate()
	withHours.UseTimeRanges = true
	withHours.StartTime = "09:00"
	withHours.EndTime = "17:00"
	if err := v.ValidateCreate(withHours); err != nil {
		t.Fatalf("unexpected error with hour window: %v", err)
	}
}

func TestValidateCreate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.MeetupCreate)
	}{
		{"missing title", func(c *model.MeetupCreate) { c.Title = "" }},
		{"short title", func(c *model.MeetupCreate) { c.Title = "x" }},
		{"bad email", func(c *model.MeetupCreate) { c.CreatorEmail = "not-an-email" }},
		{"bad start date", func(c *model.MeetupCreate) { c.StartDate = "June 1st" }},
		{"end before start", func(c *model.MeetupCreate) { c.StartDate = "2024-06-05"; c.EndDate = "2024-06-01" }},
		{"ranges without markers", func(c *model.MeetupCreate) { c.UseTimeRanges = true }},
		{"non whole-hour marker", func(c *model.MeetupCreate) {
			c.UseTimeRanges = true
			c.StartTime = "09:30"
			c.EndTime = "17:00"
		}},
		{"end hour not after start", func(c *model.MeetupCreate) {
			c.UseTimeRanges = true
			c.StartTime = "17:00"
			c.EndTime = "09:00"
		}},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create := validCreate()
			tt.mutate(create)
			if err := v.ValidateCreate(create); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
