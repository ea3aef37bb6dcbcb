package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	meetupserrors "github.com/plamenbalkanski/meetup-scheduler/internal/meetups/errors"
	"github.com/plamenbalkanski/meetup-scheduler/internal/meetups/repository"
	"github.com/plamenbalkanski/meetup-scheduler/internal/meetups/validator"
	quotaservice "github.com/plamenbalkanski/meetup-scheduler/internal/quota/service"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/config"
	apperrors "github.com/plamenbalkanski/meetup-scheduler/pkg/errors"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/mailer"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/middleware"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/sanitizer"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/schedule"
)

const quotaExceededMessage = "Monthly meetup limit reached. Upgrade for unlimited meetups."

// ResponseLister is the slice of the responses repository the meetup
// service needs for detail and results reads.
type ResponseLister interface {
	FindByMeetup(ctx context.Context, meetupID string) ([]model.Response, error)
}

type MeetupService interface {
	Create(ctx context.Context, create *model.MeetupCreate, clientIP string) (*model.MeetupCreated, error)
	GetByID(ctx context.Context, id string) (*model.MeetupDetail, error)
	Results(ctx context.Context, id string) ([]schedule.SlotAvailability, error)
	Delete(ctx context.Context, id string) error
	Share(ctx context.Context, meetupID, recipient string) error
}

type meetupService struct {
	cfg       *config.Config
	repo      repository.MeetupRepository
	responses ResponseLister
	validator *validator.MeetupValidator
	quota     quotaservice.QuotaService
	sender    mailer.Sender
	limiter   *middleware.EmailRateLimiter
}

func NewMeetupService(
	cfg *config.Config,
	repo repository.MeetupRepository,
	responses ResponseLister,
	meetupValidator *validator.MeetupValidator,
	quota quotaservice.QuotaService,
	sender mailer.Sender,
	limiter *middleware.EmailRateLimiter,
) MeetupService {
	return &meetupService{
		cfg:       cfg,
		repo:      repo,
		responses: responses,
		validator: meetupValidator,
		quota:     quota,
		sender:    sender,
		limiter:   limiter,
	}
}

func (s *meetupService) sanitizeCreate(create *model.MeetupCreate) {
	create.Title = sanitizer.NormalizeText(create.Title)
	create.Description = sanitizer.NormalizeText(create.Description)
	create.Address = sanitizer.NormalizeText(create.Address)
	create.CreatorEmail = sanitizer.NormalizeEmail(create.CreatorEmail)
}

func (s *meetupService) Create(ctx context.Context, create *model.MeetupCreate, clientIP string) (*model.MeetupCreated, error) {
	s.sanitizeCreate(create)

	if err := s.validator.ValidateCreate(create); err != nil {
		return nil, apperrors.Validation("Meetup validation failed", map[string]any{"error": err.Error()})
	}

	blocked, err := s.quota.ShouldBlock(ctx, create.CreatorEmail, clientIP)
	if err != nil {
		return nil, apperrors.Internal("Failed to check creation quota", err)
	}
	if blocked {
		return nil, apperrors.QuotaExceeded(quotaExceededMessage)
	}

	slots, err := s.buildSlots(create)
	if err != nil {
		return nil, err
	}

	meetup := &model.Meetup{
		ID:            uuid.NewString(),
		Title:         create.Title,
		Description:   create.Description,
		Address:       create.Address,
		CreatorEmail:  create.CreatorEmail,
		UseTimeRanges: create.UseTimeRanges,
	}

	timeSlots := make([]model.TimeSlot, len(slots))
	for i, slot := range slots {
		timeSlots[i] = model.TimeSlot{
			ID:        uuid.NewString(),
			MeetupID:  meetup.ID,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Create(sessCtx, meetup, timeSlots); err != nil {
			return err
		}
		return s.quota.Record(sessCtx, create.CreatorEmail, clientIP)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("Failed to create meetup", err)
	}

	shareURL := s.shareURL(meetup.ID)

	created := &model.MeetupCreated{
		Meetup:    *meetup,
		TimeSlots: timeSlots,
		ShareURL:  shareURL,
	}
	created.EmailSent = s.sendCreatorEmail(meetup, shareURL)

	s.cfg.Log.Info("Meetup created",
		"meetup_id", meetup.ID,
		"slots", len(timeSlots),
		"use_time_ranges", meetup.UseTimeRanges,
		"email_sent", created.EmailSent,
	)
	return created, nil
}

func (s *meetupService) buildSlots(create *model.MeetupCreate) ([]schedule.Slot, error) {
	startDate, err := time.Parse(time.DateOnly, create.StartDate)
	if err != nil {
		return nil, apperrors.InvalidInput("start_date must be a YYYY-MM-DD date")
	}
	endDate, err := time.Parse(time.DateOnly, create.EndDate)
	if err != nil {
		return nil, apperrors.InvalidInput("end_date must be a YYYY-MM-DD date")
	}

	var window *schedule.HourWindow
	if create.UseTimeRanges {
		startHour, err := schedule.ParseHourMarker(create.StartTime)
		if err != nil {
			return nil, apperrors.InvalidInput("start_time must be a whole hour marker like 09:00")
		}
		endHour, err := schedule.ParseHourMarker(create.EndTime)
		if err != nil {
			return nil, apperrors.InvalidInput("end_time must be a whole hour marker like 17:00")
		}
		window = &schedule.HourWindow{StartHour: startHour, EndHour: endHour}
	}

	slots, err := schedule.GenerateSlots(startDate, endDate, window)
	if err != nil {
		var rangeErr *schedule.InvalidRangeError
		if errors.As(err, &rangeErr) {
			return nil, apperrors.InvalidInput(rangeErr.Reason)
		}
		return nil, err
	}
	return slots, nil
}

func (s *meetupService) shareURL(meetupID string) string {
	return fmt.Sprintf("%s/meetup/%s", s.cfg.BaseURL, meetupID)
}

// sendCreatorEmail is best effort. Creation already committed; a delivery
// failure is logged and reported through the EmailSent flag only.
func (s *meetupService) sendCreatorEmail(meetup *model.Meetup, shareURL string) bool {
	if s.sender == nil {
		return false
	}
	subject, body := mailer.CreatorMessage(meetup.Title, shareURL)
	if err := s.sender.Send(meetup.CreatorEmail, subject, body); err != nil {
		s.cfg.Log.Error("Failed to send creation email",
			"meetup_id", meetup.ID,
			"error", err,
		)
		return false
	}
	return true
}

// findMeetup wraps repository lookups in the error shape handlers expect.
func (s *meetupService) findMeetup(ctx context.Context, id string) (*model.Meetup, error) {
	meetup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetupserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Meetup", id)
		}
		if errors.Is(err, meetupserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Meetup ID cannot be empty")
		}
		return nil, apperrors.Internal("Failed to retrieve meetup", err)
	}
	return meetup, nil
}

func (s *meetupService) GetByID(ctx context.Context, id string) (*model.MeetupDetail, error) {
	meetup, err := s.findMeetup(ctx, id)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.FindSlots(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve time slots", err)
	}
	responses, err := s.responses.FindByMeetup(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve responses", err)
	}

	return &model.MeetupDetail{
		Meetup:    *meetup,
		TimeSlots: slots,
		Responses: responses,
	}, nil
}

func (s *meetupService) Results(ctx context.Context, id string) ([]schedule.SlotAvailability, error) {
	if _, err := s.findMeetup(ctx, id); err != nil {
		return nil, err
	}

	slots, err := s.repo.FindSlots(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve time slots", err)
	}
	responses, err := s.responses.FindByMeetup(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve responses", err)
	}

	return schedule.Aggregate(slots, responses), nil
}

func (s *meetupService) Delete(ctx context.Context, id string) error {
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		return s.repo.Delete(sessCtx, id)
	})
	if err != nil {
		if errors.Is(err, meetupserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Meetup", id)
		}
		return apperrors.Internal("Failed to delete meetup", err)
	}

	s.cfg.Log.Info("Meetup deleted", "meetup_id", id)
	return nil
}

func (s *meetupService) Share(ctx context.Context, meetupID, recipient string) error {
	recipient = sanitizer.NormalizeEmail(recipient)
	if recipient == "" {
		return apperrors.InvalidInput("email is required")
	}

	meetup, err := s.findMeetup(ctx, meetupID)
	if err != nil {
		return err
	}

	if s.limiter != nil && !s.limiter.Allow(recipient) {
		return apperrors.QuotaExceeded("Email limit reached for this recipient. Try again later.")
	}
	if s.sender == nil {
		return apperrors.Unavailable("email delivery")
	}

	subject, body := mailer.InviteMessage(meetup.Title, s.shareURL(meetup.ID))
	if err := s.sender.Send(recipient, subject, body); err != nil {
		s.cfg.Log.Error("Failed to send invitation email",
			"meetup_id", meetup.ID,
			"error", err,
		)
		return apperrors.Internal("Failed to send invitation email", err)
	}

	s.cfg.Log.Info("Invitation sent", "meetup_id", meetup.ID)
	return nil
}
