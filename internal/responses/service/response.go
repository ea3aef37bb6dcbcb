package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	meetupserrors "github.com/plamenbalkanski/meetup-scheduler/internal/meetups/errors"
	"github.com/plamenbalkanski/meetup-scheduler/internal/responses/repository"
	"github.com/plamenbalkanski/meetup-scheduler/internal/responses/validator"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/config"
	apperrors "github.com/plamenbalkanski/meetup-scheduler/pkg/errors"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/sanitizer"
)

// MeetupReader is the slice of the meetups repository the response service
// needs to anchor a submission to an existing meetup and its slots.
type MeetupReader interface {
	FindByID(ctx context.Context, id string) (*model.Meetup, error)
	FindSlots(ctx context.Context, meetupID string) ([]model.TimeSlot, error)
}

type ResponseService interface {
	Submit(ctx context.Context, meetupID string, create *model.ResponseCreate) (*model.Response, error)
	ListByMeetup(ctx context.Context, meetupID string) ([]model.Response, error)
}

type responseService struct {
	cfg       *config.Config
	repo      repository.ResponseRepository
	meetups   MeetupReader
	validator *validator.ResponseValidator
}

func NewResponseService(
	cfg *config.Config,
	repo repository.ResponseRepository,
	meetups MeetupReader,
	responseValidator *validator.ResponseValidator,
) ResponseService {
	return &responseService{
		cfg:       cfg,
		repo:      repo,
		meetups:   meetups,
		validator: responseValidator,
	}
}

func (s *responseService) Submit(ctx context.Context, meetupID string, create *model.ResponseCreate) (*model.Response, error) {
	create.Name = sanitizer.NormalizeText(create.Name)

	if err := s.validator.ValidateCreate(create); err != nil {
		return nil, apperrors.Validation("Response validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.meetups.FindByID(ctx, meetupID); err != nil {
		if errors.Is(err, meetupserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Meetup", meetupID)
		}
		if errors.Is(err, meetupserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Meetup ID cannot be empty")
		}
		return nil, apperrors.Internal("Failed to retrieve meetup", err)
	}

	if err := s.checkSlotMembership(ctx, meetupID, create.TimeSlotIDs); err != nil {
		return nil, err
	}

	response := &model.Response{
		ID:          uuid.NewString(),
		MeetupID:    meetupID,
		Name:        create.Name,
		TimeSlotIDs: create.TimeSlotIDs,
	}

	if s.cfg.ResponsePolicy == config.ResponsePolicyReplace {
		err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			if _, err := s.repo.DeleteByMeetupAndName(sessCtx, meetupID, create.Name); err != nil {
				return err
			}
			return s.repo.Create(sessCtx, response)
		})
		if err != nil {
			return nil, apperrors.Internal("Failed to save response", err)
		}
	} else {
		if err := s.repo.Create(ctx, response); err != nil {
			return nil, apperrors.Internal("Failed to save response", err)
		}
	}

	s.cfg.Log.Info("Response submitted",
		"meetup_id", meetupID,
		"slots", len(response.TimeSlotIDs),
		"policy", s.cfg.ResponsePolicy,
	)
	return response, nil
}

// checkSlotMembership rejects submissions referencing slot ids that do not
// belong to the meetup. Unknown ids fail the whole submission.
func (s *responseService) checkSlotMembership(ctx context.Context, meetupID string, slotIDs []string) error {
	slots, err := s.meetups.FindSlots(ctx, meetupID)
	if err != nil {
		return apperrors.Internal("Failed to retrieve time slots", err)
	}

	known := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		known[slot.ID] = struct{}{}
	}

	var unknown []string
	for _, id := range slotIDs {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return apperrors.InvalidInput("time_slot_ids reference slots outside this meetup").
			WithDetails(map[string]any{"unknown_slot_ids": unknown})
	}
	return nil
}

func (s *responseService) ListByMeetup(ctx context.Context, meetupID string) ([]model.Response, error) {
	if _, err := s.meetups.FindByID(ctx, meetupID); err != nil {
		if errors.Is(err, meetupserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Meetup", meetupID)
		}
		return nil, apperrors.Internal("Failed to retrieve meetup", err)
	}

	responses, err := s.repo.FindByMeetup(ctx, meetupID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve responses", err)
	}
	return responses, nil
}
