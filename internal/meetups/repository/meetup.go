package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	meetupserrors "github.com/plamenbalkanski/meetup-scheduler/internal/meetups/errors"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/config"
	mongotx "github.com/plamenbalkanski/meetup-scheduler/pkg/db/mongo"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
)

const (
	MeetupsCollection   = "Meetups"
	TimeSlotsCollection = "TimeSlots"
	ResponsesCollection = "Responses"
)

type MeetupRepository interface {
	Create(ctx context.Context, meetup *model.Meetup, slots []model.TimeSlot) error
	FindByID(ctx context.Context, id string) (*model.Meetup, error)
	FindSlots(ctx context.Context, meetupID string) ([]model.TimeSlot, error)
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoMeetupRepository struct {
	cfg       *config.Config
	meetups   *mongo.Collection
	slots     *mongo.Collection
	responses *mongo.Collection
	txManager mongotx.TransactionManager
}

func NewMongoMeetupRepository(cfg *config.Config) MeetupRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoMeetupRepository{
		cfg:       cfg,
		meetups:   db.Collection(MeetupsCollection),
		slots:     db.Collection(TimeSlotsCollection),
		responses: db.Collection(ResponsesCollection),
		txManager: mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already in a
// transaction; a SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoMeetupRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoMeetupRepository) Create(ctx context.Context, meetup *model.Meetup, slots []model.TimeSlot) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	meetup.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.meetups.InsertOne(ctx, meetup); err != nil {
		return fmt.Errorf("failed to create meetup: %w", err)
	}

	if len(slots) == 0 {
		return nil
	}

	docs := make([]any, len(slots))
	for i := range slots {
		docs[i] = slots[i]
	}
	if _, err := r.slots.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create time slots: %w", err)
	}
	return nil
}

func (r *mongoMeetupRepository) FindByID(ctx context.Context, id string) (*model.Meetup, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if id == "" {
		return nil, meetupserrors.ErrInvalidID
	}

	var meetup model.Meetup
	err := r.meetups.FindOne(ctx, bson.M{"_id": id}).Decode(&meetup)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, meetupserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find meetup: %w", err)
	}

	return &meetup, nil
}

func (r *mongoMeetupRepository) FindSlots(ctx context.Context, meetupID string) ([]model.TimeSlot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := r.slots.Find(ctx, bson.M{"meetup_id": meetupID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find time slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []model.TimeSlot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode time slots: %w", err)
	}
	return slots, nil
}

// Delete removes a meetup and cascades to its slots and responses. Run it
// inside ExecuteTransaction so the cascade is atomic.
func (r *mongoMeetupRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.meetups.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete meetup: %w", err)
	}
	if result.DeletedCount == 0 {
		return meetupserrors.ErrNotFound
	}

	if _, err := r.slots.DeleteMany(ctx, bson.M{"meetup_id": id}); err != nil {
		return fmt.Errorf("failed to delete time slots: %w", err)
	}
	if _, err := r.responses.DeleteMany(ctx, bson.M{"meetup_id": id}); err != nil {
		return fmt.Errorf("failed to delete responses: %w", err)
	}
	return nil
}

func (r *mongoMeetupRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
