package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plamenbalkanski/meetup-scheduler/pkg/config"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
)

const RateLimitsCollection = "RateLimits"

type RateLimitRepository interface {
	Find(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error)
	Increment(ctx context.Context, identifier, identifierType string, month, year int) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type mongoRateLimitRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoRateLimitRepository(cfg *config.Config) RateLimitRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRateLimitRepository{
		cfg:        cfg,
		collection: db.Collection(RateLimitsCollection),
	}
}

func (r *mongoRateLimitRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Find returns nil without error when no counter exists yet for the period.
func (r *mongoRateLimitRepository) Find(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"identifier": identifier,
		"type":       identifierType,
		"month":      month,
		"year":       year,
	}

	var counter model.RateLimitCounter
	err := r.collection.FindOne(ctx, filter).Decode(&counter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find rate limit counter: %w", err)
	}
	return &counter, nil
}

// Increment bumps the period counter, creating it on first use. The unique
// index on (identifier, type, month, year) keeps concurrent upserts from
// producing duplicate rows.
func (r *mongoRateLimitRepository) Increment(ctx context.Context, identifier, identifierType string, month, year int) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"identifier": identifier,
		"type":       identifierType,
		"month":      month,
		"year":       year,
	}
	update := bson.M{
		"$inc":         bson.M{"count": 1},
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	return nil
}

// DeleteOlderThan drops counters from periods that ended before cutoff.
// Counters carry no timestamps, so age is derived from (month, year).
func (r *mongoRateLimitRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"year": bson.M{"$lt": cutoff.Year()}},
		bson.M{"year": cutoff.Year(), "month": bson.M{"$lt": int(cutoff.Month())}},
	}}

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale rate limit counters: %w", err)
	}
	return result.DeletedCount, nil
}
