package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plamenbalkanski/meetup-scheduler/pkg/config"
	mongotx "github.com/plamenbalkanski/meetup-scheduler/pkg/db/mongo"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
)

const ResponsesCollection = "Responses"

type ResponseRepository interface {
	Create(ctx context.Context, response *model.Response) error
	FindByMeetup(ctx context.Context, meetupID string) ([]model.Response, error)
	DeleteByMeetupAndName(ctx context.Context, meetupID, name string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoResponseRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoResponseRepository(cfg *config.Config) ResponseRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoResponseRepository{
		cfg:        cfg,
		collection: db.Collection(ResponsesCollection),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoResponseRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoResponseRepository) Create(ctx context.Context, response *model.Response) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	response.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if _, err := r.collection.InsertOne(ctx, response); err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

// FindByMeetup returns responses in submission order.
func (r *mongoResponseRepository) FindByMeetup(ctx context.Context, meetupID string) ([]model.Response, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"meetup_id": meetupID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find responses: %w", err)
	}
	defer cursor.Close(ctx)

	var responses []model.Response
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, fmt.Errorf("failed to decode responses: %w", err)
	}
	return responses, nil
}

func (r *mongoResponseRepository) DeleteByMeetupAndName(ctx context.Context, meetupID, name string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"meetup_id": meetupID, "name": name})
	if err != nil {
		return 0, fmt.Errorf("failed to delete responses: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoResponseRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
