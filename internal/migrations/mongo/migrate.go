package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plamenbalkanski/meetup-scheduler/internal/migrations/mongo/validators"
)

var (
	MeetupsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "creator_email", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	TimeSlotsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "meetup_id", Value: 1},
			{Key: "start_time", Value: 1},
		}},
	}

	ResponsesIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "meetup_id", Value: 1},
			{Key: "created_at", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "meetup_id", Value: 1},
			{Key: "name", Value: 1},
		}},
	}

	RateLimitsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "identifier", Value: 1},
				{Key: "type", Value: 1},
				{Key: "month", Value: 1},
				{Key: "year", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("Running meetup-scheduler Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Meetups": {
			Indexes:   MeetupsIndexes,
			Validator: validators.MeetupValidator,
		},
		"TimeSlots": {
			Indexes:   TimeSlotsIndexes,
			Validator: validators.TimeSlotValidator,
		},
		"Responses": {
			Indexes:   ResponsesIndexes,
			Validator: validators.ResponseValidator,
		},
		"RateLimits": {
			Indexes:   RateLimitsIndexes,
			Validator: validators.RateLimitValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("All migrations applied successfully.")
	return nil
}

// CleanupRateLimits removes usage counters older than three months. Stale
// counters never block anyone, they only take up space.
func CleanupRateLimits(ctx context.Context, client *mongo.Client, dbName string) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, -3, 0)

	filter := bson.M{"$or": bson.A{
		bson.M{"year": bson.M{"$lt": cutoff.Year()}},
		bson.M{"year": cutoff.Year(), "month": bson.M{"$lt": int(cutoff.Month())}},
	}}

	result, err := client.Database(dbName).Collection("RateLimits").DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up rate limit counters: %w", err)
	}
	return result.DeletedCount, nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("Collection %s already exists, updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("Ensured indexes for %s\n", name)
	return nil
}
