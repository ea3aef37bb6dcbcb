package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoMigration "github.com/plamenbalkanski/meetup-scheduler/internal/migrations/mongo"
)

func main() {
	cleanup := flag.Bool("cleanup", false, "also delete rate limit counters older than three months")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DATABASE_NAME")
	if dbName == "" {
		dbName = "meetup_scheduler"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	fmt.Printf("Connected to %s\n", mongoURI)

	if err := mongoMigration.RunMigration(ctx, client, dbName); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if *cleanup {
		deleted, err := mongoMigration.CleanupRateLimits(ctx, client, dbName)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Deleted %d stale rate limit counters\n", deleted)
	}

	fmt.Println("Migration completed.")
}
