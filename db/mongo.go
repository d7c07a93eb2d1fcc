package db

import (
	"context"
	"fmt"
	"time"

	"musicalchairs/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo dials MongoDB, verifies the connection with a ping and
// returns a handle to the configured database.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(cfg.MongoDB), nil
}

// CloseMongo disconnects the client backing the database handle.
func CloseMongo(ctx context.Context, database *mongo.Database) error {
	if database == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return database.Client().Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on: a unique
// index on users.username and sort indexes on the metadata collection.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := database.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users.username index: %w", err)
	}

	_, err = database.Collection("metadata").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "artistName", Value: 1}}},
		{Keys: bson.D{{Key: "trackName", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create metadata indexes: %w", err)
	}
	return nil
}
