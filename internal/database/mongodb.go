package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the indexes the service relies on:
//   - users.username unique (backstop for the register duplicate check)
//   - recipes.recipe_name unique (backstop for the add-recipe duplicate check)
//   - recipes text index over the searchable fields ($text queries)
//   - types.recipe_type ascending (sorted taxonomy listing)
//
// Index creation is idempotent; calling this on every startup is safe.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	recipes := db.Collection("recipes")
	if _, err := recipes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "recipe_name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("recipes unique index: %w", err)
	}
	if _, err := recipes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "recipe_name", Value: "text"},
			{Key: "usage", Value: "text"},
			{Key: "materials_needed", Value: "text"},
		},
	}); err != nil {
		return fmt.Errorf("recipes text index: %w", err)
	}

	types := db.Collection("types")
	if _, err := types.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "recipe_type", Value: 1}},
	}); err != nil {
		return fmt.Errorf("types index: %w", err)
	}
	return nil
}
