package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RunMigrations creates the indexes the repositories rely on.
func RunMigrations(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := createUserIndexes(ctx, db); err != nil {
		return err
	}
	if err := createNotificationIndexes(ctx, db); err != nil {
		return err
	}
	if err := createCRUDIndexes(ctx, db); err != nil {
		return err
	}

	logrus.Info("Database migrations completed")
	return nil
}

func createUserIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "isActive", Value: 1}},
		},
	}

	_, err := db.Collection("users").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

func createNotificationIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		// Scheduler due query
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduledTime", Value: 1}},
		},
		// Admin listing and stats windows
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "createdBy", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		// Audience membership queries
		{
			Keys: bson.D{{Key: "targetUsers", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "sendToAllUsers", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "readBy.userId", Value: 1}},
		},
	}

	_, err := db.Collection("notifications").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create notification indexes: %w", err)
	}
	return nil
}

func createCRUDIndexes(ctx context.Context, db *mongo.Database) error {
	customerIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	}
	if _, err := db.Collection("customers").Indexes().CreateMany(ctx, customerIndexes); err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}

	locationIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("store_locations").Indexes().CreateMany(ctx, locationIndexes); err != nil {
		return fmt.Errorf("failed to create store location indexes: %w", err)
	}

	supplierIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}
	if _, err := db.Collection("suppliers").Indexes().CreateMany(ctx, supplierIndexes); err != nil {
		return fmt.Errorf("failed to create supplier indexes: %w", err)
	}

	categoryIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "parentId", Value: 1}, {Key: "sortOrder", Value: 1}},
		},
	}
	if _, err := db.Collection("categories").Indexes().CreateMany(ctx, categoryIndexes); err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}

	return nil
}
