package repositories

import (
	"context"
	"fmt"
	"time"

	"backoffice/models"
	"backoffice/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LocationRepository struct {
	collection *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{
		collection: db.Collection("store_locations"),
	}
}

func (lr *LocationRepository) Create(ctx context.Context, location *models.StoreLocation) error {
	location.ID = primitive.NewObjectID()
	location.CreatedAt = time.Now()
	location.UpdatedAt = time.Now()
	location.IsActive = true

	_, err := lr.collection.InsertOne(ctx, location)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("A location with this code already exists")
		}
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (lr *LocationRepository) GetByID(ctx context.Context, id string) (*models.StoreLocation, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NewNotFoundError("Location")
	}

	var location models.StoreLocation
	err = lr.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&location)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewNotFoundError("Location")
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return &location, nil
}

func (lr *LocationRepository) List(ctx context.Context, query models.ListQuery) ([]models.StoreLocation, int64, error) {
	filter := bson.M{}

	if query.IsActive != "" {
		filter["isActive"] = query.IsActive == "true"
	}
	if query.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": query.Search, "$options": "i"}},
			{"code": bson.M{"$regex": query.Search, "$options": "i"}},
			{"address.city": bson.M{"$regex": query.Search, "$options": "i"}},
		}
	}

	total, err := lr.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count locations: %w", err)
	}

	sortField, sortDir := utils.NormalizeSort(query.SortBy, query.SortOrder, "name",
		[]string{"name", "code", "createdAt"})

	skip := (query.Page - 1) * query.Limit
	findOptions := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64(skip)).
		SetLimit(int64(query.Limit))

	cursor, err := lr.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []models.StoreLocation
	if err = cursor.All(ctx, &locations); err != nil {
		return nil, 0, fmt.Errorf("failed to decode locations: %w", err)
	}

	return locations, total, nil
}

func (lr *LocationRepository) Update(ctx context.Context, id string, update bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.NewNotFoundError("Location")
	}

	update["updatedAt"] = time.Now()

	result, err := lr.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("A location with this code already exists")
		}
		return fmt.Errorf("failed to update location: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("Location")
	}

	return nil
}

func (lr *LocationRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.NewNotFoundError("Location")
	}

	result, err := lr.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewNotFoundError("Location")
	}

	return nil
}
