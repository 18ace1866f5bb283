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

type CategoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection("categories"),
	}
}

func (cr *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.ID = primitive.NewObjectID()
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	category.IsActive = true

	_, err := cr.collection.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("A category with this slug already exists")
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (cr *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NewNotFoundError("Category")
	}

	var category models.Category
	err = cr.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewNotFoundError("Category")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

func (cr *CategoryRepository) List(ctx context.Context, query models.ListQuery) ([]models.Category, int64, error) {
	filter := bson.M{}

	if query.IsActive != "" {
		filter["isActive"] = query.IsActive == "true"
	}
	if query.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": query.Search, "$options": "i"}},
			{"slug": bson.M{"$regex": query.Search, "$options": "i"}},
		}
	}

	total, err := cr.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	sortField, sortDir := utils.NormalizeSort(query.SortBy, query.SortOrder, "sortOrder",
		[]string{"sortOrder", "name", "createdAt"})
	if sortField == "sortOrder" && query.SortOrder == "" {
		sortDir = 1
	}

	skip := (query.Page - 1) * query.Limit
	findOptions := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64(skip)).
		SetLimit(int64(query.Limit))

	cursor, err := cr.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, 0, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, total, nil
}

func (cr *CategoryRepository) Update(ctx context.Context, id string, update bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.NewNotFoundError("Category")
	}

	update["updatedAt"] = time.Now()

	result, err := cr.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("A category with this slug already exists")
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("Category")
	}

	return nil
}

func (cr *CategoryRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.NewNotFoundError("Category")
	}

	// Child categories are orphaned to the root rather than deleted.
	_, err = cr.collection.UpdateMany(ctx,
		bson.M{"parentId": objectID},
		bson.M{"$unset": bson.M{"parentId": ""}, "$set": bson.M{"updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to detach child categories: %w", err)
	}

	result, err := cr.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewNotFoundError("Category")
	}

	return nil
}
