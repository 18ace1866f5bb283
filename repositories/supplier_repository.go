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

type SupplierRepository struct {
	collection *mongo.Collection
}

func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	return &SupplierRepository{
		collection: db.Collection("suppliers"),
	}
}

func (sr *SupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	supplier.ID = primitive.NewObjectID()
	supplier.CreatedAt = time.Now()
	supplier.UpdatedAt = time.Now()
	supplier.IsActive = true

	_, err := sr.collection.InsertOne(ctx, supplier)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (sr *SupplierRepository) GetByID(ctx context.Context, id string) (*models.Supplier, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NewNotFoundError("Supplier")
	}

	var supplier models.Supplier
	err = sr.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&supplier)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewNotFoundError("Supplier")
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	return &supplier, nil
}

func (sr *SupplierRepository) List(ctx context.Context, query models.ListQuery) ([]models.Supplier, int64, error) {
	filter := bson.M{}

	if query.IsActive != "" {
		filter["isActive"] = query.IsActive == "true"
	}
	if query.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": query.Search, "$options": "i"}},
			{"contactName": bson.M{"$regex": query.Search, "$options": "i"}},
			{"email": bson.M{"$regex": query.Search, "$options": "i"}},
		}
	}

	total, err := sr.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	sortField, sortDir := utils.NormalizeSort(query.SortBy, query.SortOrder, "name",
		[]string{"name", "rating", "createdAt"})

	skip := (query.Page - 1) * query.Limit
	findOptions := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64(skip)).
		SetLimit(int64(query.Limit))

	cursor, err := sr.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find suppliers: %w", err)
	}
	defer cursor.Close(ctx)

	var suppliers []models.Supplier
	if err = cursor.All(ctx, &suppliers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode suppliers: %w", err)
	}

	return suppliers, total, nil
}

func (sr *SupplierRepository) Update(ctx context.Context, id string, update bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.NewNotFoundError("Supplier")
	}

	update["updatedAt"] = time.Now()

	result, err := sr.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("Supplier")
	}

	return nil
}

func (sr *SupplierRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.NewNotFoundError("Supplier")
	}

	result, err := sr.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewNotFoundError("Supplier")
	}

	return nil
}
