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

type CustomerRepository struct {
	collection *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{
		collection: db.Collection("customers"),
	}
}

func (cr *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	customer.ID = primitive.NewObjectID()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	customer.IsActive = true

	_, err := cr.collection.InsertOne(ctx, customer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("A customer with this email already exists")
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (cr *CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NewNotFoundError("Customer")
	}

	var customer models.Customer
	err = cr.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewNotFoundError("Customer")
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &customer, nil
}

func (cr *CustomerRepository) List(ctx context.Context, query models.ListQuery) ([]models.Customer, int64, error) {
	filter := bson.M{}

	if query.IsActive != "" {
		filter["isActive"] = query.IsActive == "true"
	}
	if query.Search != "" {
		filter["$or"] = []bson.M{
			{"firstName": bson.M{"$regex": query.Search, "$options": "i"}},
			{"lastName": bson.M{"$regex": query.Search, "$options": "i"}},
			{"email": bson.M{"$regex": query.Search, "$options": "i"}},
		}
	}

	total, err := cr.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	sortField, sortDir := utils.NormalizeSort(query.SortBy, query.SortOrder, "createdAt",
		[]string{"createdAt", "firstName", "lastName", "email"})

	skip := (query.Page - 1) * query.Limit
	findOptions := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64(skip)).
		SetLimit(int64(query.Limit))

	cursor, err := cr.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err = cursor.All(ctx, &customers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode customers: %w", err)
	}

	return customers, total, nil
}

func (cr *CustomerRepository) Update(ctx context.Context, id string, update bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.NewNotFoundError("Customer")
	}

	update["updatedAt"] = time.Now()

	result, err := cr.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": update})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.NewConflictError("A customer with this email already exists")
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("Customer")
	}

	return nil
}

func (cr *CustomerRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.NewNotFoundError("Customer")
	}

	result, err := cr.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewNotFoundError("Customer")
	}

	return nil
}
