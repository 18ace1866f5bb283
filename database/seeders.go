package database

import (
	"context"
	"time"

	"backoffice/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// RunSeeders bootstraps a default admin account and the base category set.
// Intended for development environments only.
func RunSeeders(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := seedAdminUser(ctx, db); err != nil {
		return err
	}
	return seedDefaultCategories(ctx, db)
}

func seedAdminUser(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")

	count, err := users.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:        primitive.NewObjectID(),
		Email:     "admin@backoffice.local",
		Password:  string(hashed),
		FirstName: "Default",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := users.InsertOne(ctx, admin); err != nil {
		return err
	}

	logrus.Info("Seeded default admin user: admin@backoffice.local")
	return nil
}

func seedDefaultCategories(ctx context.Context, db *mongo.Database) error {
	categories := db.Collection("categories")

	count, err := categories.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []interface{}{}
	for i, c := range []struct{ name, slug string }{
		{"Groceries", "groceries"},
		{"Electronics", "electronics"},
		{"Apparel", "apparel"},
		{"Home & Garden", "home-garden"},
	} {
		defaults = append(defaults, models.Category{
			ID:        primitive.NewObjectID(),
			Name:      c.name,
			Slug:      c.slug,
			SortOrder: i,
			IsActive:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
	}

	if _, err := categories.InsertMany(ctx, defaults); err != nil {
		return err
	}

	logrus.Infof("Seeded %d default categories", len(defaults))
	return nil
}
