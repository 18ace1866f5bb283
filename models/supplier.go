package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Supplier struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	ContactName string               `json:"contactName,omitempty" bson:"contactName,omitempty"`
	Email       string               `json:"email" bson:"email"`
	Phone       string               `json:"phone,omitempty" bson:"phone,omitempty"`
	Website     string               `json:"website,omitempty" bson:"website,omitempty"`
	Address     Address              `json:"address" bson:"address"`
	Categories  []primitive.ObjectID `json:"categories,omitempty" bson:"categories,omitempty"`
	Rating      int                  `json:"rating" bson:"rating"` // 0 (unrated) to 5
	Notes       string               `json:"notes,omitempty" bson:"notes,omitempty"`

	IsActive  bool      `json:"isActive" bson:"isActive"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateSupplierRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=150"`
	ContactName string   `json:"contactName,omitempty" validate:"omitempty,max=100"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone,omitempty" validate:"omitempty,phone"`
	Website     string   `json:"website,omitempty" validate:"omitempty,url"`
	Address     Address  `json:"address"`
	Categories  []string `json:"categories,omitempty"`
	Rating      int      `json:"rating" validate:"gte=0,lte=5"`
	Notes       string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type UpdateSupplierRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	ContactName *string  `json:"contactName,omitempty" validate:"omitempty,max=100"`
	Email       *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string  `json:"phone,omitempty" validate:"omitempty,phone"`
	Website     *string  `json:"website,omitempty" validate:"omitempty,url"`
	Address     *Address `json:"address,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Rating      *int     `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Notes       *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
	IsActive    *bool    `json:"isActive,omitempty"`
}
