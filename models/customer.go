package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Customer struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName string             `json:"firstName" bson:"firstName"`
	LastName  string             `json:"lastName" bson:"lastName"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   Address            `json:"address" bson:"address"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Tags      []string           `json:"tags,omitempty" bson:"tags,omitempty"`

	IsActive  bool      `json:"isActive" bson:"isActive"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

type CreateCustomerRequest struct {
	FirstName string   `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string   `json:"lastName" validate:"required,min=1,max=50"`
	Email     string   `json:"email" validate:"required,email"`
	Phone     string   `json:"phone,omitempty" validate:"omitempty,phone"`
	Address   Address  `json:"address"`
	Notes     string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=30"`
}

type UpdateCustomerRequest struct {
	FirstName *string  `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  *string  `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	Email     *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string  `json:"phone,omitempty" validate:"omitempty,phone"`
	Address   *Address `json:"address,omitempty"`
	Notes     *string  `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Tags      []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=30"`
	IsActive  *bool    `json:"isActive,omitempty"`
}
