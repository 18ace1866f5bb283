package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoreLocation is a physical store in the back office.
type StoreLocation struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Code    string             `json:"code" bson:"code"`
	Address Address            `json:"address" bson:"address"`
	Phone   string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email   string             `json:"email,omitempty" bson:"email,omitempty"`
	Manager string             `json:"manager,omitempty" bson:"manager,omitempty"`

	OpeningHours map[string]string `json:"openingHours,omitempty" bson:"openingHours,omitempty"` // weekday -> "09:00-18:00"

	IsActive  bool      `json:"isActive" bson:"isActive"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateLocationRequest struct {
	Name         string            `json:"name" validate:"required,min=2,max=100"`
	Code         string            `json:"code" validate:"required,location_code"`
	Address      Address           `json:"address"`
	Phone        string            `json:"phone,omitempty" validate:"omitempty,phone"`
	Email        string            `json:"email,omitempty" validate:"omitempty,email"`
	Manager      string            `json:"manager,omitempty" validate:"omitempty,max=100"`
	OpeningHours map[string]string `json:"openingHours,omitempty"`
}

type UpdateLocationRequest struct {
	Name         *string           `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Code         *string           `json:"code,omitempty" validate:"omitempty,location_code"`
	Address      *Address          `json:"address,omitempty"`
	Phone        *string           `json:"phone,omitempty" validate:"omitempty,phone"`
	Email        *string           `json:"email,omitempty" validate:"omitempty,email"`
	Manager      *string           `json:"manager,omitempty" validate:"omitempty,max=100"`
	OpeningHours map[string]string `json:"openingHours,omitempty"`
	IsActive     *bool             `json:"isActive,omitempty"`
}
