package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a product category; categories form a single-level tree via ParentID.
type Category struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Slug        string              `json:"slug" bson:"slug"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	ParentID    *primitive.ObjectID `json:"parentId,omitempty" bson:"parentId,omitempty"`
	SortOrder   int                 `json:"sortOrder" bson:"sortOrder"`

	IsActive  bool      `json:"isActive" bson:"isActive"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Slug        string `json:"slug" validate:"required,slug"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
	ParentID    string `json:"parentId,omitempty"`
	SortOrder   int    `json:"sortOrder" validate:"gte=0"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,slug"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	ParentID    *string `json:"parentId,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
