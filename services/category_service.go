package services

import (
	"context"
	"strings"
	"time"

	"backoffice/models"
	"backoffice/repositories"
	"backoffice/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryService struct {
	categoryRepo *repositories.CategoryRepository
	validator    *utils.ValidationService
}

func NewCategoryService(categoryRepo *repositories.CategoryRepository, validator *utils.ValidationService) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, validator: validator}
}

func (cs *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	if validationErrors := cs.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	parentID, err := cs.resolveParent(ctx, req.ParentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	category := &models.Category{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Slug:        strings.ToLower(strings.TrimSpace(req.Slug)),
		Description: req.Description,
		ParentID:    parentID,
		SortOrder:   req.SortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := cs.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (cs *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return cs.categoryRepo.GetByID(ctx, id)
}

func (cs *CategoryService) List(ctx context.Context, query models.ListQuery) ([]models.Category, int64, error) {
	return cs.categoryRepo.List(ctx, query)
}

func (cs *CategoryService) Update(ctx context.Context, id string, req models.UpdateCategoryRequest) (*models.Category, error) {
	if validationErrors := cs.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Slug != nil {
		set["slug"] = strings.ToLower(strings.TrimSpace(*req.Slug))
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			// Clearing the parent promotes the category to the root level.
			set["parentId"] = nil
		} else {
			if *req.ParentID == id {
				return nil, utils.NewValidationError("Category cannot be its own parent")
			}
			parentID, err := cs.resolveParent(ctx, *req.ParentID)
			if err != nil {
				return nil, err
			}
			set["parentId"] = parentID
		}
	}
	if req.SortOrder != nil {
		set["sortOrder"] = *req.SortOrder
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	if err := cs.categoryRepo.Update(ctx, id, set); err != nil {
		return nil, err
	}
	return cs.categoryRepo.GetByID(ctx, id)
}

func (cs *CategoryService) Delete(ctx context.Context, id string) error {
	return cs.categoryRepo.Delete(ctx, id)
}

func (cs *CategoryService) resolveParent(ctx context.Context, raw string) (*primitive.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, utils.NewValidationError("Invalid parent category id")
	}
	parent, err := cs.categoryRepo.GetByID(ctx, raw)
	if err != nil {
		return nil, utils.NewValidationError("Unknown parent category")
	}
	if parent.ParentID != nil {
		return nil, utils.NewValidationError("Categories nest at most one level deep")
	}
	return &id, nil
}
