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

type SupplierService struct {
	supplierRepo *repositories.SupplierRepository
	categoryRepo *repositories.CategoryRepository
	validator    *utils.ValidationService
}

func NewSupplierService(supplierRepo *repositories.SupplierRepository, categoryRepo *repositories.CategoryRepository, validator *utils.ValidationService) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		categoryRepo: categoryRepo,
		validator:    validator,
	}
}

func (ss *SupplierService) Create(ctx context.Context, req models.CreateSupplierRequest) (*models.Supplier, error) {
	if validationErrors := ss.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	categories, err := ss.resolveCategories(ctx, req.Categories)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	supplier := &models.Supplier{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		Website:     req.Website,
		Address:     req.Address,
		Categories:  categories,
		Rating:      req.Rating,
		Notes:       req.Notes,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := ss.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (ss *SupplierService) GetByID(ctx context.Context, id string) (*models.Supplier, error) {
	return ss.supplierRepo.GetByID(ctx, id)
}

func (ss *SupplierService) List(ctx context.Context, query models.ListQuery) ([]models.Supplier, int64, error) {
	return ss.supplierRepo.List(ctx, query)
}

func (ss *SupplierService) Update(ctx context.Context, id string, req models.UpdateSupplierRequest) (*models.Supplier, error) {
	if validationErrors := ss.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.ContactName != nil {
		set["contactName"] = *req.ContactName
	}
	if req.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.Address != nil {
		set["address"] = req.Address
	}
	if req.Categories != nil {
		categories, err := ss.resolveCategories(ctx, req.Categories)
		if err != nil {
			return nil, err
		}
		set["categories"] = categories
	}
	if req.Rating != nil {
		set["rating"] = *req.Rating
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	if err := ss.supplierRepo.Update(ctx, id, set); err != nil {
		return nil, err
	}
	return ss.supplierRepo.GetByID(ctx, id)
}

func (ss *SupplierService) Delete(ctx context.Context, id string) error {
	return ss.supplierRepo.Delete(ctx, id)
}

// resolveCategories parses and verifies the referenced category ids.
func (ss *SupplierService) resolveCategories(ctx context.Context, raw []string) ([]primitive.ObjectID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, hex := range raw {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, utils.NewValidationError("Invalid category id: " + hex)
		}
		if _, err := ss.categoryRepo.GetByID(ctx, hex); err != nil {
			return nil, utils.NewValidationError("Unknown category: " + hex)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
