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

type LocationService struct {
	locationRepo *repositories.LocationRepository
	validator    *utils.ValidationService
}

func NewLocationService(locationRepo *repositories.LocationRepository, validator *utils.ValidationService) *LocationService {
	return &LocationService{locationRepo: locationRepo, validator: validator}
}

func (ls *LocationService) Create(ctx context.Context, req models.CreateLocationRequest) (*models.StoreLocation, error) {
	if validationErrors := ls.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	now := time.Now()
	location := &models.StoreLocation{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Manager:      req.Manager,
		OpeningHours: req.OpeningHours,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := ls.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (ls *LocationService) GetByID(ctx context.Context, id string) (*models.StoreLocation, error) {
	return ls.locationRepo.GetByID(ctx, id)
}

func (ls *LocationService) List(ctx context.Context, query models.ListQuery) ([]models.StoreLocation, int64, error) {
	return ls.locationRepo.List(ctx, query)
}

func (ls *LocationService) Update(ctx context.Context, id string, req models.UpdateLocationRequest) (*models.StoreLocation, error) {
	if validationErrors := ls.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Code != nil {
		set["code"] = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Address != nil {
		set["address"] = req.Address
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Manager != nil {
		set["manager"] = *req.Manager
	}
	if req.OpeningHours != nil {
		set["openingHours"] = req.OpeningHours
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	if err := ls.locationRepo.Update(ctx, id, set); err != nil {
		return nil, err
	}
	return ls.locationRepo.GetByID(ctx, id)
}

func (ls *LocationService) Delete(ctx context.Context, id string) error {
	return ls.locationRepo.Delete(ctx, id)
}
