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

type CustomerService struct {
	customerRepo *repositories.CustomerRepository
	validator    *utils.ValidationService
}

func NewCustomerService(customerRepo *repositories.CustomerRepository, validator *utils.ValidationService) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, validator: validator}
}

func (cs *CustomerService) Create(ctx context.Context, req models.CreateCustomerRequest) (*models.Customer, error) {
	if validationErrors := cs.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	now := time.Now()
	customer := &models.Customer{
		ID:        primitive.NewObjectID(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Address:   req.Address,
		Notes:     req.Notes,
		Tags:      req.Tags,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := cs.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (cs *CustomerService) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return cs.customerRepo.GetByID(ctx, id)
}

func (cs *CustomerService) List(ctx context.Context, query models.ListQuery) ([]models.Customer, int64, error) {
	return cs.customerRepo.List(ctx, query)
}

func (cs *CustomerService) Update(ctx context.Context, id string, req models.UpdateCustomerRequest) (*models.Customer, error) {
	if validationErrors := cs.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	set := bson.M{}
	if req.FirstName != nil {
		set["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		set["lastName"] = *req.LastName
	}
	if req.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = req.Address
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}

	if err := cs.customerRepo.Update(ctx, id, set); err != nil {
		return nil, err
	}
	return cs.customerRepo.GetByID(ctx, id)
}

func (cs *CustomerService) Delete(ctx context.Context, id string) error {
	return cs.customerRepo.Delete(ctx, id)
}
