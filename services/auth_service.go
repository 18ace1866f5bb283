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
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo   *repositories.UserRepository
	jwtService *utils.JWTService
	validator  *utils.ValidationService
}

func NewAuthService(userRepo *repositories.UserRepository, jwtService *utils.JWTService, validator *utils.ValidationService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		validator:  validator,
	}
}

func (as *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInternalError("Failed to hash password")
	}

	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}

	now := time.Now()
	user := &models.User{
		ID:          primitive.NewObjectID(),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    string(hashed),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        role,
		DeviceToken: req.DeviceToken,
		IsActive:    true,
		LastSeen:    now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := as.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return as.buildAuthResponse(user)
}

func (as *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	user, err := as.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, utils.NewInvalidCredentialsError()
	}
	if !user.IsActive {
		return nil, utils.NewForbiddenError("Account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, utils.NewInvalidCredentialsError()
	}

	update := bson.M{"lastSeen": time.Now()}
	if req.DeviceToken != "" {
		update["deviceToken"] = req.DeviceToken
		user.DeviceToken = req.DeviceToken
	}
	if err := as.userRepo.Update(ctx, user.ID.Hex(), update); err != nil {
		return nil, err
	}

	return as.buildAuthResponse(user)
}

func (as *AuthService) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*utils.TokenPair, error) {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	pair, err := as.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		return nil, utils.NewUnauthorizedError("Invalid or expired refresh token")
	}
	return pair, nil
}

func (as *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return as.userRepo.GetByID(ctx, userID)
}

// UpdateDeviceToken registers the push delivery target for the user's
// current device.
func (as *AuthService) UpdateDeviceToken(ctx context.Context, userID, deviceToken string) error {
	if deviceToken == "" {
		return utils.NewValidationError("Device token is required")
	}
	return as.userRepo.Update(ctx, userID, bson.M{"deviceToken": deviceToken})
}

func (as *AuthService) buildAuthResponse(user *models.User) (*models.AuthResponse, error) {
	pair, err := as.jwtService.GenerateTokenPair(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, utils.NewInternalError("Failed to generate tokens")
	}

	return &models.AuthResponse{
		User:         *user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresAt:    pair.ExpiresAt,
	}, nil
}
