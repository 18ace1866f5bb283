package controllers

import (
	"backoffice/middleware"
	"backoffice/models"
	"backoffice/services"
	"backoffice/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register creates a new back-office account.
// @Summary Register a new user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.APIResponse{data=models.AuthResponse}
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	response, err := ac.authService.Register(c.Request.Context(), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Account created successfully", response)
}

// Login authenticates a user and returns a token pair.
// @Summary Login
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.APIResponse{data=models.AuthResponse}
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	response, err := ac.authService.Login(c.Request.Context(), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Login successful", response)
}

// RefreshToken exchanges a refresh token for a new token pair.
// @Summary Refresh tokens
// @Tags Authentication
// @Router /auth/refresh [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	pair, err := ac.authService.RefreshToken(c.Request.Context(), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Tokens refreshed", pair)
}

// GetProfile returns the authenticated user's account.
// @Summary Get own profile
// @Tags Authentication
// @Security BearerAuth
// @Router /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	user, err := ac.authService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", user)
}

// UpdateDeviceToken registers the caller's push device token.
// @Summary Register device token
// @Tags Authentication
// @Security BearerAuth
// @Router /auth/device-token [put]
func (ac *AuthController) UpdateDeviceToken(c *gin.Context) {
	var req struct {
		DeviceToken string `json:"deviceToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := ac.authService.UpdateDeviceToken(c.Request.Context(), middleware.UserID(c), req.DeviceToken); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Device token updated", nil)
}
