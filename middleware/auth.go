package middleware

import (
	"strings"

	"backoffice/repositories"
	"backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthMiddleware struct {
	jwtService *utils.JWTService
	userRepo   *repositories.UserRepository
}

func NewAuthMiddleware(jwtService *utils.JWTService, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// RequireAuth validates the bearer token and sets the user context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := am.extractToken(c)
		if token == "" {
			utils.UnauthorizedResponse(c, "Authentication token required")
			c.Abort()
			return
		}

		claims, err := am.jwtService.ValidateToken(token)
		if err != nil {
			logrus.Warnf("Invalid token: %v", err)
			utils.UnauthorizedResponse(c, "Invalid authentication token")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			utils.UnauthorizedResponse(c, "Invalid token type")
			c.Abort()
			return
		}

		user, err := am.userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			utils.UnauthorizedResponse(c, "User no longer exists")
			c.Abort()
			return
		}
		if !user.IsActive {
			utils.ForbiddenResponse(c, "Account is deactivated")
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

// RequireRole allows only users holding one of the given roles. Must run
// after RequireAuth.
func (am *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.ForbiddenResponse(c, "Insufficient permissions")
		c.Abort()
	}
}

func (am *AuthMiddleware) extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// UserID returns the authenticated user's id from the request context.
func UserID(c *gin.Context) string {
	return c.GetString("userId")
}
