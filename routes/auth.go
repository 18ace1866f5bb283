package routes

import (
	"backoffice/controllers"
	"backoffice/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.RouterGroup, authController *controllers.AuthController, auth *middleware.AuthMiddleware) {
	authGroup := router.Group("/auth")

	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/refresh", authController.RefreshToken)

	protected := authGroup.Group("")
	protected.Use(auth.RequireAuth())
	{
		protected.GET("/me", authController.GetProfile)
		protected.PUT("/device-token", authController.UpdateDeviceToken)
	}
}
