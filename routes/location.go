package routes

import (
	"backoffice/controllers"
	"backoffice/middleware"
	"backoffice/models"

	"github.com/gin-gonic/gin"
)

func SetupLocationRoutes(router *gin.RouterGroup, locationController *controllers.LocationController, auth *middleware.AuthMiddleware) {
	locations := router.Group("/locations")

	locations.GET("", locationController.List)
	locations.GET("/:id", locationController.GetByID)

	admin := locations.Group("")
	admin.Use(auth.RequireRole(models.RoleAdmin))
	{
		admin.POST("", locationController.Create)
		admin.PUT("/:id", locationController.Update)
		admin.DELETE("/:id", locationController.Delete)
	}
}
