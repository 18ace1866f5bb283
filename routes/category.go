package routes

import (
	"backoffice/controllers"
	"backoffice/middleware"
	"backoffice/models"

	"github.com/gin-gonic/gin"
)

func SetupCategoryRoutes(router *gin.RouterGroup, categoryController *controllers.CategoryController, auth *middleware.AuthMiddleware) {
	categories := router.Group("/categories")

	categories.GET("", categoryController.List)
	categories.GET("/:id", categoryController.GetByID)

	admin := categories.Group("")
	admin.Use(auth.RequireRole(models.RoleAdmin))
	{
		admin.POST("", categoryController.Create)
		admin.PUT("/:id", categoryController.Update)
		admin.DELETE("/:id", categoryController.Delete)
	}
}
