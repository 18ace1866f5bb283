package routes

import (
	"backoffice/controllers"
	"backoffice/middleware"
	"backoffice/models"

	"github.com/gin-gonic/gin"
)

func SetupSupplierRoutes(router *gin.RouterGroup, supplierController *controllers.SupplierController, auth *middleware.AuthMiddleware) {
	suppliers := router.Group("/suppliers")

	suppliers.GET("", supplierController.List)
	suppliers.GET("/:id", supplierController.GetByID)
	suppliers.POST("", supplierController.Create)
	suppliers.PUT("/:id", supplierController.Update)

	admin := suppliers.Group("")
	admin.Use(auth.RequireRole(models.RoleAdmin))
	{
		admin.DELETE("/:id", supplierController.Delete)
	}
}
