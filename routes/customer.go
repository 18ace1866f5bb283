package routes

import (
	"backoffice/controllers"
	"backoffice/middleware"
	"backoffice/models"

	"github.com/gin-gonic/gin"
)

func SetupCustomerRoutes(router *gin.RouterGroup, customerController *controllers.CustomerController, auth *middleware.AuthMiddleware) {
	customers := router.Group("/customers")

	customers.GET("", customerController.List)
	customers.GET("/:id", customerController.GetByID)
	customers.POST("", customerController.Create)
	customers.PUT("/:id", customerController.Update)

	admin := customers.Group("")
	admin.Use(auth.RequireRole(models.RoleAdmin))
	{
		admin.DELETE("/:id", customerController.Delete)
	}
}
