package routes

import (
	"backoffice/controllers"
	"backoffice/middleware"
	"backoffice/models"

	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(router *gin.RouterGroup, notificationController *controllers.NotificationController, auth *middleware.AuthMiddleware) {
	notifications := router.Group("/notifications")

	// Recipient-facing operations, available to every authenticated user.
	notifications.GET("/user", notificationController.GetUserNotifications)
	notifications.PATCH("/read-all", notificationController.MarkAllRead)
	notifications.PATCH("/:id/read", notificationController.MarkRead)

	// Management operations.
	admin := notifications.Group("")
	admin.Use(auth.RequireRole(models.RoleAdmin))
	{
		admin.POST("", notificationController.Create)
		admin.GET("", notificationController.List)
		admin.GET("/stats", notificationController.GetStats)
		admin.GET("/scheduled", notificationController.GetScheduled)
		admin.GET("/:id", notificationController.GetByID)
		admin.PUT("/:id", notificationController.Update)
		admin.DELETE("/:id", notificationController.Delete)
		admin.POST("/:id/send", notificationController.SendNow)
		admin.PATCH("/:id/cancel", notificationController.Cancel)
	}
}
