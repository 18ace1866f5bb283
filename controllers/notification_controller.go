package controllers

import (
	"strconv"

	"backoffice/middleware"
	"backoffice/models"
	"backoffice/services"
	"backoffice/utils"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notificationService *services.NotificationService
}

func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// Create creates a notification as draft, or scheduled when a future
// scheduledTime is supplied.
// @Summary Create notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body models.CreateNotificationRequest true "Notification data"
// @Success 201 {object} models.APIResponse{data=models.Notification}
// @Router /notifications [post]
func (nc *NotificationController) Create(c *gin.Context) {
	var req models.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	notification, err := nc.notificationService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Notification created successfully", notification)
}

// List returns notifications filtered and paginated for the admin view.
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Notification}
// @Router /notifications [get]
func (nc *NotificationController) List(c *gin.Context) {
	var req models.ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return
	}

	page, limit := utils.NormalizePagination(req.Page, req.Limit)
	req.Page, req.Limit = page, limit

	notifications, total, err := nc.notificationService.List(c.Request.Context(), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithPagination(c, "Notifications retrieved", notifications,
		utils.CreatePagination(page, limit, total))
}

// GetUserNotifications returns the caller's visible notifications with
// the unread counter.
// @Summary Get own notifications
// @Tags Notifications
// @Produce json
// @Router /notifications/user [get]
func (nc *NotificationController) GetUserNotifications(c *gin.Context) {
	var req models.UserNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return
	}

	list, total, err := nc.notificationService.GetUserNotifications(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	page, limit := utils.NormalizePagination(req.Page, req.Limit)
	utils.SuccessResponseWithPagination(c, "Notifications retrieved", list,
		utils.CreatePagination(page, limit, total))
}

// GetStats returns windowed notification statistics.
// @Summary Notification statistics
// @Tags Notifications
// @Produce json
// @Param period query string false "7d, 30d or 90d"
// @Router /notifications/stats [get]
func (nc *NotificationController) GetStats(c *gin.Context) {
	var req models.NotificationStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return
	}

	stats, err := nc.notificationService.GetStats(c.Request.Context(), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Statistics retrieved", stats)
}

// GetScheduled lists pending scheduled notifications ordered by due time.
// @Summary List scheduled notifications
// @Tags Notifications
// @Produce json
// @Router /notifications/scheduled [get]
func (nc *NotificationController) GetScheduled(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, limit = utils.NormalizePagination(page, limit)

	notifications, total, err := nc.notificationService.GetScheduled(c.Request.Context(), page, limit)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithPagination(c, "Scheduled notifications retrieved", notifications,
		utils.CreatePagination(page, limit, total))
}

// GetByID returns a single notification.
// @Summary Get notification
// @Tags Notifications
// @Produce json
// @Router /notifications/{id} [get]
func (nc *NotificationController) GetByID(c *gin.Context) {
	notification, err := nc.notificationService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notification retrieved", notification)
}

// Update modifies a draft or scheduled notification.
// @Summary Update notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Router /notifications/{id} [put]
func (nc *NotificationController) Update(c *gin.Context) {
	var req models.UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	notification, err := nc.notificationService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notification updated successfully", notification)
}

// Delete removes a draft or scheduled notification.
// @Summary Delete notification
// @Tags Notifications
// @Router /notifications/{id} [delete]
func (nc *NotificationController) Delete(c *gin.Context) {
	if err := nc.notificationService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notification deleted successfully", nil)
}

// SendNow dispatches a draft or scheduled notification immediately.
// @Summary Send notification now
// @Tags Notifications
// @Produce json
// @Router /notifications/{id}/send [post]
func (nc *NotificationController) SendNow(c *gin.Context) {
	notification, err := nc.notificationService.SendNow(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notification dispatched", notification)
}

// Cancel aborts a scheduled notification before it is sent.
// @Summary Cancel scheduled notification
// @Tags Notifications
// @Produce json
// @Router /notifications/{id}/cancel [patch]
func (nc *NotificationController) Cancel(c *gin.Context) {
	notification, err := nc.notificationService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notification cancelled", notification)
}

// MarkRead records the caller's read receipt. Repeated calls succeed.
// @Summary Mark notification read
// @Tags Notifications
// @Router /notifications/{id}/read [patch]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	if err := nc.notificationService.MarkRead(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notification marked as read", nil)
}

// MarkAllRead records read receipts for every unread notification
// visible to the caller.
// @Summary Mark all notifications read
// @Tags Notifications
// @Router /notifications/read-all [patch]
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	count, err := nc.notificationService.MarkAllRead(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "All notifications marked as read", gin.H{"markedCount": count})
}
