package services

import (
	"context"
	"time"

	"backoffice/models"
	"backoffice/repositories"
	"backoffice/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type dispatcher interface {
	Dispatch(ctx context.Context, id string) (*models.Notification, error)
}

// NotificationService owns the notification lifecycle outside of the
// sending phase, which it delegates to the dispatcher.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	dispatcher       dispatcher
	validator        *utils.ValidationService
}

func NewNotificationService(notificationRepo *repositories.NotificationRepository, dispatcher dispatcher, validator *utils.ValidationService) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		dispatcher:       dispatcher,
		validator:        validator,
	}
}

// Create persists a new notification as draft, or scheduled when a
// future scheduledTime is supplied.
func (ns *NotificationService) Create(ctx context.Context, creatorID string, req models.CreateNotificationRequest) (*models.Notification, error) {
	if validationErrors := ns.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	creator, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, utils.NewValidationError("Invalid creator id")
	}

	notification, err := buildNotification(creator, req, time.Now())
	if err != nil {
		return nil, err
	}

	if err := ns.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// buildNotification validates targeting and timing and assembles the
// initial record.
func buildNotification(creator primitive.ObjectID, req models.CreateNotificationRequest, now time.Time) (*models.Notification, error) {
	targetUsers, err := parseTargetUsers(req.SendToAllUsers, req.TargetUsers)
	if err != nil {
		return nil, err
	}

	if req.ScheduledTime != nil && !req.ScheduledTime.After(now) {
		return nil, utils.NewValidationError("Scheduled time must be in the future")
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
		return nil, utils.NewValidationError("Expiry time must be in the future")
	}

	status := models.NotificationStatusDraft
	if req.ScheduledTime != nil {
		status = models.NotificationStatusScheduled
	}

	return &models.Notification{
		ID:             primitive.NewObjectID(),
		Title:          req.Title,
		Message:        req.Message,
		Type:           req.Type,
		Priority:       req.Priority,
		Category:       req.Category,
		Icon:           req.Icon,
		ActionButton:   req.ActionButton,
		SendToAllUsers: req.SendToAllUsers,
		TargetUsers:    targetUsers,
		ScheduledTime:  req.ScheduledTime,
		ExpiresAt:      req.ExpiresAt,
		Status:         status,
		DeliveryStatus: models.DeliveryStatus{},
		ReadBy:         []models.ReadReceipt{},
		CreatedBy:      creator,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// parseTargetUsers enforces that explicit targeting carries at least one
// recipient, and deduplicates the list.
func parseTargetUsers(sendToAll bool, raw []string) ([]primitive.ObjectID, error) {
	if sendToAll {
		return nil, nil
	}
	if len(raw) == 0 {
		return nil, utils.NewValidationError("Target users are required when not sending to all users")
	}

	seen := make(map[primitive.ObjectID]struct{}, len(raw))
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, hex := range raw {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, utils.NewValidationError("Invalid target user id: " + hex)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (ns *NotificationService) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	return ns.notificationRepo.GetByID(ctx, id)
}

func (ns *NotificationService) List(ctx context.Context, req models.ListNotificationsRequest) ([]models.Notification, int64, error) {
	return ns.notificationRepo.List(ctx, req)
}

func (ns *NotificationService) GetScheduled(ctx context.Context, page, limit int) ([]models.Notification, int64, error) {
	return ns.notificationRepo.GetScheduled(ctx, page, limit)
}

// Update modifies a draft or scheduled notification. Supplying a new
// scheduledTime moves a draft to scheduled; clearSchedule reverts a
// scheduled notification to draft.
func (ns *NotificationService) Update(ctx context.Context, id string, req models.UpdateNotificationRequest) (*models.Notification, error) {
	if validationErrors := ns.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError(validationErrors[0].Message)
	}

	existing, err := ns.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsMutable() {
		return nil, utils.NewInvalidStateError("Only draft or scheduled notifications can be updated")
	}

	update, err := buildNotificationUpdate(existing, req, time.Now())
	if err != nil {
		return nil, err
	}

	matched, err := ns.notificationRepo.UpdateIfMutable(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, utils.NewInvalidStateError("Notification is no longer editable")
	}

	return ns.notificationRepo.GetByID(ctx, id)
}

// buildNotificationUpdate assembles the field map for the repository,
// which applies it as a single $set.
func buildNotificationUpdate(existing *models.Notification, req models.UpdateNotificationRequest, now time.Time) (bson.M, error) {
	set := bson.M{}

	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Message != nil {
		set["message"] = *req.Message
	}
	if req.Type != nil {
		set["type"] = *req.Type
	}
	if req.Priority != nil {
		set["priority"] = *req.Priority
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Icon != nil {
		set["icon"] = *req.Icon
	}
	if req.ActionButton != nil {
		set["actionButton"] = req.ActionButton
	}
	if req.ExpiresAt != nil {
		if !req.ExpiresAt.After(now) {
			return nil, utils.NewValidationError("Expiry time must be in the future")
		}
		set["expiresAt"] = req.ExpiresAt
	}

	if req.SendToAllUsers != nil || req.TargetUsers != nil {
		sendToAll := existing.SendToAllUsers
		if req.SendToAllUsers != nil {
			sendToAll = *req.SendToAllUsers
		}
		raw := req.TargetUsers
		if raw == nil && !sendToAll {
			raw = make([]string, 0, len(existing.TargetUsers))
			for _, id := range existing.TargetUsers {
				raw = append(raw, id.Hex())
			}
		}
		targets, err := parseTargetUsers(sendToAll, raw)
		if err != nil {
			return nil, err
		}
		set["sendToAllUsers"] = sendToAll
		set["targetUsers"] = targets
	}

	if req.ClearSchedule && req.ScheduledTime != nil {
		return nil, utils.NewValidationError("Cannot both set and clear the scheduled time")
	}
	if req.ScheduledTime != nil {
		if !req.ScheduledTime.After(now) {
			return nil, utils.NewValidationError("Scheduled time must be in the future")
		}
		set["scheduledTime"] = req.ScheduledTime
		set["status"] = models.NotificationStatusScheduled
	}
	if req.ClearSchedule {
		set["scheduledTime"] = nil
		set["status"] = models.NotificationStatusDraft
	}

	return set, nil
}

// Delete removes a draft or scheduled notification. Terminal and sending
// notifications are kept for the audit trail.
func (ns *NotificationService) Delete(ctx context.Context, id string) error {
	existing, err := ns.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.IsMutable() {
		return utils.NewInvalidStateError("Only draft or scheduled notifications can be deleted")
	}

	deleted, err := ns.notificationRepo.DeleteIfMutable(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return utils.NewInvalidStateError("Notification is no longer deletable")
	}
	return nil
}

// SendNow dispatches a draft or scheduled notification immediately.
func (ns *NotificationService) SendNow(ctx context.Context, id string) (*models.Notification, error) {
	return ns.dispatcher.Dispatch(ctx, id)
}

// Cancel aborts a scheduled notification before dispatch claims it.
func (ns *NotificationService) Cancel(ctx context.Context, id string) (*models.Notification, error) {
	cancelled, err := ns.notificationRepo.CancelIfScheduled(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		existing, err := ns.notificationRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, utils.NewInvalidStateError("Only scheduled notifications can be cancelled, current status is '" + existing.Status + "'")
	}
	return ns.notificationRepo.GetByID(ctx, id)
}

// GetUserNotifications returns the caller's visible notifications with
// the unread counter.
func (ns *NotificationService) GetUserNotifications(ctx context.Context, userID string, req models.UserNotificationsRequest) (*models.UserNotificationList, int64, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, 0, utils.NewValidationError("Invalid user id")
	}

	page, limit := utils.NormalizePagination(req.Page, req.Limit)
	notifications, total, err := ns.notificationRepo.GetUserNotifications(ctx, uid, page, limit, req.UnreadOnly)
	if err != nil {
		return nil, 0, err
	}

	unread, err := ns.notificationRepo.UnreadCount(ctx, uid)
	if err != nil {
		return nil, 0, err
	}

	return &models.UserNotificationList{
		Notifications: notifications,
		UnreadCount:   unread,
	}, total, nil
}

// MarkRead records a read receipt for the user. Repeated calls are
// idempotent and still succeed.
func (ns *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return utils.NewValidationError("Invalid user id")
	}

	marked, err := ns.notificationRepo.MarkRead(ctx, id, uid)
	if err != nil {
		return err
	}
	if !marked {
		// Distinguish an already-read notification from a missing one.
		if _, err := ns.notificationRepo.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// MarkAllRead records read receipts for every unread notification
// visible to the user and returns how many were newly marked.
func (ns *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, utils.NewValidationError("Invalid user id")
	}
	return ns.notificationRepo.MarkAllRead(ctx, uid)
}

var statsPeriods = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// GetStats aggregates notification statistics over the requested window.
func (ns *NotificationService) GetStats(ctx context.Context, req models.NotificationStatsRequest) (*models.NotificationStats, error) {
	period := req.Period
	if period == "" {
		period = "30d"
	}
	days, ok := statsPeriods[period]
	if !ok {
		return nil, utils.NewValidationError("Period must be one of 7d, 30d, 90d")
	}
	since := time.Now().AddDate(0, 0, -days)

	if req.CreatedBy != "" {
		if _, err := primitive.ObjectIDFromHex(req.CreatedBy); err != nil {
			return nil, utils.NewValidationError("Invalid createdBy filter")
		}
	}

	overview, err := ns.notificationRepo.GetOverview(ctx, since, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	byType, err := ns.notificationRepo.GroupByField(ctx, since, req.CreatedBy, "type")
	if err != nil {
		return nil, err
	}
	byPriority, err := ns.notificationRepo.GroupByField(ctx, since, req.CreatedBy, "priority")
	if err != nil {
		return nil, err
	}
	byCategory, err := ns.notificationRepo.GroupByField(ctx, since, req.CreatedBy, "category")
	if err != nil {
		return nil, err
	}

	return &models.NotificationStats{
		Period:     period,
		Overview:   *overview,
		ByType:     byType,
		ByPriority: byPriority,
		ByCategory: byCategory,
	}, nil
}
