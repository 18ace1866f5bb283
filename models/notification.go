package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Content
	Title        string        `json:"title" bson:"title"`
	Message      string        `json:"message" bson:"message"`
	Type         string        `json:"type" bson:"type"`         // warning, info, success, error
	Priority     string        `json:"priority" bson:"priority"` // high, medium, low
	Category     string        `json:"category" bson:"category"` // system, marketing, security, updates, general
	Icon         string        `json:"icon,omitempty" bson:"icon,omitempty"`
	ActionButton *ActionButton `json:"actionButton,omitempty" bson:"actionButton,omitempty"`

	// Targeting
	SendToAllUsers bool                 `json:"sendToAllUsers" bson:"sendToAllUsers"`
	TargetUsers    []primitive.ObjectID `json:"targetUsers,omitempty" bson:"targetUsers,omitempty"`

	// Timing
	ScheduledTime *time.Time `json:"scheduledTime,omitempty" bson:"scheduledTime,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
	SentAt        *time.Time `json:"sentAt,omitempty" bson:"sentAt,omitempty"`

	// Lifecycle
	Status string `json:"status" bson:"status"` // draft, scheduled, sending, sent, failed, cancelled

	// Delivery accounting. Invariant: Total == Delivered + Failed + Pending
	// after every persisted write.
	DeliveryStatus DeliveryStatus `json:"deliveryStatus" bson:"deliveryStatus"`

	// Read accounting, one entry per user, ordered by read time.
	ReadBy []ReadReceipt `json:"readBy" bson:"readBy"`

	// Provenance
	CreatedBy primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ActionButton struct {
	Text string `json:"text" bson:"text" validate:"required,min=1,max=50"`
	URL  string `json:"url" bson:"url" validate:"required,url"`
}

type DeliveryStatus struct {
	Total     int `json:"total" bson:"total"`
	Delivered int `json:"delivered" bson:"delivered"`
	Failed    int `json:"failed" bson:"failed"`
	Pending   int `json:"pending" bson:"pending"`
}

type ReadReceipt struct {
	UserID primitive.ObjectID `json:"userId" bson:"userId"`
	ReadAt time.Time          `json:"readAt" bson:"readAt"`
}

// Notification statuses
const (
	NotificationStatusDraft     = "draft"
	NotificationStatusScheduled = "scheduled"
	NotificationStatusSending   = "sending"
	NotificationStatusSent      = "sent"
	NotificationStatusFailed    = "failed"
	NotificationStatusCancelled = "cancelled"
)

// Notification types
const (
	NotificationTypeWarning = "warning"
	NotificationTypeInfo    = "info"
	NotificationTypeSuccess = "success"
	NotificationTypeError   = "error"
)

// Notification priorities
const (
	NotificationPriorityHigh   = "high"
	NotificationPriorityMedium = "medium"
	NotificationPriorityLow    = "low"
)

// Notification categories
const (
	NotificationCategorySystem    = "system"
	NotificationCategoryMarketing = "marketing"
	NotificationCategorySecurity  = "security"
	NotificationCategoryUpdates   = "updates"
	NotificationCategoryGeneral   = "general"
)

// IsTerminal reports whether no further status transitions are permitted.
func (n *Notification) IsTerminal() bool {
	switch n.Status {
	case NotificationStatusSent, NotificationStatusFailed, NotificationStatusCancelled:
		return true
	}
	return false
}

// IsMutable reports whether the notification may still be updated or deleted.
func (n *Notification) IsMutable() bool {
	return n.Status == NotificationStatusDraft || n.Status == NotificationStatusScheduled
}

// IsExpired reports whether the notification is past its expiry instant.
func (n *Notification) IsExpired(now time.Time) bool {
	return n.ExpiresAt != nil && n.ExpiresAt.Before(now)
}

// HasRead reports whether the given user already has a read receipt.
func (n *Notification) HasRead(userID primitive.ObjectID) bool {
	for _, r := range n.ReadBy {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// Request DTOs

type CreateNotificationRequest struct {
	Title          string        `json:"title" validate:"required,min=3,max=200"`
	Message        string        `json:"message" validate:"required,min=5,max=1000"`
	Type           string        `json:"type" validate:"required,notification_type"`
	Priority       string        `json:"priority" validate:"required,notification_priority"`
	Category       string        `json:"category" validate:"required,notification_category"`
	Icon           string        `json:"icon,omitempty" validate:"omitempty,max=100"`
	ActionButton   *ActionButton `json:"actionButton,omitempty"`
	SendToAllUsers bool          `json:"sendToAllUsers"`
	TargetUsers    []string      `json:"targetUsers,omitempty"`
	ScheduledTime  *time.Time    `json:"scheduledTime,omitempty"`
	ExpiresAt      *time.Time    `json:"expiresAt,omitempty"`
}

type UpdateNotificationRequest struct {
	Title          *string       `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Message        *string       `json:"message,omitempty" validate:"omitempty,min=5,max=1000"`
	Type           *string       `json:"type,omitempty" validate:"omitempty,notification_type"`
	Priority       *string       `json:"priority,omitempty" validate:"omitempty,notification_priority"`
	Category       *string       `json:"category,omitempty" validate:"omitempty,notification_category"`
	Icon           *string       `json:"icon,omitempty" validate:"omitempty,max=100"`
	ActionButton   *ActionButton `json:"actionButton,omitempty"`
	SendToAllUsers *bool         `json:"sendToAllUsers,omitempty"`
	TargetUsers    []string      `json:"targetUsers,omitempty"`
	ScheduledTime  *time.Time    `json:"scheduledTime,omitempty"`
	ClearSchedule  bool          `json:"clearSchedule,omitempty"`
	ExpiresAt      *time.Time    `json:"expiresAt,omitempty"`
}

type ListNotificationsRequest struct {
	Page           int    `form:"page"`
	Limit          int    `form:"limit"`
	Type           string `form:"type"`
	Priority       string `form:"priority"`
	Status         string `form:"status"`
	Category       string `form:"category"`
	SendToAllUsers string `form:"sendToAllUsers"`
	CreatedBy      string `form:"createdBy"`
	Search         string `form:"search"`
	SortBy         string `form:"sortBy"`
	SortOrder      string `form:"sortOrder"`
}

type UserNotificationsRequest struct {
	Page       int  `form:"page"`
	Limit      int  `form:"limit"`
	UnreadOnly bool `form:"unreadOnly"`
}

// UserNotificationList is the payload of GET /notifications/user.
type UserNotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}

// Stats DTOs

type NotificationStatsRequest struct {
	Period    string `form:"period"`
	CreatedBy string `form:"createdBy"`
}

type NotificationOverview struct {
	Total          int64 `json:"total"`
	Sent           int64 `json:"sent"`
	Scheduled      int64 `json:"scheduled"`
	Draft          int64 `json:"draft"`
	Failed         int64 `json:"failed"`
	HighPriority   int64 `json:"highPriority"`
	TotalDelivered int64 `json:"totalDelivered"`
	TotalFailed    int64 `json:"totalFailed"`
	TotalReads     int64 `json:"totalReads"`
}

type StatsBucket struct {
	Key   string `json:"key" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

type NotificationStats struct {
	Period     string               `json:"period"`
	Overview   NotificationOverview `json:"overview"`
	ByType     []StatsBucket        `json:"byType"`
	ByPriority []StatsBucket        `json:"byPriority"`
	ByCategory []StatsBucket        `json:"byCategory"`
}
