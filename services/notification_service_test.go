package services

import (
	"testing"
	"time"

	"backoffice/models"
	"backoffice/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func createRequest() models.CreateNotificationRequest {
	return models.CreateNotificationRequest{
		Title:          "Inventory count",
		Message:        "Quarterly inventory count starts Monday",
		Type:           models.NotificationTypeInfo,
		Priority:       models.NotificationPriorityMedium,
		Category:       models.NotificationCategoryGeneral,
		SendToAllUsers: true,
	}
}

func TestBuildNotificationDefaultsToDraft(t *testing.T) {
	now := time.Now()
	creator := primitive.NewObjectID()

	n, err := buildNotification(creator, createRequest(), now)
	require.NoError(t, err)

	assert.Equal(t, models.NotificationStatusDraft, n.Status)
	assert.Equal(t, creator, n.CreatedBy)
	assert.True(t, n.IsActive)
	assert.Equal(t, models.DeliveryStatus{}, n.DeliveryStatus)
	assert.Empty(t, n.ReadBy)
	assert.NotNil(t, n.ReadBy)
}

func TestBuildNotificationFutureScheduleBecomesScheduled(t *testing.T) {
	now := time.Now()
	req := createRequest()
	scheduled := now.Add(2 * time.Hour)
	req.ScheduledTime = &scheduled

	n, err := buildNotification(primitive.NewObjectID(), req, now)
	require.NoError(t, err)

	assert.Equal(t, models.NotificationStatusScheduled, n.Status)
	assert.Equal(t, scheduled, *n.ScheduledTime)
}

func TestBuildNotificationRejectsPastSchedule(t *testing.T) {
	now := time.Now()
	req := createRequest()
	past := now.Add(-time.Minute)
	req.ScheduledTime = &past

	_, err := buildNotification(primitive.NewObjectID(), req, now)
	require.Error(t, err)

	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", serviceErr.Code)
}

func TestBuildNotificationRequiresTargetsWhenNotBroadcast(t *testing.T) {
	req := createRequest()
	req.SendToAllUsers = false
	req.TargetUsers = nil

	_, err := buildNotification(primitive.NewObjectID(), req, time.Now())
	require.Error(t, err)

	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", serviceErr.Code)
}

func TestParseTargetUsersDeduplicates(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	ids, err := parseTargetUsers(false, []string{a.Hex(), b.Hex(), a.Hex()})
	require.NoError(t, err)

	assert.Equal(t, []primitive.ObjectID{a, b}, ids)
}

func TestParseTargetUsersRejectsMalformedID(t *testing.T) {
	_, err := parseTargetUsers(false, []string{"not-an-object-id"})
	require.Error(t, err)
}

func TestBuildNotificationUpdateClearScheduleRevertsToDraft(t *testing.T) {
	existing := &models.Notification{
		Status:         models.NotificationStatusScheduled,
		SendToAllUsers: true,
	}
	req := models.UpdateNotificationRequest{ClearSchedule: true}

	update, err := buildNotificationUpdate(existing, req, time.Now())
	require.NoError(t, err)

	assert.Equal(t, models.NotificationStatusDraft, update["status"])
	assert.Nil(t, update["scheduledTime"])
}

func TestBuildNotificationUpdateRejectsSetAndClearSchedule(t *testing.T) {
	now := time.Now()
	scheduled := now.Add(time.Hour)
	existing := &models.Notification{
		Status:         models.NotificationStatusDraft,
		SendToAllUsers: true,
	}
	req := models.UpdateNotificationRequest{
		ScheduledTime: &scheduled,
		ClearSchedule: true,
	}

	_, err := buildNotificationUpdate(existing, req, now)
	require.Error(t, err)
}

func TestBuildNotificationUpdateSchedulingADraft(t *testing.T) {
	now := time.Now()
	scheduled := now.Add(time.Hour)
	existing := &models.Notification{
		Status:         models.NotificationStatusDraft,
		SendToAllUsers: true,
	}
	req := models.UpdateNotificationRequest{ScheduledTime: &scheduled}

	update, err := buildNotificationUpdate(existing, req, now)
	require.NoError(t, err)

	assert.Equal(t, models.NotificationStatusScheduled, update["status"])
}

func TestBuildNotificationUpdateRetargetingKeepsInvariant(t *testing.T) {
	existing := &models.Notification{
		Status:         models.NotificationStatusDraft,
		SendToAllUsers: true,
	}
	broadcast := false
	req := models.UpdateNotificationRequest{
		SendToAllUsers: &broadcast,
		TargetUsers:    nil,
	}

	// Turning off broadcast without providing targets must fail because
	// the existing record has none either.
	_, err := buildNotificationUpdate(existing, req, time.Now())
	require.Error(t, err)

	target := primitive.NewObjectID()
	req.TargetUsers = []string{target.Hex()}
	update, err := buildNotificationUpdate(existing, req, time.Now())
	require.NoError(t, err)

	assert.Equal(t, false, update["sendToAllUsers"])
	assert.Equal(t, []primitive.ObjectID{target}, update["targetUsers"])
}
