package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"backoffice/models"
	"backoffice/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	mu           sync.Mutex
	notification *models.Notification
}

func newFakeStore(n *models.Notification) *fakeStore {
	return &fakeStore{notification: n}
}

func (fs *fakeStore) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.notification == nil || fs.notification.ID.Hex() != id {
		return nil, utils.NewNotificationNotFoundError()
	}
	copied := *fs.notification
	return &copied, nil
}

func (fs *fakeStore) ClaimForDispatch(ctx context.Context, id string) (*models.Notification, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.notification == nil || fs.notification.ID.Hex() != id {
		return nil, utils.NewNotificationNotFoundError()
	}
	if fs.notification.Status != models.NotificationStatusDraft &&
		fs.notification.Status != models.NotificationStatusScheduled {
		return nil, nil
	}
	fs.notification.Status = models.NotificationStatusSending
	copied := *fs.notification
	return &copied, nil
}

func (fs *fakeStore) SetDeliveryTotals(ctx context.Context, id primitive.ObjectID, total int) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.notification.DeliveryStatus = models.DeliveryStatus{Total: total, Pending: total}
	return nil
}

func (fs *fakeStore) RecordDeliveryResult(ctx context.Context, id primitive.ObjectID, delivered bool) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if delivered {
		fs.notification.DeliveryStatus.Delivered++
	} else {
		fs.notification.DeliveryStatus.Failed++
	}
	fs.notification.DeliveryStatus.Pending--
	return nil
}

func (fs *fakeStore) FinalizeDispatch(ctx context.Context, id primitive.ObjectID, status string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.notification.Status = status
	return nil
}

func (fs *fakeStore) MarkDispatchFailed(ctx context.Context, id primitive.ObjectID) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.notification.Status = models.NotificationStatusFailed
	fs.notification.DeliveryStatus = models.DeliveryStatus{}
	return nil
}

type fakeDirectory struct {
	users []models.User
}

func (fd *fakeDirectory) GetActiveUserIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(fd.users))
	for _, u := range fd.users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (fd *fakeDirectory) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	byID := make(map[primitive.ObjectID]models.User, len(fd.users))
	for _, u := range fd.users {
		byID[u.ID] = u
	}
	result := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

type fakePusher struct {
	mu       sync.Mutex
	failFor  map[primitive.ObjectID]bool
	attempts int
}

func (fp *fakePusher) SendToUser(ctx context.Context, user models.User, msg utils.PushMessage) error {
	fp.mu.Lock()
	defer fp.mu.Unlock()
	fp.attempts++
	if fp.failFor[user.ID] {
		return errors.New("device unreachable")
	}
	return nil
}

func makeUsers(n int) []models.User {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, models.User{
			ID:          primitive.NewObjectID(),
			IsActive:    true,
			DeviceToken: "token",
		})
	}
	return users
}

func draftNotification(targets []primitive.ObjectID, sendToAll bool) *models.Notification {
	return &models.Notification{
		ID:             primitive.NewObjectID(),
		Title:          "Scheduled maintenance",
		Message:        "The system will be down tonight",
		Type:           models.NotificationTypeWarning,
		Priority:       models.NotificationPriorityHigh,
		Category:       models.NotificationCategorySystem,
		SendToAllUsers: sendToAll,
		TargetUsers:    targets,
		Status:         models.NotificationStatusDraft,
		IsActive:       true,
	}
}

func TestDispatchDeliversToExplicitTargets(t *testing.T) {
	users := makeUsers(3)
	targets := []primitive.ObjectID{users[0].ID, users[1].ID, users[2].ID}
	store := newFakeStore(draftNotification(targets, false))
	pusher := &fakePusher{}

	ds := NewDispatchService(store, &fakeDirectory{users: users}, pusher, 2)

	result, err := ds.Dispatch(context.Background(), store.notification.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, models.NotificationStatusSent, result.Status)
	assert.Equal(t, 3, result.DeliveryStatus.Total)
	assert.Equal(t, 3, result.DeliveryStatus.Delivered)
	assert.Equal(t, 0, result.DeliveryStatus.Failed)
	assert.Equal(t, 0, result.DeliveryStatus.Pending)
	assert.Equal(t, 3, pusher.attempts)
}

func TestDispatchAccountsPartialFailures(t *testing.T) {
	users := makeUsers(4)
	targets := make([]primitive.ObjectID, 0, len(users))
	for _, u := range users {
		targets = append(targets, u.ID)
	}
	store := newFakeStore(draftNotification(targets, false))
	pusher := &fakePusher{failFor: map[primitive.ObjectID]bool{
		users[1].ID: true,
		users[3].ID: true,
	}}

	ds := NewDispatchService(store, &fakeDirectory{users: users}, pusher, 4)

	result, err := ds.Dispatch(context.Background(), store.notification.ID.Hex())
	require.NoError(t, err)

	// At least one delivery succeeded, so the run counts as sent.
	assert.Equal(t, models.NotificationStatusSent, result.Status)
	assert.Equal(t, 4, result.DeliveryStatus.Total)
	assert.Equal(t, 2, result.DeliveryStatus.Delivered)
	assert.Equal(t, 2, result.DeliveryStatus.Failed)
	assert.Equal(t, 0, result.DeliveryStatus.Pending)
}

func TestDispatchFailsWhenNoDeliverySucceeds(t *testing.T) {
	users := makeUsers(2)
	targets := []primitive.ObjectID{users[0].ID, users[1].ID}
	store := newFakeStore(draftNotification(targets, false))
	pusher := &fakePusher{failFor: map[primitive.ObjectID]bool{
		users[0].ID: true,
		users[1].ID: true,
	}}

	ds := NewDispatchService(store, &fakeDirectory{users: users}, pusher, 2)

	result, err := ds.Dispatch(context.Background(), store.notification.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, models.NotificationStatusFailed, result.Status)
	assert.Equal(t, 2, result.DeliveryStatus.Failed)
	assert.Equal(t, 0, result.DeliveryStatus.Delivered)
}

func TestDispatchSendToAllResolvesDirectory(t *testing.T) {
	users := makeUsers(5)
	store := newFakeStore(draftNotification(nil, true))
	pusher := &fakePusher{}

	ds := NewDispatchService(store, &fakeDirectory{users: users}, pusher, 3)

	result, err := ds.Dispatch(context.Background(), store.notification.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, models.NotificationStatusSent, result.Status)
	assert.Equal(t, 5, result.DeliveryStatus.Total)
	assert.Equal(t, 5, pusher.attempts)
}

func TestDispatchEmptyAudienceMarksFailed(t *testing.T) {
	store := newFakeStore(draftNotification(nil, true))
	pusher := &fakePusher{}

	ds := NewDispatchService(store, &fakeDirectory{}, pusher, 2)

	result, err := ds.Dispatch(context.Background(), store.notification.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, models.NotificationStatusFailed, result.Status)
	assert.Equal(t, 0, result.DeliveryStatus.Total)
	assert.Equal(t, 0, pusher.attempts)
}

func TestDispatchRejectsTerminalNotification(t *testing.T) {
	users := makeUsers(1)
	n := draftNotification([]primitive.ObjectID{users[0].ID}, false)
	n.Status = models.NotificationStatusCancelled
	store := newFakeStore(n)

	ds := NewDispatchService(store, &fakeDirectory{users: users}, &fakePusher{}, 2)

	_, err := ds.Dispatch(context.Background(), n.ID.Hex())
	require.Error(t, err)

	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_STATE", serviceErr.Code)
}

func TestDispatchRejectsConcurrentSend(t *testing.T) {
	users := makeUsers(1)
	n := draftNotification([]primitive.ObjectID{users[0].ID}, false)
	n.Status = models.NotificationStatusSending
	store := newFakeStore(n)

	ds := NewDispatchService(store, &fakeDirectory{users: users}, &fakePusher{}, 2)

	_, err := ds.Dispatch(context.Background(), n.ID.Hex())
	require.Error(t, err)

	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", serviceErr.Code)
}

func TestDispatchMissingRecipientCountsAsFailed(t *testing.T) {
	users := makeUsers(1)
	ghost := primitive.NewObjectID()
	targets := []primitive.ObjectID{users[0].ID, ghost}
	store := newFakeStore(draftNotification(targets, false))
	pusher := &fakePusher{}

	ds := NewDispatchService(store, &fakeDirectory{users: users}, pusher, 2)

	result, err := ds.Dispatch(context.Background(), store.notification.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, models.NotificationStatusSent, result.Status)
	assert.Equal(t, 2, result.DeliveryStatus.Total)
	assert.Equal(t, 1, result.DeliveryStatus.Delivered)
	assert.Equal(t, 1, result.DeliveryStatus.Failed)
	assert.Equal(t, 1, pusher.attempts)
}
