package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"backoffice/models"
	"backoffice/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeDueLister struct {
	mu  sync.Mutex
	due []models.Notification
}

func (fl *fakeDueLister) GetDueScheduled(ctx context.Context, now time.Time, limit int) ([]models.Notification, error) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	batch := fl.due
	fl.due = nil
	if len(batch) > limit {
		batch = batch[:limit]
	}
	return batch, nil
}

type fakeWorkerDispatcher struct {
	mu         sync.Mutex
	dispatched []string
	errFor     map[string]error
}

func (fd *fakeWorkerDispatcher) Dispatch(ctx context.Context, id string) (*models.Notification, error) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.dispatched = append(fd.dispatched, id)
	if err, ok := fd.errFor[id]; ok {
		return nil, err
	}
	return &models.Notification{Status: models.NotificationStatusSent}, nil
}

func (fd *fakeWorkerDispatcher) ids() []string {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	return append([]string(nil), fd.dispatched...)
}

func dueNotifications(n int) []models.Notification {
	notifications := make([]models.Notification, 0, n)
	for i := 0; i < n; i++ {
		notifications = append(notifications, models.Notification{
			ID:     primitive.NewObjectID(),
			Status: models.NotificationStatusScheduled,
		})
	}
	return notifications
}

func TestSchedulerDispatchesDueNotifications(t *testing.T) {
	due := dueNotifications(3)
	lister := &fakeDueLister{due: due}
	dispatcher := &fakeWorkerDispatcher{}

	sw := NewSchedulerWorker(SchedulerConfig{
		PollInterval: 10 * time.Millisecond,
		BatchSize:    10,
		WorkerCount:  2,
	}, lister, dispatcher)

	sw.Start()
	require.Eventually(t, func() bool {
		return len(dispatcher.ids()) == 3
	}, time.Second, 5*time.Millisecond)
	sw.Stop()

	want := map[string]bool{}
	for _, n := range due {
		want[n.ID.Hex()] = true
	}
	for _, id := range dispatcher.ids() {
		assert.True(t, want[id], "dispatched unknown notification %s", id)
	}

	stats := sw.Stats()
	assert.Equal(t, int64(3), stats.Dispatched)
	assert.Equal(t, int64(0), stats.Errors)
}

func TestSchedulerCountsLostClaimsAsErrors(t *testing.T) {
	due := dueNotifications(2)
	lister := &fakeDueLister{due: due}
	dispatcher := &fakeWorkerDispatcher{
		errFor: map[string]error{
			// A concurrent cancel won the race for this one.
			due[0].ID.Hex(): utils.NewInvalidStateError("Notification cannot be sent from status 'cancelled'"),
		},
	}

	sw := NewSchedulerWorker(SchedulerConfig{
		PollInterval: 10 * time.Millisecond,
		BatchSize:    10,
		WorkerCount:  1,
	}, lister, dispatcher)

	sw.Start()
	require.Eventually(t, func() bool {
		return len(dispatcher.ids()) == 2
	}, time.Second, 5*time.Millisecond)
	sw.Stop()

	stats := sw.Stats()
	assert.Equal(t, int64(1), stats.Dispatched)
	assert.Equal(t, int64(1), stats.Errors)
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	sw := NewSchedulerWorker(DefaultSchedulerConfig(), &fakeDueLister{}, &fakeWorkerDispatcher{})

	sw.Start()
	sw.Stop()
	sw.Stop()
	// A stopped worker cannot be restarted; Start after Stop is a no-op.
	sw.Start()
}
