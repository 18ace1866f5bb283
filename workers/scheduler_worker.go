package workers

import (
	"context"
	"sync"
	"time"

	"backoffice/models"

	"github.com/sirupsen/logrus"
)

type dueLister interface {
	GetDueScheduled(ctx context.Context, now time.Time, limit int) ([]models.Notification, error)
}

type notificationDispatcher interface {
	Dispatch(ctx context.Context, id string) (*models.Notification, error)
}

type SchedulerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	WorkerCount  int
}

func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		PollInterval: 15 * time.Second,
		BatchSize:    50,
		WorkerCount:  3,
	}
}

// SchedulerWorker polls for due scheduled notifications and hands them to
// the dispatcher. The dispatch claim resolves the race with concurrent
// cancels and competing pollers, so picking up the same notification
// twice is harmless.
type SchedulerWorker struct {
	config     SchedulerConfig
	store      dueLister
	dispatcher notificationDispatcher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	jobs   chan string

	mu    sync.Mutex
	stats SchedulerStats

	running bool
}

type SchedulerStats struct {
	PollCycles int64     `json:"pollCycles"`
	Dispatched int64     `json:"dispatched"`
	Errors     int64     `json:"errors"`
	LastPollAt time.Time `json:"lastPollAt"`
}

func NewSchedulerWorker(config SchedulerConfig, store dueLister, dispatcher notificationDispatcher) *SchedulerWorker {
	if config.PollInterval <= 0 {
		config.PollInterval = 15 * time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 3
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &SchedulerWorker{
		config:     config,
		store:      store,
		dispatcher: dispatcher,
		ctx:        ctx,
		cancel:     cancel,
		jobs:       make(chan string, config.BatchSize),
	}
}

func (sw *SchedulerWorker) Start() {
	sw.mu.Lock()
	if sw.running || sw.ctx.Err() != nil {
		sw.mu.Unlock()
		return
	}
	sw.running = true
	sw.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"pollInterval": sw.config.PollInterval,
		"batchSize":    sw.config.BatchSize,
		"workers":      sw.config.WorkerCount,
	}).Info("Starting notification scheduler")

	for i := 0; i < sw.config.WorkerCount; i++ {
		sw.wg.Add(1)
		go sw.dispatchWorker(i)
	}

	sw.wg.Add(1)
	go sw.pollLoop()
}

func (sw *SchedulerWorker) Stop() {
	sw.mu.Lock()
	if !sw.running {
		sw.mu.Unlock()
		return
	}
	sw.running = false
	sw.mu.Unlock()

	sw.cancel()
	sw.wg.Wait()
	logrus.Info("Notification scheduler stopped")
}

func (sw *SchedulerWorker) Stats() SchedulerStats {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.stats
}

func (sw *SchedulerWorker) pollLoop() {
	defer sw.wg.Done()
	defer close(sw.jobs)

	ticker := time.NewTicker(sw.config.PollInterval)
	defer ticker.Stop()

	// Immediate first poll so due work is not delayed by a full interval.
	sw.pollOnce()

	for {
		select {
		case <-sw.ctx.Done():
			return
		case <-ticker.C:
			sw.pollOnce()
		}
	}
}

func (sw *SchedulerWorker) pollOnce() {
	now := time.Now()
	due, err := sw.store.GetDueScheduled(sw.ctx, now, sw.config.BatchSize)

	sw.mu.Lock()
	sw.stats.PollCycles++
	sw.stats.LastPollAt = now
	if err != nil {
		sw.stats.Errors++
	}
	sw.mu.Unlock()

	if err != nil {
		if sw.ctx.Err() == nil {
			logrus.WithError(err).Error("Failed to poll for due notifications")
		}
		return
	}

	for _, notification := range due {
		select {
		case sw.jobs <- notification.ID.Hex():
		case <-sw.ctx.Done():
			return
		}
	}
}

func (sw *SchedulerWorker) dispatchWorker(id int) {
	defer sw.wg.Done()

	for notificationID := range sw.jobs {
		_, err := sw.dispatcher.Dispatch(sw.ctx, notificationID)

		sw.mu.Lock()
		if err != nil {
			sw.stats.Errors++
		} else {
			sw.stats.Dispatched++
		}
		sw.mu.Unlock()

		if err != nil {
			// Losing the claim to a cancel or another poller lands here
			// as an invalid-state error and is expected.
			logrus.WithError(err).WithFields(logrus.Fields{
				"worker":         id,
				"notificationId": notificationID,
			}).Warn("Scheduled dispatch did not complete")
		}
	}
}
