package workers

import (
	"context"
	"sync"
	"time"

	"backoffice/repositories"

	"github.com/sirupsen/logrus"
)

type CleanupConfig struct {
	Interval      time.Duration
	RetentionDays int
	// Sending-state records older than this are assumed to belong to a
	// crashed dispatcher and are reset to failed.
	StuckSendingAfter time.Duration
}

func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		Interval:          time.Hour,
		RetentionDays:     180,
		StuckSendingAfter: 30 * time.Minute,
	}
}

// CleanupWorker periodically deactivates expired notifications, prunes
// old terminal records, and recovers notifications stuck in sending.
type CleanupWorker struct {
	config           CleanupConfig
	notificationRepo *repositories.NotificationRepository

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
}

func NewCleanupWorker(config CleanupConfig, notificationRepo *repositories.NotificationRepository) *CleanupWorker {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	if config.RetentionDays <= 0 {
		config.RetentionDays = 180
	}
	if config.StuckSendingAfter <= 0 {
		config.StuckSendingAfter = 30 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &CleanupWorker{
		config:           config,
		notificationRepo: notificationRepo,
		ctx:              ctx,
		cancel:           cancel,
	}
}

func (cw *CleanupWorker) Start() {
	cw.mu.Lock()
	if cw.running || cw.ctx.Err() != nil {
		cw.mu.Unlock()
		return
	}
	cw.running = true
	cw.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"interval":      cw.config.Interval,
		"retentionDays": cw.config.RetentionDays,
	}).Info("Starting notification cleanup worker")

	cw.wg.Add(1)
	go cw.loop()
}

func (cw *CleanupWorker) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		return
	}
	cw.running = false
	cw.mu.Unlock()

	cw.cancel()
	cw.wg.Wait()
	logrus.Info("Notification cleanup worker stopped")
}

func (cw *CleanupWorker) loop() {
	defer cw.wg.Done()

	ticker := time.NewTicker(cw.config.Interval)
	defer ticker.Stop()

	cw.runOnce()

	for {
		select {
		case <-cw.ctx.Done():
			return
		case <-ticker.C:
			cw.runOnce()
		}
	}
}

func (cw *CleanupWorker) runOnce() {
	now := time.Now()

	if n, err := cw.notificationRepo.DeactivateExpired(cw.ctx, now); err != nil {
		cw.logError("deactivate expired notifications", err)
	} else if n > 0 {
		logrus.WithField("count", n).Info("Deactivated expired notifications")
	}

	if n, err := cw.notificationRepo.ResetStuckSending(cw.ctx, now.Add(-cw.config.StuckSendingAfter)); err != nil {
		cw.logError("reset stuck sending notifications", err)
	} else if n > 0 {
		logrus.WithField("count", n).Warn("Reset notifications stuck in sending")
	}

	cutoff := now.AddDate(0, 0, -cw.config.RetentionDays)
	if n, err := cw.notificationRepo.DeleteTerminalOlderThan(cw.ctx, cutoff); err != nil {
		cw.logError("prune old notifications", err)
	} else if n > 0 {
		logrus.WithField("count", n).Info("Pruned old terminal notifications")
	}
}

func (cw *CleanupWorker) logError(operation string, err error) {
	if cw.ctx.Err() != nil {
		return
	}
	logrus.WithError(err).Errorf("Cleanup worker failed to %s", operation)
}
