package services

import (
	"context"
	"errors"
	"sync"

	"backoffice/models"
	"backoffice/utils"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dispatchStore is the persistence surface the delivery engine needs.
type dispatchStore interface {
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	ClaimForDispatch(ctx context.Context, id string) (*models.Notification, error)
	SetDeliveryTotals(ctx context.Context, id primitive.ObjectID, total int) error
	RecordDeliveryResult(ctx context.Context, id primitive.ObjectID, delivered bool) error
	FinalizeDispatch(ctx context.Context, id primitive.ObjectID, status string) error
	MarkDispatchFailed(ctx context.Context, id primitive.ObjectID) error
}

type recipientPusher interface {
	SendToUser(ctx context.Context, user models.User, msg utils.PushMessage) error
}

// DispatchService drives a notification through the sending phase:
// claim, resolve the audience, fan deliveries out over a bounded worker
// pool, account each attempt, and finalize the terminal status.
type DispatchService struct {
	store       dispatchStore
	directory   userDirectory
	resolver    *TargetingResolver
	pusher      recipientPusher
	workerCount int
}

func NewDispatchService(store dispatchStore, directory userDirectory, pusher recipientPusher, workerCount int) *DispatchService {
	if workerCount <= 0 {
		workerCount = 5
	}
	return &DispatchService{
		store:       store,
		directory:   directory,
		resolver:    NewTargetingResolver(directory),
		pusher:      pusher,
		workerCount: workerCount,
	}
}

// Dispatch attempts delivery of the notification. Exactly one caller wins
// the claim; losers get an invalid-state error describing the current
// status. An empty audience terminates the notification as failed without
// surfacing an error to the caller.
func (ds *DispatchService) Dispatch(ctx context.Context, id string) (*models.Notification, error) {
	claimed, err := ds.store.ClaimForDispatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if claimed == nil {
		return nil, ds.claimRejection(ctx, id)
	}

	log := logrus.WithFields(logrus.Fields{
		"notificationId": claimed.ID.Hex(),
		"title":          claimed.Title,
	})

	audience, err := ds.resolver.Resolve(ctx, claimed)
	if err != nil {
		if errors.Is(err, utils.ErrEmptyAudience) {
			log.Warn("Notification resolved to an empty audience, marking failed")
			if markErr := ds.store.MarkDispatchFailed(ctx, claimed.ID); markErr != nil {
				return nil, markErr
			}
			return ds.store.GetByID(ctx, id)
		}
		return nil, err
	}

	if err := ds.store.SetDeliveryTotals(ctx, claimed.ID, len(audience)); err != nil {
		return nil, err
	}

	delivered := ds.deliverToAudience(ctx, claimed, audience)

	finalStatus := models.NotificationStatusSent
	if delivered == 0 {
		finalStatus = models.NotificationStatusFailed
	}
	if err := ds.store.FinalizeDispatch(ctx, claimed.ID, finalStatus); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"recipients": len(audience),
		"delivered":  delivered,
		"status":     finalStatus,
	}).Info("Notification dispatch completed")

	return ds.store.GetByID(ctx, id)
}

// deliverToAudience pushes to every recipient over a bounded pool and
// records each attempt. Returns the number of successful deliveries.
func (ds *DispatchService) deliverToAudience(ctx context.Context, notification *models.Notification, audience []primitive.ObjectID) int {
	users, err := ds.directory.GetUsersByIDs(ctx, audience)
	if err != nil {
		logrus.WithError(err).Error("Failed to load recipient users")
		users = nil
	}

	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	msg := utils.PushMessage{
		Title: notification.Title,
		Body:  notification.Message,
		Data: map[string]string{
			"notificationId": notification.ID.Hex(),
			"type":           notification.Type,
			"priority":       notification.Priority,
			"category":       notification.Category,
		},
	}

	jobs := make(chan primitive.ObjectID, len(audience))
	var wg sync.WaitGroup
	var delivered int64
	var mu sync.Mutex

	workers := ds.workerCount
	if workers > len(audience) {
		workers = len(audience)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for recipientID := range jobs {
				ok := ds.deliverToRecipient(ctx, notification, byID, recipientID, msg)
				if recordErr := ds.store.RecordDeliveryResult(ctx, notification.ID, ok); recordErr != nil {
					logrus.WithError(recordErr).WithField("notificationId", notification.ID.Hex()).
						Error("Failed to record delivery result")
				}
				if ok {
					mu.Lock()
					delivered++
					mu.Unlock()
				}
			}
		}()
	}

	for _, recipientID := range audience {
		jobs <- recipientID
	}
	close(jobs)
	wg.Wait()

	return int(delivered)
}

func (ds *DispatchService) deliverToRecipient(ctx context.Context, notification *models.Notification, byID map[primitive.ObjectID]models.User, recipientID primitive.ObjectID, msg utils.PushMessage) bool {
	user, ok := byID[recipientID]
	if !ok {
		logrus.WithFields(logrus.Fields{
			"notificationId": notification.ID.Hex(),
			"userId":         recipientID.Hex(),
		}).Warn("Recipient no longer resolvable, counting as failed")
		return false
	}

	if err := ds.pusher.SendToUser(ctx, user, msg); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"notificationId": notification.ID.Hex(),
			"userId":         recipientID.Hex(),
		}).Warn("Push delivery failed")
		return false
	}
	return true
}

// claimRejection explains why the claim did not match.
func (ds *DispatchService) claimRejection(ctx context.Context, id string) error {
	notification, err := ds.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification.Status == models.NotificationStatusSending {
		return utils.NewConflictError("Notification dispatch is already in progress")
	}
	return utils.NewInvalidStateError("Notification cannot be sent from status '" + notification.Status + "'")
}
