package repositories

import (
	"context"
	"fmt"
	"time"

	"backoffice/models"
	"backoffice/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// ========================
// Core CRUD
// ========================

func (nr *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = time.Now()

	_, err := nr.collection.InsertOne(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (nr *NotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NewNotificationNotFoundError()
	}

	var notification models.Notification
	err = nr.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.NewNotificationNotFoundError()
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return &notification, nil
}

// UpdateIfMutable applies an update only while the notification is still in
// draft or scheduled. Returns false when the guard did not match.
func (nr *NotificationRepository) UpdateIfMutable(ctx context.Context, id string, update bson.M) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, utils.NewNotificationNotFoundError()
	}

	update["updatedAt"] = time.Now()

	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$in": []string{models.NotificationStatusDraft, models.NotificationStatusScheduled}},
	}

	result, err := nr.collection.UpdateOne(ctx, filter, bson.M{"$set": update})
	if err != nil {
		return false, fmt.Errorf("failed to update notification: %w", err)
	}

	return result.MatchedCount > 0, nil
}

// DeleteIfMutable removes the record only while it is draft or scheduled.
func (nr *NotificationRepository) DeleteIfMutable(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, utils.NewNotificationNotFoundError()
	}

	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$in": []string{models.NotificationStatusDraft, models.NotificationStatusScheduled}},
	}

	result, err := nr.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete notification: %w", err)
	}

	return result.DeletedCount > 0, nil
}

// ========================
// Listing
// ========================

func (nr *NotificationRepository) List(ctx context.Context, req models.ListNotificationsRequest) ([]models.Notification, int64, error) {
	filter := bson.M{}

	if req.Type != "" {
		filter["type"] = req.Type
	}
	if req.Priority != "" {
		filter["priority"] = req.Priority
	}
	if req.Status != "" {
		filter["status"] = req.Status
	}
	if req.Category != "" {
		filter["category"] = req.Category
	}
	if req.SendToAllUsers != "" {
		filter["sendToAllUsers"] = req.SendToAllUsers == "true"
	}
	if req.CreatedBy != "" {
		if creatorID, err := primitive.ObjectIDFromHex(req.CreatedBy); err == nil {
			filter["createdBy"] = creatorID
		}
	}
	if req.Search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": req.Search, "$options": "i"}},
			{"message": bson.M{"$regex": req.Search, "$options": "i"}},
		}
	}

	total, err := nr.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	sortField, sortDir := utils.NormalizeSort(req.SortBy, req.SortOrder, "createdAt",
		[]string{"createdAt", "scheduledTime", "title", "priority", "status"})

	skip := (req.Page - 1) * req.Limit
	findOptions := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDir}}).
		SetSkip(int64(skip)).
		SetLimit(int64(req.Limit))

	cursor, err := nr.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, 0, fmt.Errorf("failed to decode notifications: %w", err)
	}

	return notifications, total, nil
}

func (nr *NotificationRepository) GetScheduled(ctx context.Context, page, limit int) ([]models.Notification, int64, error) {
	filter := bson.M{"status": models.NotificationStatusScheduled}

	total, err := nr.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count scheduled notifications: %w", err)
	}

	skip := (page - 1) * limit
	findOptions := options.Find().
		SetSort(bson.D{{Key: "scheduledTime", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := nr.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find scheduled notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, 0, fmt.Errorf("failed to decode scheduled notifications: %w", err)
	}

	return notifications, total, nil
}

// GetDueScheduled returns scheduled notifications whose fire time has
// elapsed. The scheduler re-claims each one atomically before dispatch, so
// this read is only a candidate list.
func (nr *NotificationRepository) GetDueScheduled(ctx context.Context, now time.Time, limit int) ([]models.Notification, error) {
	filter := bson.M{
		"status":        models.NotificationStatusScheduled,
		"scheduledTime": bson.M{"$lte": now},
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "scheduledTime", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := nr.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find due notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode due notifications: %w", err)
	}

	return notifications, nil
}

// ========================
// Dispatch lifecycle
// ========================

// ClaimForDispatch atomically moves a draft or scheduled notification to
// sending and returns the claimed record. Returns mongo.ErrNoDocuments via
// a nil result when the guard did not match, which is how a dispatch losing
// the race to a cancellation (or a duplicate fire) becomes a no-op.
func (nr *NotificationRepository) ClaimForDispatch(ctx context.Context, id string) (*models.Notification, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.NewNotificationNotFoundError()
	}

	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$in": []string{models.NotificationStatusDraft, models.NotificationStatusScheduled}},
	}
	update := bson.M{"$set": bson.M{
		"status":    models.NotificationStatusSending,
		"updatedAt": time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var notification models.Notification
	err = nr.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to claim notification for dispatch: %w", err)
	}

	return &notification, nil
}

// CancelIfScheduled atomically moves a scheduled notification to cancelled.
func (nr *NotificationRepository) CancelIfScheduled(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, utils.NewNotificationNotFoundError()
	}

	filter := bson.M{
		"_id":    objectID,
		"status": models.NotificationStatusScheduled,
	}
	update := bson.M{"$set": bson.M{
		"status":    models.NotificationStatusCancelled,
		"updatedAt": time.Now(),
	}}

	result, err := nr.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to cancel notification: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

// SetDeliveryTotals seeds the delivery counters before the first attempt,
// making partial progress visible to concurrent readers.
func (nr *NotificationRepository) SetDeliveryTotals(ctx context.Context, id primitive.ObjectID, total int) error {
	update := bson.M{"$set": bson.M{
		"deliveryStatus": models.DeliveryStatus{
			Total:   total,
			Pending: total,
		},
		"updatedAt": time.Now(),
	}}

	_, err := nr.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set delivery totals: %w", err)
	}
	return nil
}

// RecordDeliveryResult accounts a single per-recipient attempt. Uses $inc so
// concurrent worker writes cannot lose updates, and keeps
// total == delivered + failed + pending after every write.
func (nr *NotificationRepository) RecordDeliveryResult(ctx context.Context, id primitive.ObjectID, delivered bool) error {
	field := "deliveryStatus.failed"
	if delivered {
		field = "deliveryStatus.delivered"
	}

	update := bson.M{
		"$inc": bson.M{
			field:                    1,
			"deliveryStatus.pending": -1,
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	_, err := nr.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to record delivery result: %w", err)
	}
	return nil
}

// FinalizeDispatch sets the terminal status once all attempts finished.
// sentAt is stamped only when the run produced at least one delivery.
func (nr *NotificationRepository) FinalizeDispatch(ctx context.Context, id primitive.ObjectID, status string) error {
	now := time.Now()
	set := bson.M{
		"status":    status,
		"updatedAt": now,
	}
	if status == models.NotificationStatusSent {
		set["sentAt"] = now
	}
	update := bson.M{"$set": set}

	_, err := nr.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to finalize dispatch: %w", err)
	}
	return nil
}

// MarkDispatchFailed records a whole-notification failure (empty audience)
// with zeroed counters.
func (nr *NotificationRepository) MarkDispatchFailed(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"status":         models.NotificationStatusFailed,
		"deliveryStatus": models.DeliveryStatus{},
		"updatedAt":      time.Now(),
	}}

	_, err := nr.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark dispatch failed: %w", err)
	}
	return nil
}

// ========================
// Read tracking
// ========================

// audienceFilter matches sent, active, unexpired notifications targeted at
// the given user.
func audienceFilter(userID primitive.ObjectID, now time.Time) bson.M {
	return bson.M{
		"status":   models.NotificationStatusSent,
		"isActive": true,
		"$and": []bson.M{
			{"$or": []bson.M{
				{"expiresAt": bson.M{"$exists": false}},
				{"expiresAt": nil},
				{"expiresAt": bson.M{"$gt": now}},
			}},
			{"$or": []bson.M{
				{"sendToAllUsers": true},
				{"targetUsers": userID},
			}},
		},
	}
}

// unreadFilter narrows the audience filter to notifications the user has no
// read receipt for. Counting with this filter and marking with it stay in
// agreement because both take the exact same shape.
func unreadFilter(userID primitive.ObjectID, now time.Time) bson.M {
	filter := audienceFilter(userID, now)
	filter["readBy.userId"] = bson.M{"$ne": userID}
	return filter
}

// MarkRead appends a read receipt if the user has none yet. The filter plus
// $push runs as one atomic document update, so concurrent readers cannot
// produce duplicate receipts. Returns true when a new receipt was written.
func (nr *NotificationRepository) MarkRead(ctx context.Context, id string, userID primitive.ObjectID) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, utils.NewNotificationNotFoundError()
	}

	filter := bson.M{
		"_id":           objectID,
		"readBy.userId": bson.M{"$ne": userID},
	}
	update := bson.M{"$push": bson.M{
		"readBy": models.ReadReceipt{UserID: userID, ReadAt: time.Now()},
	}}

	result, err := nr.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return result.ModifiedCount > 0, nil
}

// MarkAllRead appends read receipts for every notification in the user's
// audience that they have not read yet. Returns the newly-marked count.
func (nr *NotificationRepository) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	filter := unreadFilter(userID, time.Now())
	update := bson.M{"$push": bson.M{
		"readBy": models.ReadReceipt{UserID: userID, ReadAt: time.Now()},
	}}

	result, err := nr.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return result.ModifiedCount, nil
}

func (nr *NotificationRepository) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	filter := unreadFilter(userID, time.Now())

	count, err := nr.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// GetUserNotifications lists the notifications visible to a recipient.
func (nr *NotificationRepository) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, page, limit int, unreadOnly bool) ([]models.Notification, int64, error) {
	filter := audienceFilter(userID, time.Now())
	if unreadOnly {
		filter = unreadFilter(userID, time.Now())
	}

	total, err := nr.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count user notifications: %w", err)
	}

	skip := (page - 1) * limit
	findOptions := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := nr.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find user notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, 0, fmt.Errorf("failed to decode user notifications: %w", err)
	}

	return notifications, total, nil
}

// ========================
// Stats aggregation
// ========================

func (nr *NotificationRepository) statsMatch(since time.Time, createdBy string) bson.M {
	match := bson.M{"createdAt": bson.M{"$gte": since}}
	if createdBy != "" {
		if creatorID, err := primitive.ObjectIDFromHex(createdBy); err == nil {
			match["createdBy"] = creatorID
		}
	}
	return match
}

func (nr *NotificationRepository) GetOverview(ctx context.Context, since time.Time, createdBy string) (*models.NotificationOverview, error) {
	statusCount := func(status string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", status}}, 1, 0}}}
	}

	pipeline := []bson.M{
		{"$match": nr.statsMatch(since, createdBy)},
		{"$group": bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"sent":      statusCount(models.NotificationStatusSent),
			"scheduled": statusCount(models.NotificationStatusScheduled),
			"draft":     statusCount(models.NotificationStatusDraft),
			"failed":    statusCount(models.NotificationStatusFailed),
			"highPriority": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$priority", models.NotificationPriorityHigh}}, 1, 0}}},
			"totalDelivered": bson.M{"$sum": "$deliveryStatus.delivered"},
			"totalFailed":    bson.M{"$sum": "$deliveryStatus.failed"},
			"totalReads":     bson.M{"$sum": bson.M{"$size": bson.M{"$ifNull": bson.A{"$readBy", bson.A{}}}}},
		}},
	}

	cursor, err := nr.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate overview: %w", err)
	}
	defer cursor.Close(ctx)

	var overview models.NotificationOverview
	if cursor.Next(ctx) {
		if err := cursor.Decode(&overview); err != nil {
			return nil, fmt.Errorf("failed to decode overview: %w", err)
		}
	}

	return &overview, nil
}

// GroupByField counts notifications in the window grouped by the given
// field. Keys with zero matches are naturally absent.
func (nr *NotificationRepository) GroupByField(ctx context.Context, since time.Time, createdBy, field string) ([]models.StatsBucket, error) {
	pipeline := []bson.M{
		{"$match": nr.statsMatch(since, createdBy)},
		{"$group": bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := nr.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var buckets []models.StatsBucket
	if err = cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode %s buckets: %w", field, err)
	}

	return buckets, nil
}

// ========================
// Retention
// ========================

// DeactivateExpired flips isActive off for notifications past their expiry.
func (nr *NotificationRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"isActive":  true,
		"expiresAt": bson.M{"$ne": nil, "$lt": now},
	}
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": now}}

	result, err := nr.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired notifications: %w", err)
	}

	return result.ModifiedCount, nil
}

// DeleteTerminalOlderThan purges terminal notifications past retention.
func (nr *NotificationRepository) DeleteTerminalOlderThan(ctx context.Context, olderThan time.Time) (int64, error) {
	filter := bson.M{
		"status": bson.M{"$in": []string{
			models.NotificationStatusSent,
			models.NotificationStatusFailed,
			models.NotificationStatusCancelled,
		}},
		"createdAt": bson.M{"$lt": olderThan},
	}

	result, err := nr.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %w", err)
	}

	return result.DeletedCount, nil
}

// stuckSendingRecovery builds the filter and update that finalize
// notifications stuck in sending. An interrupted dispatch is never
// retried; re-claiming would re-push to recipients whose deliveries
// already went out, so the row is closed as failed instead.
func stuckSendingRecovery(olderThan, now time.Time) (bson.M, bson.M) {
	filter := bson.M{
		"status":    models.NotificationStatusSending,
		"updatedAt": bson.M{"$lt": olderThan},
	}
	update := bson.M{"$set": bson.M{
		"status":    models.NotificationStatusFailed,
		"updatedAt": now,
	}}
	return filter, update
}

// ResetStuckSending finalizes notifications left in sending by a crashed
// or interrupted dispatcher as failed.
func (nr *NotificationRepository) ResetStuckSending(ctx context.Context, olderThan time.Time) (int64, error) {
	filter, update := stuckSendingRecovery(olderThan, time.Now())

	result, err := nr.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to reset stuck notifications: %w", err)
	}

	return result.ModifiedCount, nil
}
