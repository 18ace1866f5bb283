package repositories

import (
	"testing"
	"time"

	"backoffice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAudienceFilterShape(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Now()

	filter := audienceFilter(userID, now)

	assert.Equal(t, models.NotificationStatusSent, filter["status"])
	assert.Equal(t, true, filter["isActive"])

	and, ok := filter["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 2)

	expiry, ok := and[0]["$or"].([]bson.M)
	require.True(t, ok)
	assert.Equal(t, []bson.M{
		{"expiresAt": bson.M{"$exists": false}},
		{"expiresAt": nil},
		{"expiresAt": bson.M{"$gt": now}},
	}, expiry)

	targeting, ok := and[1]["$or"].([]bson.M)
	require.True(t, ok)
	assert.Equal(t, []bson.M{
		{"sendToAllUsers": true},
		{"targetUsers": userID},
	}, targeting)
}

func TestUnreadFilterAddsReadGuard(t *testing.T) {
	userID := primitive.NewObjectID()
	now := time.Now()

	filter := unreadFilter(userID, now)

	assert.Equal(t, bson.M{"$ne": userID}, filter["readBy.userId"])

	// Aside from the read guard, the filter is exactly the audience filter,
	// so unread counts and mark-all-read cover the same documents.
	delete(filter, "readBy.userId")
	assert.Equal(t, audienceFilter(userID, now), filter)
}

func TestUnreadFilterScopedToRequestingUser(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	now := time.Now()

	guard := unreadFilter(alice, now)["readBy.userId"].(bson.M)

	assert.Equal(t, alice, guard["$ne"])
	assert.NotEqual(t, bob, guard["$ne"])
}

func TestStuckSendingRecoveryFinalizesAsFailed(t *testing.T) {
	olderThan := time.Now().Add(-30 * time.Minute)
	now := time.Now()

	filter, update := stuckSendingRecovery(olderThan, now)

	assert.Equal(t, models.NotificationStatusSending, filter["status"])
	assert.Equal(t, bson.M{"$lt": olderThan}, filter["updatedAt"])

	// Draft-origin send-now records carry no scheduledTime, yet an
	// interrupted dispatch must still be recovered.
	assert.NotContains(t, filter, "scheduledTime")
	assert.Len(t, filter, 2)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, models.NotificationStatusFailed, set["status"])
	assert.Equal(t, now, set["updatedAt"])
}
