package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNotificationLifecyclePredicates(t *testing.T) {
	cases := []struct {
		status   string
		terminal bool
		mutable  bool
	}{
		{NotificationStatusDraft, false, true},
		{NotificationStatusScheduled, false, true},
		{NotificationStatusSending, false, false},
		{NotificationStatusSent, true, false},
		{NotificationStatusFailed, true, false},
		{NotificationStatusCancelled, true, false},
	}

	for _, tc := range cases {
		n := Notification{Status: tc.status}
		assert.Equal(t, tc.terminal, n.IsTerminal(), "IsTerminal for %s", tc.status)
		assert.Equal(t, tc.mutable, n.IsMutable(), "IsMutable for %s", tc.status)
	}
}

func TestNotificationIsExpired(t *testing.T) {
	now := time.Now()

	var n Notification
	assert.False(t, n.IsExpired(now), "no expiry set")

	past := now.Add(-time.Minute)
	n.ExpiresAt = &past
	assert.True(t, n.IsExpired(now))

	future := now.Add(time.Minute)
	n.ExpiresAt = &future
	assert.False(t, n.IsExpired(now))
}

func TestNotificationHasRead(t *testing.T) {
	reader := primitive.NewObjectID()
	other := primitive.NewObjectID()

	n := Notification{ReadBy: []ReadReceipt{{UserID: reader, ReadAt: time.Now()}}}

	assert.True(t, n.HasRead(reader))
	assert.False(t, n.HasRead(other))
}
