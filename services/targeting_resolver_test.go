package services

import (
	"context"
	"testing"

	"backoffice/models"
	"backoffice/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveBroadcastUsesDirectory(t *testing.T) {
	users := makeUsers(3)
	tr := NewTargetingResolver(&fakeDirectory{users: users})

	audience, err := tr.Resolve(context.Background(), &models.Notification{SendToAllUsers: true})
	require.NoError(t, err)
	assert.Len(t, audience, 3)
}

func TestResolveExplicitTargetsAreDeduplicated(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	tr := NewTargetingResolver(&fakeDirectory{})

	audience, err := tr.Resolve(context.Background(), &models.Notification{
		TargetUsers: []primitive.ObjectID{a, b, a, b, a},
	})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a, b}, audience)
}

func TestResolveEmptyAudience(t *testing.T) {
	tr := NewTargetingResolver(&fakeDirectory{})

	_, err := tr.Resolve(context.Background(), &models.Notification{SendToAllUsers: true})
	assert.ErrorIs(t, err, utils.ErrEmptyAudience)

	_, err = tr.Resolve(context.Background(), &models.Notification{})
	assert.ErrorIs(t, err, utils.ErrEmptyAudience)
}
