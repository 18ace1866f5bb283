package services

import (
	"context"

	"backoffice/models"
	"backoffice/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// userDirectory is the external user-population collaborator.
type userDirectory interface {
	GetActiveUserIDs(ctx context.Context) ([]primitive.ObjectID, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
}

// TargetingResolver computes the concrete recipient set for a notification.
type TargetingResolver struct {
	directory userDirectory
}

func NewTargetingResolver(directory userDirectory) *TargetingResolver {
	return &TargetingResolver{directory: directory}
}

// Resolve returns the recipient user ids: the full active-user population
// for sendToAllUsers, otherwise the explicit target list deduplicated.
// Returns utils.ErrEmptyAudience when the resolved set is empty.
func (tr *TargetingResolver) Resolve(ctx context.Context, notification *models.Notification) ([]primitive.ObjectID, error) {
	var audience []primitive.ObjectID

	if notification.SendToAllUsers {
		ids, err := tr.directory.GetActiveUserIDs(ctx)
		if err != nil {
			return nil, err
		}
		audience = ids
	} else {
		audience = dedupeIDs(notification.TargetUsers)
	}

	if len(audience) == 0 {
		return nil, utils.ErrEmptyAudience
	}

	return audience, nil
}

func dedupeIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	result := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
