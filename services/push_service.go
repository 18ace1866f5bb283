package services

import (
	"context"
	"errors"
	"time"

	"backoffice/models"
	"backoffice/utils"
)

// PushGateway is the external push-delivery collaborator.
type PushGateway interface {
	Send(ctx context.Context, deviceToken string, msg utils.PushMessage) (*utils.PushResult, error)
}

// PushService delivers a push message to a single user's registered device,
// bounding every gateway call with the configured timeout.
type PushService struct {
	gateway PushGateway
	timeout time.Duration
}

func NewPushService(gateway PushGateway, timeout time.Duration) *PushService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PushService{gateway: gateway, timeout: timeout}
}

func (ps *PushService) SendToUser(ctx context.Context, user models.User, msg utils.PushMessage) error {
	if user.DeviceToken == "" {
		return errors.New("user has no registered device token")
	}

	attemptCtx, cancel := context.WithTimeout(ctx, ps.timeout)
	defer cancel()

	result, err := ps.gateway.Send(attemptCtx, user.DeviceToken, msg)
	if err != nil {
		return err
	}
	if !result.Success {
		return errors.New(result.Error)
	}
	return nil
}
