package utils

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

type PushMessage struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	ImageURL string            `json:"imageUrl,omitempty"`
	Sound    string            `json:"sound,omitempty"`
}

type PushResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// FCMGateway delivers push messages through Firebase Cloud Messaging.
type FCMGateway struct {
	client *messaging.Client
}

func NewFCMGateway(ctx context.Context, credentialsFile string) (*FCMGateway, error) {
	if credentialsFile == "" {
		return nil, errors.New("firebase credentials not configured")
	}

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize FCM client: %w", err)
	}

	return &FCMGateway{client: client}, nil
}

func (g *FCMGateway) Send(ctx context.Context, deviceToken string, msg PushMessage) (*PushResult, error) {
	message := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title:    msg.Title,
			Body:     msg.Body,
			ImageURL: msg.ImageURL,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Sound: msg.Sound,
				Icon:  "ic_notification",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: msg.Title,
						Body:  msg.Body,
					},
					Sound: msg.Sound,
				},
			},
		},
	}

	response, err := g.client.Send(ctx, message)
	if err != nil {
		return &PushResult{
			Success: false,
			Error:   err.Error(),
		}, err
	}

	return &PushResult{
		Success:   true,
		MessageID: response,
	}, nil
}

// MockPushGateway logs deliveries instead of sending them. Used when
// Firebase credentials are not configured.
type MockPushGateway struct{}

func NewMockPushGateway() *MockPushGateway {
	return &MockPushGateway{}
}

func (g *MockPushGateway) Send(ctx context.Context, deviceToken string, msg PushMessage) (*PushResult, error) {
	logrus.WithFields(logrus.Fields{
		"deviceToken": deviceToken,
		"title":       msg.Title,
	}).Debug("Mock push delivery")

	return &PushResult{
		Success:   true,
		MessageID: "mock",
	}, nil
}
