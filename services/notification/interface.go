package notification

import (
	"context"
	"errors"
	"fmt"

	"hoteltriggers/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ErrNoToken is returned when a send is attempted without a device token.
var ErrNoToken = errors.New("no device token")

// PushSender delivers one notification to one device.
type PushSender interface {
	Send(ctx context.Context, token string, n models.Notification) (string, error)
}

// MessagingClient is the part of *messaging.Client used here.
type MessagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMSender sends through Firebase Cloud Messaging.
type FCMSender struct {
	client MessagingClient
}

func NewFCMSender(client MessagingClient) (*FCMSender, error) {
	if client == nil {
		return nil, fmt.Errorf("notification sender initialization error: messaging client is nil")
	}
	return &FCMSender{client: client}, nil
}

// BuildMessage turns a notification into a single-token FCM message.
func BuildMessage(token string, n models.Notification) *messaging.Message {
	data := make(map[string]string, len(n.Data))
	for k, v := range n.Data {
		data[k] = v
	}
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}
}

func (s *FCMSender) Send(ctx context.Context, token string, n models.Notification) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}
	id, err := s.client.Send(ctx, BuildMessage(token, n))
	if err != nil {
		return "", fmt.Errorf("failed to send FCM message: %w", err)
	}
	return id, nil
}

// LogSender only logs what would have been sent.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, token string, n models.Notification) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}
	s.logger.Info("push dry run",
		zap.String("title", n.Title),
		zap.String("body", n.Body),
		zap.Any("data", n.Data),
	)
	return "dry-run", nil
}
