package triggers

import (
	"context"
	"fmt"

	"hoteltriggers/database/repository"
	"hoteltriggers/models"
	"hoteltriggers/services/notification"

	"go.uber.org/zap"
)

// notifyUser resolves the user's device token and sends n to it. A missing
// user or token is logged and treated as done.
func notifyUser(
	ctx context.Context,
	users repository.UserRepository,
	sender notification.PushSender,
	log *zap.Logger,
	userID string,
	n models.Notification,
) error {
	log = log.With(zap.String("userId", userID))

	u, err := users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		log.Info("user not found, skipping notification")
		return nil
	}
	if u.FCMToken == "" {
		log.Info("user has no fcm token, skipping notification")
		return nil
	}

	msgID, err := sender.Send(ctx, u.FCMToken, n)
	if err != nil {
		return fmt.Errorf("notify user %s: %w", userID, err)
	}
	log.Info("notification sent", zap.String("messageId", msgID))
	return nil
}
