package usecases

import (
	"context"

	"go.uber.org/zap"
	"mercato.backend/internal/domain/entities"
	"mercato.backend/internal/domain/repositories"
	"mercato.backend/pkg/logger"
	"mercato.backend/pkg/metrics"
)

const defaultNotificationLimit = 50

// NotificationUsecase persists and lists user notifications
type NotificationUsecase struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(notificationRepo repositories.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notificationRepo: notificationRepo}
}

// Emit stores a notification. Failures are logged and counted, never returned.
func (u *NotificationUsecase) Emit(ctx context.Context, userID int64, notificationType entities.NotificationType, message string) {
	// the request may already be finished; the write should still happen
	ctx = context.WithoutCancel(ctx)
	err := u.notificationRepo.Create(ctx, &entities.Notification{
		UserID:  userID,
		Message: message,
		Type:    notificationType,
	})
	if err != nil {
		metrics.NotificationFailed()
		logger.Error(ctx, "Failed to emit notification",
			zap.Int64("recipient_id", userID),
			zap.String("type", string(notificationType)),
			zap.Error(err),
		)
	}
}

// ListNotifications returns the caller's notifications, newest first.
func (u *NotificationUsecase) ListNotifications(ctx context.Context, actor entities.Actor, limit int) ([]*entities.Notification, error) {
	if limit <= 0 || limit > defaultNotificationLimit {
		limit = defaultNotificationLimit
	}
	return u.notificationRepo.ListByUser(ctx, actor.UserID, limit)
}
