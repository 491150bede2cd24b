package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/lessonhub/internal/apperror"
	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/repository"
)

// NotificationService handles listing and acknowledging notifications.
type NotificationService struct {
	notifications repository.NotificationRepository
	logger        *slog.Logger
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(notifications repository.NotificationRepository, logger *slog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, logger: logger}
}

// ListNotifications returns the user's own notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, user *model.User) ([]model.Notification, error) {
	notifications, err := s.notifications.ListNotificationsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flips a notification to read, scoped to the owning user.
//
// The update filters on (id, owner): someone else's notification — or an
// unknown id — is NotFound. Marking an already-read notification succeeds
// again; the flag only ever moves false to true.
func (s *NotificationService) MarkRead(ctx context.Context, user *model.User, notificationID string) error {
	if notificationID == "" {
		return apperror.ValidationFailed("id", "notification ID required")
	}

	matched, err := s.notifications.MarkNotificationRead(ctx, notificationID, user.ID)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	if !matched {
		return apperror.NotFound("notification", notificationID)
	}

	s.logger.Info("notification read",
		slog.String("notificationID", notificationID),
		slog.String("userID", user.ID),
	)
	return nil
}
