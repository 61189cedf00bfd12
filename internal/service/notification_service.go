package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
)

// NotificationService implements notification listing and deletion.
type NotificationService struct {
	notifications repository.NotificationRepository
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// List returns the user's notifications newest first and then marks them all
// read. The returned items carry the read state from before the mark, so a
// client sees which ones were unread on this fetch.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]models.NotificationView, error) {
	notifications, err := s.notifications.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, 0, len(notifications))
	for i := range notifications {
		views = append(views, notifications[i].View())
	}
	return views, nil
}

// DeleteAll removes every notification addressed to the user.
func (s *NotificationService) DeleteAll(ctx context.Context, userID uint) error {
	return s.notifications.DeleteAllFor(ctx, userID)
}

// DeleteOne removes a single notification. Only the recipient may delete it.
func (s *NotificationService) DeleteOne(ctx context.Context, userID, notificationID uint) error {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.ToID != userID {
		return models.NewForbiddenError("You are not allowed to delete this notification")
	}
	return s.notifications.Delete(ctx, notificationID)
}
