package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/ports"
)

// NotificationService exposes a user's own notifications. There is no
// cross-user access; the caller id is the only filter.
type NotificationService struct {
	uow ports.UnitOfWork
}

// NewNotificationService creates a new notification service
func NewNotificationService(uow ports.UnitOfWork) *NotificationService {
	return &NotificationService{uow: uow}
}

// ListNotifications returns the caller's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, callerID uuid.UUID) ([]*entities.Notification, error) {
	if callerID == uuid.Nil {
		return nil, entities.ErrUnauthenticated
	}
	return s.uow.Notifications().ListForUser(ctx, callerID)
}

// UnreadCount returns the number of unread notifications for the caller.
func (s *NotificationService) UnreadCount(ctx context.Context, callerID uuid.UUID) (int, error) {
	if callerID == uuid.Nil {
		return 0, entities.ErrUnauthenticated
	}
	return s.uow.Notifications().CountUnread(ctx, callerID)
}
