package repositories

import (
	"context"
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
)

// NotificationRepositoryFacade defines persistence for per-user
// notifications.
type NotificationRepositoryFacade interface {
	SaveNotification(ctx context.Context, n domain.Notification) error
	FindNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error)
	// MarkRead sets status READ and stamps read_at only when it is not
	// already set.
	MarkRead(ctx context.Context, notificationID string, readAt time.Time) error
	CountUnread(ctx context.Context, userID string) (int, error)
}
