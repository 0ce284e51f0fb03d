package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	portsrepo "github.com/gemura/gemura-backend/internal/core/ports/repositories"
	"github.com/gemura/gemura-backend/internal/dto"
	"github.com/gemura/gemura-backend/internal/middleware"
	"github.com/gemura/gemura-backend/internal/platform/cache"
)

// unreadCountTTL bounds how stale the cached unread counter can get.
const unreadCountTTL = 5 * time.Minute

// NotificationService manages per-user notifications. The unread counter is
// served from Redis when possible and falls back to the database.
type NotificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
	cache            *cache.Cache
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, c *cache.Cache) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo, cache: c}
}

// CreateNotification records a message for a user and invalidates their
// unread counter.
func (s *NotificationService) CreateNotification(ctx context.Context, req dto.CreateNotificationRequest) (*domain.Notification, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	n := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         req.UserID,
		Title:          req.Title,
		Message:        req.Message,
		Type:           req.Type,
		Status:         domain.NotificationUnread,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
		logger.Error("Failed to save notification", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}

	s.cache.Invalidate(ctx, cache.UnreadCountKeyFmt+req.UserID)
	return &n, nil
}

// ListNotifications pages the user's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) ([]domain.Notification, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	notifications, err := s.notificationRepo.ListNotifications(ctx, userID, params.UnreadOnly, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, nil
}

// MarkRead transitions a notification to READ. ReadAt is stamped once, on
// the first transition; marking an already-read notification is a no-op
// success.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) (*domain.Notification, error) {
	n, err := s.notificationRepo.FindNotificationByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("Notification not found")
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	if n.UserID != userID {
		return nil, apperrors.NewNotFound("Notification not found")
	}
	if n.Status == domain.NotificationRead {
		return n, nil
	}

	readAt := time.Now().UTC()
	if err := s.notificationRepo.MarkRead(ctx, notificationID, readAt); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	n.Status = domain.NotificationRead
	n.ReadAt = &readAt

	s.cache.Invalidate(ctx, cache.UnreadCountKeyFmt+userID)
	return n, nil
}

// CountUnread returns the user's unread count, served from cache when warm.
func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	key := cache.UnreadCountKeyFmt + userID
	if count, ok := s.cache.GetInt(ctx, key); ok {
		return count, nil
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	s.cache.SetInt(ctx, key, count, unreadCountTTL)
	return count, nil
}
