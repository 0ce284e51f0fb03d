package dto

import (
	"time"

	"github.com/gemura/gemura-backend/internal/core/domain"
)

// CreateNotificationRequest creates a message for a user.
type CreateNotificationRequest struct {
	UserID  string                  `json:"user_id" binding:"required"`
	Title   string                  `json:"title" binding:"required"`
	Message string                  `json:"message" binding:"required"`
	Type    domain.NotificationType `json:"type" binding:"required,oneof=INFO SUCCESS WARNING ERROR"`
}

// ListNotificationsParams filters the caller's notifications.
type ListNotificationsParams struct {
	UnreadOnly bool `form:"unread_only"`
	Limit      int  `form:"limit,default=20"`
	Offset     int  `form:"offset,default=0"`
}

// NotificationResponse mirrors domain.Notification.
type NotificationResponse struct {
	NotificationID string                    `json:"notificationID"`
	Title          string                    `json:"title"`
	Message        string                    `json:"message"`
	Type           domain.NotificationType   `json:"type"`
	Status         domain.NotificationStatus `json:"status"`
	ReadAt         *time.Time                `json:"readAt,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
}

// ToNotificationResponse converts a domain.Notification to its DTO.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           n.Type,
		Status:         n.Status,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of notifications.
func ToNotificationResponses(ns []domain.Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(ns))
	for i := range ns {
		res[i] = ToNotificationResponse(&ns[i])
	}
	return res
}
