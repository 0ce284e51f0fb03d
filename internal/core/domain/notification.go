package domain

import "time"

// NotificationType is the severity/category of a notification.
type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationWarning NotificationType = "WARNING"
	NotificationError   NotificationType = "ERROR"
)

// NotificationStatus is the read state of a notification.
type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "UNREAD"
	NotificationRead   NotificationStatus = "READ"
)

// Notification is a per-user message. ReadAt is set once, on the first
// transition to read.
type Notification struct {
	NotificationID string             `json:"notificationID"`
	UserID         string             `json:"userID"`
	Title          string             `json:"title"`
	Message        string             `json:"message"`
	Type           NotificationType   `json:"type"`
	Status         NotificationStatus `json:"status"`
	ReadAt         *time.Time         `json:"readAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}
