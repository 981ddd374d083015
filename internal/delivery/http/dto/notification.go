package dto

import (
	"time"

	"placement-portal/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	NotificationType string     `json:"notification_type"`
	RelatedID        *uuid.UUID `json:"related_id"`
	IsRead           bool       `json:"is_read"`
	CreatedAt        time.Time  `json:"created_at"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

func FromNotification(n notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:               n.ID,
		Title:            n.Title,
		Message:          n.Message,
		NotificationType: string(n.Kind),
		RelatedID:        n.RelatedID,
		IsRead:           n.IsRead,
		CreatedAt:        n.CreatedAt,
	}
}

func FromNotifications(ns []notification.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, FromNotification(n))
	}
	return out
}
