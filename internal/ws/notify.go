package ws

import (
	"encoding/json"
	"time"

	"placement-portal/internal/domain/notification"

	"github.com/google/uuid"
)

const EventNotification = "notification"

type NotificationEvent struct {
	Type             string     `json:"type"`
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	NotificationType string     `json:"notification_type"`
	RelatedID        *uuid.UUID `json:"related_id"`
	CreatedAt        string     `json:"created_at"`
}

// Notifier pushes stored notifications to a user's live connections. Users
// without an open connection read them later from the notifications API.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) PushNotification(msg notification.Notification) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(NotificationEvent{
		Type:             EventNotification,
		ID:               msg.ID,
		Title:            msg.Title,
		Message:          msg.Message,
		NotificationType: string(msg.Kind),
		RelatedID:        msg.RelatedID,
		CreatedAt:        msg.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.SendToUser(msg.UserID, b)
}
