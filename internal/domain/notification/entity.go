package notification

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindNewApplication       Kind = "new_application"
	KindApplicationStatus    Kind = "application_status"
	KindApplicationWithdrawn Kind = "application_withdrawn"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Message   string
	Kind      Kind
	RelatedID *uuid.UUID
	IsRead    bool
	CreatedAt time.Time
}
