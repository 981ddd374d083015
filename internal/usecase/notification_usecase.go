package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"placement-portal/internal/domain/notification"
	"placement-portal/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 100
)

// NotificationPusher forwards a stored notification to the recipient's open
// connections.
type NotificationPusher interface {
	PushNotification(n notification.Notification)
}

type NotificationListParams struct {
	UnreadOnly bool
	Limit      int
}

type NotificationUsecase interface {
	List(ctx context.Context, actor Actor, params NotificationListParams) ([]notification.Notification, error)
	UnreadCount(ctx context.Context, actor Actor) (int, error)
	MarkRead(ctx context.Context, actor Actor, id uuid.UUID) (notification.Notification, error)
	MarkAllRead(ctx context.Context, actor Actor) (int64, error)
}

type Notifications struct {
	repo   repository.NotificationRepository
	pusher NotificationPusher
	logger *log.Logger
	now    func() time.Time
}

func NewNotificationUsecase(repo repository.NotificationRepository, pusher NotificationPusher, logger *log.Logger) *Notifications {
	return &Notifications{repo: repo, pusher: pusher, logger: logger, now: time.Now}
}

// Publish stores n and then pushes it live. A failed insert is logged and the
// push still goes out so an online recipient is not left uninformed.
func (u *Notifications) Publish(ctx context.Context, n notification.Notification) {
	if n.UserID == uuid.Nil {
		return
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.Title = strings.TrimSpace(n.Title)
	n.Message = strings.TrimSpace(n.Message)

	stored, err := u.repo.Create(ctx, n)
	if err != nil {
		u.logf("[Notifications] Store failed | user_id=%s type=%s error=%v", n.UserID, n.Kind, err)
		n.CreatedAt = u.now()
		stored = n
	}
	if u.pusher != nil {
		u.pusher.PushNotification(stored)
	}
}

func (u *Notifications) List(ctx context.Context, actor Actor, params NotificationListParams) ([]notification.Notification, error) {
	if actor.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	limit := params.Limit
	if limit == 0 {
		limit = defaultNotificationLimit
	}
	if limit < 0 || limit > maxNotificationLimit {
		return nil, ErrInvalidInput
	}

	out, err := u.repo.ListByUser(ctx, actor.UserID, params.UnreadOnly, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Notifications) UnreadCount(ctx context.Context, actor Actor) (int, error) {
	if actor.UserID == uuid.Nil {
		return 0, ErrUnauthorized
	}
	n, err := u.repo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}

// MarkRead is idempotent for the owner; anyone else gets ErrForbidden.
func (u *Notifications) MarkRead(ctx context.Context, actor Actor, id uuid.UUID) (notification.Notification, error) {
	if actor.UserID == uuid.Nil {
		return notification.Notification{}, ErrUnauthorized
	}
	if id == uuid.Nil {
		return notification.Notification{}, ErrNotificationNotFound
	}

	n, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notification.Notification{}, ErrNotificationNotFound
		}
		return notification.Notification{}, ErrInternal
	}
	if n.UserID != actor.UserID {
		return notification.Notification{}, ErrForbidden
	}
	if n.IsRead {
		return n, nil
	}

	updated, err := u.repo.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notification.Notification{}, ErrNotificationNotFound
		}
		return notification.Notification{}, ErrInternal
	}
	return updated, nil
}

func (u *Notifications) MarkAllRead(ctx context.Context, actor Actor) (int64, error) {
	if actor.UserID == uuid.Nil {
		return 0, ErrUnauthorized
	}
	n, err := u.repo.MarkAllRead(ctx, actor.UserID)
	if err != nil {
		return 0, ErrInternal
	}
	u.logf("[Notifications] Marked all read | user_id=%s count=%d", actor.UserID, n)
	return n, nil
}

func (u *Notifications) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
