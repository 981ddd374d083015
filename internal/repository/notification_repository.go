package repository

import (
	"context"

	"placement-portal/internal/database"
	"placement-portal/internal/domain/notification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, n notification.Notification) (notification.Notification, error)
	FindByID(ctx context.Context, id uuid.UUID) (notification.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (notification.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type PostgresNotificationRepository struct {
	db database.Querier
}

func NewPostgresNotificationRepository(db database.Querier) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

const notificationColumns = `id, user_id, title, message, notification_type, related_id, is_read, created_at`

func (r *PostgresNotificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO notifications (id, user_id, title, message, notification_type, related_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+notificationColumns,
		n.ID, n.UserID, n.Title, n.Message, string(n.Kind), n.RelatedID,
	)
	return scanNotification(row)
}

func (r *PostgresNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (notification.Notification, error) {
	return scanNotification(r.db.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
}

func (r *PostgresNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]notification.Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE user_id = $1 AND ($2::boolean = FALSE OR is_read = FALSE)
		 ORDER BY created_at DESC
		 LIMIT $3`,
		userID, unreadOnly, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (notification.Notification, error) {
	return scanNotification(r.db.QueryRow(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 RETURNING `+notificationColumns, id,
	))
}

func (r *PostgresNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
}

func (r *PostgresNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&n)
	return n, err
}

func scanNotification(row database.Row) (notification.Notification, error) {
	var n notification.Notification
	var kind string
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &kind, &n.RelatedID, &n.IsRead, &n.CreatedAt); err != nil {
		if isNoRows(err) {
			return notification.Notification{}, ErrNotFound
		}
		return notification.Notification{}, err
	}
	n.Kind = notification.Kind(kind)
	return n, nil
}
