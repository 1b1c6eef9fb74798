package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/repository"
)

const notificationColumns = `notification_id, sender_id, receiver_id, content,
	sent_at, notification_type, is_read`

type notificationRepository struct {
	BaseRepository
}

func NewNotificationRepository(base BaseRepository) repository.NotificationRepository {
	return &notificationRepository{base}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (
			notification_id, sender_id, receiver_id, content,
			sent_at, notification_type, is_read
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	n.ID = uuid.New()

	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.SenderID,
		n.ReceiverID,
		n.Content,
		n.SentAt,
		n.NotificationType,
		n.IsRead,
	)
	if err != nil {
		return wrapErr("create notification", err)
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE notification_id = $1`

	var n model.Notification
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		return nil, wrapErr("get notification", err)
	}
	return &n, nil
}

func (r *notificationRepository) List(ctx context.Context) ([]*model.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications ORDER BY sent_at DESC`

	list := []*model.Notification{}
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, wrapErr("list notifications", err)
	}
	return list, nil
}
