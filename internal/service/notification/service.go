package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/repository"
	"github.com/jwalitptl/scheduling-api/internal/service/event"
	apperrors "github.com/jwalitptl/scheduling-api/pkg/errors"
)

type Service struct {
	repo   repository.NotificationRepository
	users  repository.UserRepository
	events event.Emitter
	now    func() time.Time
}

func NewService(repo repository.NotificationRepository, users repository.UserRepository, events event.Emitter) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		events: events,
		now:    time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]*model.Notification, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("Notification not found.", err)
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

// Create stores a notification; sent_at and is_read are always server set.
func (s *Service) Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	fields := map[string][]string{}
	for field, id := range map[string]int64{"sender": *req.Sender, "receiver": *req.Receiver} {
		if _, err := s.users.Get(ctx, id); err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("failed to get %s: %w", field, err)
			}
			fields[field] = []string{fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)}
		}
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	n := &model.Notification{
		SenderID:         *req.Sender,
		ReceiverID:       *req.Receiver,
		Content:          req.Content,
		SentAt:           s.now().UTC(),
		NotificationType: req.NotificationType,
		IsRead:           false,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	event.EmitBestEffort(ctx, s.events, model.EventNotificationCreated, n)
	return n, nil
}
