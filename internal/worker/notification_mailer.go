package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwalitptl/scheduling-api/internal/email"
	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/repository"
	"github.com/jwalitptl/scheduling-api/pkg/logger"
	"github.com/jwalitptl/scheduling-api/pkg/messaging"
)

// NotificationMailer emails the receiver of every email-type notification
// relayed on the notification.created channel.
type NotificationMailer struct {
	broker messaging.MessageBroker
	users  repository.UserRepository
	mailer email.Service
	logger *logger.Logger
}

func NewNotificationMailer(broker messaging.MessageBroker, users repository.UserRepository, mailer email.Service, logger *logger.Logger) *NotificationMailer {
	return &NotificationMailer{
		broker: broker,
		users:  users,
		mailer: mailer,
		logger: logger,
	}
}

// Start subscribes and returns; delivery runs until ctx is done.
func (m *NotificationMailer) Start(ctx context.Context) error {
	if err := m.broker.Subscribe(ctx, model.EventNotificationCreated, func(payload []byte) error {
		return m.Handle(ctx, payload)
	}); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", model.EventNotificationCreated, err)
	}
	m.logger.Info("Notification mailer subscribed", "channel", model.EventNotificationCreated)
	return nil
}

func (m *NotificationMailer) Handle(ctx context.Context, payload []byte) error {
	var n model.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return fmt.Errorf("failed to decode notification: %w", err)
	}

	if !strings.EqualFold(strings.TrimSpace(n.NotificationType), model.NotificationTypeEmail) {
		return nil
	}

	receiver, err := m.users.Get(ctx, n.ReceiverID)
	if err != nil {
		return fmt.Errorf("failed to load receiver %d: %w", n.ReceiverID, err)
	}

	subject := "New notification"
	if sender, err := m.users.Get(ctx, n.SenderID); err == nil {
		subject = fmt.Sprintf("New notification from %s %s", sender.FirstName, sender.LastName)
	}

	if err := m.mailer.SendNotification(ctx, receiver.Email, subject, n.Content); err != nil {
		return err
	}

	m.logger.Info("Notification emailed",
		"notification_id", n.ID.String(),
		"receiver", n.ReceiverID)
	return nil
}
