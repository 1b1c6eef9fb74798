package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationTypeEmail notifications are also delivered by mail.
const NotificationTypeEmail = "email"

type Notification struct {
	ID               uuid.UUID `json:"notification_id" db:"notification_id"`
	SenderID         int64     `json:"sender" db:"sender_id"`
	ReceiverID       int64     `json:"receiver" db:"receiver_id"`
	Content          string    `json:"content" db:"content"`
	SentAt           time.Time `json:"sent_at" db:"sent_at"`
	NotificationType string    `json:"notification_type" db:"notification_type"`
	IsRead           bool      `json:"is_read" db:"is_read"`
}

// CreateNotificationRequest ignores any client supplied sent_at or is_read.
type CreateNotificationRequest struct {
	Sender           *int64 `json:"sender" binding:"required"`
	Receiver         *int64 `json:"receiver" binding:"required"`
	Content          string `json:"content" binding:"required"`
	NotificationType string `json:"notification_type" binding:"required,max=255"`
}
