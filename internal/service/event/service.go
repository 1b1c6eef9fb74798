package event

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/repository"
)

// Emitter records integration events for the outbox relay.
type Emitter interface {
	Emit(ctx context.Context, eventType string, payload interface{}) error
}

type EventService struct {
	outboxRepo repository.OutboxRepository
}

func NewEventService(outboxRepo repository.OutboxRepository) *EventService {
	return &EventService{outboxRepo: outboxRepo}
}

func (s *EventService) Emit(ctx context.Context, eventType string, payload interface{}) error {
	event, err := model.NewOutboxEvent(eventType, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := s.outboxRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

// EmitBestEffort records an event and only logs failures, so a broken outbox
// never fails the write that produced the event.
func EmitBestEffort(ctx context.Context, e Emitter, eventType string, payload interface{}) {
	if e == nil {
		return
	}
	if err := e.Emit(ctx, eventType, payload); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("event_type", eventType).Msg("failed to record outbox event")
	}
}
