package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/internal/repository"
)

type outboxRepository struct {
	BaseRepository
}

func NewOutboxRepository(base BaseRepository) repository.OutboxRepository {
	return &outboxRepository{base}
}

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.Payload == nil {
		return fmt.Errorf("event payload cannot be nil")
	}

	query := `
		INSERT INTO outbox_events (
			id, event_type, payload, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`
	event.ID = uuid.New()
	event.CreatedAt = time.Now().UTC()
	event.UpdatedAt = event.CreatedAt
	event.Status = string(model.OutboxStatusPending)

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		[]byte(event.Payload),
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

// claimTimeout is how long a claimed event may stay in processing before
// another worker reclaims it.
const claimTimeout = 5 * time.Minute

// ProcessPending claims up to limit events in one short statement and runs fn
// on each after the row locks are released, so slow publishes never hold them.
func (r *outboxRepository) ProcessPending(ctx context.Context, limit int, fn func(context.Context, *model.OutboxEvent) error) (int, error) {
	claimQuery := `
		UPDATE outbox_events
		SET status = $1, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM outbox_events
			WHERE status = $2 OR (status = $1 AND updated_at < $3)
			ORDER BY created_at ASC
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, event_type, payload, status, error_message, retry_count,
			created_at, processed_at, updated_at
	`
	updateQuery := `
		UPDATE outbox_events
		SET status = $1,
			error_message = $2,
			retry_count = retry_count + $3,
			processed_at = CASE WHEN $1 = 'processed' THEN NOW() ELSE processed_at END,
			updated_at = NOW()
		WHERE id = $4
	`

	var events []*model.OutboxEvent
	staleBefore := time.Now().UTC().Add(-claimTimeout)
	if err := r.db.SelectContext(ctx, &events, claimQuery,
		string(model.OutboxStatusProcessing), string(model.OutboxStatusPending), staleBefore, limit); err != nil {
		return 0, fmt.Errorf("failed to claim pending events: %w", err)
	}
	// RETURNING does not preserve the subquery order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})

	processed := 0
	for _, evt := range events {
		status, errMsg, retries := model.OutboxStatusProcessed, (*string)(nil), 0
		if err := fn(ctx, evt); err != nil {
			msg := err.Error()
			status, errMsg, retries = model.OutboxStatusFailed, &msg, 1
		} else {
			processed++
		}

		if _, err := r.db.ExecContext(ctx, updateQuery, string(status), errMsg, retries, evt.ID); err != nil {
			return processed, fmt.Errorf("failed to update event %s: %w", evt.ID, err)
		}
	}
	return processed, nil
}

func (r *outboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM outbox_events
		WHERE status = 'processed'
		AND processed_at < $1
	`
	result, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete processed events: %w", err)
	}

	return result.RowsAffected()
}
