package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/pkg/logger"
	"github.com/jwalitptl/scheduling-api/pkg/metrics"
)

type fakeOutboxRepo struct {
	pending []*model.OutboxEvent
	results map[uuid.UUID]error
	err     error
}

func (r *fakeOutboxRepo) Create(context.Context, *model.OutboxEvent) error { return nil }

func (r *fakeOutboxRepo) ProcessPending(ctx context.Context, limit int, fn func(context.Context, *model.OutboxEvent) error) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.results = map[uuid.UUID]error{}
	n := 0
	for i, e := range r.pending {
		if i == limit {
			break
		}
		err := fn(ctx, e)
		r.results[e.ID] = err
		if err == nil {
			n++
		}
	}
	return n, nil
}

func (r *fakeOutboxRepo) DeleteProcessedBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type fakeBroker struct {
	failures  map[string]int
	published map[string][][]byte
}

func (b *fakeBroker) Publish(_ context.Context, topic string, payload []byte) error {
	if b.failures[topic] > 0 {
		b.failures[topic]--
		return errors.New("redis unavailable")
	}
	if b.published == nil {
		b.published = map[string][][]byte{}
	}
	b.published[topic] = append(b.published[topic], payload)
	return nil
}

func (b *fakeBroker) Subscribe(context.Context, string, func([]byte) error) error { return nil }
func (b *fakeBroker) Close() error                                                { return nil }

func newEvent(eventType string) *model.OutboxEvent {
	return &model.OutboxEvent{ID: uuid.New(), EventType: eventType, Payload: json.RawMessage(`{}`)}
}

func newProcessor(t *testing.T, repo *fakeOutboxRepo, broker *fakeBroker, attempts int) (*OutboxProcessor, *metrics.Metrics) {
	t.Helper()
	m := metrics.New("test", prometheus.NewRegistry())
	p, err := NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:     10,
		PollInterval:  time.Second,
		RetryAttempts: attempts,
	}, logger.NewLogger(&logger.Config{Output: io.Discard}), m)
	require.NoError(t, err)
	return p, m
}

func TestProcessBatch_RetriesThenPublishes(t *testing.T) {
	created := newEvent(model.EventNotificationCreated)
	broken := newEvent(model.EventUserCreated)
	repo := &fakeOutboxRepo{pending: []*model.OutboxEvent{created, broken}}
	broker := &fakeBroker{failures: map[string]int{
		model.EventNotificationCreated: 1,
		model.EventUserCreated:         5,
	}}

	p, m := newProcessor(t, repo, broker, 3)

	n, err := p.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.NoError(t, repo.results[created.ID])
	assert.Error(t, repo.results[broken.ID])
	assert.Len(t, broker.published[model.EventNotificationCreated], 1)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.OutboxEventsProcessed))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OutboxEventsFailed))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OutboxRetries.WithLabelValues(model.EventNotificationCreated)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.OutboxRetries.WithLabelValues(model.EventUserCreated)))
}

func TestProcessBatch_RepositoryError(t *testing.T) {
	repo := &fakeOutboxRepo{err: errors.New("connection reset")}
	p, m := newProcessor(t, repo, &fakeBroker{}, 1)

	_, err := p.ProcessBatch(context.Background())
	require.Error(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("process_pending_events", "error")))
}

func TestNewOutboxProcessor_InvalidConfig(t *testing.T) {
	_, err := NewOutboxProcessor(&fakeOutboxRepo{}, &fakeBroker{}, OutboxProcessorConfig{}, nil, nil)
	assert.Error(t, err)
}
