package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, WarnLevel, ParseLevel("warn"))
	assert.Equal(t, InfoLevel, ParseLevel("bogus"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: InfoLevel, Output: &buf}).
		WithFields(map[string]interface{}{"worker_id": "w-1"})

	l.Debug("hidden")
	l.Error(errors.New("boom"), "Failed to publish event", "event_type", "user.created")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"worker_id":"w-1"`)
	assert.Contains(t, out, `"event_type":"user.created"`)
	assert.Contains(t, out, `"error":"boom"`)
}

func TestSetupInstallsGlobalAndContextLogger(t *testing.T) {
	prevLogger, prevCtx := log.Logger, zerolog.DefaultContextLogger
	defer func() {
		log.Logger = prevLogger
		zerolog.DefaultContextLogger = prevCtx
	}()

	var buf bytes.Buffer
	Setup(&Config{Level: InfoLevel, Output: &buf})

	log.Ctx(context.Background()).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")
}
