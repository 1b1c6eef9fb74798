package main

import (
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("WORKER_BATCH_SIZE", "25")
	t.Setenv("WORKER_RETRY_DELAY", "250ms")
	t.Setenv("WORKER_MAILER", "false")

	var s Settings
	require.NoError(t, envconfig.Process("worker", &s))

	assert.Equal(t, 25, s.BatchSize)
	assert.Equal(t, 5*time.Second, s.PollInterval)
	assert.Equal(t, 3, s.RetryAttempts)
	assert.Equal(t, 250*time.Millisecond, s.RetryDelay)
	assert.Equal(t, 168*time.Hour, s.Retention)
	assert.False(t, s.Mailer)

	pc := s.processorConfig()
	assert.Equal(t, 25, pc.BatchSize)
	assert.Equal(t, 250*time.Millisecond, pc.RetryDelay)
}
