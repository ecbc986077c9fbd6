package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.HttpServerPort)
	assert.Equal(t, 256, cfg.SessionQueueSize)
	assert.Equal(t, "ws://127.0.0.1:8080/ws", cfg.ServerWsUrl)
	assert.Equal(t, 100, cfg.ClientHistoryLimit)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "9100")
	t.Setenv("SESSION_QUEUE_SIZE", "8")
	t.Setenv("SERVER_WS_URL", "ws://relay.internal:9100/ws")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, uint16(9100), cfg.HttpServerPort)
	assert.Equal(t, 8, cfg.SessionQueueSize)
	assert.Equal(t, "ws://relay.internal:9100/ws", cfg.ServerWsUrl)
}

func TestLoadConfigRejectsLowPort(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "80")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsZeroQueue(t *testing.T) {
	t.Setenv("SESSION_QUEUE_SIZE", "0")

	_, err := LoadConfig()
	require.Error(t, err)
}
