package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tareqmamari/logs-mcp-server/internal/config"
)

func TestNew_JSONFormat(t *testing.T) {
	cfg := &config.Config{LogLevel: "info", LogFormat: "json"}
	logger, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNew_ConsoleFormat(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", LogFormat: "console"}
	logger, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNew_RejectsInvalidLevel(t *testing.T) {
	cfg := &config.Config{LogLevel: "loud", LogFormat: "json"}
	_, err := New(cfg)
	require.Error(t, err)
}
