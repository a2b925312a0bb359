package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerWritesFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	path := filepath.Join(t.TempDir(), "logs", "profit.log")
	logger := SetupLogger(Config{LogLevel: "debug", LogFile: path})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	logger.Info().Str("k", "v").Msg("hello")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"service":"profit-service"`)
}

func TestSetupLoggerBadLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	SetupLogger(Config{LogLevel: "loud"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
