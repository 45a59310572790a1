package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"":        log.InfoLevel,
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		" debug ": log.DebugLevel,
		"Warning": log.WarnLevel,
		"\tERROR": log.ErrorLevel,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewConsole(t *testing.T) {
	t.Setenv(EnvLevel, "")
	var buf bytes.Buffer
	logger, err := New("warn", "", &buf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")
}

func TestNewEnvOverride(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	var buf bytes.Buffer
	logger, err := New("error", "", &buf)
	require.NoError(t, err)

	logger.Debug("verbose")
	assert.Contains(t, buf.String(), "verbose")

	t.Setenv(EnvLevel, "nonsense")
	_, err = New("info", "", &buf)
	assert.Error(t, err)
}

func TestNewEnvOverrideTrimmed(t *testing.T) {
	t.Setenv(EnvLevel, " Debug ")
	var buf bytes.Buffer
	logger, err := New("error", "", &buf)
	require.NoError(t, err)

	logger.Debug("verbose")
	assert.Contains(t, buf.String(), "verbose")
}

func TestNewLogFile(t *testing.T) {
	t.Setenv(EnvLevel, "")
	path := filepath.Join(t.TempDir(), "goxdo.log")
	var buf bytes.Buffer
	logger, err := New("info", path, &buf)
	require.NoError(t, err)

	logger.Info("to both")
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "to both")
	assert.Contains(t, buf.String(), "to both")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")
	assert.NoError(t, logger.Close())
}
