package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	log.With(map[string]any{"plugin": "my_plugin"}).Info("registered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "my_plugin", entry["plugin"])
	require.Equal(t, "registered", entry["message"])
}

func TestErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Writer: &buf})
	require.NoError(t, err)

	log.Error(errors.New("boom"), "operation failed")

	require.Contains(t, buf.String(), "boom")
	require.Contains(t, buf.String(), "operation failed")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var log *Logger

	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error(errors.New("x"), "x")
	require.Nil(t, log.With(map[string]any{"k": "v"}))
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Pretty: true, Writer: &buf})
	require.NoError(t, err)

	log.Info("hello")

	// Console format, not JSON.
	require.Contains(t, buf.String(), "hello")
	require.False(t, json.Valid(buf.Bytes()))
}
