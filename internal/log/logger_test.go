package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teacherlog/teacherlog/internal/config"
)

func TestJSONLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	l.Slog().Info("request handled", "status", 200)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "request handled", entry["msg"])
	require.EqualValues(t, 200, entry["status"])
}

func TestTextLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	l.Slog().Info("server started", "addr", "0.0.0.0:8001")

	out := buf.String()
	require.Contains(t, out, "server started")
	require.Contains(t, out, "addr=0.0.0.0:8001")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN")

	l.Slog().Info("dropped")
	require.Zero(t, buf.Len())

	l.Slog().Warn("kept")
	require.NotZero(t, buf.Len())
}
