package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("invalid"))
}

func TestWithContext(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	InitWithWriter(Config{Level: "debug", Format: "json"}, &buf)

	ctx := WithRequestID(context.Background(), "req-123")
	WithContext(ctx).Info("sheet read", "sheet", "Data")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sheet read", entry["msg"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "Data", entry["sheet"])
}

func TestWithContext_NoRequestID(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	InitWithWriter(Config{Level: "info", Format: "text"}, &buf)

	WithContext(context.Background()).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestInit_LevelFiltering(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	InitWithWriter(Config{Level: "error", Format: "json"}, &buf)

	WithContext(context.Background()).Warn("dropped")
	assert.Empty(t, buf.String())
}
