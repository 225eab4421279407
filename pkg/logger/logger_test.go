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

func TestNewWritesJSONWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, Config{Level: "info"}, RequestIDExtractor)

	ctx := WithRequestID(context.Background(), "req-1")
	log.InfoContext(ctx, "article created", slog.String("slug", "foo"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "article created", rec["msg"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "foo", rec["slug"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, Config{Level: "warn", Format: "text"})

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestExtractorSkippedWithoutValue(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, Config{}, RequestIDExtractor, nil)

	log.InfoContext(context.Background(), "no id")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestFanoutWithAttrs(t *testing.T) {
	var a, b bytes.Buffer
	h := newFanout(slog.NewTextHandler(&a, nil), slog.NewTextHandler(&b, nil))
	slog.New(h).With("k", "v").Info("both")

	assert.Contains(t, a.String(), "k=v")
	assert.Contains(t, b.String(), "k=v")
}
