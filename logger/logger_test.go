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

func TestNew(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(WithWriter(&buf))
		l.Info("hello", "key", "value")
		assert.Contains(t, buf.String(), "hello")
		assert.Contains(t, buf.String(), "key=value")
	})

	t.Run("debug filtered by default", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithWriter(&buf)).Debug("hidden")
		assert.Empty(t, buf.String())

		New(WithWriter(&buf), WithDebug(true)).Debug("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithWriter(&buf), WithJSON(true)).Info("structured", "count", 42)

		var parsed map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
		assert.Equal(t, "structured", parsed["msg"])
		assert.EqualValues(t, 42, parsed["count"])
	})

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer
		New(WithWriter(&buf), WithPretty(true)).Info("pretty output")
		assert.Contains(t, buf.String(), "pretty output")
	})

	t.Run("multiple writers", func(t *testing.T) {
		var buf1, buf2 bytes.Buffer
		New(WithWriters(&buf1, &buf2)).Info("multi")
		assert.Contains(t, buf1.String(), "multi")
		assert.Contains(t, buf2.String(), "multi")
	})
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.False(t, l.Handler().Enabled(context.Background(), slog.LevelError))
	assert.NotPanics(t, func() {
		l.With("key", "value").WithGroup("g").Error("msg")
	})
}
