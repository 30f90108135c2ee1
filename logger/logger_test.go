package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", &buf)
	l.Debug("hidden")
	l.Info("solve finished", "distance", 0.5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "solve finished", rec["msg"])
	assert.Equal(t, 0.5, rec["distance"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l := NewText("debug", &buf)
	l.Debug("test message", "iter", 3)

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), "iter=3")
}

func TestNewFormat(t *testing.T) {
	var buf bytes.Buffer

	l, err := NewFormat("text", "info", &buf)
	require.NoError(t, err)
	l.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	_, err = NewFormat("xml", "info", &buf)
	assert.ErrorContains(t, err, "unknown format")
}

func TestSetDefaultAndWith(t *testing.T) {
	prev := Default
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(New("info", &buf))
	With("run_id", "abc").Info("tagged")

	assert.Contains(t, buf.String(), `"run_id":"abc"`)
}
