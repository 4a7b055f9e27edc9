package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetLogger_CapturesRecords(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	Info("Note added", "reference", "John 3:16")
	Warnf("notes file %s unreadable", "x.json")

	out := buf.String()
	assert.Contains(t, out, `"msg":"Note added"`)
	assert.Contains(t, out, `"reference":"John 3:16"`)
	assert.Contains(t, out, `"msg":"notes file x.json unreadable"`)
}

func TestInitLogger_WritesToStateDir(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)
	t.Cleanup(func() { SetLogger(nil) })

	InitLogger(Options{Level: slog.LevelInfo})
	Info("hello", "k", "v")

	data, err := os.ReadFile(filepath.Join(stateDir, "verse-notes", "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
