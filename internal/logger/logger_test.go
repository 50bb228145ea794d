package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	l, err := New(&Config{LogFilePath: logPath, Level: LevelDebug, EnableConsole: false})
	require.NoError(t, err)
	defer l.Close()

	l.Info("hello", String("who", "world"))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "who=world")
}

func TestLevelFiltering(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	l, err := New(&Config{LogFilePath: logPath, Level: LevelWarn, EnableConsole: false})
	require.NoError(t, err)
	defer l.Close()

	l.Debug("should not appear")
	l.Info("should not appear either")
	l.Warn("should appear")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "should appear")
}

func TestWithAddsPrefixFields(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	l, err := New(&Config{LogFilePath: logPath, Level: LevelDebug, EnableConsole: false})
	require.NoError(t, err)
	defer l.Close()

	child := l.With(String("run_id", "abc123"))
	child.Info("scan complete", Int("segments", 3))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "run_id=abc123")
	assert.Contains(t, string(data), "segments=3")
}
