package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown", "n", 1)
	l.Error("also shown")

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 2)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.EqualValues(t, 1, entries[0]["n"])
}

func TestChildAttributes(t *testing.T) {
	var buf bytes.Buffer
	root := New(&buf, "debug")
	child := root.WithComponent("executor").WithTask("t-1")
	child.Info("dispatched", "mode", "simplified")
	root.Info("plain")

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 2)
	assert.Equal(t, "executor", entries[0]["component"])
	assert.Equal(t, "t-1", entries[0]["task_id"])
	assert.Equal(t, "simplified", entries[0]["mode"])
	assert.NotContains(t, entries[1], "task_id")
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")
	l, err := NewLogger(path, "info")
	require.NoError(t, err)
	l.Info("hello")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	entries := decodeLines(t, data)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0]["msg"])
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	l.Error("discarded")
	assert.NoError(t, l.Close())
}
