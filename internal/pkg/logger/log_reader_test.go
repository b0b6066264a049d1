package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLogFile(t *testing.T, lines ...string) *ZapLogger {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return &ZapLogger{logger: NewNopLogger().logger, filePath: path}
}

func TestGetLogsNewestFirst(t *testing.T) {
	l := writeLogFile(t,
		`{"level":"INFO","timestamp":"t1","message":"first","module":"PageService"}`,
		`not json`,
		`{"level":"ERROR","timestamp":"t2","message":"second","module":"ConsumerService"}`,
		`{"level":"INFO","timestamp":"t3","message":"third"}`,
	)

	all, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Message)
	assert.Equal(t, "first", all[2].Message)
	assert.NotEmpty(t, all[0].Id)

	errorsOnly, err := l.GetLogs("ERROR", 10, 0)
	require.NoError(t, err)
	require.Len(t, errorsOnly, 1)
	assert.Equal(t, "ConsumerService", errorsOnly[0].Module)

	page, err := l.GetLogs("", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "second", page[0].Message)

	empty, err := l.GetLogs("", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetLogById(t *testing.T) {
	l := writeLogFile(t, `{"id":"abc","level":"WARN","timestamp":"t1","message":"slow"}`)

	entry, err := l.GetLogById("abc")
	require.NoError(t, err)
	assert.Equal(t, "slow", entry.Message)

	_, err = l.GetLogById("missing")
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("Test", "ignored", nil)
	l.Error("Test", "ignored", map[string]interface{}{"error": "boom"})

	logs, err := l.GetLogs("", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
