package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", "", FormatText, false)
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Errorf("error %d", 7)

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "[WARN] warn message")
	assert.Contains(t, out, "[ERROR] error 7")
}

func TestLoggerFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("debug", "", FormatText, false)
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))

	child := logger.With(Field{Key: "identity", Value: "alice"})
	child.Info("loaded", Field{Key: "age", Value: "2d"})

	assert.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), "loaded age=2d identity=alice"))
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	out := NewConsoleOutput(&buf, FormatJSON)

	err := out.Write(LogEntry{Timestamp: time.Unix(0, 0).UTC(), Level: "INFO", Message: "hello"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestFileOutputCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "app.log")

	logger, err := NewLogger("info", path, FormatText, false)
	require.NoError(t, err)
	logger.Info("written to file")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, LevelError, ParseLogLevel("error"))
	assert.Equal(t, LevelInfo, ParseLogLevel("bogus"))
}

func TestGlobalLoggerWithoutInit(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() {
		LogDebug("nothing")
		LogInfof("nothing %d", 1)
		LogWarn("nothing")
		LogErrorf("nothing")
	})
}

func TestLoggerWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewLogger("info", path, ParseLogFormat("JSON"), false)
	require.NoError(t, err)
	logger.With(Field{Key: "identity", Value: "alice"}).Info("plant loaded")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"plant loaded"`)
	assert.Contains(t, string(data), `"identity":"alice"`)
}

func TestParseLogFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseLogFormat("json"))
	assert.Equal(t, FormatText, ParseLogFormat("text"))
	assert.Equal(t, FormatText, ParseLogFormat(""))
}

func TestLogWithUsesGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("debug", "", FormatText, false)
	require.NoError(t, err)
	logger.AddOutput(NewConsoleOutput(&buf, FormatText))
	SetLogger(logger)
	t.Cleanup(func() { SetLogger(nil) })

	LogWith(Field{Key: "identity", Value: "bob"}).Debug("skipped")

	assert.Contains(t, buf.String(), "skipped identity=bob")
}

func TestLogWithoutGlobalLoggerDiscards(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() {
		LogWith(Field{Key: "identity", Value: "bob"}).Info("nothing")
	})
}
