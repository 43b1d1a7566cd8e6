package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/dmitrymomot/otpkit/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONDefaults(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithAttr(slog.String("app", "otpkit")))

	log.Info("hello", "key", "value")
	log.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug must be filtered at the default info level")

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "value", record["key"])
	assert.Equal(t, "otpkit", record["app"])
}

func TestNewTextFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(logger.WithFormat(logger.FormatText), logger.WithOutput(&buf))

	log.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestWithFormatPanicsOnInvalid(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("yaml")))
	})
}

func TestWithLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelError))

	log.Warn("dropped")
	log.Error("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
