package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger(level LogLevel) (*ForgeLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewLogger(&Config{Level: level, Format: "json", Output: buf})
	return logger, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newJSONLogger(LevelWarn)
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	assert.Zero(t, buf.Len(), "below-threshold messages must not be written")

	logger.Warn(ctx, nil, "warn message")
	assert.NotZero(t, buf.Len())
}

func TestStructuredFields(t *testing.T) {
	logger, buf := newJSONLogger(LevelInfo)

	logger.Info(context.Background(), "materializing", "name", "web", "template", "react-vite")

	entry := decodeLine(t, buf)
	assert.Equal(t, "materializing", entry["msg"])
	assert.Equal(t, "web", entry["name"])
	assert.Equal(t, "react-vite", entry["template"])
}

func TestWithComponent(t *testing.T) {
	logger, buf := newJSONLogger(LevelInfo)

	logger.WithComponent("assembler").Info(context.Background(), "hello")

	entry := decodeLine(t, buf)
	assert.Equal(t, "assembler", entry["component"])
}

func TestWithFields(t *testing.T) {
	logger, buf := newJSONLogger(LevelInfo)

	scoped := logger.With("project", "myapp")
	scoped.Info(context.Background(), "created")

	entry := decodeLine(t, buf)
	assert.Equal(t, "myapp", entry["project"])

	// The parent logger is unaffected.
	buf.Reset()
	logger.Info(context.Background(), "plain")
	entry = decodeLine(t, buf)
	assert.NotContains(t, entry, "project")
}

func TestErrorField(t *testing.T) {
	logger, buf := newJSONLogger(LevelInfo)

	logger.Error(context.Background(), fmt.Errorf("boom"), "failed")

	entry := decodeLine(t, buf)
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "failed", entry["msg"])
}
