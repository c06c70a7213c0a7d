package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/couchcryptid/air-quality-predictor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{LogLevel: "info", LogFormat: "json"})

	logger.Debug("hidden")
	logger.Info("prediction served", "severity", "Medium")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "prediction served", line["msg"])
	assert.Equal(t, "Medium", line["severity"])
	assert.Equal(t, "air-quality-predictor", line["service"])
}

func TestNewLogger_TextDebugToggle(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{LogLevel: "error", LogFormat: "text", Debug: true})

	logger.Debug("model loaded")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `msg="model loaded"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
