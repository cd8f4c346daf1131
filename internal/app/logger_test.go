package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Otacon/emesene/internal/config"
)

func TestNewLogger_ProfileSettingsOverrideCLI(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The command line asked for text/info; the profile upgrades both.
	cfg := &Config{LogFormat: "text", LogLevel: "info"}
	settings := &config.Settings{LogLevel: "debug", LogFormat: "json"}
	out := &bytes.Buffer{}

	// --- Act ---
	logger := newLogger(cfg, settings, out)
	logger.Debug("visible at the profile's level")

	// --- Assert ---
	require.NotZero(t, out.Len(), "debug output must be enabled by the profile override")

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record), "the profile's json format must win")
	assert.Equal(t, "visible at the profile's level", record["msg"])
}

func TestNewLogger_NilSettingsKeepCLIValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{LogFormat: "text", LogLevel: "warn"}
	out := &bytes.Buffer{}

	logger := newLogger(cfg, nil, out)
	logger.Info("filtered")
	assert.Zero(t, out.Len())

	logger.Warn("emitted")
	assert.Contains(t, out.String(), "emitted")
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	cfg := &Config{LogFormat: "text", LogLevel: "loud"}
	out := &bytes.Buffer{}

	logger := newLogger(cfg, &config.Settings{}, out)
	logger.Debug("filtered")
	assert.Zero(t, out.Len())

	logger.Info("emitted")
	assert.Contains(t, out.String(), "emitted")
}
