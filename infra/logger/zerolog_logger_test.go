package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	l := New("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Infow("info", map[string]any{"k": 2})
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("engine", &buf)
	l.Infow("prediction", map[string]any{"vessel_id": "v1", "risk_level": "high"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "v1", entry["vessel_id"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "prediction", entry["message"])
}

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)
	require.NoError(t, SetLevel("warn"))

	var buf bytes.Buffer
	l := NewWithWriter("test", &buf)
	l.Infof("hidden")
	assert.Empty(t, buf.String())
	l.Warnf("shown")
	assert.Contains(t, buf.String(), "shown")

	assert.NoError(t, SetLevel(""))
	assert.Error(t, SetLevel("loud"))
}
