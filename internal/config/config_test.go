package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DB_DSN", "OUTPUT_DIR", "EXPORT_ENABLED", "MAX_UPLOAD_BYTES", "MAX_DISPLAY_ERRORS", "REQUEST_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "", cfg.DBDSN)
	assert.Equal(t, "outputs", cfg.OutputDir)
	assert.False(t, cfg.ExportEnabled)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 10, cfg.MaxDisplayErrors)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("EXPORT_ENABLED", "true")
	t.Setenv("MAX_UPLOAD_BYTES", "2048")
	t.Setenv("MAX_DISPLAY_ERRORS", "5")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.True(t, cfg.ExportEnabled)
	assert.Equal(t, int64(2048), cfg.MaxUploadBytes)
	assert.Equal(t, 5, cfg.MaxDisplayErrors)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Run("NotAnInteger", func(t *testing.T) {
		t.Setenv("MAX_DISPLAY_ERRORS", "ten")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "MAX_DISPLAY_ERRORS")
	})

	t.Run("NotABool", func(t *testing.T) {
		t.Setenv("EXPORT_ENABLED", "sometimes")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "EXPORT_ENABLED")
	})

	t.Run("NonPositiveUploadLimit", func(t *testing.T) {
		t.Setenv("MAX_UPLOAD_BYTES", "0")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("BadDurationFallsBack", func(t *testing.T) {
		t.Setenv("REQUEST_TIMEOUT", "soon")
		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	})
}
