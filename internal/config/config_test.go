package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func setup(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	for _, key := range []string{"PORT", "ENVIRONMENT", "LOG_LEVEL", "API_URL", "CDN_URL", "HTTP_TIMEOUT", "SESSION_TTL", "CLEAR_SELECTION_ON_SUCCESS"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setup(t)
	t.Setenv("API_ORIGIN", "https://larek.example.com/")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://larek.example.com/api/weblarek", cfg.Shop.APIURL)
	assert.Equal(t, "https://larek.example.com/content/weblarek", cfg.Shop.CDNURL)
	assert.Equal(t, 30*time.Second, cfg.Shop.HTTPTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.False(t, cfg.Session.ClearSelectionOnSuccess)
}

func TestLoad_Overrides(t *testing.T) {
	setup(t)
	t.Setenv("API_ORIGIN", "https://larek.example.com")
	t.Setenv("API_URL", "http://localhost:3000/api/weblarek")
	t.Setenv("CDN_URL", "http://localhost:3000/images")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("CLEAR_SELECTION_ON_SUCCESS", "true")
	t.Setenv("PORT", "9090")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://localhost:3000/api/weblarek", cfg.Shop.APIURL)
	assert.Equal(t, "http://localhost:3000/images", cfg.Shop.CDNURL)
	assert.Equal(t, 5*time.Second, cfg.Shop.HTTPTimeout)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.ClearSelectionOnSuccess)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing origin", map[string]string{"API_ORIGIN": ""}, "API_ORIGIN is required"},
		{"bad timeout", map[string]string{"API_ORIGIN": "http://x", "HTTP_TIMEOUT": "soon"}, "HTTP_TIMEOUT"},
		{"negative ttl", map[string]string{"API_ORIGIN": "http://x", "SESSION_TTL": "-1m"}, "SESSION_TTL"},
		{"bad bool", map[string]string{"API_ORIGIN": "http://x", "CLEAR_SELECTION_ON_SUCCESS": "maybe"}, "CLEAR_SELECTION_ON_SUCCESS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(&Config{Environment: "production", LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = NewLogger(&Config{Environment: "development", LogLevel: "nonsense"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
