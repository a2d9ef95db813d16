package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultPublicBaseURL, cfg.PublicBaseURL)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultMinRetryDelay, cfg.MinRetryDelay)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Zero(t, cfg.MaxRequestsPerSec)
	assert.False(t, cfg.IsAtHome)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("HIVEFORGE_TOKEN", "tok-123")
	t.Setenv("HIVEFORGE_BASE_URL", "https://api.staging.hiveforge.dev")
	t.Setenv("HIVEFORGE_MAX_RETRIES", "2")
	t.Setenv("HIVEFORGE_TIMEOUT", "45s")
	t.Setenv("HIVEFORGE_IS_AT_HOME", "true")
	t.Setenv("HIVEFORGE_WORKFLOW_KEY", "wf-789")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tok-123", cfg.Token)
	assert.Equal(t, "https://api.staging.hiveforge.dev", cfg.BaseURL)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.True(t, cfg.IsAtHome)
	assert.Equal(t, "wf-789", cfg.WorkflowKey)
}

func TestLoadFromBytes(t *testing.T) {
	doc := []byte(`
token: yaml-token
max_retries: 3
min_retry_delay: 100ms
log_level: debug
`)

	cfg, err := LoadFromBytes(doc)
	require.NoError(t, err)

	assert.Equal(t, "yaml-token", cfg.Token)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.MinRetryDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoadFromBytesInvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("token: [unclosed"))
	assert.Error(t, err)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"empty base URL", func(cfg *Config) { cfg.BaseURL = "" }},
		{"malformed base URL", func(cfg *Config) { cfg.BaseURL = "not a url" }},
		{"negative retries", func(cfg *Config) { cfg.MaxRetries = -1 }},
		{"zero timeout", func(cfg *Config) { cfg.Timeout = 0 }},
		{"unknown log level", func(cfg *Config) { cfg.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}
