package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ALLOWED_ORIGIN", "APP_ENV", "WEBHOOK_URL", "WEBHOOK_TIMEOUT_MS",
		"WEBHOOK_SEND_ALIASES", "LOG_LEVEL", "LOG_FORMAT", "SESSION_MAX_MESSAGES", "SESSION_MAX_COUNT", "SESSION_IDLE_TTL_MINUTES", "PHRASES_FILE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 30*time.Second, cfg.WebhookTimeout)
	assert.True(t, cfg.WebhookSendAliases)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 40, cfg.SessionMaxMessages)
	assert.Equal(t, 10000, cfg.SessionMaxCount)
	assert.Equal(t, 24*time.Hour, cfg.SessionIdleTTL)
	assert.Empty(t, cfg.PhrasesFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "Development")
	t.Setenv("WEBHOOK_URL", " https://hooks.example.com/webhook/chat ")
	t.Setenv("WEBHOOK_TIMEOUT_MS", "1500")
	t.Setenv("WEBHOOK_SEND_ALIASES", "off")
	t.Setenv("SESSION_MAX_MESSAGES", "not-a-number")
	t.Setenv("SESSION_IDLE_TTL_MINUTES", "30")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "https://hooks.example.com/webhook/chat", cfg.WebhookURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.WebhookTimeout)
	assert.False(t, cfg.WebhookSendAliases)
	assert.Equal(t, 40, cfg.SessionMaxMessages)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{WebhookURL: "https://hooks.example.com/webhook/chat"}},
		{name: "missing url", cfg: Config{}, wantErr: "WEBHOOK_URL is required"},
		{name: "relative url", cfg: Config{WebhookURL: "/webhook/chat"}, wantErr: "absolute http(s) URL"},
		{name: "unsupported scheme", cfg: Config{WebhookURL: "ftp://hooks.example.com"}, wantErr: "absolute http(s) URL"},
		{
			name:    "negative timeout",
			cfg:     Config{WebhookURL: "http://localhost:5678/webhook/chat", WebhookTimeout: -time.Second},
			wantErr: "must not be negative",
		},
		{
			name:    "negative session ttl",
			cfg:     Config{WebhookURL: "http://localhost:5678/webhook/chat", SessionIdleTTL: -time.Minute},
			wantErr: "SESSION_IDLE_TTL_MINUTES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
