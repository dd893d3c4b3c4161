package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port          string
	AllowedOrigin string
	Environment   string
	// Webhook
	WebhookURL         string
	WebhookTimeout     time.Duration
	WebhookSendAliases bool
	// Logging
	LogLevel  string
	LogFormat string
	// Chat transcripts kept per session
	SessionMaxMessages int
	SessionMaxCount    int
	SessionIdleTTL     time.Duration
	// Optional YAML file overriding the built-in phrase catalog
	PhrasesFile string
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:               getEnvDefault("PORT", "8080"),
		AllowedOrigin:      getEnvDefault("ALLOWED_ORIGIN", "*"),
		Environment:        strings.ToLower(getEnvDefault("APP_ENV", EnvProduction)),
		WebhookURL:         strings.TrimSpace(os.Getenv("WEBHOOK_URL")),
		WebhookTimeout:     time.Duration(getEnvIntDefault("WEBHOOK_TIMEOUT_MS", 30000)) * time.Millisecond,
		WebhookSendAliases: getEnvBoolDefault("WEBHOOK_SEND_ALIASES", true),
		LogLevel:           getEnvDefault("LOG_LEVEL", "info"),
		LogFormat:          getEnvDefault("LOG_FORMAT", "json"),
		SessionMaxMessages: getEnvIntDefault("SESSION_MAX_MESSAGES", 40),
		SessionMaxCount:    getEnvIntDefault("SESSION_MAX_COUNT", 10000),
		SessionIdleTTL:     time.Duration(getEnvIntDefault("SESSION_IDLE_TTL_MINUTES", 1440)) * time.Minute,
		PhrasesFile:        os.Getenv("PHRASES_FILE"),
	}
}

// Validate reports configuration that would make every chat request fail.
func (c Config) Validate() error {
	if c.WebhookURL == "" {
		return fmt.Errorf("WEBHOOK_URL is required")
	}
	u, err := url.Parse(c.WebhookURL)
	if err != nil {
		return fmt.Errorf("invalid WEBHOOK_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid WEBHOOK_URL %q: must be an absolute http(s) URL", c.WebhookURL)
	}
	if c.WebhookTimeout < 0 {
		return fmt.Errorf("WEBHOOK_TIMEOUT_MS must not be negative")
	}
	if c.SessionMaxCount < 0 || c.SessionIdleTTL < 0 {
		return fmt.Errorf("SESSION_MAX_COUNT and SESSION_IDLE_TTL_MINUTES must not be negative")
	}
	return nil
}

// IsDevelopment gates diagnostic details in error envelopes.
func (c Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBoolDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}
