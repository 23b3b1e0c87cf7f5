package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton so infrastructure singletons (crontab, metrics server) can
// reach configuration without threading it through every constructor.
var globalConfig *Config

// Config holds all environment backed configuration for spatial-api.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	// PostgreSQL
	DatabaseURL      string        `env:"DATABASE_URL,notEmpty"`
	DBConnectRetries int           `env:"DB_CONNECT_RETRIES" envDefault:"10"`
	DBConnectBackoff time.Duration `env:"DB_CONNECT_BACKOFF" envDefault:"1500ms"`
	AutoMigrate      bool          `env:"AUTO_MIGRATE" envDefault:"true"`

	// OpenAI
	OpenAIAPIKey      string  `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string  `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel       string  `env:"OPENAI_MODEL" envDefault:"gpt-4.1-mini"`
	OpenAITemperature float32 `env:"OPENAI_TEMPERATURE" envDefault:"0.2"`
	// responses = provider-side conversation threading; chat_completions =
	// locally buffered history.
	OpenAIAPIMode string `env:"OPENAI_API_MODE" envDefault:"responses"`

	// Chat orchestration limits
	ChatMaxToolRounds        int           `env:"CHAT_MAX_TOOL_ROUNDS" envDefault:"3"`
	ChatMaxHistoryItems      int           `env:"CHAT_MAX_HISTORY_ITEMS" envDefault:"30"`
	ChatMaxConversations     int           `env:"CHAT_MAX_CONVERSATIONS" envDefault:"1024"`
	ChatConversationTTL      time.Duration `env:"CHAT_CONVERSATION_TTL" envDefault:"12h"`
	ChatSweepIntervalMinutes int           `env:"CHAT_SWEEP_INTERVAL_MINUTES" envDefault:"15"`
	GeocodeMaxCandidates     int           `env:"GEOCODE_MAX_CANDIDATES" envDefault:"5"`

	// Nominatim
	NominatimBaseURL   string        `env:"NOMINATIM_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
	NominatimUserAgent string        `env:"NOMINATIM_USER_AGENT" envDefault:"ursa-spatial-app/1.0"`
	NominatimEmail     string        `env:"NOMINATIM_EMAIL"`
	NominatimTimeout   time.Duration `env:"NOMINATIM_TIMEOUT" envDefault:"10s"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"spatial-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"ursa"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`
}

const (
	APIModeResponses       = "responses"
	APIModeChatCompletions = "chat_completions"
)

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.OpenAIAPIMode = strings.ToLower(strings.TrimSpace(cfg.OpenAIAPIMode))
	switch cfg.OpenAIAPIMode {
	case APIModeResponses, APIModeChatCompletions:
	default:
		return nil, fmt.Errorf("unsupported OPENAI_API_MODE %q", cfg.OpenAIAPIMode)
	}

	if cfg.ChatMaxToolRounds <= 0 {
		return nil, fmt.Errorf("CHAT_MAX_TOOL_ROUNDS must be positive, got %d", cfg.ChatMaxToolRounds)
	}
	if cfg.ChatMaxHistoryItems <= 0 {
		return nil, fmt.Errorf("CHAT_MAX_HISTORY_ITEMS must be positive, got %d", cfg.ChatMaxHistoryItems)
	}
	if cfg.GeocodeMaxCandidates <= 0 {
		return nil, fmt.Errorf("GEOCODE_MAX_CANDIDATES must be positive, got %d", cfg.GeocodeMaxCandidates)
	}

	cfg.NominatimBaseURL = strings.TrimRight(cfg.NominatimBaseURL, "/")
	cfg.OpenAIBaseURL = strings.TrimRight(cfg.OpenAIBaseURL, "/")

	globalConfig = cfg
	return cfg, nil
}

// GetGlobal returns the last loaded configuration, or nil before Load.
func GetGlobal() *Config {
	return globalConfig
}
