// Package config provides application configuration.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8001)
	Port int `envconfig:"PORT" default:"8001"`

	// MongoURL is the document store connection URL.
	// Env: MONGO_URL
	MongoURL string `envconfig:"MONGO_URL"`

	// DBURL is an alternative store connection URL; MONGO_URL wins when
	// both are set. Accepts mongodb://, sqlite:// and postgres:// schemes.
	// Env: DB_URL
	DBURL string `envconfig:"DB_URL"`

	// DBName is the document store database name.
	// Env: DB_NAME (default: teacherlog)
	DBName string `envconfig:"DB_NAME" default:"teacherlog"`

	// CORSOrigins is a comma-separated list of allowed origins.
	// Env: CORS_ORIGINS
	CORSOrigins string `envconfig:"CORS_ORIGINS"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// OpenAIAPIKey enables the summarization endpoint when set.
	// Env: OPENAI_API_KEY
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	// OpenAIBaseURL overrides the OpenAI API base URL.
	// Env: OPENAI_BASE_URL
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	// OpenAIModel is the chat model identifier.
	// Env: OPENAI_MODEL (default: gpt-4o-mini)
	OpenAIModel string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// OpenAITimeout is the completion request timeout in seconds.
	// Env: OPENAI_TIMEOUT (default: 60)
	OpenAITimeout float64 `envconfig:"OPENAI_TIMEOUT" default:"60"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	opts := []AppConfigOption{
		WithHost(e.Host),
		WithPort(e.Port),
		WithDBName(e.DBName),
		WithLogLevel(e.LogLevel),
		WithLogFormat(parseLogFormat(e.LogFormat)),
		WithCORSOrigins(ParseOrigins(e.CORSOrigins)),
	}

	if e.MongoURL != "" {
		opts = append(opts, WithDBURL(e.MongoURL))
	} else if e.DBURL != "" {
		opts = append(opts, WithDBURL(e.DBURL))
	}

	endpoint := NewOpenAIEndpoint()
	endpoint.apiKey = e.OpenAIAPIKey
	endpoint.baseURL = e.OpenAIBaseURL
	if e.OpenAIModel != "" {
		endpoint.model = e.OpenAIModel
	}
	if e.OpenAITimeout > 0 {
		endpoint.timeout = time.Duration(e.OpenAITimeout * float64(time.Second))
	}
	opts = append(opts, WithOpenAIEndpoint(endpoint))

	return NewAppConfigWithOptions(opts...)
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch s {
	case "json", "JSON":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
