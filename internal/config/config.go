// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8001
	DefaultDBName          = "teacherlog"
	DefaultLogLevel        = "INFO"
	DefaultOpenAIModel     = "gpt-4o-mini"
	DefaultOpenAITimeout   = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// OpenAIEndpoint configures the text generation service.
type OpenAIEndpoint struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
}

// NewOpenAIEndpoint creates an OpenAIEndpoint with defaults.
func NewOpenAIEndpoint() OpenAIEndpoint {
	return OpenAIEndpoint{
		model:   DefaultOpenAIModel,
		timeout: DefaultOpenAITimeout,
	}
}

// APIKey returns the API key.
func (e OpenAIEndpoint) APIKey() string { return e.apiKey }

// BaseURL returns the base URL override, empty for the public API.
func (e OpenAIEndpoint) BaseURL() string { return e.baseURL }

// Model returns the chat model identifier.
func (e OpenAIEndpoint) Model() string { return e.model }

// Timeout returns the per-request timeout.
func (e OpenAIEndpoint) Timeout() time.Duration { return e.timeout }

// IsConfigured returns true when an API key is present. Without a key
// the summarization endpoint reports service unavailable.
func (e OpenAIEndpoint) IsConfigured() bool { return e.apiKey != "" }

// AppConfig holds the main application configuration.
type AppConfig struct {
	host        string
	port        int
	dbURL       string
	dbName      string
	corsOrigins []string
	logLevel    string
	logFormat   LogFormat
	openAI      OpenAIEndpoint
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:        DefaultHost,
		port:        DefaultPort,
		dbName:      DefaultDBName,
		corsOrigins: []string{},
		logLevel:    DefaultLogLevel,
		logFormat:   LogFormatPretty,
		openAI:      NewOpenAIEndpoint(),
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DBURL returns the store connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// DBName returns the database name used by the document store.
func (c AppConfig) DBName() string { return c.dbName }

// CORSOrigins returns the allowed cross-origin request origins.
func (c AppConfig) CORSOrigins() []string {
	origins := make([]string, len(c.corsOrigins))
	copy(origins, c.corsOrigins)
	return origins
}

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// OpenAI returns the text generation endpoint config.
func (c AppConfig) OpenAI() OpenAIEndpoint { return c.openAI }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDBURL sets the store connection URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithDBName sets the document store database name.
func WithDBName(name string) AppConfigOption {
	return func(c *AppConfig) { c.dbName = name }
}

// WithCORSOrigins sets the allowed cross-origin request origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithOpenAIEndpoint sets the text generation endpoint.
func WithOpenAIEndpoint(e OpenAIEndpoint) AppConfigOption {
	return func(c *AppConfig) { c.openAI = e }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Credentials are masked.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("db_name", c.dbName),
		slog.String("log_level", c.logLevel),
		slog.Int("cors_origins_count", len(c.corsOrigins)),
		slog.Bool("openai_configured", c.openAI.IsConfigured()),
		slog.String("openai_model", c.openAI.Model()),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(not configured)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	scheme, _, found := strings.Cut(c.dbURL, "://")
	if !found {
		return "***"
	}
	return scheme + "://***"
}

// ParseOrigins parses a comma-separated string of allowed origins.
func ParseOrigins(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
