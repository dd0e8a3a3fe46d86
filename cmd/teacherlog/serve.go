package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teacherlog/teacherlog/application/service"
	"github.com/teacherlog/teacherlog/infrastructure/api"
	"github.com/teacherlog/teacherlog/infrastructure/persistence"
	"github.com/teacherlog/teacherlog/infrastructure/provider"
	"github.com/teacherlog/teacherlog/internal/config"
	"github.com/teacherlog/teacherlog/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST             Server host to bind to (default: 0.0.0.0)
  PORT             Server port to listen on (default: 8001)
  MONGO_URL        Document store connection URL (required unless DB_URL is set)
  DB_URL           Alternative store URL: mongodb://, sqlite:// or postgres://
  DB_NAME          Document store database name (default: teacherlog)
  CORS_ORIGINS     Comma-separated list of allowed origins
  LOG_LEVEL        Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT       Log format: pretty, json (default: pretty)

  OPENAI_API_KEY   Enables the summarization endpoint
  OPENAI_MODEL     Chat model identifier (default: gpt-4o-mini)
  OPENAI_BASE_URL  OpenAI API base URL override
  OPENAI_TIMEOUT   Completion request timeout in seconds (default: 60)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8001)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)

	if cfg.DBURL() == "" {
		return fmt.Errorf("store configuration missing: set MONGO_URL or DB_URL")
	}

	logger := log.Configure(cfg)
	slogger := logger.Slog()

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelInfo, "starting teacherlog", attrs...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := persistence.Open(ctx, cfg.DBURL(), cfg.DBName(), slogger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			slogger.Error("failed to close store", slog.Any("error", err))
		}
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	// The text generation provider is optional: without an API key the
	// summarize endpoint degrades to 503 while the rest stays healthy.
	var generator provider.TextGenerator
	if openAI := cfg.OpenAI(); openAI.IsConfigured() {
		generator = provider.NewOpenAIProviderFromConfig(provider.OpenAIConfig{
			APIKey:    openAI.APIKey(),
			BaseURL:   openAI.BaseURL(),
			ChatModel: openAI.Model(),
			Timeout:   openAI.Timeout(),
		})
	} else {
		slogger.Warn("OPENAI_API_KEY not set, summarization endpoint disabled")
	}

	apiServer := api.NewAPIServer(
		service.NewContribution(store),
		service.NewSummary(generator),
		slogger,
		api.WithCORSOrigins(cfg.CORSOrigins()),
	)

	server := api.NewServer(cfg.Addr(), slogger)
	apiServer.MountOn(server.Router())

	server.Router().Get("/health", healthHandler(store))
	server.Router().Get("/healthz", healthHandler(store))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slogger.Info("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("shutdown error", slog.Any("error", err))
		}
		cancel()
	}()

	if err := server.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// healthHandler reports liveness, including store reachability.
func healthHandler(store persistence.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := store.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}
	return cfg.Apply(opts...)
}
