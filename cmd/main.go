package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/namedeck/namedeck/internal/adapters/http/api"
	"github.com/namedeck/namedeck/internal/adapters/llm"
	"github.com/namedeck/namedeck/internal/adapters/repository"
	service "github.com/namedeck/namedeck/internal/app"
	"github.com/namedeck/namedeck/internal/config"
	"github.com/namedeck/namedeck/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout          = 10 * time.Second
	writeTimeout         = 60 * time.Second // suggestion intake can be slow
	idleTimeout          = 60 * time.Second
	readHeaderTimeout    = 5 * time.Second
	shutdownTimeout      = 30 * time.Second
	statsRefreshInterval = 10 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithReviewers(cfg.Reviewers),
		service.WithCooldown(time.Duration(cfg.CooldownHours) * time.Hour),
		service.WithStrikeLimit(cfg.StrikeLimit),
		service.WithSuggestionCount(cfg.SuggestionCount),
		service.WithSuggestionTimeout(time.Duration(cfg.SuggestionTimeoutMS) * time.Millisecond),
	}

	if cfg.DBPath != "" {
		store, err := repository.NewSQLite(cfg.DBPath)
		if err != nil {
			log.Error(ctx, "failed to open database", logger.String("path", cfg.DBPath), logger.Error(err))
			return
		}
		opts = append(opts, service.WithStore(store))
		log.Info(ctx, "using sqlite store", logger.String("path", cfg.DBPath))
	}

	if cfg.SuggestionAPIKey != "" {
		generator, err := llm.NewClient(cfg.SuggestionAPIKey,
			llm.WithModel(cfg.SuggestionModel),
			llm.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.SuggestionTimeoutMS) * time.Millisecond}),
		)
		if err != nil {
			log.Error(ctx, "failed to build suggestion client", logger.Error(err))
			return
		}
		opts = append(opts, service.WithGenerator(generator))
	} else {
		log.Info(ctx, "suggestion intake disabled; no api key configured")
	}

	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	go startStatsUpdater(ctx, svc)

	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, cfg.DefaultLimit, cfg.MaxLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// startStatsUpdater periodically refreshes the state gauges; GetStats
// pushes the counts into the metrics package as a side effect.
func startStatsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(statsRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.GetStats()
		}
	}
}
