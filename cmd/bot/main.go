// Package main provides the advisor bot server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/abitbot/abit-advisor-go/internal/bot"
	"github.com/abitbot/abit-advisor-go/internal/config"
	"github.com/abitbot/abit-advisor-go/internal/genai"
	"github.com/abitbot/abit-advisor-go/internal/logger"
	"github.com/abitbot/abit-advisor-go/internal/metrics"
	"github.com/abitbot/abit-advisor-go/internal/ratelimit"
	"github.com/abitbot/abit-advisor-go/internal/sentry"
	"github.com/abitbot/abit-advisor-go/internal/storage"
	"github.com/abitbot/abit-advisor-go/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.Info("Starting advisor bot")

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, continuing without it")
	}
	defer sentry.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.New(ctx, cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	if count, err := db.CountPrograms(ctx); err == nil {
		m.CorpusPrograms.Set(float64(count))
		log.WithField("programs", count).Info("Program corpus loaded")
		if count == 0 {
			log.Warn("Program corpus is empty, run the ingest command to populate it")
		}
	}

	advisor, err := genai.NewAdvisor(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to create LLM advisor")
	}
	defer advisor.Close()
	log.WithField("provider", advisor.Provider()).Info("LLM advisor created")

	limiter := ratelimit.NewModelLimiter(cfg.LLMMaxPerHour)
	defer limiter.Stop()

	sessions := bot.NewSessionStore()
	engine := bot.NewEngine(bot.EngineConfig{
		Sessions: sessions,
		Repo:     db,
		Advisor:  advisor,
		Slugs:    cfg.ProgramSlugs,
		Logger:   log,
		Metrics:  m,
		Limiter:  limiter,
	})

	transport, err := telegram.New(cfg.TelegramBotToken, engine, log, config.UpdateProcessing)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Telegram")
	}
	log.WithField("username", transport.Username()).Info("Telegram transport connected")

	router := newRouter(log, cfg, db, registry)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("port", cfg.Port).Info("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return transport.Run(gctx)
	})

	g.Go(func() error {
		evictIdleSessions(gctx, sessions, log)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sentry.CaptureException(err)
		log.WithError(err).Fatal("Server exited with error")
	}
	log.Info("Shutdown complete")
}

// evictIdleSessions periodically drops conversation sessions that have
// been inactive past the idle cutoff.
func evictIdleSessions(ctx context.Context, sessions *bot.SessionStore, log *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := sessions.EvictIdle(config.SessionIdleEviction); evicted > 0 {
				log.WithField("evicted", evicted).Info("Evicted idle sessions")
			}
		}
	}
}
