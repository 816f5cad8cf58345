package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Kamar-Folarin/portfolio-sync/internal/api"
	"github.com/Kamar-Folarin/portfolio-sync/internal/cache"
	"github.com/Kamar-Folarin/portfolio-sync/internal/config"
	"github.com/Kamar-Folarin/portfolio-sync/internal/github"
	"github.com/Kamar-Folarin/portfolio-sync/internal/logging"
	"github.com/Kamar-Folarin/portfolio-sync/internal/notify"
	"github.com/Kamar-Folarin/portfolio-sync/internal/summary"
	"github.com/Kamar-Folarin/portfolio-sync/internal/syncer"
)

// @title Portfolio Sync API
// @version 1.0
// @description Synced GitHub activity, a recent activity summary and a real-time hub for the portfolio site
// @contact.name API Support
// @contact.url http://github.com/Kamar-Folarin
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logger.WithFields(logrus.Fields{
		"env":   cfg.Env,
		"owner": cfg.GitHub.Owner,
	}).Info("Configuration loaded")

	if err := run(cfg, logger); err != nil {
		logger.Fatalf("Server exited with error: %v", err)
	}
	logger.Info("Server exited properly")
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	store, err := cache.Open(cfg.RedisURL, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer store.Close()

	// The cache is best-effort; serve without it rather than refuse to start
	if err := retry(3, 2*time.Second, func() error {
		return store.Ping(context.Background())
	}); err != nil {
		logger.WithError(err).Warn("Cache unreachable, continuing without it")
	}

	source, err := github.NewClientFromConfig(cfg.GitHub, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize GitHub client: %w", err)
	}

	hub := notify.NewHub(logger, 0)
	defer hub.Close()

	summaries := summary.NewService(
		store,
		summary.NewRecentActivityComposer(store, cfg.Summary.Greeting),
		hub,
		cfg.Summary.TTL,
		cfg.Summary.Greeting,
		logger,
	)
	orchestrator := syncer.NewOrchestrator(source, store, hub, cfg.GitHub.Owner, cfg.Sync, logger,
		syncer.WithSummaryRefresher(summaries))

	var scheduler *syncer.Scheduler
	if cfg.Sync.Enabled {
		scheduler = syncer.NewScheduler(orchestrator, cfg.Sync.Interval, cfg.Sync.RetryCooldown, logger)
	} else {
		logger.Info("Background sync disabled")
	}

	handler := api.NewHandler(
		summaries,
		orchestrator,
		syncer.NewControl(orchestrator, scheduler),
		hub,
		store,
		api.NewOllamaProbe(cfg.OllamaURL, nil),
		logger,
	)
	router := api.SetupRouter(handler, logger)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(router)

	// WriteTimeout stays unset so /portfolioHub streams are not cut off
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     corsHandler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if scheduler != nil {
		g.Go(func() error {
			return scheduler.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		// Streams only end when their subscriptions close
		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// retry retries a function up to a certain number of attempts with a delay between attempts
func retry(attempts int, sleep time.Duration, fn func() error) error {
	if err := fn(); err != nil {
		if attempts--; attempts > 0 {
			time.Sleep(sleep)
			return retry(attempts, sleep, fn)
		}
		return err
	}
	return nil
}
