package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Kamar-Folarin/portfolio-sync/internal/cache"
	"github.com/Kamar-Folarin/portfolio-sync/internal/config"
	apperrors "github.com/Kamar-Folarin/portfolio-sync/internal/errors"
	"github.com/Kamar-Folarin/portfolio-sync/internal/github"
	"github.com/Kamar-Folarin/portfolio-sync/internal/logging"
	"github.com/Kamar-Folarin/portfolio-sync/internal/notify"
	"github.com/Kamar-Folarin/portfolio-sync/internal/syncer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// worker holds the components shared by every subcommand
type worker struct {
	cfg          *config.Config
	logger       *logrus.Logger
	store        cache.Store
	orchestrator *syncer.Orchestrator
}

func newApp(out io.Writer) *cli.App {
	var (
		envFile   string
		logLevel  string
		logFormat string
	)

	load := func(c *cli.Context) (*worker, error) {
		if err := godotenv.Load(envFile); err != nil && c.IsSet("env-file") {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}

		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if logFormat != "" {
			cfg.LogFormat = logFormat
		}
		// The API serves what the worker writes, so both must share Redis
		if cfg.RedisURL == "" {
			return nil, apperrors.NewValidationError("REDIS_URL is required for the worker", nil)
		}
		logger := logging.New(cfg.LogLevel, cfg.LogFormat, out)

		store, err := cache.Open(cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		source, err := github.NewClientFromConfig(cfg.GitHub, logger)
		if err != nil {
			store.Close()
			return nil, err
		}

		// The API owns the subscribers and the summary; reach both over HTTP
		remote := notify.NewRemoteNotifier(cfg.NotifyAPIURL, nil, logger)
		orchestrator := syncer.NewOrchestrator(source, store, remote, cfg.GitHub.Owner, cfg.Sync, logger,
			syncer.WithSummaryRefresher(remote))

		logger.WithFields(logrus.Fields{
			"owner":      cfg.GitHub.Owner,
			"notify_api": cfg.NotifyAPIURL,
		}).Info("Worker configured")

		return &worker{cfg: cfg, logger: logger, store: store, orchestrator: orchestrator}, nil
	}

	return &cli.App{
		Name:  "portfolio-worker",
		Usage: "Sync GitHub activity into the portfolio cache",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "env-file",
				Usage:       "Path to a dotenv file",
				EnvVars:     []string{"WORKER_ENV_FILE"},
				Value:       ".env",
				Destination: &envFile,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level [trace|debug|info|warn|error], overrides LOG_LEVEL",
				Aliases:     []string{"l"},
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format [text|json], overrides LOG_FORMAT",
				Aliases:     []string{"f"},
				Destination: &logFormat,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Sync on a schedule until interrupted",
				Action: func(c *cli.Context) error {
					w, err := load(c)
					if err != nil {
						return err
					}
					defer w.store.Close()

					scheduler := syncer.NewScheduler(w.orchestrator, w.cfg.Sync.Interval, w.cfg.Sync.RetryCooldown, w.logger)
					w.logger.WithField("interval", w.cfg.Sync.Interval).Info("Worker starting")
					if err := scheduler.Run(c.Context); err != nil {
						return err
					}
					w.logger.Info("Worker stopped")
					return nil
				},
			},
			{
				Name:  "once",
				Usage: "Run a single sync cycle and exit",
				Action: func(c *cli.Context) error {
					w, err := load(c)
					if err != nil {
						return err
					}
					defer w.store.Close()

					if err := w.orchestrator.RunCycle(c.Context); err != nil {
						return err
					}
					status := w.orchestrator.Status()
					w.logger.WithField("repositories", status.RepositoryCount).Info("Sync complete")
					return nil
				},
			},
		},
	}
}
