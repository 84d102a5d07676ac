package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/internal/app"
	"fittrack/internal/config"
	"fittrack/internal/database"
	"fittrack/internal/observability"
	"fittrack/internal/session"
	"fittrack/pkg/objectstore"
	"fittrack/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

const auditQueue = "fittrack.audit"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := observability.NewLogger(cfg.LogLevel)

	// --- Database ---
	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		return err
	}

	deps := app.Dependencies{
		DB:      db,
		Metrics: observability.NewMetrics("fittrack"),
	}

	// --- Sessions ---
	if cfg.RedisURL != "" {
		client, err := session.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		storage := session.NewRedisStorage(client)
		defer storage.Close()
		deps.SessionStorage = storage
		log.Info("sessions stored in redis")
	} else {
		log.Warn("REDIS_URL not set, sessions are kept in memory")
	}

	// --- Events ---
	// The broker is optional; the API keeps working without it.
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Warn("event publishing disabled", slog.String("error", err.Error()))
		} else {
			defer mq.Close()
			deps.Events = mq
			if err := mq.Consume(ctx, auditQueue, "#", rabbitmq.LogEvent); err != nil {
				log.Warn("audit consumer not started", slog.String("error", err.Error()))
			}
		}
	}

	// --- Photo storage ---
	if cfg.S3Bucket != "" {
		uploader, err := objectstore.NewS3Uploader(ctx, objectstore.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			PublicURL: cfg.S3PublicURL,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return err
		}
		deps.Photos = uploader
	}

	server := app.New(cfg, deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("addr", cfg.Port), slog.String("env", cfg.Env))
		errCh <- server.Listen(cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("error during shutdown", slog.String("error", err.Error()))
		return err
	}
	log.Info("server gracefully stopped")
	return nil
}
