package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agritrace/supplytrace/internal/config"
	"github.com/agritrace/supplytrace/internal/events"
	"github.com/agritrace/supplytrace/internal/server"
	"github.com/agritrace/supplytrace/internal/store/postgres"
	"github.com/agritrace/supplytrace/internal/stream"
	tracksync "github.com/agritrace/supplytrace/internal/sync"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the supplytrace HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Connect to Postgres.
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (TRACK_NATS_URL not set)")
		}

		// Create the stream layer: registry, bus, heartbeat scheduler.
		registry := stream.NewRegistry()
		bus := stream.NewBus(registry, stream.Config{
			QueueSize: cfg.StreamQueueSize,
			Logger:    logger,
		})
		heartbeat := stream.NewHeartbeat(registry, cfg.HeartbeatInterval, logger)
		heartbeat.Start()

		// Create the server.
		opts := []server.Option{server.WithLogger(logger)}
		if cfg.DetectURL != "" {
			opts = append(opts, server.WithDetectURL(cfg.DetectURL))
			logger.Info("detection proxy enabled", "url", cfg.DetectURL)
		}
		trackerServer := server.NewTrackerServer(store, publisher, bus, opts...)

		// Start HTTP server.
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: trackerServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start sync scheduler if a destination is configured.
		var scheduler *tracksync.Scheduler
		if cfg.SyncInterval > 0 && cfg.SyncS3Bucket != "" {
			s3Dest, err := tracksync.NewS3Destination(
				context.Background(),
				cfg.SyncS3Bucket,
				cfg.SyncS3Key,
				cfg.SyncS3Region,
				cfg.SyncS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 sync destination", "err", err)
			} else {
				scheduler = tracksync.NewScheduler(store, []tracksync.Destination{s3Dest}, cfg.SyncInterval, logger)
				scheduler.Start()
				logger.Info("sync scheduler started", "interval", cfg.SyncInterval, "bucket", cfg.SyncS3Bucket)
			}
		}

		logger.Info("supplytrace server started",
			"http_addr", cfg.HTTPAddr,
			"heartbeat_interval", cfg.HeartbeatInterval,
		)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if scheduler != nil {
			scheduler.Stop()
			logger.Info("sync scheduler stopped")
		}

		heartbeat.Stop()
		logger.Info("heartbeat scheduler stopped")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
