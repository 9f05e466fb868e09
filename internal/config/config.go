package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string // TRACK_DATABASE_URL (required)
	HTTPAddr    string // TRACK_HTTP_ADDR (default ":8080")
	NATSURL     string // TRACK_NATS_URL (optional, empty = no events)
	AuthToken   string // TRACK_AUTH_TOKEN (optional, empty = auth disabled)

	// Stream settings
	HeartbeatInterval time.Duration // TRACK_HEARTBEAT_INTERVAL (default 30s)
	StreamQueueSize   int           // TRACK_STREAM_QUEUE (default 64; per-subscriber buffer, drop-oldest)

	// Detection proxy
	DetectURL string // TRACK_DETECT_URL (optional, empty = detection disabled)

	// Backup sync settings
	SyncInterval   time.Duration // TRACK_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // TRACK_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // TRACK_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // TRACK_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // TRACK_SYNC_S3_KEY (default "supplytrace/backup.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("TRACK_DATABASE_URL"),
		HTTPAddr:       envOrDefault("TRACK_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("TRACK_NATS_URL"),
		AuthToken:      os.Getenv("TRACK_AUTH_TOKEN"),
		DetectURL:      os.Getenv("TRACK_DETECT_URL"),
		SyncS3Bucket:   os.Getenv("TRACK_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("TRACK_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("TRACK_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("TRACK_SYNC_S3_KEY", "supplytrace/backup.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("TRACK_DATABASE_URL is required")
	}

	hb, err := time.ParseDuration(envOrDefault("TRACK_HEARTBEAT_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("TRACK_HEARTBEAT_INTERVAL: %w", err)
	}
	c.HeartbeatInterval = hb

	queue := envOrDefault("TRACK_STREAM_QUEUE", "64")
	n, err := strconv.Atoi(queue)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("TRACK_STREAM_QUEUE: must be a positive integer, got %q", queue)
	}
	c.StreamQueueSize = n

	interval, err := time.ParseDuration(envOrDefault("TRACK_SYNC_INTERVAL", "3m"))
	if err != nil {
		return nil, fmt.Errorf("TRACK_SYNC_INTERVAL: %w", err)
	}
	c.SyncInterval = interval

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
