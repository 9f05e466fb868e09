package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("TRACK_DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when TRACK_DATABASE_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TRACK_DATABASE_URL", "postgres://localhost/supplytrace")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.HeartbeatInterval != 30*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 30s", cfg.HeartbeatInterval)
	}
	if cfg.StreamQueueSize != 64 {
		t.Errorf("StreamQueueSize = %d, want 64", cfg.StreamQueueSize)
	}
	if cfg.SyncInterval != 3*time.Minute {
		t.Errorf("SyncInterval = %v, want 3m", cfg.SyncInterval)
	}
	if cfg.SyncS3Region != "us-east-1" {
		t.Errorf("SyncS3Region = %q, want us-east-1", cfg.SyncS3Region)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TRACK_DATABASE_URL", "postgres://localhost/supplytrace")
	t.Setenv("TRACK_HTTP_ADDR", ":9999")
	t.Setenv("TRACK_HEARTBEAT_INTERVAL", "5s")
	t.Setenv("TRACK_STREAM_QUEUE", "128")
	t.Setenv("TRACK_NATS_URL", "nats://127.0.0.1:4222")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.HeartbeatInterval != 5*time.Second {
		t.Errorf("HeartbeatInterval = %v", cfg.HeartbeatInterval)
	}
	if cfg.StreamQueueSize != 128 {
		t.Errorf("StreamQueueSize = %d", cfg.StreamQueueSize)
	}
	if cfg.NATSURL != "nats://127.0.0.1:4222" {
		t.Errorf("NATSURL = %q", cfg.NATSURL)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("TRACK_DATABASE_URL", "postgres://localhost/supplytrace")

	t.Setenv("TRACK_HEARTBEAT_INTERVAL", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid heartbeat interval")
	}
	t.Setenv("TRACK_HEARTBEAT_INTERVAL", "")

	t.Setenv("TRACK_STREAM_QUEUE", "-4")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative queue size")
	}
}
