package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("unexpected error writing temp config: %v", err)
	}
	return path
}

func TestLoadParsesHumanFriendlyDurations(t *testing.T) {
	path := writeTempConfig(t, `
name: test-runner
flush:
  interval: 500ms
poll:
  enabled: true
  interval: 3s
batch:
  max_size: 50
concurrency:
  max: 8
queue:
  max_size: 1000
  dedup: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Flush.Interval.Duration() != 500*time.Millisecond {
		t.Fatalf("expected 500ms, got %s", cfg.Flush.Interval.Duration())
	}
	if cfg.Poll.Interval.Duration() != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.Poll.Interval.Duration())
	}
	if cfg.Batch.MaxSize != 50 || cfg.Concurrency.Max != 8 {
		t.Fatalf("unexpected batch/concurrency values: %+v", cfg)
	}
	if !cfg.Queue.Dedup {
		t.Fatalf("expected dedup true")
	}
}

func TestLoadParsesHumanFriendlyMemoryThreshold(t *testing.T) {
	path := writeTempConfig(t, `
name: test-runner
batch:
  max_size: 1
concurrency:
  max: 1
memory:
  threshold_bytes: 512MB
  poll_interval: 10s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Memory.ThresholdBytes.Int() != 512*1000*1000 {
		t.Fatalf("expected 512,000,000 bytes, got %d", cfg.Memory.ThresholdBytes.Int())
	}
	if cfg.Memory.PollInterval.Duration() != 10*time.Second {
		t.Fatalf("expected 10s, got %s", cfg.Memory.PollInterval.Duration())
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEnvOverridesApply(t *testing.T) {
	t.Setenv("CHAINRUNNER_BATCH_MAX_SIZE", "99")
	t.Setenv("CHAINRUNNER_QUEUE_DEDUP", "true")

	cfg, used, err := LoadEffective("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !used {
		t.Fatalf("expected envUsed true")
	}
	if cfg.Batch.MaxSize != 99 {
		t.Fatalf("expected env override to set batch max size to 99, got %d", cfg.Batch.MaxSize)
	}
	if !cfg.Queue.Dedup {
		t.Fatalf("expected env override to enable dedup")
	}
}

func TestToRunnerConfigCarriesName(t *testing.T) {
	cfg := &FileConfig{Name: "balances"}
	cfg.Batch.MaxSize = 10
	cfg.Concurrency.Max = 2
	rc := cfg.ToRunnerConfig()
	if rc.Metadata["name"] != "balances" {
		t.Fatalf("expected metadata name to be set, got %+v", rc.Metadata)
	}
	if rc.MaxBatchSize != 10 || rc.MaxConcurrency != 2 {
		t.Fatalf("unexpected runner config: %+v", rc)
	}
}
