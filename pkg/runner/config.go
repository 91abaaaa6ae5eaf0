package runner

import "time"

// Config carries the immutable-after-start knobs for a Runner. It is
// constructed programmatically or produced by pkg/config from a YAML file
// plus environment overrides.
type Config struct {
	// FlushInterval controls how often entries accumulated via Buffer are
	// promoted into the bound queue as batches.
	FlushInterval time.Duration

	// PollInterval is the wait between init reruns in poll mode, used when
	// PollCron is empty. Defaults to 3s if zero and Poll is true.
	PollInterval time.Duration

	// PollCron, when non-empty, drives poll-mode init reruns off a cron
	// schedule (via gronx) instead of a flat PollInterval.
	PollCron string

	// MaxBatchSize bounds the length of every batch handed to Run.
	MaxBatchSize int

	// MaxConcurrency bounds the number of simultaneously in-flight batches.
	MaxConcurrency int

	// MaxQueueSize, when > 0, caps the bound queue; pushes beyond it are
	// dropped with a warning. Zero means unbounded.
	MaxQueueSize int

	// Poll enables re-running Init whenever the queue is idle.
	Poll bool

	// DedupEntries enables the push-edge deduplication filter.
	DedupEntries bool

	// MemoryMonitor, if set, is the monitor the runner registers itself
	// with at Start; it may call Shrink/Shrunk concurrently with normal
	// operation.
	MemoryMonitor MemoryMonitor

	// Metadata is opaque labels added to the per-batch dispatch log lines;
	// only its "name" key is used beyond that, as the runner label on the
	// logger and metrics. Never inspected for control flow.
	Metadata map[string]string
}

func (c Config) pollInterval() time.Duration {
	if c.PollInterval > 0 {
		return c.PollInterval
	}
	return 3 * time.Second
}

func (c Config) validate() error {
	if c.MaxBatchSize <= 0 {
		return errConfig("max_batch_size must be positive")
	}
	if c.MaxConcurrency <= 0 {
		return errConfig("max_concurrency must be positive")
	}
	if c.FlushInterval <= 0 {
		return errConfig("flush_interval must be positive")
	}
	return nil
}

type configError string

func (e configError) Error() string { return string(e) }

func errConfig(msg string) error { return configError(msg) }
