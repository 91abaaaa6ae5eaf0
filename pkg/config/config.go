package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"chainindexer/pkg/runner"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the on-disk YAML shape of a single runner's
// configuration. Human-friendly Duration/SizeBytes strings are accepted
// everywhere the runner itself only wants a plain time.Duration or int.
type FileConfig struct {
	Name string `yaml:"name"`

	Flush struct {
		Interval Duration `yaml:"interval"`
	} `yaml:"flush"`

	Poll struct {
		Enabled  bool     `yaml:"enabled"`
		Interval Duration `yaml:"interval"`
		Cron     string   `yaml:"cron"`
	} `yaml:"poll"`

	Batch struct {
		MaxSize int `yaml:"max_size"`
	} `yaml:"batch"`

	Concurrency struct {
		Max int `yaml:"max"`
	} `yaml:"concurrency"`

	Queue struct {
		MaxSize int  `yaml:"max_size"`
		Dedup   bool `yaml:"dedup"`
	} `yaml:"queue"`

	Metadata map[string]string `yaml:"metadata"`

	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`

	Memory struct {
		ThresholdBytes SizeBytes `yaml:"threshold_bytes"`
		PollInterval   Duration  `yaml:"poll_interval"`
	} `yaml:"memory"`

	Logging struct {
		Level string `yaml:"level"`
		Sink  string `yaml:"sink"`
	} `yaml:"logging"`
}

// Load reads and parses a YAML file into a FileConfig.
func Load(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadEffective loads path (if non-empty and present) and layers
// environment overrides on top, returning the merged FileConfig and
// whether any env var was applied.
func LoadEffective(path string) (*FileConfig, bool, error) {
	cfg := &FileConfig{}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
				return nil, false, err
			}
		} else {
			cfg = loaded
		}
	}
	envUsed := applyEnvOverrides(cfg)
	return cfg, envUsed, nil
}

// applyEnvOverrides mutates cfg in place from CHAINRUNNER_* environment
// variables, returning whether any were set.
func applyEnvOverrides(cfg *FileConfig) bool {
	used := false

	if v := os.Getenv("CHAINRUNNER_NAME"); v != "" {
		used = true
		cfg.Name = v
	}
	if v := os.Getenv("CHAINRUNNER_FLUSH_INTERVAL"); v != "" {
		if d, err := parseDurationLoose(v); err == nil {
			used = true
			cfg.Flush.Interval = d
		}
	}
	if v := os.Getenv("CHAINRUNNER_POLL_ENABLED"); v != "" {
		used = true
		cfg.Poll.Enabled = parseBool(v)
	}
	if v := os.Getenv("CHAINRUNNER_POLL_INTERVAL"); v != "" {
		if d, err := parseDurationLoose(v); err == nil {
			used = true
			cfg.Poll.Interval = d
		}
	}
	if v := os.Getenv("CHAINRUNNER_POLL_CRON"); v != "" {
		used = true
		cfg.Poll.Cron = v
	}
	if v := os.Getenv("CHAINRUNNER_BATCH_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			used = true
			cfg.Batch.MaxSize = n
		}
	}
	if v := os.Getenv("CHAINRUNNER_CONCURRENCY_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			used = true
			cfg.Concurrency.Max = n
		}
	}
	if v := os.Getenv("CHAINRUNNER_QUEUE_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			used = true
			cfg.Queue.MaxSize = n
		}
	}
	if v := os.Getenv("CHAINRUNNER_QUEUE_DEDUP"); v != "" {
		used = true
		cfg.Queue.Dedup = parseBool(v)
	}
	if v := os.Getenv("CHAINRUNNER_STORE_PATH"); v != "" {
		used = true
		cfg.Store.Path = v
	}
	if v := os.Getenv("CHAINRUNNER_MEMORY_THRESHOLD_BYTES"); v != "" {
		if s, err := parseSizeLoose(v); err == nil {
			used = true
			cfg.Memory.ThresholdBytes = s
		}
	}
	if v := os.Getenv("CHAINRUNNER_MEMORY_POLL_INTERVAL"); v != "" {
		if d, err := parseDurationLoose(v); err == nil {
			used = true
			cfg.Memory.PollInterval = d
		}
	}
	if v := os.Getenv("CHAINRUNNER_LOG_LEVEL"); v != "" {
		used = true
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CHAINRUNNER_LOG_SINK"); v != "" {
		used = true
		cfg.Logging.Sink = v
	}

	return used
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// ToRunnerConfig translates the loaded file config into a runner.Config,
// leaving MemoryMonitor for the caller to attach.
func (c *FileConfig) ToRunnerConfig() runner.Config {
	meta := map[string]string{}
	for k, v := range c.Metadata {
		meta[k] = v
	}
	if c.Name != "" {
		meta["name"] = c.Name
	}

	return runner.Config{
		FlushInterval:  c.Flush.Interval.Duration(),
		PollInterval:   c.Poll.Interval.Duration(),
		PollCron:       c.Poll.Cron,
		MaxBatchSize:   c.Batch.MaxSize,
		MaxConcurrency: c.Concurrency.Max,
		MaxQueueSize:   c.Queue.MaxSize,
		Poll:           c.Poll.Enabled,
		DedupEntries:   c.Queue.Dedup,
		Metadata:       meta,
	}
}
