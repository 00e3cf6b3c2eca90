// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package asyncrt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the construction-time parameters for an Executor. The zero
// value is not valid: use [DefaultConfig] or [LoadConfig].
type Config struct {
	// QueueCapacity is the ready queue's fixed capacity (spec.md §4.1). Must
	// be positive.
	QueueCapacity int `yaml:"queueCapacity"`

	// ReactorBatch is the maximum number of kernel events drained per
	// Reactor.Poll call. Must be positive.
	ReactorBatch int `yaml:"reactorBatch"`

	// StrictQueue, when true, makes Executor.Spawn return
	// ErrQueueFull instead of silently dropping the future on a full ready
	// queue (spec.md §9 open question). Wake from within the reactor or a
	// combinator is unaffected: a waker contract has no error return, so a
	// dropped wake is only ever observable via the QueueDrops metric.
	StrictQueue bool `yaml:"strictQueue"`

	// MetricsEnabled toggles the prometheus collectors registered against
	// the Executor. Disabled by default so embedding a runtime never forces
	// a /metrics endpoint on the caller.
	MetricsEnabled bool `yaml:"metricsEnabled"`
}

// DefaultConfig returns the baseline configuration: a modestly sized ready
// queue, a reactor batch size matching the original `MAX_EVENTS` (64), and
// both strict-queue and metrics disabled.
func DefaultConfig() Config {
	return Config{
		QueueCapacity:  256,
		ReactorBatch:   64,
		StrictQueue:    false,
		MetricsEnabled: false,
	}
}

// LoadConfig reads and parses a YAML config file, applying DefaultConfig
// for any zero-valued numeric field left unset by the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("asyncrt: read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("asyncrt: parse config %q: %w", path, err)
	}
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = DefaultConfig().QueueCapacity
	}
	if cfg.ReactorBatch <= 0 {
		cfg.ReactorBatch = DefaultConfig().ReactorBatch
	}
	return cfg, nil
}

// Validate returns an error describing the first invalid field, or nil.
func (c Config) Validate() error {
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("asyncrt: QueueCapacity must be positive, got %d", c.QueueCapacity)
	}
	if c.ReactorBatch <= 0 {
		return fmt.Errorf("asyncrt: ReactorBatch must be positive, got %d", c.ReactorBatch)
	}
	return nil
}
