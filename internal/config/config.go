// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Layer overrides on top via Load (file, then env).
// - External errors must be wrapped via this package's error kinds.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EventQueueSize bounds the in-memory ingest queue.
	EventQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingest workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the event-id deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the event store.
	ShardCount int `koanf:"shard_count"`

	// MaxLimit caps GET /recommendations?limit.
	MaxLimit int `koanf:"max_limit"`

	// DefaultLimit is used when no limit is requested.
	DefaultLimit int `koanf:"default_limit"`

	// WeightContent, WeightContext and WeightArtist are the scoring
	// weights for the three signal components.
	WeightContent float64 `koanf:"weight_content"`
	WeightContext float64 `koanf:"weight_context"`
	WeightArtist  float64 `koanf:"weight_artist"`

	// LanguageBonus is added to the context signal on a language match.
	// The context signal stays capped at 1.0.
	LanguageBonus float64 `koanf:"language_bonus"`

	// SeedDemoData loads the demo event catalogue on startup when the
	// store is empty.
	SeedDemoData bool `koanf:"seed_demo_data"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		EventQueueSize: 10_000,
		WorkerCount:    runtime.NumCPU() * 2,
		DedupeSize:     100_000,
		ShardCount:     8,
		MaxLimit:       100,
		DefaultLimit:   10,
		WeightContent:  1.0,
		WeightContext:  1.0,
		WeightArtist:   1.5,
		LanguageBonus:  0.2,
		SeedDemoData:   false,
	}
}
