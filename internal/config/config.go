// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ObservationQueueSize bounds the in-memory observation queue.
	ObservationQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of accrual workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the insight ledger.
	ShardCount int `koanf:"shard_count"`

	// InsightCapacityBase and InsightCapacityPerIntuition tune the
	// point cap formula: base + intuition * per_intuition.
	InsightCapacityBase         int `koanf:"insight_capacity_base"`
	InsightCapacityPerIntuition int `koanf:"insight_capacity_per_intuition"`

	// FizzleFatigueThreshold and FizzleChance tune the partial-failure
	// roll for fatigued scouts.
	FizzleFatigueThreshold int     `koanf:"fizzle_fatigue_threshold"`
	FizzleChance           float64 `koanf:"fizzle_chance"`

	// DefaultVenue is used when a session request names no venue.
	DefaultVenue string `koanf:"default_venue"`
}

// New creates a Config using provided options. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use (e.g.,
// loading from env/files) and is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:                    "info",
		Addr:                        ":9080",
		ObservationQueueSize:        100_000,
		WorkerCount:                 runtime.NumCPU() * 10,
		DedupeSize:                  500_000,
		ShardCount:                  8,
		InsightCapacityBase:         40,
		InsightCapacityPerIntuition: 2,
		FizzleFatigueThreshold:      70,
		FizzleChance:                0.20,
		DefaultVenue:                "stadium",
	}
	return c
}
