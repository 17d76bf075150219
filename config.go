// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import (
	"runtime"
	"time"
)

// Config defines the tunable parameters for a Handle and for the pooled
// Reader built on top of it.
//
// Fields:
//   - EnableGetrandom: whether the platform random-bytes syscall source
//     participates in reseeding.
//   - EnableJitter: whether the CPU-jitter entropy collector participates.
//   - EnableDevRandom: whether the blocking entropy-device file
//     participates.
//   - ReseedInterval: maximum age of the current seed before the next Read
//     triggers an automatic reseed.
//   - MaxBytesPerReseed: maximum cumulative output since the last reseed
//     before the next Read triggers an automatic reseed.
//   - MaxInitRetries: number of attempts New makes at its initial reseed
//     (e.g. after a transient entropy shortfall) before giving up.
//   - LockMemory: whether New attempts to lock the handle's backing memory
//     in RAM (best effort; denial due to privilege is tolerated).
//   - Shards: number of independent Handle pool shards NewReader uses for
//     concurrent access.
type Config struct {
	// EnableGetrandom enables the platform random-bytes syscall source.
	// Defaults to true.
	EnableGetrandom bool

	// EnableJitter enables the CPU-jitter entropy collector source.
	// Defaults to false: it is comparatively expensive and most callers
	// are well served by the platform source alone.
	EnableJitter bool

	// EnableDevRandom enables the blocking entropy-device file source.
	// Defaults to false: it can block indefinitely waiting for entropy
	// on some platforms.
	EnableDevRandom bool

	// ReseedInterval is the maximum age of the current seed before the
	// next Read call triggers a full reseed. If zero, a default of 600
	// seconds is used.
	ReseedInterval time.Duration

	// MaxBytesPerReseed is the maximum number of bytes generated since
	// the last reseed before the next Read call triggers a full reseed.
	// If zero, a default of 1 GiB (1 << 30) is used.
	MaxBytesPerReseed uint64

	// MaxInitRetries is the maximum number of attempts at the initial
	// reseed before New gives up and returns the last error. The
	// self-tests and the memory lock run once and are not retried. If
	// zero or negative, a default of 3 is used.
	MaxInitRetries int

	// LockMemory enables the best-effort memory lock of the handle's
	// backing allocation. Defaults to true.
	LockMemory bool

	// Shards controls the number of Handle pool shards NewReader uses.
	// If zero, defaults to runtime.GOMAXPROCS(0).
	Shards int
}

// Default configuration constants for the ChaCha20 DRNG.
const (
	defaultReseedInterval    = 600 * time.Second
	defaultMaxBytesPerReseed = 1 << 30
	defaultMaxInitRetries    = 3
	minEntropyBytes          = keySize // 32-byte floor, per the reseed orchestrator.
)

// DefaultConfig returns a Config populated with production-safe defaults:
// the platform random-bytes source enabled, the jitter collector and
// entropy device disabled, a 600-second / 1 GiB reseed threshold, 3 init
// retries, memory locking enabled, and Shards set to GOMAXPROCS(0).
func DefaultConfig() Config {
	return Config{
		EnableGetrandom:   true,
		EnableJitter:      false,
		EnableDevRandom:   false,
		ReseedInterval:    defaultReseedInterval,
		MaxBytesPerReseed: defaultMaxBytesPerReseed,
		MaxInitRetries:    defaultMaxInitRetries,
		LockMemory:        true,
		Shards:            runtime.GOMAXPROCS(0),
	}
}

func (c *Config) applyDefaults() {
	if c.ReseedInterval == 0 {
		c.ReseedInterval = defaultReseedInterval
	}
	if c.MaxBytesPerReseed == 0 {
		c.MaxBytesPerReseed = defaultMaxBytesPerReseed
	}
	if c.MaxInitRetries <= 0 {
		c.MaxInitRetries = defaultMaxInitRetries
	}
}

// Option is a functional option for customizing a Config passed to New or
// NewReader.
type Option func(*Config)

// WithGetrandom enables or disables the platform random-bytes syscall
// source.
func WithGetrandom(enable bool) Option {
	return func(cfg *Config) { cfg.EnableGetrandom = enable }
}

// WithJitter enables or disables the CPU-jitter entropy collector source.
func WithJitter(enable bool) Option {
	return func(cfg *Config) { cfg.EnableJitter = enable }
}

// WithDevRandom enables or disables the blocking entropy-device source.
func WithDevRandom(enable bool) Option {
	return func(cfg *Config) { cfg.EnableDevRandom = enable }
}

// WithReseedInterval sets the maximum seed age before an automatic
// reseed is triggered.
func WithReseedInterval(d time.Duration) Option {
	return func(cfg *Config) { cfg.ReseedInterval = d }
}

// WithMaxBytesPerReseed sets the maximum cumulative output before an
// automatic reseed is triggered.
func WithMaxBytesPerReseed(n uint64) Option {
	return func(cfg *Config) { cfg.MaxBytesPerReseed = n }
}

// WithMaxInitRetries sets the maximum number of initialization retries.
func WithMaxInitRetries(r int) Option {
	return func(cfg *Config) { cfg.MaxInitRetries = r }
}

// WithLockMemory enables or disables the best-effort memory lock on the
// handle's backing allocation.
func WithLockMemory(enable bool) Option {
	return func(cfg *Config) { cfg.LockMemory = enable }
}

// WithShards sets the number of independent Handle pool shards NewReader
// uses. If n <= 0, it defaults to runtime.GOMAXPROCS(0).
func WithShards(n int) Option {
	return func(cfg *Config) { cfg.Shards = n }
}
