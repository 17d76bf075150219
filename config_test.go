// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_DefaultConfig(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := DefaultConfig()

	is.True(cfg.EnableGetrandom)
	is.False(cfg.EnableJitter)
	is.False(cfg.EnableDevRandom)
	is.Equal(defaultReseedInterval, cfg.ReseedInterval)
	is.Equal(uint64(defaultMaxBytesPerReseed), cfg.MaxBytesPerReseed)
	is.Equal(defaultMaxInitRetries, cfg.MaxInitRetries)
	is.True(cfg.LockMemory)
	is.Equal(runtime.GOMAXPROCS(0), cfg.Shards)
}

func Test_Config_ApplyDefaults_OnlyFillsZeroValues(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := Config{
		ReseedInterval:    5 * time.Second,
		MaxBytesPerReseed: 1024,
		MaxInitRetries:    7,
	}
	cfg.applyDefaults()

	is.Equal(5*time.Second, cfg.ReseedInterval)
	is.Equal(uint64(1024), cfg.MaxBytesPerReseed)
	is.Equal(7, cfg.MaxInitRetries)
}

func Test_Config_ApplyDefaults_FillsZeroValues(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var cfg Config
	cfg.applyDefaults()

	is.Equal(defaultReseedInterval, cfg.ReseedInterval)
	is.Equal(uint64(defaultMaxBytesPerReseed), cfg.MaxBytesPerReseed)
	is.Equal(defaultMaxInitRetries, cfg.MaxInitRetries)
}

func Test_Config_ApplyDefaults_NegativeRetriesReplaced(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := Config{MaxInitRetries: -1}
	cfg.applyDefaults()

	is.Equal(defaultMaxInitRetries, cfg.MaxInitRetries)
}

func Test_Options_Apply(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var cfg Config
	opts := []Option{
		WithGetrandom(false),
		WithJitter(true),
		WithDevRandom(true),
		WithReseedInterval(42 * time.Second),
		WithMaxBytesPerReseed(99),
		WithMaxInitRetries(5),
		WithLockMemory(false),
		WithShards(3),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	is.False(cfg.EnableGetrandom)
	is.True(cfg.EnableJitter)
	is.True(cfg.EnableDevRandom)
	is.Equal(42*time.Second, cfg.ReseedInterval)
	is.Equal(uint64(99), cfg.MaxBytesPerReseed)
	is.Equal(5, cfg.MaxInitRetries)
	is.False(cfg.LockMemory)
	is.Equal(3, cfg.Shards)
}

func Test_Config_AnyEntropySourceEnabled(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cases := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"all disabled", Config{}, false},
		{"getrandom only", Config{EnableGetrandom: true}, true},
		{"jitter only", Config{EnableJitter: true}, true},
		{"devrandom only", Config{EnableDevRandom: true}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is.Equal(tc.want, tc.cfg.anyEntropySourceEnabled())
		})
	}
}
