// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import (
	"fmt"
	"io"
	mrand "math/rand/v2"
	"sync"
)

// DefaultReader is a global, cryptographically secure random source built
// from a pool of Handles. It is initialized at package load time with
// DefaultConfig and is safe for concurrent use. If initialization fails
// (e.g. no entropy source is reachable), the package panics: a crypto
// primitive that silently runs without a secure random source is worse
// than one that never starts.
var DefaultReader io.Reader

func init() {
	r, err := NewReader()
	if err != nil {
		panic(fmt.Sprintf("chacha20drng: DefaultReader init failed: %v", err))
	}
	DefaultReader = r
}

// Reader wraps a sharded pool of Handles behind a single concurrency-safe
// io.Reader. Each call to Read borrows a Handle from one shard, uses it
// to fill the caller's buffer, and returns it — the same pattern the
// underlying Handle forbids callers from doing with a bare Handle shared
// across goroutines.
type Reader struct {
	config Config
	pools  []*sync.Pool
}

// NewReader constructs a pooled, concurrency-safe Reader. Each shard's
// pool lazily constructs Handles via New, which itself makes up to
// Config.MaxInitRetries attempts at its initial reseed (e.g. after a
// transient entropy shortfall). NewReader eagerly constructs one Handle
// per shard up front so a shard that cannot initialize at all is
// reported immediately, rather than on the first Read that happens to
// land on it.
func NewReader(opts ...Option) (*Reader, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Shards <= 0 {
		cfg.Shards = DefaultConfig().Shards
	}

	pools := make([]*sync.Pool, cfg.Shards)
	for i := range pools {
		cfg := cfg
		pools[i] = &sync.Pool{
			New: func() any {
				h, err := New(optionsFromConfig(cfg)...)
				if err != nil {
					return nil
				}
				return h
			},
		}

		item := pools[i].Get()
		if item == nil {
			return nil, fmt.Errorf("chacha20drng: pool shard %d initialization failed", i)
		}
		pools[i].Put(item)
	}

	return &Reader{config: cfg, pools: pools}, nil
}

// optionsFromConfig turns a concrete Config back into the Option slice
// New expects, so each pool shard can construct independent Handles that
// share the same tuning.
func optionsFromConfig(cfg Config) []Option {
	return []Option{
		WithGetrandom(cfg.EnableGetrandom),
		WithJitter(cfg.EnableJitter),
		WithDevRandom(cfg.EnableDevRandom),
		WithReseedInterval(cfg.ReseedInterval),
		WithMaxBytesPerReseed(cfg.MaxBytesPerReseed),
		WithMaxInitRetries(cfg.MaxInitRetries),
		WithLockMemory(cfg.LockMemory),
	}
}

// Config returns a copy of the Reader's configuration.
func (r *Reader) Config() Config {
	return r.config
}

func shardIndex(n int) int {
	return mrand.IntN(n)
}

// Read fills b with random data drawn from one shard's pooled Handle. It
// is safe for concurrent use.
func (r *Reader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	shard := 0
	if n := len(r.pools); n > 1 {
		shard = shardIndex(n)
	}

	item := r.pools[shard].Get()
	h, ok := item.(*Handle)
	if !ok {
		return 0, fmt.Errorf("chacha20drng: pool shard %d re-initialization failed", shard)
	}
	defer r.pools[shard].Put(h)

	return h.Read(b)
}
