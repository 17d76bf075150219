// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import "sync"

// source is a thin adapter over one operating-system or hardware entropy
// mechanism. Implementations report only bytes returned and
// success/failure; they carry no internal entropy accounting (the
// reseed orchestrator treats the byte count as a floor, not a
// credited-entropy ledger).
//
// read fills up to len(buf) bytes into buf and returns the number of
// bytes written. A disabled source returns (0, nil) without touching buf.
// A fatal error is reported via a non-nil error; read never returns a
// negative count (unlike the C original's negative-return convention,
// which this port replaces with idiomatic (int, error) pairs).
type source interface {
	// requestBytes is how many bytes the reseed orchestrator asks this
	// source for. 32 bytes for 1:1-rate sources (syscall, device), 64
	// bytes for the jitter collector, credited at an assumed 2:1 rate.
	requestBytes() int
	read(buf []byte) (int, error)
}

// disabledSource is the zero-sized implementation used for any source
// that is not enabled in the active Config. Its read is a no-op success,
// matching spec section 4.5: "a disabled source's read returns zero
// bytes without error."
type disabledSource struct{ n int }

func (d disabledSource) requestBytes() int { return d.n }

func (disabledSource) read(buf []byte) (int, error) { return 0, nil }

// sourceSet is the fixed, ordered collection of the three entropy source
// adapters consulted by the reseed orchestrator: platform syscall first
// (cheap, kernel-provided), jitter collector second (expensive but
// self-contained), entropy device last (may block).
type sourceSet struct {
	getrandom source
	jitter    source
	devRandom source
}

// newSourceSet builds the ordered source set for cfg, acquiring the
// process-wide jitter and entropy-device singletons if their respective
// sources are enabled. Call release when the owning Handle is closed.
func newSourceSet(cfg *Config) *sourceSet {
	set := &sourceSet{
		getrandom: disabledSource{n: minEntropyBytes},
		jitter:    disabledSource{n: minEntropyBytes * 2},
		devRandom: disabledSource{n: minEntropyBytes},
	}

	if cfg.EnableGetrandom {
		set.getrandom = getrandomSource{}
	}
	if cfg.EnableJitter {
		set.jitter = acquireJitterSource()
	}
	if cfg.EnableDevRandom {
		set.devRandom = acquireDevRandomSource()
	}

	return set
}

func (s *sourceSet) release(cfg *Config) {
	if cfg.EnableJitter {
		releaseJitterSource()
	}
	if cfg.EnableDevRandom {
		releaseDevRandomSource()
	}
}

// anyEntropySourceEnabled reports whether at least one source is enabled in cfg, the
// precondition New enforces before attempting initialization.
func (cfg *Config) anyEntropySourceEnabled() bool {
	return cfg.EnableGetrandom || cfg.EnableJitter || cfg.EnableDevRandom
}

// refCounted wraps a lazily-constructed, process-wide singleton with an
// explicit reference count, standing in for the hidden globals the
// design notes caution against: construction happens on the first
// acquire, teardown happens when the last reference is released.
type refCounted[T any] struct {
	mu       sync.Mutex
	refs     int
	instance T
	newFn    func() T
	closeFn  func(T)
}

func (r *refCounted[T]) acquire() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs == 0 {
		r.instance = r.newFn()
	}
	r.refs++
	return r.instance
}

func (r *refCounted[T]) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs == 0 {
		return
	}
	r.refs--
	if r.refs == 0 && r.closeFn != nil {
		r.closeFn(r.instance)
		var zero T
		r.instance = zero
	}
}
