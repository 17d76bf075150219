// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import (
	"encoding/binary"
	"math"
	"time"
	"unsafe"
)

// Handle is an opaque, stateful ChaCha20 DRNG instance. It owns exactly
// one ChaCha20 state, a last-seeded timestamp, and a cumulative count of
// bytes generated since the last reseed.
//
// A Handle is not safe for concurrent use: it carries no internal lock,
// and concurrent calls on the same Handle are a data race, undefined at
// the contract level. Different handles are independent except for the
// process-wide jitter-collector and entropy-device singletons described
// in entropy.go. See Reader for a concurrency-safe wrapper.
type Handle struct {
	state chacha20State

	config  Config
	sources *sourceSet

	lastSeeded     time.Time
	generatedBytes uint64

	closed bool
}

// New allocates and initializes a Handle: it runs the ChaCha20 block
// self-test, installs the four ChaCha20 constants, runs the DRBG-level
// self-test, perturbs the key and nonce words with fresh high-resolution
// timestamps, and performs the first reseed from the configured entropy
// sources. A failed New leaves no Handle allocated.
func New(opts ...Option) (*Handle, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.applyDefaults()

	if !cfg.anyEntropySourceEnabled() {
		return nil, ErrNoEntropySource
	}

	if !chacha20SelfTest() {
		return nil, ErrSelfTestFailed
	}

	h := &Handle{config: cfg}

	if cfg.LockMemory {
		if err := lockMemory(h); err != nil {
			return nil, err
		}
	}

	h.state.constants = constants

	if !drbgSelfTest() {
		h.wipeAndUnlock()
		return nil, ErrSelfTestFailed
	}

	perturbWithTimestamps(&h.state)

	h.sources = newSourceSet(&h.config)

	var err error
	for attempt := 0; attempt < cfg.MaxInitRetries; attempt++ {
		if err = h.reseed(nil); err == nil {
			return h, nil
		}
	}

	h.sources.release(&h.config)
	h.wipeAndUnlock()
	return nil, err
}

// perturbWithTimestamps XORs a freshly sampled high-resolution timestamp
// into each key word and each nonce word in turn. This is the "open
// question" step described in spec section 9: the subsequent initial
// reseed overwrites the key via the seed chain regardless, so this step
// is a marginal, low-cost perturbation of the pre-reseed state rather
// than a load-bearing source of entropy.
func perturbWithTimestamps(s *chacha20State) {
	for i := range s.key {
		s.key[i] ^= uint32(time.Now().UnixNano())
	}
	for i := range s.nonce {
		s.nonce[i] ^= uint32(time.Now().UnixNano())
	}
}

// handleBytes returns a byte-slice view over the Handle's own backing
// allocation. Go's garbage collector never moves heap allocations once
// they have an outstanding pointer escaping to the heap (which *Handle
// always does, since New returns one), so the address is stable for the
// lifetime of the lock — unlike a stack-allocated value, which the
// runtime is free to relocate.
func handleBytes(h *Handle) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(h)), unsafe.Sizeof(*h))
}

// wipeAndUnlock zeroizes the handle's entire backing allocation, not just
// the DRBG state, matching the original's drng_chacha20_dealloc, which
// runs memset_secure(drng, 0, sizeof(*drng)) over the whole struct before
// freeing it. Unlocking happens first, since munlock on memory that is
// about to be overwritten is harmless, while locking forbids nothing we
// need to do here.
func (h *Handle) wipeAndUnlock() {
	if h.config.LockMemory {
		unlockMemory(h)
	}
	secureZero(handleBytes(h))
}

// Close releases the Handle's entropy-source references (in the fixed
// order: jitter collector, then entropy device), securely zeroizes the
// handle's state, and unlocks its memory. Close is idempotent; calling it
// more than once is a no-op after the first call.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	if h.sources != nil {
		h.sources.release(&h.config)
	}
	h.wipeAndUnlock()
	h.closed = true
	return nil
}

// Read fills buf with DRNG output, automatically reseeding first if the
// current seed has aged past Config.ReseedInterval or the handle has
// emitted more than Config.MaxBytesPerReseed bytes since the last reseed.
// Otherwise, a cheap per-call timestamp is mixed into the state before
// generating. Read implements io.Reader; n is always len(buf) on success,
// since a Handle never returns a short read on a nil error.
//
// A failed Read leaves buf's contents unspecified; callers must not use
// partial output.
func (h *Handle) Read(buf []byte) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if len(buf) == 0 {
		return 0, nil
	}
	if uint64(len(buf)) > math.MaxUint32 {
		return 0, ErrLengthTooLarge
	}

	now := time.Now()
	var nsec [4]byte
	binary.LittleEndian.PutUint32(nsec[:], uint32(now.Nanosecond()))

	stale := now.Sub(h.lastSeeded) > h.config.ReseedInterval
	overVolume := h.generatedBytes > h.config.MaxBytesPerReseed

	if stale || overVolume {
		if err := h.reseed(nsec[:]); err != nil {
			return 0, err
		}
	} else {
		seed(&h.state, nsec[:])
	}

	generate(&h.state, buf)
	h.generatedBytes += uint64(len(buf))

	return len(buf), nil
}

// Reseed gathers fresh bytes from every enabled entropy source, seeds the
// DRBG with each source's output as it arrives, enforces the 32-byte
// entropy floor, and then mixes in extra if it is non-empty. A failed
// Reseed leaves the Handle usable but with stale seed material.
func (h *Handle) Reseed(extra []byte) error {
	if h.closed {
		return ErrClosed
	}
	if uint64(len(extra)) > math.MaxUint32 {
		return ErrLengthTooLarge
	}
	return h.reseed(extra)
}
