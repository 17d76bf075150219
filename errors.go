// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import "errors"

// Sentinel errors returned by this package. All of them surface as plain
// Go errors rather than the negative integer codes of the original C
// implementation; callers should compare with errors.Is.
var (
	// ErrSelfTestFailed indicates the ChaCha20 block function or the
	// DRBG-level self-test did not match its known-answer vector. This
	// signals a corrupted or incorrectly ported implementation, never a
	// transient condition.
	ErrSelfTestFailed = errors.New("chacha20drng: self-test failed")

	// ErrEntropyShortfall indicates the configured entropy sources
	// together returned fewer than the required floor of bytes during a
	// reseed. Reseed fails and the handle is left usable but with stale
	// seed material (or, during New, the handle is never returned to the
	// caller).
	ErrEntropyShortfall = errors.New("chacha20drng: insufficient entropy collected during reseed")

	// ErrNoEntropySource indicates that no entropy source is enabled in
	// the configuration. At least one source must be enabled.
	ErrNoEntropySource = errors.New("chacha20drng: no entropy source configured")

	// ErrMemoryLock indicates that locking the handle's memory failed for
	// a reason other than a permission or resource-limit denial (those
	// are tolerated silently, per the advisory memory-locking policy).
	ErrMemoryLock = errors.New("chacha20drng: failed to lock handle memory")

	// ErrClosed indicates an operation was attempted on a Handle after
	// Close was called.
	ErrClosed = errors.New("chacha20drng: handle is closed")

	// ErrLengthTooLarge indicates a requested output or input length does
	// not fit in a uint32, the bound the generate and seed paths rely on
	// to guarantee the 32-bit block counter never wraps within one call.
	ErrLengthTooLarge = errors.New("chacha20drng: length exceeds uint32 range")
)
