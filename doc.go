// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package chacha20drng implements a userspace deterministic random bit
// generator (DRBG) built from the ChaCha20 stream cipher, following the
// construction described in Stephan Mueller's chacha20_drng and RFC 7539
// section 2.3.
//
// A Handle owns one ChaCha20 state. Bytes are drawn from the handle with
// Read; the state is rekeyed from its own keystream after every Read,
// giving backtracking resistance (compromising the state afterwards does
// not reveal previously emitted output). The handle reseeds itself
// automatically from operating-system entropy sources once a time or
// volume threshold is exceeded, and on demand via Reseed.
//
// A Handle is not safe for concurrent use: callers must serialize access,
// the same way a single crypto/rand.Reader call is safe but sharing raw
// cipher state across goroutines is not. Use NewReader, or one Handle per
// goroutine, for concurrent callers.
package chacha20drng
