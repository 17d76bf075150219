// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import (
	"encoding/binary"
	"runtime"
	"time"

	"golang.org/x/crypto/blake2b"
)

// jitterSamples is the number of timing-delta samples (each a 64-bit
// nanosecond duration) hashed into the collector's BLAKE2b state on every
// read. A larger count improves the collector's estimated entropy rate at
// the cost of latency.
const jitterSamples = 512

// jitterCollector is a CPU execution-time jitter entropy collector: it
// measures the variance in wall-clock duration of a small, fixed
// computation across repeated iterations and whitens the accumulated
// timing noise through BLAKE2b. This is a simplified, pure-Go relative of
// the jitterentropy-library design the original C implementation's JENT
// branch delegates to; it is not a certified entropy source, only a
// best-effort supplementary one, consistent with its default-disabled
// configuration (spec section 4.5).
type jitterCollector struct {
	healthy bool
}

// newJitterCollector constructs and self-tests a collector. The
// self-test rejects a collector whose timing samples are degenerate
// (e.g. a clock with insufficient resolution to observe any jitter),
// marking the source permanently unavailable for the lifetime of the
// process the same way the original library's jent_entropy_init failure
// does.
func newJitterCollector() *jitterCollector {
	c := &jitterCollector{}
	if !jitterSelfTestFailed {
		c.healthy = c.selfTest()
		jitterSelfTestFailed = !c.healthy
	}
	return c
}

// jitterSelfTestFailed records that a collector's self-test has failed;
// every collector constructed afterwards stays unhealthy. It is only
// touched from jitterSingleton's constructor, under that singleton's lock.
var jitterSelfTestFailed bool

func (c *jitterCollector) selfTest() bool {
	first := jitterNoise()
	for i := 0; i < 8; i++ {
		if jitterNoise() != first {
			return true
		}
	}
	return false
}

// jitterNoise runs a small fixed computation and returns the low bits of
// the wall-clock duration it took, in nanoseconds. The computation itself
// carries no cryptographic meaning; only its timing variance, driven by
// cache behavior, scheduler preemption, and clock granularity, does.
func jitterNoise() uint64 {
	start := time.Now()
	acc := uint64(0x9e3779b97f4a7c15)
	for i := 0; i < 16; i++ {
		acc = acc*6364136223846793005 + 1442695040888963407
	}
	runtime.KeepAlive(acc)
	return uint64(time.Since(start))
}

// read fills buf with output whitened from freshly gathered timing-jitter
// samples. Each call starts a new BLAKE2b hash over jitterSamples samples;
// when buf is longer than one 64-byte digest, further digests are chained
// by hashing the previous one, so blocks within one call do not repeat.
func (c *jitterCollector) read(buf []byte) (int, error) {
	if !c.healthy {
		return 0, nil
	}

	h, err := blake2b.New512(nil)
	if err != nil {
		return 0, err
	}

	var sample [8]byte
	for i := 0; i < jitterSamples; i++ {
		binary.LittleEndian.PutUint64(sample[:], jitterNoise())
		h.Write(sample[:])
	}

	n := 0
	for n < len(buf) {
		sum := h.Sum(nil)
		copied := copy(buf[n:], sum)
		n += copied
		h.Reset()
		h.Write(sum)
	}
	return n, nil
}

func (c *jitterCollector) requestBytes() int { return minEntropyBytes * 2 }

var jitterSingleton = refCounted[*jitterCollector]{
	newFn:   func() *jitterCollector { return newJitterCollector() },
	closeFn: func(*jitterCollector) {},
}

// jitterSourceAdapter adapts the shared jitterCollector singleton to the
// source interface.
type jitterSourceAdapter struct {
	collector *jitterCollector
}

func (j jitterSourceAdapter) requestBytes() int { return j.collector.requestBytes() }

func (j jitterSourceAdapter) read(buf []byte) (int, error) { return j.collector.read(buf) }

func acquireJitterSource() source {
	return jitterSourceAdapter{collector: jitterSingleton.acquire()}
}

func releaseJitterSource() {
	jitterSingleton.release()
}
