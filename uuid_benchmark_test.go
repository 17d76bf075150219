// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

// benchConcurrent runs fn across the given number of goroutines,
// distributing b.N iterations as evenly as possible.
func benchConcurrent(b *testing.B, fn func(), goroutines int) {
	nPerG := b.N / goroutines
	rem := b.N % goroutines
	var wg sync.WaitGroup
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < goroutines; i++ {
		iters := nPerG
		if i < rem {
			iters++
		}
		wg.Add(1)
		go func(iters int) {
			defer wg.Done()
			for j := 0; j < iters; j++ {
				fn()
			}
		}(iters)
	}
	wg.Wait()
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [12]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = '0' + byte(i%10)
		i /= 10
	}
	return string(buf[pos:])
}

// BenchmarkUUID_v4_Default_Serial establishes the baseline throughput and
// allocation profile of uuid.New() using the package's default
// crypto/rand source, which uuid.SetRand(nil) restores.
func BenchmarkUUID_v4_Default_Serial(b *testing.B) {
	uuid.SetRand(nil)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = uuid.New()
	}
}

// BenchmarkUUID_v4_DRNG_Serial compares uuid.New() throughput when its
// random source is swapped for DefaultReader, the ChaCha20 DRNG's pooled
// concurrency-safe reader.
func BenchmarkUUID_v4_DRNG_Serial(b *testing.B) {
	uuid.SetRand(DefaultReader)
	defer uuid.SetRand(nil)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = uuid.New()
	}
}

// BenchmarkUUID_v4_DRNG_Parallel measures uuid.New() backed by
// DefaultReader under Go's built-in parallel benchmark driver.
func BenchmarkUUID_v4_DRNG_Parallel(b *testing.B) {
	uuid.SetRand(DefaultReader)
	defer uuid.SetRand(nil)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = uuid.New()
		}
	})
}

// BenchmarkUUID_v4_DRNG_Concurrent measures uuid.New() backed by
// DefaultReader across a range of goroutine counts, exercising the
// Reader's sharded pool under contention.
func BenchmarkUUID_v4_DRNG_Concurrent(b *testing.B) {
	uuid.SetRand(DefaultReader)
	defer uuid.SetRand(nil)
	for _, gr := range []int{2, 4, 8, 16, 32, 64, 128} {
		b.Run("Goroutines_"+itoa(gr), func(b *testing.B) {
			benchConcurrent(b, func() { _ = uuid.New() }, gr)
		})
	}
}
