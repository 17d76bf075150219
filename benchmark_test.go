// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import (
	"fmt"
	"testing"
)

func BenchmarkBlock(b *testing.B) {
	s := zeroState()
	var out [blockSize]byte
	b.ReportAllocs()
	b.SetBytes(blockSize)
	for i := 0; i < b.N; i++ {
		block(&s, out[:])
	}
}

func BenchmarkGenerate(b *testing.B) {
	bufferSizes := []int{8, 16, 21, 32, 64, 100, 256, 512, 1000, 4096, 16384}
	for _, size := range bufferSizes {
		size := size
		b.Run(fmt.Sprintf("Generate_%dBytes", size), func(b *testing.B) {
			s := zeroState()
			buf := make([]byte, size)
			b.ReportAllocs()
			b.SetBytes(int64(size))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				generate(&s, buf)
			}
		})
	}
}

func BenchmarkHandle_ReadSerial(b *testing.B) {
	h, err := New(WithLockMemory(false))
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	defer h.Close()

	bufferSizes := []int{8, 16, 21, 32, 64, 100, 256, 512, 1000, 4096, 16384}
	for _, size := range bufferSizes {
		size := size
		b.Run(fmt.Sprintf("Serial_Read_%dBytes", size), func(b *testing.B) {
			buffer := make([]byte, size)
			b.ReportAllocs()
			b.SetBytes(int64(size))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := h.Read(buffer); err != nil {
					b.Fatalf("Read failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkReader_ReadConcurrent(b *testing.B) {
	r, err := NewReader(WithLockMemory(false))
	if err != nil {
		b.Fatalf("NewReader failed: %v", err)
	}

	bufferSizes := []int{32, 64, 256, 4096}
	goroutineCounts := []int{2, 4, 8, 16, 32, 64}
	for _, size := range bufferSizes {
		for _, gc := range goroutineCounts {
			size, gc := size, gc
			b.Run(fmt.Sprintf("Concurrent_Read_%dBytes_%dGoroutines", size, gc), func(b *testing.B) {
				buffer := make([]byte, size)
				b.SetParallelism(gc)
				b.ReportAllocs()
				b.SetBytes(int64(size))
				b.ResetTimer()
				b.RunParallel(func(pb *testing.PB) {
					for pb.Next() {
						if _, err := r.Read(buffer); err != nil {
							b.Fatalf("Read failed: %v", err)
						}
					}
				})
			})
		}
	}
}

func BenchmarkReader_ReadExtremeSizes(b *testing.B) {
	r, err := NewReader(WithLockMemory(false))
	if err != nil {
		b.Fatalf("NewReader failed: %v", err)
	}

	extremeBufferSizes := []int{1048576, 10485760} // 1MB, 10MB
	for _, size := range extremeBufferSizes {
		size := size
		b.Run(fmt.Sprintf("Serial_Read_Extreme_%dBytes", size), func(b *testing.B) {
			buffer := make([]byte, size)
			b.ReportAllocs()
			b.SetBytes(int64(size))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := r.Read(buffer); err != nil {
					b.Fatalf("Read failed: %v", err)
				}
			}
		})
	}
}
