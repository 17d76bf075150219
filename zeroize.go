// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import "runtime"

// secureZero overwrites b with zeros and inserts a compiler barrier so the
// write is not optimized away as dead code. Used for ephemeral keystream
// buffers, seed staging buffers, and whole handles on Close.
//
// runtime.KeepAlive pins b past the loop so the compiler cannot prove
// the store dead and elide it.
func secureZero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

func secureZeroWords(w []uint32) {
	for i := range w {
		w[i] = 0
	}
	runtime.KeepAlive(w)
}
