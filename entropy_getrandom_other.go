// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build !linux

package chacha20drng

import "crypto/rand"

// getrandomSource falls back to crypto/rand on platforms without a
// getrandom(2)-style syscall wired up in this build. crypto/rand already
// retries internally on short reads, so no additional retry loop is
// needed here.
type getrandomSource struct{}

func (getrandomSource) requestBytes() int { return minEntropyBytes }

func (getrandomSource) read(buf []byte) (int, error) {
	return rand.Read(buf)
}
