// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import "time"

// reseed is the orchestrator described in spec section 4.6: it gathers
// bytes from every enabled source in a fixed order, seeds the DRBG
// immediately with whatever each source returns, enforces the 32-byte
// entropy floor, optionally mixes in caller-supplied input, and records
// the new seed timestamp.
//
// Ordering rationale: cheap kernel-provided entropy first, then the
// expensive but self-contained jitter source, then the blocking device
// last.
func (h *Handle) reseed(extra []byte) error {
	staging := make([]byte, minEntropyBytes*2) // large enough for the jitter source's 64-byte request
	var total int

	order := []source{h.sources.getrandom, h.sources.jitter, h.sources.devRandom}
	for _, src := range order {
		want := src.requestBytes()
		buf := staging[:want]

		n, err := src.read(buf)
		if err != nil {
			secureZero(staging)
			return err
		}
		if n == 0 {
			continue
		}

		seed(&h.state, buf[:n])
		total += n
	}
	secureZero(staging)

	if total < minEntropyBytes {
		return ErrEntropyShortfall
	}

	if len(extra) > 0 {
		seed(&h.state, extra)
	}

	h.lastSeeded = time.Now()
	h.generatedBytes = 0

	return nil
}
