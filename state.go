// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import "encoding/binary"

// Word and byte sizes of the ChaCha20 state, per RFC 7539 section 2.3.
const (
	keySizeWords   = 8
	keySize        = keySizeWords * 4
	nonceSizeWords = 3
	stateSizeWords = 4 + keySizeWords + 1 + nonceSizeWords // constants + key + counter + nonce
	blockSize      = stateSizeWords * 4                    // 64 bytes
)

// constants are the four ChaCha20 constant words: the ASCII string
// "expand 32-byte k" interpreted as four little-endian uint32s. They are
// installed once by New and never mutated afterward.
var constants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// chacha20State is the 16-word ChaCha20 state of RFC 7539 section 2.3:
// four fixed constants, eight key words, one counter word, three nonce
// words. Its layout is semantic, not wire — words are manipulated as
// uint32s, and converted to bytes only at block-function output and when
// seed XORs input bytes into a little-endian copy of the key.
type chacha20State struct {
	constants [4]uint32
	key       [keySizeWords]uint32
	counter   uint32
	nonce     [nonceSizeWords]uint32
}

// words returns the state flattened into the 16-word order the block
// function operates on.
func (s *chacha20State) words() [stateSizeWords]uint32 {
	var w [stateSizeWords]uint32
	copy(w[0:4], s.constants[:])
	copy(w[4:12], s.key[:])
	w[12] = s.counter
	copy(w[13:16], s.nonce[:])
	return w
}

func rotl32(x uint32, n uint) uint32 {
	return (x << n) | (x >> (32 - n))
}

func quarterRound(w *[stateSizeWords]uint32, a, b, c, d int) {
	w[a] += w[b]
	w[d] = rotl32(w[d]^w[a], 16)
	w[c] += w[d]
	w[b] = rotl32(w[b]^w[c], 12)
	w[a] += w[b]
	w[d] = rotl32(w[d]^w[a], 8)
	w[c] += w[d]
	w[b] = rotl32(w[b]^w[c], 7)
}

// block runs the ChaCha20 block function (RFC 7539 section 2.3) over
// state s, writing 64 bytes of little-endian keystream to out. out must
// be at least blockSize bytes. The state's counter word is incremented by
// exactly one as a side effect; all other words are read-only.
func block(s *chacha20State, out []byte) {
	ws := s.words()

	for i := 0; i < 10; i++ {
		// Column round.
		quarterRound(&ws, 0, 4, 8, 12)
		quarterRound(&ws, 1, 5, 9, 13)
		quarterRound(&ws, 2, 6, 10, 14)
		quarterRound(&ws, 3, 7, 11, 15)
		// Diagonal round.
		quarterRound(&ws, 0, 5, 10, 15)
		quarterRound(&ws, 1, 6, 11, 12)
		quarterRound(&ws, 2, 7, 8, 13)
		quarterRound(&ws, 3, 4, 9, 14)
	}

	orig := s.words()
	for i := 0; i < stateSizeWords; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], ws[i]+orig[i])
	}

	s.counter++
}

// selftestVector is the RFC 7539 section 2.3.2 test case: a fixed state
// whose block output is bit-exact and known in advance. It gates every
// Handle initialization (see selftest.go).
func selftestVector() (state chacha20State, expected [blockSize]byte) {
	state = chacha20State{
		constants: constants,
		key: [keySizeWords]uint32{
			0x03020100, 0x07060504, 0x0b0a0908, 0x0f0e0d0c,
			0x13121110, 0x17161514, 0x1b1a1918, 0x1f1e1d1c,
		},
		counter: 1,
		nonce:   [nonceSizeWords]uint32{0x09000000, 0x4a000000, 0x00000000},
	}

	words := [stateSizeWords]uint32{
		0xe4e7f110, 0x15593bd1, 0x1fdd0f50, 0xc47120a3,
		0xc7f4d1c7, 0x0368c033, 0x9aaa2204, 0x4e6cd4c3,
		0x466482d2, 0x09aa9f07, 0x05d7c214, 0xa2028bd9,
		0xd19c12b5, 0xb94e16de, 0xe883d0cb, 0x4e3c50a2,
	}
	for i, w := range words {
		binary.LittleEndian.PutUint32(expected[i*4:], w)
	}
	return state, expected
}
