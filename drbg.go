// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

// update advances the DRBG state: one block is generated from the current
// state, its 64 bytes are split into two 32-byte halves, and both halves
// are XORed into the key. The ephemeral keystream is then zeroized. The
// block call advances the counter word by one, as every block does;
// update never resets it (its initial value is undefined by RFC 7539).
//
// The nonce then steps as follows: nonce[0] is incremented; if it wraps
// to zero, nonce[1] is incremented; and whenever nonce[1] is zero at that
// point, nonce[2] is incremented as well. This is not a plain 96-bit
// counter: while nonce[1] is zero, nonce[2] advances on every update. The
// DRBG self-test vectors in selftest.go depend on this stepping.
//
// Re-keying from the cipher's own output after every generation is what
// gives the DRBG backtracking resistance: recovering the state afterwards
// does not reveal the keystream that was just emitted.
func update(s *chacha20State) {
	var tmp [blockSize]byte
	block(s, tmp[:])

	for i := 0; i < keySizeWords; i++ {
		lo := le32(tmp[i*4:])
		hi := le32(tmp[(i+keySizeWords)*4:])
		s.key[i] ^= lo ^ hi
	}
	secureZero(tmp[:])

	s.nonce[0]++
	if s.nonce[0] == 0 {
		s.nonce[1]++
	}
	if s.nonce[1] == 0 {
		s.nonce[2]++
	}
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// seed injects an arbitrary-length byte string into the DRBG by
// repeatedly XORing up to keySize bytes of in into the key (any remainder
// in a short final chunk leaves the untouched high key bytes as they
// were) and running update after each chunk.
//
// This is logically a CBC-MAC-like chain: each chunk of input is absorbed
// into the key, then diffused through one full ChaCha20 block via update,
// before the next chunk is absorbed. Entropy from a long input is spread
// through cipher output rather than merely XOR-accumulated.
func seed(s *chacha20State, in []byte) {
	for len(in) > 0 {
		todo := len(in)
		if todo > keySize {
			todo = keySize
		}

		keyBytes := keyAsBytes(&s.key)
		for i := 0; i < todo; i++ {
			keyBytes[i] ^= in[i]
		}
		setKeyFromBytes(&s.key, keyBytes)

		update(s)
		in = in[todo:]
	}
}

// keyAsBytes returns the key words as a little-endian byte slice copy.
func keyAsBytes(key *[keySizeWords]uint32) []byte {
	b := make([]byte, keySize)
	for i, w := range key {
		b[i*4] = byte(w)
		b[i*4+1] = byte(w >> 8)
		b[i*4+2] = byte(w >> 16)
		b[i*4+3] = byte(w >> 24)
	}
	return b
}

func setKeyFromBytes(key *[keySizeWords]uint32, b []byte) {
	for i := range key {
		key[i] = le32(b[i*4:])
	}
}

// generate produces len(out) bytes of DRBG output into out. Full 64-byte
// chunks are written directly from the block function; a final partial
// chunk (1..63 bytes) is produced into a stack buffer, copied out, and
// zeroized. After all bytes are emitted, update runs exactly once.
//
// Because len(out) must be representable as a non-negative int and the
// caller is bound by the public API to uint32 lengths (see Handle.Read),
// a single call can never emit enough blocks to wrap the 32-bit counter.
func generate(s *chacha20State, out []byte) {
	for len(out) >= blockSize {
		block(s, out[:blockSize])
		out = out[blockSize:]
	}

	if len(out) > 0 {
		var tmp [blockSize]byte
		block(s, tmp[:])
		copy(out, tmp[:len(out)])
		secureZero(tmp[:])
	}

	update(s)
}
