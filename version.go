// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import "fmt"

// Current release of the ChaCha20 DRNG construction implemented by this
// package. MAJOR changes are API/ABI incompatible; MINOR changes are
// additive and API compatible; PATCH changes are bug fixes only.
const (
	versionMajor = 1
	versionMinor = 3
	versionPatch = 1
)

// Version returns the current version encoded as
// MAJOR*1_000_000 + MINOR*10_000 + PATCH*100, e.g. 1.3.1 => 1_030_100.
func Version() uint32 {
	return versionMajor*1_000_000 + versionMinor*10_000 + versionPatch*100
}

// VersionString returns a human-readable version string of the form
// "ChaCha20 DRNG MAJOR.MINOR.PATCH".
func VersionString() string {
	return fmt.Sprintf("ChaCha20 DRNG %d.%d.%d", versionMajor, versionMinor, versionPatch)
}
