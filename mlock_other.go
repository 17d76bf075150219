// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build !linux

package chacha20drng

// lockMemory is a no-op on platforms without a wired-up mlock syscall in
// this build; memory locking is advisory everywhere, so its absence here
// is not an error.
func lockMemory(h *Handle) error {
	return nil
}

func unlockMemory(h *Handle) {}
