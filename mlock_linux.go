// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build linux

package chacha20drng

import (
	"errors"

	"golang.org/x/sys/unix"
)

// lockMemory attempts to lock the handle's backing memory into RAM,
// preventing it from being paged out to swap. A denial due to missing
// privilege (EPERM) or a resource limit (ENOMEM) is tolerated silently,
// per the advisory memory-locking policy; any other error is fatal.
func lockMemory(h *Handle) error {
	err := unix.Mlock(handleBytes(h))
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.EPERM) || errors.Is(err, unix.ENOMEM) {
		return nil
	}
	return ErrMemoryLock
}

func unlockMemory(h *Handle) {
	_ = unix.Munlock(handleBytes(h))
}
