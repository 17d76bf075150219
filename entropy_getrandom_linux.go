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

// getrandomSource reads from the platform's getrandom(2) syscall,
// retrying on EINTR/ERESTART and accumulating partial returns until the
// requested length is satisfied or a fatal error occurs.
type getrandomSource struct{}

func (getrandomSource) requestBytes() int { return minEntropyBytes }

func (getrandomSource) read(buf []byte) (int, error) {
	var n int
	for n < len(buf) {
		r, err := unix.Getrandom(buf[n:], 0)
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.ERESTART) {
				continue
			}
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		if r == 0 {
			break
		}
		n += r
	}
	return n, nil
}
