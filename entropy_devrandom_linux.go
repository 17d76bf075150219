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

// devRandomFile is the process-wide /dev/random descriptor, opened
// close-on-exec on first use and shared by every Handle with
// EnableDevRandom set. It is released (closed) when the last referencing
// Handle is closed.
type devRandomFile struct {
	fd int
}

func openDevRandom() devRandomFile {
	fd, err := unix.Open("/dev/random", unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return devRandomFile{fd: -1}
	}
	return devRandomFile{fd: fd}
}

func closeDevRandom(f devRandomFile) {
	if f.fd >= 0 {
		_ = unix.Close(f.fd)
	}
}

var devRandomSingleton = refCounted[devRandomFile]{
	newFn:   openDevRandom,
	closeFn: closeDevRandom,
}

func acquireDevRandomSource() source {
	return &devRandomSource{file: devRandomSingleton.acquire()}
}

func releaseDevRandomSource() {
	devRandomSingleton.release()
}

// devRandomSource reads from the shared /dev/random descriptor, retrying
// on EINTR/ERESTART exactly like the getrandom source's loop.
type devRandomSource struct {
	file devRandomFile
}

func (devRandomSource) requestBytes() int { return minEntropyBytes }

func (d *devRandomSource) read(buf []byte) (int, error) {
	if d.file.fd < 0 {
		return 0, nil
	}

	var n int
	for n < len(buf) {
		r, err := unix.Read(d.file.fd, buf[n:])
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
