// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

//go:build !linux

package chacha20drng

import (
	"errors"
	"os"
)

// devRandomFile is the process-wide entropy-device descriptor on
// platforms without the Linux-specific O_CLOEXEC open path. Go's os
// package marks file descriptors it creates close-on-exec by default, so
// no extra flag is needed here.
type devRandomFile struct {
	f *os.File
}

func openDevRandom() devRandomFile {
	f, err := os.Open("/dev/random")
	if err != nil {
		return devRandomFile{}
	}
	return devRandomFile{f: f}
}

func closeDevRandom(f devRandomFile) {
	if f.f != nil {
		_ = f.f.Close()
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

type devRandomSource struct {
	file devRandomFile
}

func (devRandomSource) requestBytes() int { return minEntropyBytes }

func (d *devRandomSource) read(buf []byte) (int, error) {
	if d.file.f == nil {
		return 0, nil
	}

	var n int
	for n < len(buf) {
		r, err := d.file.f.Read(buf[n:])
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
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
