// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package chacha20drng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DisabledSource_ReadIsNoOp(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	d := disabledSource{n: minEntropyBytes}
	is.Equal(minEntropyBytes, d.requestBytes())

	buf := []byte{0xff, 0xff, 0xff, 0xff}
	n, err := d.read(buf)
	is.NoError(err)
	is.Equal(0, n)
	is.Equal([]byte{0xff, 0xff, 0xff, 0xff}, buf, "disabled source must never touch the buffer")
}

func Test_NewSourceSet_DisabledByDefault(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := Config{} // nothing enabled
	set := newSourceSet(&cfg)
	defer set.release(&cfg)

	n, err := set.getrandom.read(make([]byte, 4))
	is.NoError(err)
	is.Equal(0, n)

	n, err = set.jitter.read(make([]byte, 4))
	is.NoError(err)
	is.Equal(0, n)

	n, err = set.devRandom.read(make([]byte, 4))
	is.NoError(err)
	is.Equal(0, n)
}

func Test_NewSourceSet_GetrandomEnabled(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	cfg := Config{EnableGetrandom: true}
	set := newSourceSet(&cfg)
	defer set.release(&cfg)

	is.Equal(minEntropyBytes, set.getrandom.requestBytes())

	buf := make([]byte, minEntropyBytes)
	n, err := set.getrandom.read(buf)
	is.NoError(err)
	is.Equal(minEntropyBytes, n)
}

func Test_RefCounted_ConstructsOnceAndTearsDownOnLastRelease(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	var constructs, closes int
	rc := &refCounted[int]{
		newFn:   func() int { constructs++; return constructs },
		closeFn: func(int) { closes++ },
	}

	v1 := rc.acquire()
	v2 := rc.acquire()
	is.Equal(v1, v2, "the same instance must be handed out to every acquirer while refs > 0")
	is.Equal(1, constructs)

	rc.release()
	is.Equal(0, closes, "teardown must not fire until the last reference is released")

	rc.release()
	is.Equal(1, closes)

	// Acquiring again after the last release constructs a fresh instance.
	v3 := rc.acquire()
	is.Equal(2, constructs)
	is.NotEqual(v1, 0)
	_ = v3
}

func Test_RefCounted_ExtraReleaseIsNoOp(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	closes := 0
	rc := &refCounted[int]{
		newFn:   func() int { return 1 },
		closeFn: func(int) { closes++ },
	}

	rc.release() // released with zero outstanding refs
	is.Equal(0, closes)

	rc.acquire()
	rc.release()
	rc.release() // extra release beyond the real reference count
	is.Equal(1, closes)
}
