package arena

import (
	"errors"
	"unsafe"
)

// ErrSize indicates a non-positive region size request.
var ErrSize = errors.New("arena: region size must be positive")

// Region is an exclusively owned contiguous byte region. The zero value is
// released; Release on an already released Region is a no-op.
type Region struct {
	data    []byte
	release func([]byte) error
}

var counters struct {
	acquires uint64
	releases uint64
}

// Acquire obtains a region of exactly n bytes. The contents are
// unspecified; callers fill the region themselves.
func Acquire(n int) (*Region, error) {
	if n <= 0 {
		return nil, ErrSize
	}
	r, err := acquire(n)
	if err != nil {
		return nil, err
	}
	counters.acquires++
	return r, nil
}

// Bytes returns the region's backing bytes, or nil after release.
func (r *Region) Bytes() []byte {
	if r == nil {
		return nil
	}
	return r.data
}

// Len returns the region size in bytes, zero after release.
func (r *Region) Len() int {
	if r == nil {
		return 0
	}
	return len(r.data)
}

// Base returns the region's base address, zero after release.
func (r *Region) Base() uintptr {
	if r == nil || len(r.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&r.data[0]))
}

// Release returns the region's memory. Releasing twice, or releasing a nil
// Region, is a no-op.
func (r *Region) Release() error {
	if r == nil || r.data == nil {
		return nil
	}
	data := r.data
	r.data = nil
	counters.releases++
	if r.release == nil {
		return nil
	}
	return r.release(data)
}

// Counters reports how many regions have been acquired and released over
// the process lifetime. Used by leak accounting in tests.
func Counters() (acquires, releases uint64) {
	return counters.acquires, counters.releases
}
