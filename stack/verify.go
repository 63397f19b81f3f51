package stack

import (
	"fmt"
	"strings"
)

// Violations is a bitmask of broken structural invariants. Zero means no
// violation was detected; it is a best-effort structural check, not a
// cryptographic guarantee.
type Violations uint32

const (
	// BadBuffer flags a buffer pointer present in the unconstructed state.
	BadBuffer Violations = 1 << iota

	// BadCapacity flags a capacity outside the valid range.
	BadCapacity

	// BadSize flags a size exceeding the capacity.
	BadSize

	// BadChecksum flags a stored checksum that no longer matches a fresh
	// recomputation.
	BadChecksum

	// BadMetaLeftCanary and BadMetaRightCanary flag overwritten sentinel
	// words in the container metadata itself.
	BadMetaLeftCanary
	BadMetaRightCanary

	// BadDataLeftCanary and BadDataRightCanary flag overwritten sentinel
	// words at the edges of the heap buffer.
	BadDataLeftCanary
	BadDataRightCanary
)

var violationNames = []struct {
	bit  Violations
	name string
}{
	{BadBuffer, "buffer"},
	{BadCapacity, "capacity"},
	{BadSize, "size"},
	{BadChecksum, "checksum"},
	{BadMetaLeftCanary, "meta-left-canary"},
	{BadMetaRightCanary, "meta-right-canary"},
	{BadDataLeftCanary, "data-left-canary"},
	{BadDataRightCanary, "data-right-canary"},
}

// Has reports whether every bit in flag is set.
func (v Violations) Has(flag Violations) bool {
	return v&flag == flag
}

func (v Violations) String() string {
	if v == 0 {
		return "none"
	}
	var parts []string
	for _, n := range violationNames {
		if v&n.bit != 0 {
			parts = append(parts, n.name)
			v &^= n.bit
		}
	}
	if v != 0 {
		parts = append(parts, fmt.Sprintf("unknown(0x%x)", uint32(v)))
	}
	return strings.Join(parts, "|")
}

// Verify checks every structural invariant of a live stack and returns the
// set of violations. It is read-only and safe to call on a possibly
// corrupted container; every check runs every time.
func (s *Stack) Verify() Violations {
	var v Violations

	if s.capacity < minCapacity || s.capacity > maxCapacity {
		v |= BadCapacity
	}
	if s.size > s.capacity || s.size < 0 {
		v |= BadSize
	}
	v |= s.canaries.check(s)
	v |= s.digest.check(s)

	return v
}

// verifyEmpty checks that every field holds its zero, unconstructed value.
// Used only as the Construct precondition.
func (s *Stack) verifyEmpty() Violations {
	var v Violations

	if s.region != nil || s.items != nil {
		v |= BadBuffer
	}
	if s.capacity != 0 {
		v |= BadCapacity
	}
	if s.size != 0 {
		v |= BadSize
	}
	v |= s.canaries.emptyCheck()
	v |= s.digest.emptyCheck()

	return v
}
