//go:build !stacknohash && !stackunprotected

package stack

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// digestSeed is the process-wide seed for the content checksum.
const digestSeed uint64 = 0x5747A11D

// metaSnapshotLen packs base address, size, capacity, and both metadata
// canary words.
const metaSnapshotLen = 5 * 8

// digest holds the last-known-good content checksum: a seeded hash of the
// container metadata (excluding this field) combined with a seeded hash of
// the full capacity-sized payload region.
type digest struct {
	sum uint64
}

// refresh recomputes and stores the checksum. Called after every
// successful mutation; the digest is never updated incrementally.
func (d *digest) refresh(s *Stack) {
	d.sum, _ = d.compute(s)
}

func (d *digest) reset() {
	d.sum = 0
}

// check recomputes the checksum and compares it with the stored one. A
// payload made unreadable by corrupted metadata counts as a mismatch.
func (d *digest) check(s *Stack) Violations {
	if s.region == nil {
		return 0
	}
	sum, ok := d.compute(s)
	if !ok || sum != d.sum {
		return BadChecksum
	}
	return 0
}

func (d *digest) emptyCheck() Violations {
	if d.sum != 0 {
		return BadChecksum
	}
	return 0
}

// compute hashes the metadata snapshot and the full payload region under
// the same seed and mixes the two sums. Reports false when the capacity
// no longer describes the region, so callers treat the state as corrupt.
func (d *digest) compute(s *Stack) (uint64, bool) {
	r := s.region
	if r == nil {
		return 0, false
	}
	if s.capacity < 0 || s.capacity > maxCapacity {
		return 0, false
	}
	lo := canaryPrefix()
	hi := lo + s.capacity*itemSize
	if hi > r.Len() {
		return 0, false
	}

	var meta [metaSnapshotLen]byte
	binary.LittleEndian.PutUint64(meta[0:], uint64(r.Base()))
	binary.LittleEndian.PutUint64(meta[8:], uint64(s.size))
	binary.LittleEndian.PutUint64(meta[16:], uint64(s.capacity))
	s.canaries.snapshot(meta[24:])

	var h xxhash.Digest
	h.ResetWithSeed(digestSeed)
	h.Write(meta[:])
	metaSum := h.Sum64()

	h.ResetWithSeed(digestSeed)
	h.Write(r.Bytes()[lo:hi])
	return metaSum ^ h.Sum64(), true
}

// describe renders the checksum section of a dump report.
func (d *digest) describe(b *strings.Builder, s *Stack, v Violations, rule string) {
	if sum, ok := d.compute(s); ok {
		fmt.Fprintf(b, " checksum (recomputed): %016x %s\n", sum, passFail(v&BadChecksum == 0))
	} else {
		fmt.Fprintf(b, " checksum (recomputed): unreadable %s\n", passFail(v&BadChecksum == 0))
	}
	fmt.Fprintf(b, " checksum (stored):     %016x\n", d.sum)
	fmt.Fprintf(b, "%s\n", rule)
}
