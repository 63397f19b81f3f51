//go:build !stacknocanary && !stackunprotected

package stack

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/stackguard/stackguard/stack/arena"
)

// canarySeed is the fixed sentinel constant. The two in-buffer canaries
// store it XORed with the buffer's base address, so a stale copy from a
// previous allocation, or from another stack's buffer, fails the check.
const canarySeed uint64 = 0xCAFEBABEDEADF00D

// canaryWord is the width of one sentinel word in bytes.
const canaryWord = 8

// canaries holds the two sentinel words embedded in the container
// metadata. The in-buffer pair lives inside the arena region, one word
// before the first slot and one immediately after the last capacity slot.
type canaries struct {
	left  uint64
	right uint64
}

// canaryPrefix is the byte offset of the first element slot in a region.
func canaryPrefix() int { return canaryWord }

// regionBytes is the region size needed for a given slot capacity,
// including both in-buffer canaries and alignment padding.
func regionBytes(capacity int) int {
	return canaryWord + alignUp(capacity*itemSize) + canaryWord
}

func rightCanaryOffset(capacity int) int {
	return canaryWord + alignUp(capacity*itemSize)
}

// arm installs the metadata sentinels. Called once per construct; the
// words are never written again until reset.
func (c *canaries) arm() {
	c.left = canarySeed
	c.right = canarySeed
}

func (c *canaries) reset() {
	c.left = 0
	c.right = 0
}

// seal writes both in-buffer sentinels for a freshly acquired region.
// Called on every (re)allocation, since the expected values are a
// function of the new base address.
func (c *canaries) seal(r *arena.Region, capacity int) {
	b := r.Bytes()
	want := canarySeed ^ uint64(r.Base())
	binary.LittleEndian.PutUint64(b[:canaryWord], want)
	off := rightCanaryOffset(capacity)
	binary.LittleEndian.PutUint64(b[off:off+canaryWord], want)
}

// check compares all four sentinels against their expected values. A
// corrupted capacity can place the right canary outside the region; an
// unreadable canary counts as a mismatch.
func (c *canaries) check(s *Stack) Violations {
	var v Violations

	if c.left != canarySeed {
		v |= BadMetaLeftCanary
	}
	if c.right != canarySeed {
		v |= BadMetaRightCanary
	}

	r := s.region
	if r == nil {
		return v
	}
	b := r.Bytes()
	want := canarySeed ^ uint64(r.Base())

	if len(b) < canaryWord || binary.LittleEndian.Uint64(b[:canaryWord]) != want {
		v |= BadDataLeftCanary
	}
	if s.capacity < 0 || s.capacity > maxCapacity {
		v |= BadDataRightCanary
		return v
	}
	off := rightCanaryOffset(s.capacity)
	if off+canaryWord > len(b) || binary.LittleEndian.Uint64(b[off:off+canaryWord]) != want {
		v |= BadDataRightCanary
	}
	return v
}

func (c *canaries) emptyCheck() Violations {
	var v Violations
	if c.left != 0 {
		v |= BadMetaLeftCanary
	}
	if c.right != 0 {
		v |= BadMetaRightCanary
	}
	return v
}

// snapshot packs the metadata sentinel words into the checksum's metadata
// snapshot. b has room for both words.
func (c *canaries) snapshot(b []byte) {
	binary.LittleEndian.PutUint64(b[:canaryWord], c.left)
	binary.LittleEndian.PutUint64(b[canaryWord:2*canaryWord], c.right)
}

// describe renders the canary section of a dump report.
func (c *canaries) describe(b *strings.Builder, s *Stack, v Violations, rule string) {
	fmt.Fprintf(b, " left  meta canary: %016x %s\n", c.left, passFail(v&BadMetaLeftCanary == 0))
	fmt.Fprintf(b, " right meta canary: %016x %s\n", c.right, passFail(v&BadMetaRightCanary == 0))
	fmt.Fprintf(b, "%s\n", rule)

	r := s.region
	if r == nil {
		return
	}
	data := r.Bytes()
	want := canarySeed ^ uint64(r.Base())

	if len(data) >= canaryWord {
		fmt.Fprintf(b, " left  data canary: %016x want %016x at 0x%x %s\n",
			binary.LittleEndian.Uint64(data[:canaryWord]), want,
			uint64(r.Base()), passFail(v&BadDataLeftCanary == 0))
	}
	if off := rightCanaryOffset(s.capacity); s.capacity >= 0 && s.capacity <= maxCapacity && off+canaryWord <= len(data) {
		fmt.Fprintf(b, " right data canary: %016x want %016x at 0x%x %s\n",
			binary.LittleEndian.Uint64(data[off:off+canaryWord]), want,
			uint64(r.Base())+uint64(off), passFail(v&BadDataRightCanary == 0))
	} else {
		fmt.Fprintf(b, " right data canary: unreadable %s\n", passFail(v&BadDataRightCanary == 0))
	}
	fmt.Fprintf(b, "%s\n", rule)
}
