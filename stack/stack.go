package stack

import (
	"math/bits"
	"unsafe"

	"go.uber.org/zap"

	"github.com/stackguard/stackguard/stack/arena"
)

const (
	// minCapacity is the capacity a stack is constructed with and the
	// floor the shrink policy never goes below.
	minCapacity = 8

	// capFactor is the growth and shrink factor.
	capFactor = 2

	// maxCapacity is the largest power-of-two slot count a non-negative
	// int can hold. Growing past it fails before any mutation.
	maxCapacity = 1 << (bits.UintSize - 2)
)

// Stack is a LIFO container over a contiguous, dynamically resized buffer.
// The zero value is the unconstructed state; call Construct before use and
// Destruct when done. Not safe for concurrent use.
type Stack struct {
	region   *arena.Region
	items    []Item
	size     int
	capacity int

	canaries canaries
	digest   digest
}

// Size returns the number of elements currently stored.
func (s *Stack) Size() int { return s.size }

// Cap returns the current slot capacity of the buffer.
func (s *Stack) Cap() int { return s.capacity }

// Construct transitions a zeroed Stack to the live state: a buffer of the
// minimum capacity, every slot poisoned, canaries sealed, and the checksum
// seeded. Constructing a stack that is not in the zeroed state fails with
// ErrNotEmpty and performs no allocation.
func (s *Stack) Construct() error {
	if v := s.verifyEmpty(); v != 0 {
		logger.Warn("construct on a non-empty stack", zap.Stringer("violations", v))
		s.Dump()
		return ErrNotEmpty
	}
	if err := s.resize(minCapacity); err != nil {
		return err
	}
	s.canaries.arm()
	s.digest.refresh(s)
	if v := s.Verify(); v != 0 {
		s.Dump()
		return &CorruptionError{Violations: v}
	}
	return nil
}

// Push appends v on top of the stack, doubling the capacity first when the
// buffer is full. On any failure the stack is left exactly as it was.
func (s *Stack) Push(v Item) error {
	if vio := s.Verify(); vio != 0 {
		logger.Warn("push to an invalid stack", zap.Stringer("violations", vio))
		s.Dump()
		return &CorruptionError{Violations: vio}
	}

	if s.size == s.capacity {
		if s.capacity > maxCapacity/capFactor {
			logger.Warn("push past the capacity limit", zap.Int("capacity", s.capacity))
			return ErrCapLimit
		}
		if err := s.resize(s.capacity * capFactor); err != nil {
			return err
		}
	}

	s.items[s.size] = v
	s.size++
	s.digest.refresh(s)

	if vio := s.Verify(); vio != 0 {
		s.Dump()
		return &CorruptionError{Violations: vio}
	}
	return nil
}

// Pop removes and returns the top element, halving the capacity first when
// the stack is over-provisioned. Popping an empty stack returns Poison and
// ErrEmptyPop without mutating. On any failure the stack is left exactly
// as it was.
func (s *Stack) Pop() (Item, error) {
	if vio := s.Verify(); vio != 0 {
		logger.Warn("pop from an invalid stack", zap.Stringer("violations", vio))
		s.Dump()
		return Poison, &CorruptionError{Violations: vio}
	}

	if s.size == 0 {
		logger.Warn("pop from an empty stack")
		return Poison, ErrEmptyPop
	}

	if s.shrinkable() {
		if err := s.resize(s.capacity / capFactor); err != nil {
			return Poison, err
		}
	}

	s.size--
	v := s.items[s.size]
	s.items[s.size] = Poison
	s.digest.refresh(s)

	if vio := s.Verify(); vio != 0 {
		s.Dump()
		return Poison, &CorruptionError{Violations: vio}
	}
	return v, nil
}

// Destruct releases the owned buffer (a no-op when none was ever acquired)
// and resets every field to its zero value. The stack may then be
// constructed again or destructed again without fault.
func (s *Stack) Destruct() {
	if s.region != nil {
		_ = s.region.Release()
	}
	s.region = nil
	s.items = nil
	s.size = 0
	s.capacity = 0
	s.canaries.reset()
	s.digest.reset()
}

// shrinkable reports whether the buffer is over-provisioned enough to
// halve. The margin divides by capFactor squared, not capFactor, so growth
// and shrink do not oscillate at the same boundary, and it is evaluated
// against the pre-pop size.
func (s *Stack) shrinkable() bool {
	return s.capacity/(capFactor*capFactor)+1 >= s.size && s.capacity > minCapacity
}

// resize swaps the buffer for one sized for the given capacity: copy the
// live prefix, poison every slot above size, seal the buffer canaries to
// the new base address, then release the old region. On allocation failure
// nothing changes.
func (s *Stack) resize(capacity int) error {
	r, err := arena.Acquire(regionBytes(capacity))
	if err != nil {
		logger.Error("stack reallocation failed", zap.Int("capacity", capacity), zap.Error(err))
		return ErrBadAlloc
	}

	items := itemsView(r, capacity)
	copy(items, s.items[:s.size])
	fillPoison(items[s.size:])
	s.canaries.seal(r, capacity)

	old := s.region
	s.region = r
	s.items = items
	s.capacity = capacity
	if old != nil {
		_ = old.Release()
	}
	return nil
}

// itemsView reinterprets the region's payload bytes as element slots. The
// payload begins at the canary prefix, which keeps the slots 8-byte
// aligned.
func itemsView(r *arena.Region, capacity int) []Item {
	b := r.Bytes()
	return unsafe.Slice((*Item)(unsafe.Pointer(&b[canaryPrefix()])), capacity)
}

// payloadBytes returns the full capacity-sized payload region, independent
// of the logical size.
func (s *Stack) payloadBytes() []byte {
	lo := canaryPrefix()
	return s.region.Bytes()[lo : lo+s.capacity*itemSize]
}

// alignUp rounds n up to a pointer-size boundary, fixing the right
// canary's offset from the buffer base.
func alignUp(n int) int {
	return (n + 7) &^ 7
}
