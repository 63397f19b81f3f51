package stack

import (
	"errors"
	"fmt"
)

var (
	// ErrBadAlloc indicates that acquiring or resizing the buffer failed.
	// The container keeps its last verified-good state.
	ErrBadAlloc = errors.New("stack: buffer allocation failed")

	// ErrNotEmpty indicates Construct was called on a stack that is not in
	// the zeroed, unconstructed state. No allocation is performed.
	ErrNotEmpty = errors.New("stack: construct requires a zeroed stack")

	// ErrEmptyPop indicates Pop was called on a logically empty stack.
	ErrEmptyPop = errors.New("stack: pop from an empty stack")
)

// ErrCapLimit indicates growth past the maximum capacity. It matches
// ErrBadAlloc under errors.Is, since callers treat it as a failed
// (re)allocation.
var ErrCapLimit = fmt.Errorf("%w: capacity limit reached", ErrBadAlloc)

// CorruptionError reports pre-existing corruption discovered while
// attempting an operation. The operation aborts without mutating, and a
// diagnostic dump has already been written to the sink.
type CorruptionError struct {
	Violations Violations
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("stack: corruption detected: %s", e.Violations)
}
