package stack_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackguard/stackguard/stack"
)

func construct(t *testing.T) *stack.Stack {
	t.Helper()
	s := &stack.Stack{}
	require.NoError(t, s.Construct())
	t.Cleanup(s.Destruct)
	return s
}

func TestLIFOOrder(t *testing.T) {
	s := construct(t)

	values := []stack.Item{3, -7, 0, 42, math.MaxInt64, math.MinInt64, 1}
	for _, v := range values {
		require.NoError(t, s.Push(v))
	}
	for i := len(values) - 1; i >= 0; i-- {
		got, err := s.Pop()
		require.NoError(t, err)
		assert.Equal(t, values[i], got)
	}
	assert.Equal(t, 0, s.Size())
}

func TestPushPopRoundTrip(t *testing.T) {
	s := construct(t)

	for _, v := range []stack.Item{0, 1, -1, math.MaxInt64, math.MinInt64} {
		require.NoError(t, s.Push(v))
		got, err := s.Pop()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

// A pushed value equal to the poison pattern is a legal element and must
// not be confused with an empty or vacated slot.
func TestPoisonValueRoundTrips(t *testing.T) {
	s := construct(t)

	require.NoError(t, s.Push(stack.Poison))
	got, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, stack.Poison, got)
	assert.Equal(t, 0, s.Size())

	_, err = s.Pop()
	assert.ErrorIs(t, err, stack.ErrEmptyPop)
}

func TestEmptyPop(t *testing.T) {
	s := construct(t)

	got, err := s.Pop()
	assert.ErrorIs(t, err, stack.ErrEmptyPop)
	assert.Equal(t, stack.Poison, got)
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 8, s.Cap())
}

func TestGrowthSchedule(t *testing.T) {
	s := construct(t)
	require.Equal(t, 8, s.Cap())

	for i := 0; i < 8; i++ {
		require.NoError(t, s.Push(stack.Item(i)))
	}
	assert.Equal(t, 8, s.Cap(), "capacity must not grow until full")

	require.NoError(t, s.Push(8))
	assert.Equal(t, 16, s.Cap(), "ninth push doubles capacity")

	for i := 9; i < 16; i++ {
		require.NoError(t, s.Push(stack.Item(i)))
	}
	require.NoError(t, s.Push(16))
	assert.Equal(t, 32, s.Cap(), "seventeenth push doubles capacity again")
	assert.Equal(t, 17, s.Size())
}

func TestShrinkFloor(t *testing.T) {
	s := construct(t)

	for i := 0; i < 9; i++ {
		require.NoError(t, s.Push(stack.Item(i)))
	}
	require.Equal(t, 16, s.Cap())

	for i := 0; i < 9; i++ {
		_, err := s.Pop()
		require.NoError(t, err)
	}
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 8, s.Cap(), "capacity never shrinks below the minimum")

	_, err := s.Pop()
	assert.ErrorIs(t, err, stack.ErrEmptyPop)
	assert.Equal(t, 8, s.Cap())
}

// The shrink margin is capacity/4+1, checked against the size before the
// decrement: at capacity 16 the pop taken at size 5 shrinks, pops taken
// at larger sizes do not.
func TestShrinkHysteresis(t *testing.T) {
	s := construct(t)

	for i := 0; i < 9; i++ {
		require.NoError(t, s.Push(stack.Item(i)))
	}
	require.Equal(t, 16, s.Cap())

	for s.Size() > 5 {
		_, err := s.Pop()
		require.NoError(t, err)
		assert.Equal(t, 16, s.Cap(), "no shrink while size > 5")
	}

	_, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, 8, s.Cap(), "pop taken at size 5 shrinks to 8")
	assert.Equal(t, 4, s.Size())
}

func TestConstructTwiceFails(t *testing.T) {
	s := construct(t)

	err := s.Construct()
	assert.ErrorIs(t, err, stack.ErrNotEmpty)

	// The stack is untouched and still usable.
	require.NoError(t, s.Push(1))
	got, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, stack.Item(1), got)
}

func TestDestructIdempotent(t *testing.T) {
	s := &stack.Stack{}
	require.NoError(t, s.Construct())
	require.NoError(t, s.Push(5))

	s.Destruct()
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, 0, s.Cap())

	// Destructing again is a no-op, not a second free.
	s.Destruct()

	// And the stack is re-constructible.
	require.NoError(t, s.Construct())
	require.NoError(t, s.Push(9))
	got, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, stack.Item(9), got)
	s.Destruct()
}

func TestDestructNeverConstructed(t *testing.T) {
	var s stack.Stack
	s.Destruct()
	s.Destruct()
	require.NoError(t, s.Construct())
	s.Destruct()
}

func TestOperationsOnUnconstructed(t *testing.T) {
	var s stack.Stack

	err := s.Push(1)
	var ce *stack.CorruptionError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Violations.Has(stack.BadCapacity))

	got, err := s.Pop()
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, stack.Poison, got)
}

func TestVerifyCleanStack(t *testing.T) {
	s := construct(t)
	assert.Equal(t, stack.Violations(0), s.Verify())

	require.NoError(t, s.Push(11))
	assert.Equal(t, stack.Violations(0), s.Verify())
}

func TestDeepPushPop(t *testing.T) {
	s := construct(t)

	const n = 10_000
	for i := 0; i < n; i++ {
		require.NoError(t, s.Push(stack.Item(i*i)))
	}
	assert.Equal(t, n, s.Size())

	for i := n - 1; i >= 0; i-- {
		got, err := s.Pop()
		require.NoError(t, err)
		require.Equal(t, stack.Item(i*i), got)
	}
	assert.Equal(t, 8, s.Cap())
}
