package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViolationsString(t *testing.T) {
	assert.Equal(t, "none", Violations(0).String())
	assert.Equal(t, "capacity", BadCapacity.String())
	assert.Equal(t, "capacity|size", (BadCapacity | BadSize).String())
	assert.Contains(t, Violations(1<<20).String(), "unknown")
}

func TestViolationsHas(t *testing.T) {
	v := BadSize | BadChecksum
	assert.True(t, v.Has(BadSize))
	assert.True(t, v.Has(BadChecksum))
	assert.True(t, v.Has(BadSize|BadChecksum))
	assert.False(t, v.Has(BadCapacity))
}

func TestVerifyEmptyZeroValue(t *testing.T) {
	var s Stack
	assert.Equal(t, Violations(0), s.verifyEmpty())
}

func TestVerifyEmptyDirtyFields(t *testing.T) {
	s := &Stack{size: 3}
	assert.True(t, s.verifyEmpty().Has(BadSize))

	s = &Stack{capacity: 8}
	assert.True(t, s.verifyEmpty().Has(BadCapacity))

	s = &Stack{items: make([]Item, 4)}
	assert.True(t, s.verifyEmpty().Has(BadBuffer))
}

func TestVerifyUnconstructed(t *testing.T) {
	var s Stack
	v := s.Verify()
	assert.True(t, v.Has(BadCapacity), "zero capacity is below the minimum")
	assert.False(t, v.Has(BadSize))
}
