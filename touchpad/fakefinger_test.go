package touchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeFingersCount(t *testing.T) {
	var f FakeFingers
	assert.Equal(t, 0, f.Count())

	require.True(t, f.SetCount(fakeBitSingle, true), "SetCount(single, true) on a clean register should not report a hardware bug")
	assert.Equal(t, 1, f.Count())

	// Real hardware holds BTN_TOOL_FINGER alongside BTN_TOOL_DOUBLETAP
	// as a legacy "contact present" indication, so this is not a
	// hardware bug, and the higher count wins.
	require.True(t, f.SetCount(fakeBitDouble, true), "SetCount(double, true) alongside single still latched should not report a hardware bug")
	assert.Equal(t, 2, f.Count())

	// But two of the double/triple/quad bits latched at once is a
	// hardware bug: they are mutually exclusive (spec.md §4.1).
	assert.False(t, f.SetCount(fakeBitTriple, true), "SetCount(triple, true) with double still latched should report a hardware bug")
}

func TestFakeFingersOverflow(t *testing.T) {
	var f FakeFingers
	f.SetTouch(true)
	f.SetOverflow()
	require.Equal(t, FakeFingerOverflow, f.Count())

	f.SetTouch(false)
	assert.Equal(t, 0, f.Count(), "releasing BTN_TOUCH must clear overflow")
}

func TestFakeFingersTouching(t *testing.T) {
	var f FakeFingers
	assert.False(t, f.Touching())
	f.SetTouch(true)
	assert.True(t, f.Touching())
}
