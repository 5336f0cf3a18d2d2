package touchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDevice() *Device {
	return NewDevice(Config{NumSlots: 2, NTouches: 3})
}

func TestDetectJumpBoundary(t *testing.T) {
	d := newTestDevice()
	touch := &d.touches[0]
	touch.State = TouchUpdate
	touch.History.Push(HistorySample{Point: Point{X: 0, Y: 0}, Time: 0})

	// Exactly 20mm over the 12ms reference interval scales to exactly
	// the absolute threshold; strictly-greater-than means this must
	// NOT register as a jump (spec.md §8 boundary case). The touch was
	// already moving 20mm per reference interval, so the relative
	// (>7mm increase) rule stays quiet and only the absolute threshold
	// is exercised.
	touch.Jumps.LastDeltaMM = 20
	touch.Point = Point{X: 20, Y: 0}
	d.detectJump(touch, jumpRefIntervalUS)
	assert.Equal(t, 1, touch.History.Count(), "exactly-20mm move must not reset history")

	touch.History.Reset()
	touch.History.Push(HistorySample{Point: Point{X: 0, Y: 0}, Time: 0})
	touch.Point = Point{X: 21, Y: 0}
	d.detectJump(touch, jumpRefIntervalUS)
	assert.Equal(t, 0, touch.History.Count(), "over-20mm move must reset history as a jump")
}

func TestDetectJumpSkipsStaleInterval(t *testing.T) {
	d := newTestDevice()
	touch := &d.touches[0]
	touch.State = TouchUpdate
	touch.History.Push(HistorySample{Point: Point{X: 0, Y: 0}, Time: 0})
	touch.Point = Point{X: 1000, Y: 1000}

	// tdelta far beyond 2x the reference interval: even a huge jump in
	// raw distance must be ignored, since the comparison is meaningless
	// across a long gap.
	d.detectJump(touch, 3*jumpRefIntervalUS)
	assert.Equal(t, 1, touch.History.Count(), "stale interval must not trigger jump detection")
}
