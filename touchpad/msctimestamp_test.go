package touchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMSCTimestampRepair reproduces the worked example of spec.md §4.5:
// MSC_TIMESTAMP values of 0, 7300, 123456 (microseconds) should seed an
// interval of 7300µs, then detect the firmware jump on the third event
// and rewrite history backwards by tdelta = 123456 - 7300 = 116156.
func TestMSCTimestampRepair(t *testing.T) {
	d := NewDevice(Config{NumSlots: 1, NTouches: 2})
	var restarted int64
	var restartCalled bool
	d.Collaborators = fakeCollaborators{restart: func(atTime int64) {
		restartCalled = true
		restarted = atTime
	}}

	d.touches[0].History.Push(HistorySample{Point: Point{X: 10, Y: 10}, Time: 1000})

	d.msc.now = 0
	d.processMSCTimestamp(5000)
	require.Equal(t, MSCExpectFirst, d.msc.state)

	d.msc.now = 7300
	d.processMSCTimestamp(5000)
	assert.Equal(t, MSCExpectDelay, d.msc.state)
	assert.EqualValues(t, 7300, d.msc.interval)

	d.msc.now = 123456
	d.processMSCTimestamp(123456)
	assert.Equal(t, MSCIgnore, d.msc.state)
	require.True(t, restartCalled)
	assert.Equal(t, int64(123456-116156), restarted)

	sample := d.touches[0].History.At(0)
	assert.Equal(t, int64(123456-116156-7300*0), sample.Time)
}

// fakeCollaborators implements touchpad.Collaborators with overridable
// hooks, for tests that only care about one or two callbacks.
type fakeCollaborators struct {
	NopCollaborators
	restart func(atTime int64)
}

func (f fakeCollaborators) RestartPointerAccel(d *Device, atTime int64) {
	if f.restart != nil {
		f.restart(atTime)
	}
}
