package touchpad

const (
	jumpAbsoluteThresholdMM = 20.0
	jumpRelativeThresholdMM = 7.0
)

// detectJump implements tp_detect_jumps (spec.md §4.3 step 3): a
// sudden coordinate discontinuity, most often caused by a dropped
// slot or a firmware glitch, is detected by comparing the implied
// speed of the latest sample against a reference 12ms inter-sample
// interval, both in absolute terms and relative to the previous jump
// distance.
func (d *Device) detectJump(t *Touch, time int64) {
	last, ok := t.History.Latest()
	if !ok {
		return
	}

	tdelta := time - last.Time
	if tdelta > 2*jumpRefIntervalUS || tdelta == 0 {
		return
	}

	dx := t.Point.X - last.Point.X
	dy := t.Point.Y - last.Point.Y
	mm := distanceMM(d, dx, dy)
	scaled := mm * float64(jumpRefIntervalUS) / float64(tdelta)

	jumped := scaled > jumpAbsoluteThresholdMM || scaled-t.Jumps.LastDeltaMM > jumpRelativeThresholdMM
	t.Jumps.LastDeltaMM = scaled

	if !jumped {
		return
	}

	t.History.Reset()
	if !d.config.SemiMT {
		d.logger().Warnf("touch %d jumped %.2fmm (suppressed motion)", t.Index, scaled)
	}
}
