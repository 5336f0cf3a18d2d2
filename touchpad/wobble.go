package touchpad

const wobbleMaxIntervalUS = 40_000

// wobblePattern is the 3-bit {Right, Left, Right} shift-register
// pattern that latches hysteresis on (spec.md §4.3 step 6): binary 101.
const wobblePattern = 0b101

// detectWobble implements the single-finger jitter detector of
// spec.md §4.3 step 6. It only runs while there is exactly one finger
// down (and the finger count didn't just change), hysteresis is not
// already enabled, and this frame carried a motion event; once it sees
// the touch ping-pong right/left/right it latches hysteresis on for
// the rest of the device's lifetime (spec.md §3 invariant: hysteresis
// never un-latches).
func (d *Device) detectWobble(t *Touch, time int64) {
	if d.nfingers_down != 1 || d.nfingers_down != d.oldNfingersDown {
		return
	}
	if d.hysteresisEnabled || t.History.Count() == 0 {
		return
	}

	if !d.queued.Has(QueuedMotion) {
		t.Hysteresis.XMotionHistory = 0
		return
	}

	last, _ := t.History.Latest()
	dx := t.Point.X - last.Point.X
	dy := t.Point.Y - last.Point.Y
	dtime := time - d.hysteresisLastMotion
	d.hysteresisLastMotion = time

	if (dx == 0 && dy != 0) || dtime > wobbleMaxIntervalUS {
		t.Hysteresis.XMotionHistory = 0
		return
	}

	reg := t.Hysteresis.XMotionHistory >> 1
	if dx > 0 {
		reg |= 0b100
	}
	t.Hysteresis.XMotionHistory = reg & 0b111

	if t.Hysteresis.XMotionHistory == wobblePattern {
		d.hysteresisEnabled = true
	}
}
