package touchpad

import "math"

const palmEdgeTimeoutUS = 200_000

// detectPalm implements the palm classifier of spec.md §4.3 step 5.
// Pressure is checked first and last because it never releases: once
// pressure exceeds the threshold the touch stays classified as a palm
// until it ends, and the final check overrides anything the other
// checks decided this frame. (Touch-size classification does not
// release either.)
func (d *Device) detectPalm(t *Touch, time int64) {
	if d.palmPressureTriggered(t, time) {
		return
	}
	if d.palmArbitrationTriggered(t, time) {
		return
	}
	if d.palmDWTTriggered(t, time) {
		return
	}
	if d.palmTrackpointTriggered(t, time) {
		return
	}
	if d.palmToolTriggered(t) {
		return
	}
	if d.palmTouchSizeTriggered(t) {
		return
	}
	if d.palmEdgeTriggered(t, time) {
		return
	}
	d.palmPressureTriggered(t, time)
}

func (d *Device) palmPressureTriggered(t *Touch, time int64) bool {
	if !d.config.Palm.UsePressure {
		return false
	}
	if t.Palm.State != PalmNone && t.Palm.State != PalmPressure {
		return false
	}
	if t.Pressure > d.config.Palm.PressureThreshold {
		t.Palm.State = PalmPressure
		t.Palm.Time = time
		return true
	}
	return false
}

func (d *Device) palmArbitrationTriggered(t *Touch, time int64) bool {
	if d.arbitrationState == ArbitrationNotActive {
		return false
	}
	t.Palm.State = PalmArbitration
	t.Palm.Time = time
	return true
}

func (d *Device) palmDWTTriggered(t *Touch, time int64) bool {
	if d.dwt.keyboardActive && t.State == TouchBegin {
		t.Palm.State = PalmTyping
		t.Palm.First = t.Point
		t.Palm.Time = time
		return true
	}
	if !d.dwt.keyboardActive && t.State == TouchUpdate && t.Palm.State == PalmTyping {
		if t.Palm.Time == 0 || t.Palm.Time > d.dwt.lastPressTime {
			t.Palm.State = PalmNone
		}
	}
	return false
}

func (d *Device) palmTrackpointTriggered(t *Touch, time int64) bool {
	if !d.config.Palm.MonitorTrackpoint {
		return false
	}
	if t.Palm.State == PalmNone && t.State == TouchBegin && d.trackpoint.active {
		t.Palm.State = PalmTrackpoint
		t.Palm.Time = time
		return true
	}
	if t.Palm.State == PalmTrackpoint && t.State == TouchUpdate && !d.trackpoint.active {
		if t.Palm.Time == 0 || t.Palm.Time > d.trackpoint.lastEventTime {
			t.Palm.State = PalmNone
		}
	}
	return false
}

func (d *Device) palmToolTriggered(t *Touch) bool {
	if !d.config.Palm.UseMTTool {
		return false
	}
	if t.Palm.State != PalmNone && t.Palm.State != PalmToolPalm {
		return false
	}
	if t.Palm.State == PalmNone && t.IsToolPalm {
		t.Palm.State = PalmToolPalm
	} else if t.Palm.State == PalmToolPalm && !t.IsToolPalm {
		t.Palm.State = PalmNone
	}
	return t.Palm.State == PalmToolPalm
}

func (d *Device) palmTouchSizeTriggered(t *Touch) bool {
	if !d.config.Palm.UseSize {
		return false
	}
	if t.Palm.State != PalmNone && t.Palm.State != PalmTouchSize {
		return false
	}
	if t.Major > d.config.Palm.SizeThreshold || t.Minor > d.config.Palm.SizeThreshold {
		t.Palm.State = PalmTouchSize
		return true
	}
	return false
}

// inSideEdge reports whether p is within the left or right palm
// exclusion zone.
func (d *Device) inSideEdge(p Point) bool {
	return p.X < d.edgeLeftUnits() || p.X > d.edgeRightUnits()
}

func (d *Device) inTopEdge(p Point) bool {
	return p.Y < d.edgeUpperUnits()
}

func (d *Device) inEdge(p Point) bool {
	return d.config.Geometry.PalmEdgeEnabled && (d.inSideEdge(p) || d.inTopEdge(p))
}

func (d *Device) inRightEdge(p Point) bool {
	return p.X > d.edgeRightUnits()
}

func (d *Device) edgeLeftUnits() int32   { return mmToUnits(d, float64(d.config.Geometry.LeftEdge)) }
func (d *Device) edgeRightUnits() int32  { return mmToUnits(d, float64(d.config.Geometry.RightEdge)) }
func (d *Device) edgeUpperUnits() int32  { return mmToUnits(d, float64(d.config.Geometry.UpperEdge)) }

func (d *Device) palmEdgeTriggered(t *Touch, time int64) bool {
	if t.Palm.State == PalmEdge {
		if d.palmMultifinger(t) {
			t.Palm.State = PalmNone
			return false
		}
		if d.palmMovedOutOfEdge(t, time) {
			t.Palm.State = PalmNone
			return false
		}
		return false
	}

	if d.palmMultifinger(t) {
		return false
	}

	if t.State != TouchBegin || !d.inEdge(t.Point) {
		return false
	}
	if d.config.ClickpadLike && d.inSoftButtonArea(t.Point) {
		return false
	}
	if d.inRightEdge(t.Point) {
		return false
	}

	t.Palm.State = PalmEdge
	t.Palm.Time = time
	t.Palm.First = t.Point
	return true
}

// inSoftButtonArea is a hook for the (out-of-core-scope) button state
// machine's software-button geometry; nil means "no software button
// area", matching devices without a clickpad bottom strip.
func (d *Device) inSoftButtonArea(p Point) bool {
	if d.SoftButtonArea == nil {
		return false
	}
	return d.SoftButtonArea(p)
}

// palmMultifinger releases an EDGE palm classification as soon as
// another finger is active, since the original single-finger-on-edge
// assumption no longer holds.
func (d *Device) palmMultifinger(t *Touch) bool {
	if d.nfingers_down < 2 {
		return false
	}
	for i := range d.touches {
		other := &d.touches[i]
		if other == t || !other.IsActive() {
			continue
		}
		if other.Palm.State == PalmNone {
			return true
		}
	}
	return false
}

// palmMovedOutOfEdge implements the 45-degree-octant direction check
// of spec.md §4.3 step 5: a touch released from PALM_EDGE must move out
// of the edge zone within 200ms, and only in a direction consistent
// with "sliding off the edge" rather than "drifting along it".
func (d *Device) palmMovedOutOfEdge(t *Touch, time int64) bool {
	if time >= t.Palm.Time+palmEdgeTimeoutUS || d.inEdge(t.Point) {
		return false
	}

	var allowed Direction
	switch {
	case d.inSideEdge(Point{X: t.Palm.First.X, Y: t.Palm.First.Y}):
		allowed = DirN | DirNE | DirE | DirSE | DirSW | DirW | DirNW
	case d.inTopEdge(t.Palm.First):
		allowed = DirS | DirSE | DirSW
	default:
		return false
	}

	delta := t.Point.Sub(t.Palm.First)
	dirs := octant(delta)
	return dirs&allowed != 0 && dirs&^allowed == 0
}

// octant bins a displacement into the nearest 45-degree direction. The
// bins do not overlap, so exactly one bit is set for any non-zero
// delta, including one lying close to a diagonal.
func octant(delta Point) Direction {
	if delta.X == 0 && delta.Y == 0 {
		return DirNone
	}
	x, y := float64(delta.X), float64(delta.Y)
	angle := angleDegrees(x, y)

	var d Direction
	add := func(lo, hi float64, bit Direction) {
		if angle >= lo && angle < hi {
			d |= bit
		}
	}
	// Y grows downward (device coordinates): angle 0 = East, 90 = South.
	add(337.5, 360, DirE)
	add(0, 22.5, DirE)
	add(22.5, 67.5, DirSE)
	add(67.5, 112.5, DirS)
	add(112.5, 157.5, DirSW)
	add(157.5, 202.5, DirW)
	add(202.5, 247.5, DirNW)
	add(247.5, 292.5, DirN)
	add(292.5, 337.5, DirNE)
	return d
}

func angleDegrees(x, y float64) float64 {
	theta := math.Atan2(y, x) * 180 / math.Pi
	if theta < 0 {
		theta += 360
	}
	return theta
}
