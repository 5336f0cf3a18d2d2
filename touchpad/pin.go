package touchpad

// pinReleaseDistanceMM is already declared in process.go.

// maintainPin implements spec.md §4.3 step 11: a touch pinned under a
// held click is released once it has moved more than
// pinReleaseDistanceMM from the point it was pinned at. Exactly the
// threshold distance does not release it (strict greater-than).
func (d *Device) maintainPin(t *Touch) {
	if !t.Pinned.IsPinned {
		return
	}
	delta := t.Point.Sub(t.Pinned.Center)
	if distanceMM(d, delta.X, delta.Y) > pinReleaseDistanceMM {
		t.Pinned.IsPinned = false
	}
}
