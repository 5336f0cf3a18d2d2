package touchpad

const (
	// jumpRefIntervalUS is the reference inter-sample interval used
	// by jump detection (spec.md §4.3 step 3): 12ms.
	jumpRefIntervalUS = 12_000
	// lenovoT450OtherAxisLimit is the number of consecutive
	// OTHERAXIS-only frames (no motion) tolerated before the T450
	// quirk forces a history reset (spec.md §4.3 step 2).
	lenovoT450OtherAxisLimit = 10
	// pinReleaseDistanceMM is the distance from the pin center beyond
	// which a touch unpins (spec.md §4.3 step 11, §8).
	pinReleaseDistanceMM = 1.5
)

// process runs the fixed-order per-touch analyzer pipeline (spec.md
// §4.3) and the frame-level follow-up it drives (thumb-speed override,
// collaborator dispatch, click-pin).
func (d *Device) process(time int64) {
	d.positionTopmostFakeTouch()
	d.applyMotionHistoryResetPolicy()

	d.haveNewTouch = false
	d.newTouchIndex = -1
	maxExceeded := 0

	for i := range d.touches {
		t := &d.touches[i]
		if t.State == TouchNone {
			continue
		}

		if !t.Dirty {
			// A non-dirty touch must be below the speed limit: it
			// still decays toward zero and still counts toward the
			// frame's max (spec.md §4.3 step 10).
			if t.Speed.ExceededCount > 0 {
				t.Speed.ExceededCount--
			}
			if t.Speed.ExceededCount > maxExceeded {
				maxExceeded = t.Speed.ExceededCount
			}
			continue
		}

		d.detectJump(t, time)
		d.detectThumb(t, time)
		d.detectPalm(t, time)
		t.Tap.IsThumb = t.Thumb.State == ThumbYes
		t.Tap.IsPalm = t.Palm.State != PalmNone
		d.detectWobble(t, time)
		d.applyHysteresis(t, time)

		if t.State == TouchUpdate {
			t.History.Push(HistorySample{Point: t.Point, Time: time})
		}

		d.updateSpeed(t, time)
		d.updateSpeedExceeded(t)
		if t.Speed.ExceededCount > maxExceeded {
			maxExceeded = t.Speed.ExceededCount
		}
		d.maintainPin(t)

		if t.State == TouchBegin {
			d.haveNewTouch = true
			d.newTouchIndex = i
			if d.Collaborators != nil {
				d.Collaborators.RestartPointerAccel(d, time)
			}
		}
	}

	d.maxSpeedExceeded = maxExceeded
	d.applySpeedBasedThumbOverride()

	if d.Collaborators != nil {
		filterMotion := false
		for _, ev := range d.pendingButtons {
			if d.Collaborators.Button(d, ev) {
				filterMotion = true
			}
		}
		d.buttonFilterMotion = filterMotion
		if !d.suspended {
			d.Collaborators.Gesture(d)
		}
	}

	if d.queued.Has(QueuedButtonPress) && d.isClickpad() {
		for i := range d.touches {
			t := &d.touches[i]
			t.Pinned.Center = t.Point
			t.Pinned.IsPinned = true
		}
	}
}

// isClickpad reports whether the whole pad surface acts as the
// physical button. The button state machine owns this concept (out of
// core scope, §1); the core only needs to know whether to pin on
// press, and takes the answer from Config.ClickpadLike.
func (d *Device) isClickpad() bool {
	return d.config.ClickpadLike
}

// positionTopmostFakeTouch implements spec.md §4.3 step 1: when
// fake_count exceeds num_slots and at least one finger is down, every
// ghost touch not sourced from a physical slot is repositioned to the
// topmost (minimum-y) active physical touch.
func (d *Device) positionTopmostFakeTouch() {
	fakeCount := fakeCountForCompare(d.fakeFingers)
	if fakeCount <= d.config.NumSlots || d.nfingers_down == 0 {
		return
	}

	topIdx := -1
	for i := 0; i < d.config.NumSlots; i++ {
		t := &d.touches[i]
		if t.State == TouchNone || t.State == TouchEnd {
			continue
		}
		if topIdx == -1 || t.Point.Y < d.touches[topIdx].Point.Y {
			topIdx = i
		}
	}
	if topIdx == -1 {
		d.logger().Warnf("library bug: topmost touch not found despite fake_count > num_slots")
		return
	}

	top := d.touches[topIdx]
	for i := d.config.NumSlots; i < len(d.touches); i++ {
		t := &d.touches[i]
		if t.fromSlot {
			continue
		}
		t.Point = top.Point
		t.Pressure = top.Pressure
		t.Dirty = true
	}
}

// applyMotionHistoryResetPolicy implements spec.md §4.3 step 2.
func (d *Device) applyMotionHistoryResetPolicy() {
	reset := false
	if d.nfingers_down != d.oldNfingersDown {
		reset = true
	}

	if d.queued.Has(QueuedOtherAxis) && !d.queued.Has(QueuedMotion) {
		d.otherAxisOnlyCount++
	} else if d.queued.Has(QueuedMotion) {
		d.otherAxisOnlyCount = 0
	}
	if d.config.LenovoT450OtherAxisQuirk && d.otherAxisOnlyCount > lenovoT450OtherAxisLimit {
		reset = true
		d.otherAxisOnlyCount = 0
	}

	if !reset {
		return
	}
	for i := range d.touches {
		d.touches[i].History.Reset()
	}
}

// applySpeedBasedThumbOverride implements the post-analyzer rule of
// spec.md §4.3 "After analyzers": when a new touch begins while
// nfingers_down == 2 and the recent max speed-exceeded counter is
// high, the newer touch is force-classified as a thumb unless the two
// touches are close enough for a deliberate two-finger gesture.
func (d *Device) applySpeedBasedThumbOverride() {
	if !d.haveNewTouch || d.nfingers_down != 2 {
		return
	}

	maxExceeded := 0
	var other *Touch
	for i := range d.touches {
		t := &d.touches[i]
		if i == d.newTouchIndex {
			continue
		}
		if t.IsActive() && t.Speed.ExceededCount > maxExceeded {
			maxExceeded = t.Speed.ExceededCount
		}
		if t.IsActive() {
			other = t
		}
	}
	if maxExceeded <= 5 {
		return
	}

	newTouch := &d.touches[d.newTouchIndex]
	if other != nil && d.config.ScrollMethod == ScrollTwoFinger {
		delta := newTouch.Point.Sub(other.Point)
		if abs32(delta.X) <= mmToUnits(d, thumbPairDistanceX) && abs32(delta.Y) <= mmToUnits(d, thumbPairDistanceY) {
			return
		}
	}
	newTouch.Thumb.State = ThumbYes
	newTouch.Tap.IsThumb = true
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
