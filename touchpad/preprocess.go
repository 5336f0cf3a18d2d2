package touchpad

// fakeCountForCompare returns the fake-finger count with
// FakeFingerOverflow widened to a value larger than any real slot
// count, so "i < fake_count"-style comparisons treat overflow as "at
// least this many" rather than a sentinel.
func fakeCountForCompare(f FakeFingers) int {
	n := f.Count()
	if n == FakeFingerOverflow {
		return 99
	}
	return n
}

// preProcess resolves fake-finger/slot reconciliation and the unhover
// strategy, then commits MAYBE_END touches to END and snaps their
// point to the last known-good sample (spec.md §4.2).
func (d *Device) preProcess(time int64) {
	d.reconcileFakeTouches(time)
	d.unhover(time)

	for i := range d.touches {
		t := &d.touches[i]
		if t.State == TouchMaybeEnd {
			t.State = TouchEnd
			t.Dirty = true
		}
	}

	for i := range d.touches {
		t := &d.touches[i]
		if t.State == TouchEnd {
			if s, ok := t.History.Latest(); ok {
				t.Point = s.Point
			}
		}
	}
}

// reconcileFakeTouches implements tp_process_fake_touches: the
// Synaptics-serial quirk recovery, and ghost-touch synthesis for any
// index in [num_slots, ntouches) (spec.md §4.2 step 2).
func (d *Device) reconcileFakeTouches(time int64) {
	fakeCount := fakeCountForCompare(d.fakeFingers)

	if d.config.SynapticsSerialQuirk && d.fakeFingers.Count() >= 3 {
		slotted := 0
		for i := 0; i < d.config.NumSlots; i++ {
			if d.touches[i].IsActive() {
				slotted++
			}
		}
		if slotted != fakeCount {
			for i := 0; i < d.config.NumSlots; i++ {
				t := &d.touches[i]
				if t.State == TouchMaybeEnd {
					t.State = TouchUpdate
					t.Dirty = true
				}
			}
		}
	}

	for i := d.config.NumSlots; i < len(d.touches); i++ {
		t := &d.touches[i]
		if i < fakeCount {
			if t.State == TouchNone || t.State == TouchEnd {
				t.State = TouchHovering
				t.HasEnded = false
				t.Dirty = true
				t.Time = time
			}
		} else {
			if t.State != TouchNone && t.State != TouchEnd {
				t.State = TouchMaybeEnd
				t.Dirty = true
			}
		}
	}
}

// unhover applies exactly one strategy to transition touches between
// HOVERING and BEGIN/MAYBE_END, per spec.md §4.2 step 3. Touch-size
// takes precedence over pressure when both are configured (DESIGN.md
// Open-Question resolution); otherwise the fake-finger count alone
// drives the transition.
func (d *Device) unhover(time int64) {
	switch {
	case d.config.TouchSize.Use:
		d.unhoverBySize(time)
	case d.config.Pressure.Use:
		d.unhoverByPressure(time)
	default:
		d.unhoverByFakeFingers(time)
	}
}

func (d *Device) unhoverByPressure(time int64) {
	for i := range d.touches {
		t := &d.touches[i]
		if !t.Dirty {
			continue
		}
		switch t.State {
		case TouchHovering:
			if t.Pressure >= d.config.Pressure.Range.High {
				t.State = TouchBegin
				t.WasDown = true
			}
		case TouchUpdate, TouchBegin:
			if t.Pressure < d.config.Pressure.Range.Low {
				t.State = TouchMaybeEnd
			}
		}
	}
	d.reconcileFakeCountAfterUnhover(time)
}

func (d *Device) unhoverBySize(time int64) {
	for i := range d.touches {
		t := &d.touches[i]
		if !t.Dirty {
			continue
		}
		high, low := d.config.TouchSize.Range.High, d.config.TouchSize.Range.Low
		switch t.State {
		case TouchHovering:
			big := t.Major > high || t.Minor > high
			small := t.Major > low && t.Minor > low
			if big && small {
				t.State = TouchBegin
				t.WasDown = true
			}
		case TouchUpdate, TouchBegin:
			if t.Major < low || t.Minor < low {
				t.State = TouchMaybeEnd
			}
		}
	}
}

// reconcileFakeCountAfterUnhover implements the pressure-unhover
// fake-finger reconciliation of spec.md §4.2 step 3: when fake_count
// exceeds num_slots and at least one real finger is down, promote
// HOVERING touches to BEGIN in index order until nfingers_down reaches
// fake_count; if it still exceeds fake_count, end the
// highest-indexed active touches.
func (d *Device) reconcileFakeCountAfterUnhover(time int64) {
	fakeCount := fakeCountForCompare(d.fakeFingers)
	if fakeCount <= d.config.NumSlots {
		return
	}

	down := d.countActive()
	if down == 0 {
		return
	}

	for i := 0; i < len(d.touches) && down < fakeCount; i++ {
		t := &d.touches[i]
		if t.State == TouchHovering {
			t.State = TouchBegin
			t.WasDown = true
			t.Dirty = true
			down++
		}
	}

	for i := len(d.touches) - 1; i >= 0 && down > fakeCount; i-- {
		t := &d.touches[i]
		if t.IsActive() {
			t.State = TouchMaybeEnd
			t.Dirty = true
			down--
		}
	}
}

func (d *Device) countActive() int {
	n := 0
	for i := range d.touches {
		if d.touches[i].IsActive() {
			n++
		}
	}
	return n
}

// unhoverByFakeFingers derives BEGIN/END transitions solely from the
// fake-finger register and BTN_TOUCH, for devices with neither a
// pressure nor touch-size axis (spec.md §4.2 step 3, fallback).
func (d *Device) unhoverByFakeFingers(time int64) {
	fakeCount := fakeCountForCompare(d.fakeFingers)
	touching := d.fakeFingers.Touching()

	for i := 0; i < d.config.NumSlots; i++ {
		t := &d.touches[i]
		switch t.State {
		case TouchHovering:
			if touching && i < fakeCount {
				t.State = TouchBegin
				t.WasDown = true
				t.Dirty = true
			}
		case TouchUpdate, TouchBegin:
			if !touching || i >= fakeCount {
				t.State = TouchMaybeEnd
				t.Dirty = true
			}
		}
	}
}
