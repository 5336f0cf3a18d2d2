package touchpad

// postEvents implements spec.md §4.4's collaborator-dispatch gate. If
// the device is suspended it returns at once: tap filtering and
// edge-scroll are not consulted, and process() has already skipped
// Gesture, so only button events are emitted (the Tap lifecycle hooks
// of postProcess still run). This matches top-softbutton devices that
// stay physically active (and keep producing frames) while suspended
// (§4.7) but must not otherwise generate pointer output. Otherwise,
// while the trackpoint is active, a keyboard key was recently pressed,
// or pen arbitration is suppressing the touchpad, StopActions cancels
// edge-scroll and gesture and EdgeScroll is not called this frame
// (Gesture has already run in process()), matching the "don't gesture
// while the user is typing or using the trackpoint" rule (§4.6).
// Otherwise the button, tap, and edge-scroll filter results are
// combined and stored in buttonFilterMotion. That flag is not exported,
// and process() overwrites it with the next frame's button result
// before it is read again, so it does not suppress edge-scroll or
// gesture dispatch.
func (d *Device) postEvents(time int64) {
	if d.Collaborators == nil {
		return
	}

	if d.suspended {
		return
	}

	if d.trackpoint.active || d.dwt.keyboardActive || d.arbitrationState != ArbitrationNotActive {
		d.Collaborators.StopActions(d)
		return
	}

	filterMotion := d.buttonFilterMotion
	if d.Collaborators.TapFilterMotion(d) {
		filterMotion = true
	}
	if d.Collaborators.EdgeScroll(d) {
		filterMotion = true
	}
	d.buttonFilterMotion = filterMotion
}

// postProcess implements spec.md §4.4's end-of-frame bookkeeping:
// BEGIN touches notify TapBegin and settle into UPDATE; END touches
// notify TapEnd and then either fully reset (HasEnded: the kernel sent
// ABS_MT_TRACKING_ID=-1, the sequence is truly over) or fall back to
// HOVERING (!HasEnded: the pressure/touch-size unhover path dropped
// the touch without the kernel ever ending its tracking id, so it
// must stay revivable — see unhoverByPressure/unhoverBySize, whose
// HOVERING->BEGIN transition is the only way such a touch comes back).
// Every touch's per-frame dirty flag clears, the frame's queued-event
// bitmask clears, and oldNfingersDown snapshots this frame's count for
// the next frame's finger-count-changed checks (wobble, motion-history
// reset).
func (d *Device) postProcess(time int64) {
	for i := range d.touches {
		t := &d.touches[i]
		switch t.State {
		case TouchBegin:
			if d.Collaborators != nil {
				d.Collaborators.TapBegin(d, t)
			}
			t.State = TouchUpdate
		case TouchEnd:
			if d.Collaborators != nil {
				d.Collaborators.TapEnd(d, t)
			}
			if t.HasEnded {
				t.reset()
			} else {
				// Not a real kernel-side end: keep tracking id,
				// point, and classification state intact so the
				// touch can resume from HOVERING (spec.md §3:
				// "END->HOVERING").
				t.State = TouchHovering
			}
		}
		t.Dirty = false
	}

	if d.Collaborators != nil {
		d.Collaborators.TapPostProcess(d)
	}

	d.pendingButtons = nil
	d.queued = QueuedNone
	d.oldNfingersDown = d.nfingers_down
}
