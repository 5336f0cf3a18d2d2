package touchpad

import evdev "github.com/gvalkov/golang-evdev"

// RawEvent carries the Type, Code, and Value fields of evdev.InputEvent,
// matching the teacher's event.Type/event.Code/event.Value access
// pattern. Callers copy those three fields from the events that
// github.com/gvalkov/golang-evdev's Device.Read() returns; the event
// timestamp is not part of RawEvent and is passed to HandleEvent
// separately.
type RawEvent struct {
	Type  uint16
	Code  uint16
	Value int32
}

// Event is the minimal button-event shape handed to the Button
// collaborator hook.
type Event struct {
	Code  uint16
	Value int32
}

// HandleEvent decodes one raw event, mutating the slot table, the
// fake-finger register, and the queued-event bitmask (spec.md §4.1).
// SYN_REPORT triggers the full frame pipeline and is the only case
// that can invoke collaborators.
func (d *Device) HandleEvent(e RawEvent, time int64) {
	switch e.Type {
	case evdev.EV_ABS:
		d.handleAbs(e, time)
	case evdev.EV_KEY:
		d.handleKey(e, time)
	case evdev.EV_MSC:
		if e.Code == evdev.MSC_TIMESTAMP {
			d.msc.now = e.Value
			d.queued |= QueuedTimestamp
		}
	case evdev.EV_SYN:
		if e.Code == evdev.SYN_REPORT {
			d.processFrame(time)
		}
	}
}

func (d *Device) curTouch() *Touch {
	return &d.touches[d.slot]
}

func (d *Device) handleAbs(e RawEvent, time int64) {
	switch e.Code {
	case evdev.ABS_MT_SLOT:
		if int(e.Value) >= 0 && int(e.Value) < d.config.NumSlots {
			d.slot = int(e.Value)
		}
		return
	case evdev.ABS_MT_TRACKING_ID:
		d.handleTrackingID(e.Value, time)
		return
	case evdev.ABS_MT_POSITION_X, evdev.ABS_X:
		t := d.curTouch()
		t.Point.X = d.rotateX(e.Value)
		t.Time = time
		t.Dirty = true
		d.queued |= QueuedMotion
		return
	case evdev.ABS_MT_POSITION_Y, evdev.ABS_Y:
		t := d.curTouch()
		t.Point.Y = d.rotateY(e.Value)
		t.Time = time
		t.Dirty = true
		d.queued |= QueuedMotion
		return
	case evdev.ABS_MT_PRESSURE, evdev.ABS_PRESSURE:
		t := d.curTouch()
		t.Pressure = e.Value
		t.Time = time
		t.Dirty = true
		d.queued |= QueuedOtherAxis
		return
	case evdev.ABS_MT_TOUCH_MAJOR:
		t := d.curTouch()
		t.Major = e.Value
		t.Dirty = true
		d.queued |= QueuedOtherAxis
		return
	case evdev.ABS_MT_TOUCH_MINOR:
		t := d.curTouch()
		t.Minor = e.Value
		t.Dirty = true
		d.queued |= QueuedOtherAxis
		return
	case evdev.ABS_MT_TOOL_TYPE:
		t := d.curTouch()
		t.IsToolPalm = e.Value == 1
		t.Dirty = true
		d.queued |= QueuedOtherAxis
		return
	}
}

// rotateX/rotateY apply the left-handed coordinate rotation
// v' = max - (v - min), only when the device is tagged reversible
// (spec.md §4.1, §6).
func (d *Device) rotateX(v int32) int32 {
	if !(d.config.LeftHanded && d.config.Reversible) {
		return v
	}
	return d.axisXMax - (v - d.axisXMin)
}

func (d *Device) rotateY(v int32) int32 {
	if !(d.config.LeftHanded && d.config.Reversible) {
		return v
	}
	return d.axisYMax - (v - d.axisYMin)
}

// handleTrackingID implements the NONE/END -> HOVERING, MAYBE_END ->
// UPDATE (with a hardware-bug log), and "end this sequence" (value<0)
// transitions of spec.md §4.1.
func (d *Device) handleTrackingID(value int32, time int64) {
	t := d.curTouch()
	t.Dirty = true
	t.Time = time

	if value >= 0 {
		t.trackingID = value
		switch t.State {
		case TouchNone, TouchEnd:
			t.State = TouchHovering
			t.HasEnded = false
		case TouchMaybeEnd:
			d.logger().Warnf("touch %d ended and began in the same frame", t.Index)
			t.State = TouchUpdate
		}
		return
	}

	t.trackingID = -1
	t.HasEnded = true
	switch t.State {
	case TouchBegin, TouchUpdate:
		t.State = TouchMaybeEnd
	case TouchHovering:
		t.State = TouchEnd
	}
}

func (d *Device) handleKey(e RawEvent, time int64) {
	down := e.Value != 0
	switch e.Code {
	case evdev.BTN_TOUCH:
		d.fakeFingers.SetTouch(down)
	case evdev.BTN_TOOL_FINGER:
		d.setFakeCount(fakeBitSingle, down)
	case evdev.BTN_TOOL_DOUBLETAP:
		d.setFakeCount(fakeBitDouble, down)
	case evdev.BTN_TOOL_TRIPLETAP:
		d.setFakeCount(fakeBitTriple, down)
	case evdev.BTN_TOOL_QUADTAP:
		d.setFakeCount(fakeBitQuad, down)
	case evdev.BTN_TOOL_QUINTTAP:
		if down {
			d.fakeFingers.SetOverflow()
		}
	case evdev.BTN_LEFT, evdev.BTN_RIGHT, evdev.BTN_MIDDLE:
		code := e.Code
		if d.config.LeftHanded {
			switch code {
			case evdev.BTN_LEFT:
				code = evdev.BTN_RIGHT
			case evdev.BTN_RIGHT:
				code = evdev.BTN_LEFT
			}
		}
		d.queued |= QueuedButtonPress
		d.pendingButtons = append(d.pendingButtons, Event{Code: code, Value: e.Value})
	case evdev.BTN_0, evdev.BTN_1, evdev.BTN_2:
		mapped := map[uint16]uint16{
			evdev.BTN_0: evdev.BTN_LEFT,
			evdev.BTN_1: evdev.BTN_RIGHT,
			evdev.BTN_2: evdev.BTN_MIDDLE,
		}[e.Code]
		d.queued |= QueuedButtonPress
		d.pendingButtons = append(d.pendingButtons, Event{Code: mapped, Value: e.Value})
		if d.TrackpointDispatch != nil {
			d.TrackpointDispatch(Event{Code: mapped, Value: e.Value})
			d.TrackpointDispatch(Event{Code: evdev.SYN_REPORT, Value: 0})
		}
	}
}

func (d *Device) setFakeCount(bit uint8, down bool) {
	if ok := d.fakeFingers.SetCount(bit, down); !ok {
		d.logger().Warnf("hardware bug: exclusive BTN_TOOL_* state violated")
	}
}
