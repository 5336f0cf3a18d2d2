package touchpad

import (
	"time"

	evdev "github.com/gvalkov/golang-evdev"
	"github.com/google/uuid"
)

// Peripheral arbitration (spec.md §4.6): a touchpad shares a physical
// palm rest with a trackpoint, a keyboard, and sometimes a pen
// digitizer, so several independent signals can each suppress touch
// interpretation for a while. Every one of these lives outside the
// SYN_REPORT frame pipeline — they are driven by events on *other*
// devices — which is why each entry point takes its own timestamp
// rather than reading through HandleEvent.

const (
	// trackpointActivationEvents is the number of trackpoint events
	// within trackpointActivationWindowUS required before the
	// touchpad treats the trackpoint as "in use".
	trackpointActivationEvents   = 3
	trackpointActivationWindowUS = 40_000
	// trackpointTimeoutUS is how long the trackpoint must stay silent
	// before the touchpad resumes normal interpretation.
	trackpointTimeoutUS = 300_000
)

// ListenerHandle is an opaque, weak reference to a paired peripheral
// device (spec.md §9: "cross-device references are weak; a handle
// outliving its device becomes inert rather than dangling"). The zero
// value is not a valid handle.
type ListenerHandle struct {
	id uuid.UUID
}

// RegisterTrackpoint pairs a trackpoint device with this touchpad so
// its events can be reported via NotifyTrackpointEvent. Registering a
// new trackpoint invalidates any previously issued handle.
func (d *Device) RegisterTrackpoint() ListenerHandle {
	h := ListenerHandle{id: uuid.New()}
	d.trackpointListener = h.id
	return h
}

// UnregisterTrackpoint releases the pairing; events from a handle
// obtained before this call are silently ignored afterward.
func (d *Device) UnregisterTrackpoint(h ListenerHandle) {
	if d.trackpointListener == h.id {
		d.trackpointListener = uuid.Nil
		d.trackpoint = trackpointState{}
	}
}

// NotifyTrackpointEvent reports trackpoint activity at time. Once
// trackpointActivationEvents arrive within trackpointActivationWindowUS
// the trackpoint is considered active: palm detection starts
// classifying new touches as PalmTrackpoint (palm.go), in-flight
// gesture/edge-scroll actions are cancelled via StopActions, and tap
// is suspended (spec.md §4.6: "stop actions on the touchpad ...
// tap suspend"). Activity keeps resetting a trackpointTimeoutUS
// inactivity timer; once it fires, tap resumes and the trackpoint
// reverts to inactive, with palm release following on the next touch
// update (palmTrackpointTriggered).
func (d *Device) NotifyTrackpointEvent(h ListenerHandle, atTime int64) {
	if h.id == uuid.Nil || h.id != d.trackpointListener {
		return
	}

	if d.trackpoint.active {
		d.trackpoint.lastEventTime = atTime
		d.armTrackpointTimeout()
		return
	}

	if d.trackpoint.eventCount == 0 || atTime-d.trackpoint.lastEventTime > trackpointActivationWindowUS {
		d.trackpoint.eventCount = 0
	}
	d.trackpoint.eventCount++
	d.trackpoint.lastEventTime = atTime

	if d.trackpoint.eventCount >= trackpointActivationEvents {
		d.trackpoint.active = true
		d.trackpoint.eventCount = 0
		if d.Collaborators != nil {
			d.Collaborators.StopActions(d)
			d.Collaborators.TapSuspend(d)
		}
		d.armTrackpointTimeout()
	}
}

func (d *Device) armTrackpointTimeout() {
	d.Timers.Arm("trackpoint", trackpointTimeoutUS*time.Microsecond, func() {
		d.trackpoint.active = false
		d.trackpoint.eventCount = 0
		if d.Collaborators != nil {
			d.Collaborators.TapResume(d)
		}
	})
}

// Disable-while-typing (dwt): a key press on the paired keyboard
// suppresses tap-to-click and gesture/edge-scroll dispatch for a
// while, so resting palms on the touchpad while typing don't register
// as clicks. The window is short on the very first qualifying key and
// widens once the keyboard is established as active (spec.md §4.6).
const (
	dwtFirstKeyTimeoutUS = 200_000
	dwtKeyTimeoutUS      = 500_000
)

// dwtModifierKeys maps each modifier keycode to its bit position in
// dwtState.modMask; holding one only records chording intent (spec.md
// §4.6: "modifier keys only populate mod_mask") and never itself
// triggers dwt.
var dwtModifierKeys = map[uint16]uint64{
	evdev.KEY_LEFTCTRL:   1 << 0,
	evdev.KEY_RIGHTCTRL:  1 << 1,
	evdev.KEY_LEFTSHIFT:  1 << 2,
	evdev.KEY_RIGHTSHIFT: 1 << 3,
	evdev.KEY_LEFTALT:    1 << 4,
	evdev.KEY_RIGHTALT:   1 << 5,
	evdev.KEY_LEFTMETA:   1 << 6,
	evdev.KEY_RIGHTMETA:  1 << 7,
}

// NotifyKeyEvent reports a keyboard key transition at time. Modifier
// keys only update mod_mask. A non-modifier key is ignored outright
// once its keycode reaches the function-key range (spec.md §4.6:
// "F-keys and above are ignored"), or if a modifier was already held
// when it went down (chording, e.g. Ctrl+C, is not typing). Any other
// non-modifier key-down (re)arms the dwt window: 200ms the first time
// keyboardActive becomes true, 500ms on every subsequent key while it
// stays true. On timeout, any key still physically held rearms at
// 500ms instead of resuming (spec.md §4.6).
func (d *Device) NotifyKeyEvent(keycode uint16, down bool, atTime int64) {
	if d.config.DWT == DWTDisabled {
		return
	}

	if bit, isMod := dwtModifierKeys[keycode]; isMod {
		if down {
			d.dwt.modMask |= bit
		} else {
			d.dwt.modMask &^= bit
		}
		return
	}

	if !down {
		delete(d.dwt.keyMask, keycode)
		return
	}

	if keycode >= evdev.KEY_F1 || d.dwt.modMask != 0 {
		return
	}

	wasActive := d.dwt.keyboardActive
	d.dwt.keyboardActive = true
	d.dwt.lastPressTime = atTime
	d.dwt.keyMask[keycode] = struct{}{}

	if !wasActive && d.Collaborators != nil {
		d.Collaborators.StopActions(d)
		d.Collaborators.TapSuspend(d)
	}

	timeout := int64(dwtKeyTimeoutUS)
	if !wasActive {
		timeout = dwtFirstKeyTimeoutUS
	}
	d.armDWTTimeout(timeout)
}

// armDWTTimeout (re)arms the dwt timer. On expiry, a key still held
// (keyMask non-empty) rearms at the 500ms steady-state interval and
// refreshes lastPressTime rather than resuming tap (spec.md §4.6: "on
// timeout, if any key is still held, rearm ... and refresh
// keyboard_last_press_time").
func (d *Device) armDWTTimeout(timeoutUS int64) {
	d.Timers.Arm("dwt", time.Duration(timeoutUS)*time.Microsecond, func() {
		if len(d.dwt.keyMask) > 0 {
			d.dwt.lastPressTime = d.clockNowHint()
			d.armDWTTimeout(dwtKeyTimeoutUS)
			return
		}
		d.dwt.keyboardActive = false
		if d.Collaborators != nil {
			d.Collaborators.TapResume(d)
		}
	})
}

// clockNowHint returns the current monotonic microsecond timestamp for
// refreshing lastPressTime from a timer callback, where no event
// timestamp is available (spec.md §10).
func (d *Device) clockNowHint() int64 {
	return nowMicroseconds()
}

// penArbitrationTimeoutUS debounces pen-lift resume: when a pen stops
// overlapping the touchpad, arbitration still suppresses touches for a
// short grace period, since a palm is often already resting by the
// time the pen lifts (spec.md §4.6).
const penArbitrationTimeoutUS = 90_000

// SetArbitration reports a pen digitizer's arbitration state at time.
// Entering an active (ignoring) state takes effect immediately so the
// next frame's palmArbitrationTriggered sees it; leaving one is
// debounced by penArbitrationTimeoutUS.
func (d *Device) SetArbitration(state ArbitrationState, atTime int64) {
	if state != ArbitrationNotActive {
		d.Timers.Cancel("pen-arbitration")
		d.arbitrationState = state
		return
	}
	if d.arbitrationState == ArbitrationNotActive {
		return
	}
	d.Timers.Arm("pen-arbitration", penArbitrationTimeoutUS*time.Microsecond, func() {
		d.arbitrationState = ArbitrationNotActive
	})
}

// NotifyExternalMouse reports whether an external mouse is currently
// plugged in, honored only under SendEventsDisabledOnExternalMouse
// (spec.md §6).
func (d *Device) NotifyExternalMouse(present bool) {
	if d.config.SendEvents != SendEventsDisabledOnExternalMouse {
		return
	}
	if present {
		d.Suspend(SuspendExternalMouse)
	} else {
		d.Resume(SuspendExternalMouse)
	}
}

// NotifyLidClosed reports a lid-switch transition.
func (d *Device) NotifyLidClosed(closed bool) {
	if closed {
		d.Suspend(SuspendLid)
	} else {
		d.Resume(SuspendLid)
	}
}

// NotifyTabletMode reports a tablet-mode-switch transition (a
// convertible folded into tablet posture disables the touchpad).
func (d *Device) NotifyTabletMode(tablet bool) {
	if tablet {
		d.Suspend(SuspendTabletMode)
	} else {
		d.Resume(SuspendTabletMode)
	}
}
