package touchpad

import (
	"fmt"

	"github.com/google/uuid"
)

// msTimestampState is the per-device MSC_TIMESTAMP repair sub-state
// (spec.md §4.5).
type msTimestampState struct {
	state    MSCTimestampState
	now      int32
	interval int32
}

// trackpointState is the per-device trackpoint-activity arbitration
// sub-state (spec.md §4.6).
type trackpointState struct {
	active        bool
	lastEventTime int64
	eventCount    int
}

// dwtState is the per-device disable-while-typing sub-state
// (spec.md §3, §4.6). keyMask tracks non-modifier keys currently held
// that were not ignored when pressed, so a release knows whether it
// should influence the "any key still held" rearm check; modMask
// tracks held modifier keys by bit position so chording ("ctrl+c")
// never itself counts as typing.
type dwtState struct {
	keyboardActive bool
	keyMask        map[uint16]struct{}
	modMask        uint64
	lastPressTime  int64
}

// Device is the per-touchpad dispatch: the single owner of the slot
// table, fake-finger register, and all arbitration/timer state
// (spec.md §3, §9 "per-device dispatch struct with explicit
// lifecycle"). It is driven by exactly one logical actor; see spec.md
// §5.
type Device struct {
	config Config
	Log    Logger

	touches     []Touch
	slot        int
	fakeFingers FakeFingers

	nfingers_down    int
	oldNfingersDown  int
	queued           Queued
	pendingButtons   []Event

	axisXMin, axisXMax int32
	axisYMin, axisYMax int32

	hysteresisEnabled      bool
	hysteresisLastMotion   int64

	msc msTimestampState

	trackpoint trackpointState
	dwt        dwtState

	arbitrationState ArbitrationState

	// trackpointListener is the handle of the currently paired
	// trackpoint device, or uuid.Nil if none is paired. A stale handle
	// presented to NotifyTrackpointEvent after unregistration is
	// silently ignored (§9 "weak cross-device reference").
	trackpointListener uuid.UUID

	suspendReason SuspendReason
	suspended     bool
	hasTopSoftButtons bool

	maxSpeedExceeded int
	haveNewTouch     bool
	newTouchIndex    int
	otherAxisOnlyCount int
	buttonFilterMotion bool

	Timers *TimerSet

	Collaborators Collaborators

	// TrackpointDispatch forwards BTN_0/1/2 clicks to a paired
	// trackpoint device, with a synthetic SYN_REPORT (spec.md §4.1).
	// Pairing/ownership of the trackpoint device is out of core
	// scope; this is only the forwarding hook.
	TrackpointDispatch func(Event)

	// SoftButtonAreaHook is invoked on Suspend/Resume to enlarge (or
	// restore) the top-softbutton area of a device with top software
	// buttons, since button geometry itself is owned by the
	// (out-of-scope) button state machine. Nothing in this package
	// marks a device as having top software buttons (hasTopSoftButtons
	// is never set), so the hook is not called and Suspend always takes
	// the NotifySuspended path.
	SoftButtonAreaHook func(enlarge bool)

	// SoftButtonArea reports whether a point falls inside the
	// (out-of-scope) button state machine's software-button
	// geometry; consulted by edge-palm detection only.
	SoftButtonArea func(p Point) bool

	// NotifyResumed/NotifySuspended forward lifecycle transitions to
	// the (out-of-scope) outer device layer.
	NotifySuspended func()
	NotifyResumed   func()

	// ReSyncSlots re-reads the kernel-visible absolute axis state for
	// every slot on resume (spec.md §4.7); left to the caller since
	// reading /sys or issuing EVIOCGABS ioctls is device-discovery
	// territory, out of core scope.
	ReSyncSlots func(d *Device)
}

// NewDevice constructs a Device with cfg applied and cfg.NTouches
// touches allocated, raised to at least num_slots+1 (spec.md §3:
// ntouches >= num_slots, to hold one fake-finger ghost touch beyond
// the physical slots).
func NewDevice(cfg Config) *Device {
	if cfg.NTouches < cfg.NumSlots+1 {
		cfg.NTouches = cfg.NumSlots + 1
	}
	d := &Device{
		config:        cfg,
		touches:       make([]Touch, cfg.NTouches),
		Timers:        NewTimerSet(),
		Collaborators: NopCollaborators{},
		hysteresisEnabled: false,
	}
	d.dwt.keyMask = make(map[uint16]struct{})
	for i := range d.touches {
		d.touches[i] = Touch{Index: i, fromSlot: i < cfg.NumSlots, trackingID: -1}
	}
	d.msc.state = MSCExpectFirst
	return d
}

func (d *Device) logger() Logger {
	if d.Log != nil {
		return d.Log
	}
	return nopLogger{}
}

// Touches returns the live slot table. Callers must not retain pointers
// across frame boundaries; the core only guarantees validity within
// the current HandleEvent call.
func (d *Device) Touches() []Touch { return d.touches }

// Touch returns the touch at the given index, or nil if out of range.
func (d *Device) Touch(i int) *Touch {
	if i < 0 || i >= len(d.touches) {
		return nil
	}
	return &d.touches[i]
}

func (d *Device) NFingersDown() int { return d.nfingers_down }

// SanityCheckInit validates the minimum capability set spec.md §7
// requires before a device may be registered: ABS_X, BTN_TOUCH, and
// BTN_TOOL_FINGER must be present. hasAbsX/hasBtnTouch/hasToolFinger
// communicate probe results from the (out-of-scope) device-capability
// layer.
func SanityCheckInit(hasAbsX, hasBtnTouch, hasToolFinger bool) error {
	var missing []string
	if !hasAbsX {
		missing = append(missing, "ABS_X")
	}
	if !hasBtnTouch {
		missing = append(missing, "BTN_TOUCH")
	}
	if !hasToolFinger {
		missing = append(missing, "BTN_TOOL_FINGER")
	}
	if len(missing) > 0 {
		return fmt.Errorf("touchpad: missing required capabilities: %v", missing)
	}
	return nil
}

// SetAxisRange records the reported ABS_X/ABS_Y (or ABS_MT_POSITION_*)
// ranges, used for left-handed coordinate rotation (spec.md §4.1).
func (d *Device) SetAxisRange(xMin, xMax, yMin, yMax int32) {
	d.axisXMin, d.axisXMax = xMin, xMax
	d.axisYMin, d.axisYMax = yMin, yMax
}

// Suspend clears all touch state and, for non-top-softbutton devices,
// notifies the outer device layer that the device has gone fully
// inactive (spec.md §4.7). Adding a reason that was already set is a
// no-op past the bitset update.
func (d *Device) Suspend(reason SuspendReason) {
	already := d.suspendReason != SuspendNone
	d.suspendReason |= reason
	if already {
		return
	}

	d.Collaborators.Button(d, Event{})
	d.Collaborators.TapSuspend(d)
	for i := range d.touches {
		t := &d.touches[i]
		if t.State != TouchNone {
			t.State = TouchEnd
			t.HasEnded = true
			t.Dirty = true
		}
	}
	d.fakeFingers = 0
	d.processFrame(nowMicroseconds())

	d.suspended = true
	if d.hasTopSoftButtons {
		if d.SoftButtonAreaHook != nil {
			d.SoftButtonAreaHook(true)
		}
	} else if d.NotifySuspended != nil {
		d.NotifySuspended()
	}
}

// Resume clears reason from the suspend-reason bitset; once no reasons
// remain, the device resumes fully (spec.md §4.7).
func (d *Device) Resume(reason SuspendReason) {
	d.suspendReason &^= reason
	if d.suspendReason != SuspendNone {
		return
	}
	d.suspended = false
	if d.Collaborators != nil {
		d.Collaborators.TapResume(d)
	}

	if d.hasTopSoftButtons && d.SoftButtonAreaHook != nil {
		d.SoftButtonAreaHook(false)
	}
	if d.ReSyncSlots != nil {
		d.ReSyncSlots(d)
	}
	if d.NotifyResumed != nil {
		d.NotifyResumed()
	}
}

// Suspended reports whether any suspend reason is currently latched.
func (d *Device) Suspended() bool { return d.suspendReason != SuspendNone }

// Destroy cancels every armed timer before releasing device state
// (spec.md §5: "timers are cancelled before their owning state is
// freed").
func (d *Device) Destroy() {
	d.Timers.CancelAll()
}
