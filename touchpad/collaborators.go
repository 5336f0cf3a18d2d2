package touchpad

// Collaborators is the narrow, non-re-entrant interface the frame
// pipeline invokes at fixed points (spec.md §1, §5, §9). None of these
// are specified here; the core only guarantees the call sites and
// ordering. Implementations must not call back into the Device from
// within any of these methods.
type Collaborators interface {
	Tap

	// Button handles BTN_LEFT/MIDDLE/RIGHT and clickpad presses.
	Button(d *Device, e Event) (filterMotion bool)

	// EdgeScroll runs the edge-scroll state machine for the frame.
	EdgeScroll(d *Device) (filterMotion bool)

	// Gesture runs the gesture recognizer for the frame.
	Gesture(d *Device)

	// StopActions is invoked when a collaborator (trackpoint
	// activity, dwt, pen arbitration) needs edge-scroll and gesture
	// cancelled immediately, outside the normal post-events gate.
	StopActions(d *Device)

	// RestartPointerAccel is invoked on a new touch beginning or on
	// an MSC_TIMESTAMP repair, with the corrected timestamp.
	RestartPointerAccel(d *Device, atTime int64)
}

// Tap is the subset of Collaborators the tap state machine implements;
// split out because post-process always invokes it regardless of
// suspend state.
type Tap interface {
	// TapBegin/TapEnd are invoked as touches enter BEGIN/END.
	TapBegin(d *Device, t *Touch)
	TapEnd(d *Device, t *Touch)
	// TapFilterMotion is read during post-events.
	TapFilterMotion(d *Device) bool
	// TapSuspend/TapResume gate tap processing during trackpoint/dwt
	// activity and device suspend.
	TapSuspend(d *Device)
	TapResume(d *Device)
	// TapPostProcess is invoked unconditionally at the end of the
	// post-process phase.
	TapPostProcess(d *Device)
}

// NopCollaborators is a zero-effort Collaborators implementation: every
// hook is a no-op and FilterMotion reports false. Useful for unit tests
// that only exercise the core slot/analyzer machinery, and as the
// default when a Device is constructed without explicit collaborators.
type NopCollaborators struct{}

func (NopCollaborators) TapBegin(*Device, *Touch)       {}
func (NopCollaborators) TapEnd(*Device, *Touch)         {}
func (NopCollaborators) TapFilterMotion(*Device) bool   { return false }
func (NopCollaborators) TapSuspend(*Device)             {}
func (NopCollaborators) TapResume(*Device)              {}
func (NopCollaborators) TapPostProcess(*Device)         {}
func (NopCollaborators) Button(*Device, Event) bool     { return false }
func (NopCollaborators) EdgeScroll(*Device) bool        { return false }
func (NopCollaborators) Gesture(*Device)                {}
func (NopCollaborators) StopActions(*Device)            {}
func (NopCollaborators) RestartPointerAccel(*Device, int64) {}
