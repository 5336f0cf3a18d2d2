package touchpad

// Result is the outcome of a configuration setter (spec.md §7, §9:
// "use a result-type discipline at init and at config-set boundaries").
type Result int

const (
	ResultSuccess Result = iota
	ResultInvalid
	ResultUnsupported
)

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultInvalid:
		return "invalid"
	case ResultUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// SendEventsMode controls whether the device contributes events at all
// (spec.md §6).
type SendEventsMode int

const (
	SendEventsEnabled SendEventsMode = iota
	SendEventsDisabled
	SendEventsDisabledOnExternalMouse
)

// ScrollMethod names the configured scrolling method (spec.md §6). The
// scroll machinery itself is out of core scope. The core reads it only
// in the thumb heuristics (detectThumb and the speed-based thumb
// override); the EdgeScroll hook is invoked regardless of its value.
type ScrollMethod int

const (
	ScrollTwoFinger ScrollMethod = iota
	ScrollEdge
	ScrollNone
)

// DWTMode toggles disable-while-typing.
type DWTMode int

const (
	DWTEnabled DWTMode = iota
	DWTDisabled
)

// PressureRange is a (low, high) hysteresis pair for pressure-based
// unhover/palm detection.
type PressureRange struct {
	Low, High int32
}

// SizeRange is a (low, high) hysteresis pair for touch-size-based
// unhover.
type SizeRange struct {
	Low, High int32
}

// Geometry holds the device-size-derived constants of spec.md §6.
// Callers derive these once from the reported axis ranges; Config
// stores the derived values, not the raw axis ranges.
type Geometry struct {
	LeftEdge, RightEdge int32 // x positions in mm: 8% of width (capped at 8mm) in from the left and right sides
	UpperEdge           int32 // palm edge, 0 if disabled (pad < 55mm tall or top-softbutton device)
	UpperThumbLine      int32 // 85% height
	LowerThumbLine      int32 // 92% height
	ThumbEnabled        bool  // false below 50mm height
	PalmEdgeEnabled     bool  // false below 70mm width
}

// Config is the full set of tunables spec.md §6 enumerates. The Set*
// methods validate and apply the send-events, scroll-method, dwt, and
// left-handed knobs and are idempotent (spec.md §8: "re-applying the
// same value returns SUCCESS with no observable state change"); the
// remaining fields are plain data assigned directly. NewDevice copies
// the Config, so changes made afterwards do not reach the Device.
type Config struct {
	SendEvents  SendEventsMode
	ScrollMethod ScrollMethod
	DWT         DWTMode
	LeftHanded  bool
	Reversible  bool // device is tagged as supporting coordinate rotation

	Geometry Geometry

	Palm struct {
		PressureThreshold int32
		SizeThreshold     int32
		UsePressure       bool
		UseSize           bool
		UseMTTool         bool
		MonitorTrackpoint bool
	}

	Thumb struct {
		Detect            bool
		UsePressure       bool
		PressureThreshold int32
		UseSize           bool
		SizeThreshold     int32
	}

	Pressure   struct {
		Use         bool
		Range       PressureRange
	}
	TouchSize struct {
		Use   bool
		Range SizeRange
	}

	HysteresisMarginX, HysteresisMarginY int32

	// Quirks
	SynapticsSerialQuirk bool // tp_process_fake_touches reconciliation
	LenovoT450OtherAxisQuirk bool // force history reset after >10 otheraxis-only events

	NumSlots int
	NTouches int
	HasMT    bool
	SemiMT   bool

	// ResolutionX/Y are the device's reported axis resolutions in
	// units per millimeter, used to convert the raw device-unit deltas
	// the decoder stores into the millimeter distances spec.md's jump,
	// thumb, pin, and speed thresholds are expressed in.
	ResolutionX, ResolutionY float64

	// ClickpadLike marks a device whose entire surface is the
	// physical button (GLOSSARY: Clickpad), gating the pin-on-click
	// behavior of spec.md §4.3 step "after analyzers". The button
	// state machine itself is out of core scope (§1); this is only
	// the fact the core needs.
	ClickpadLike bool
}

// DefaultGeometry derives the geometry constants of spec.md §6 from a
// device's physical size in millimeters and whether it is a
// top-softbutton device.
func DefaultGeometry(widthMM, heightMM float64, topSoftButtons bool) Geometry {
	g := Geometry{
		UpperThumbLine: int32(0.85 * heightMM),
		LowerThumbLine: int32(0.92 * heightMM),
	}

	edge := widthMM * 0.08
	if edge > 8 {
		edge = 8
	}
	g.LeftEdge = int32(edge)
	g.RightEdge = int32(widthMM - edge)

	if heightMM >= 55 && !topSoftButtons {
		g.UpperEdge = int32(0.05 * heightMM)
	}

	g.ThumbEnabled = heightMM >= 50
	g.PalmEdgeEnabled = widthMM >= 70

	return g
}

// SetSendEventsMode validates and applies a send-events mode.
// DISABLED_ON_EXTERNAL_MOUSE requires an internal-touchpad tag per
// spec.md §6; isInternal communicates that without pulling device
// tagging (out of scope, §1) into Config.
func (c *Config) SetSendEventsMode(mode SendEventsMode, isInternal bool) Result {
	if mode == SendEventsDisabledOnExternalMouse && !isInternal {
		return ResultUnsupported
	}
	switch mode {
	case SendEventsEnabled, SendEventsDisabled, SendEventsDisabledOnExternalMouse:
		c.SendEvents = mode
		return ResultSuccess
	default:
		return ResultInvalid
	}
}

// SetScrollMethod validates and applies a scroll method.
func (c *Config) SetScrollMethod(m ScrollMethod) Result {
	switch m {
	case ScrollTwoFinger, ScrollEdge, ScrollNone:
		c.ScrollMethod = m
		return ResultSuccess
	default:
		return ResultInvalid
	}
}

// SetDWT validates and applies the disable-while-typing mode.
func (c *Config) SetDWT(m DWTMode) Result {
	switch m {
	case DWTEnabled, DWTDisabled:
		c.DWT = m
		return ResultSuccess
	default:
		return ResultInvalid
	}
}

// SetLeftHanded applies left-handed button/coordinate-rotation mode:
// BTN_LEFT and BTN_RIGHT swap before reaching the Button collaborator.
// Coordinate rotation only takes effect when the device is tagged
// reversible (spec.md §6); otherwise only the button mapping swaps.
func (c *Config) SetLeftHanded(v bool) Result {
	c.LeftHanded = v
	return ResultSuccess
}

// DefaultScrollMethod picks 2FG when the device can track at least two
// touches (ntouches >= 2), else EDGE, per spec.md §6.
func DefaultScrollMethod(ntouches int) ScrollMethod {
	if ntouches >= 2 {
		return ScrollTwoFinger
	}
	return ScrollEdge
}
