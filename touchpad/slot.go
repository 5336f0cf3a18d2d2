package touchpad

// HistorySize is the maximum number of motion samples retained per
// touch (spec.md §3: "ring buffer of <=N=64 samples").
const HistorySize = 64

// HistorySample is one entry of a touch's motion history.
type HistorySample struct {
	Point Point
	Time  int64 // microseconds
}

// History is a fixed-capacity ring buffer of motion samples, newest
// first from Head's perspective.
type History struct {
	samples [HistorySize]HistorySample
	head    int
	count   int
}

// Push appends a sample at the head, discarding the oldest once the
// buffer saturates at HistorySize (spec.md §4.3 step 8).
func (h *History) Push(s HistorySample) {
	h.head = (h.head - 1 + HistorySize) % HistorySize
	h.samples[h.head] = s
	if h.count < HistorySize {
		h.count++
	}
}

// Reset empties the history, used on jump detection, finger-count
// change, and the Lenovo T450 other-axis quirk. (MSC_TIMESTAMP repair
// rewrites timestamps with rewriteTimes instead.)
func (h *History) Reset() {
	h.head = 0
	h.count = 0
}

// Count returns the number of valid samples, 0..HistorySize.
func (h *History) Count() int { return h.count }

// At returns the i-th most recent sample (0 = newest). It does not
// check i against Count(): for i >= Count() it returns a stale or zero
// sample, so callers must check Count first.
func (h *History) At(i int) HistorySample {
	return h.samples[(h.head+i)%HistorySize]
}

// Latest returns the most recent sample and true, or the zero value
// and false if the history is empty.
func (h *History) Latest() (HistorySample, bool) {
	if h.count == 0 {
		return HistorySample{}, false
	}
	return h.At(0), true
}

// rewriteTimes rewrites every stored timestamp in place, used by the
// MSC_TIMESTAMP repair (§4.5) which must shift a touch's whole history
// backwards when a firmware timestamp jump is detected. fn receives the
// sample's recency index (0 = newest) and its current timestamp.
func (h *History) rewriteTimes(fn func(i int, oldTime int64) int64) {
	for i := 0; i < h.count; i++ {
		idx := (h.head + i) % HistorySize
		h.samples[idx].Time = fn(i, h.samples[idx].Time)
	}
}

// PalmInfo is the per-touch palm-classification sub-state (spec.md §3).
type PalmInfo struct {
	State PalmState
	First Point
	Time  int64
}

// ThumbInfo is the per-touch thumb-classification sub-state.
type ThumbInfo struct {
	State          ThumbState
	Initial        Point
	FirstTouchTime int64
}

// HysteresisInfo is the per-touch hysteresis sub-state; XMotionHistory
// is the 3-bit wobble shift register (spec.md §3, §4.3 step 6).
type HysteresisInfo struct {
	Center          Point
	XMotionHistory  uint8
}

// PinnedInfo marks a touch forbidden from generating pointer motion
// while a click is held, until it moves past a threshold (spec.md §4.3
// step 11, GLOSSARY).
type PinnedInfo struct {
	IsPinned bool
	Center   Point
}

// SpeedInfo is the per-touch speed estimate and the saturating
// exceeded-count used for the 2-finger speed-based-thumb heuristic.
type SpeedInfo struct {
	LastSpeed     float64 // mm/s
	ExceededCount int     // 0..10
}

// JumpInfo tracks the last computed jump distance for hysteresis
// between consecutive detections (spec.md §4.3 step 3).
type JumpInfo struct {
	LastDeltaMM float64
}

// TapInfo carries the classification flags the tap collaborator reads;
// the tap state machine itself is out of core scope.
type TapInfo struct {
	IsThumb bool
	IsPalm  bool
}

// Touch is the complete per-slot record (spec.md §3).
type Touch struct {
	Index int

	State TouchState
	Point Point
	Time  int64

	Pressure, Major, Minor int32
	IsToolPalm             bool

	Dirty     bool
	HasEnded  bool
	WasDown   bool

	History History

	Palm       PalmInfo
	Thumb      ThumbInfo
	Hysteresis HysteresisInfo
	Pinned     PinnedInfo
	Speed      SpeedInfo
	Jumps      JumpInfo
	Tap        TapInfo

	// trackingID is the raw kernel tracking id last seen for this
	// slot; negative means "no active sequence".
	trackingID int32
	// fromSlot is false for ghost touches synthesized from the
	// fake-finger count rather than a physical ABS_MT_SLOT index
	// (spec.md §4.2 step 2, §4.3 step 1).
	fromSlot bool
}

// reset restores a touch to its post-lifecycle zero state, keeping
// Index and fromSlot (identity is fixed for the device's lifetime).
func (t *Touch) reset() {
	idx, fromSlot := t.Index, t.fromSlot
	*t = Touch{Index: idx, fromSlot: fromSlot, trackingID: -1}
}

// IsActive reports whether the touch currently contributes to
// nfingers_down (spec.md §3 invariants: BEGIN union UPDATE).
func (t *Touch) IsActive() bool {
	return t.State == TouchBegin || t.State == TouchUpdate
}
