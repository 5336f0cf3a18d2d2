package touchpad

// FakeFingerOverflow is returned by FakeFingers.Count when the hardware
// reports five or more contacts without per-finger coordinates
// (BTN_TOOL_QUINTTAP).
const FakeFingerOverflow = -1

// The fakeBit* constants index the bits of a FakeFingers register. Only
// one of fakeBitDouble..fakeBitQuad may be set at a time; fakeBitOverflow
// stands in for any count of five or more.
const (
	fakeBitTouch    = 1 << 0
	fakeBitSingle   = 1 << 1
	fakeBitDouble   = 1 << 2
	fakeBitTriple   = 1 << 3
	fakeBitQuad     = 1 << 4
	fakeBitOverflow = 1 << 7
)

// FakeFingers is the bitset register backing the BTN_TOOL_* /
// BTN_TOUCH indications of contact count on devices that don't report
// full per-slot coordinates for every finger (spec.md §3, §4.1).
type FakeFingers uint8

// SetTouch sets or clears bit0 (BTN_TOUCH). Releasing BTN_TOUCH also
// clears the overflow bit, per spec.md §4.1.
func (f *FakeFingers) SetTouch(down bool) {
	if down {
		*f |= fakeBitTouch
	} else {
		*f &^= fakeBitTouch
		*f &^= fakeBitOverflow
	}
}

func (f FakeFingers) Touching() bool { return f&fakeBitTouch != 0 }

// exclusiveBits returns how many of the double/triple/quad-count bits
// are currently set; more than one indicates a hardware bug (spec.md
// §4.1, §8). BTN_TOOL_FINGER (bit1) is excluded: real hardware holds
// it alongside one of double/triple/quad as a legacy "contact present"
// indication, not as a competing finger-count claim.
func (f FakeFingers) exclusiveBits() int {
	n := 0
	for _, bit := range [...]FakeFingers{fakeBitDouble, fakeBitTriple, fakeBitQuad} {
		if f&bit != 0 {
			n++
		}
	}
	return n
}

// SetCount sets or clears one of the single/double/triple/quad bits,
// as reported by BTN_TOOL_FINGER/DOUBLETAP/TRIPLETAP/QUADTAP. Returns
// false (a hardware bug, logged by the caller) if setting bit would
// leave more than one of double/triple/quad latched at once (spec.md
// §4.1: "at most one of bits 2..4 may be set at a time").
func (f *FakeFingers) SetCount(bit uint8, down bool) bool {
	hwBug := false
	if down && bit != fakeBitSingle && f.exclusiveBits() > 0 && *f&FakeFingers(bit) == 0 {
		hwBug = true
	}
	if down {
		*f &^= fakeBitOverflow
		*f |= FakeFingers(bit)
	} else {
		*f &^= FakeFingers(bit)
	}
	return !hwBug
}

// SetOverflow latches the overflow bit on BTN_TOOL_QUINTTAP press.
// Release is a no-op: only a subsequent lower-count press clears it
// (spec.md §4.1).
func (f *FakeFingers) SetOverflow() { *f |= fakeBitOverflow }

func (f FakeFingers) Overflowed() bool { return f&fakeBitOverflow != 0 }

// Count returns the fake-finger count: FakeFingerOverflow if the
// overflow bit is set, else the ordinal (1..4) of the highest set
// count bit, else 0.
func (f FakeFingers) Count() int {
	if f.Overflowed() {
		return FakeFingerOverflow
	}
	switch {
	case f&fakeBitQuad != 0:
		return 4
	case f&fakeBitTriple != 0:
		return 3
	case f&fakeBitDouble != 0:
		return 2
	case f&fakeBitSingle != 0:
		return 1
	default:
		return 0
	}
}
