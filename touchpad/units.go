package touchpad

import "math"

// mmToUnits converts a millimeter distance to device units along X,
// using the device's reported resolution. Falls back to a 1:1
// passthrough if no resolution was configured, so tests that don't
// care about physical units still behave sensibly.
func mmToUnits(d *Device, mm float64) int32 {
	res := d.config.ResolutionX
	if res <= 0 {
		res = 1
	}
	return int32(mm * res)
}

// unitsToMM converts device-unit deltas (dx, dy) to a millimeter
// (x, y) pair, honoring independent X/Y resolutions.
func unitsToMM(d *Device, dx, dy int32) (float64, float64) {
	rx, ry := d.config.ResolutionX, d.config.ResolutionY
	if rx <= 0 {
		rx = 1
	}
	if ry <= 0 {
		ry = 1
	}
	return float64(dx) / rx, float64(dy) / ry
}

// distanceMM returns the straight-line millimeter distance between two
// device-unit deltas.
func distanceMM(d *Device, dx, dy int32) float64 {
	mx, my := unitsToMM(d, dx, dy)
	return math.Hypot(mx, my)
}
