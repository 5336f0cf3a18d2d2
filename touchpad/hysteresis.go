package touchpad

// applyHysteresis implements spec.md §4.3 step 7. Once latched on
// (detectWobble), every touch with at least one history sample has its
// point snapped toward a slowly-following center: movement within the
// margin is absorbed entirely, movement beyond it is reduced by the
// margin rather than passed through untouched.
func (d *Device) applyHysteresis(t *Touch, time int64) {
	if !d.hysteresisEnabled {
		return
	}
	if t.History.Count() > 0 {
		t.Point.X = hysteresisAxis(t.Point.X, t.Hysteresis.Center.X, d.config.HysteresisMarginX)
		t.Point.Y = hysteresisAxis(t.Point.Y, t.Hysteresis.Center.Y, d.config.HysteresisMarginY)
	}
	t.Hysteresis.Center = t.Point
}

// hysteresisAxis computes one axis of evdev_hysteresis: motion within
// the margin of the current center is absorbed; motion beyond it is
// let through minus the margin.
func hysteresisAxis(point, center, margin int32) int32 {
	delta := point - center
	switch {
	case delta >= -margin && delta <= margin:
		return center
	case delta > margin:
		return point - margin
	default:
		return point + margin
	}
}
