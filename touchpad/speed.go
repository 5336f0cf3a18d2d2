package touchpad

// speedExceededThresholdMMS is the mm/s threshold above which the
// saturating exceeded-count climbs (spec.md §4.3 step 10).
const speedExceededThresholdMMS = 20.0

// speedExceededMax caps SpeedInfo.ExceededCount (spec.md §3).
const speedExceededMax = 10

// updateSpeed implements spec.md §4.3 step 9. Speed estimation is
// skipped on devices that lack true multitouch tracking or only report
// a bounding box for two contacts (semi-mt) — a single slot's position
// there isn't a reliable estimate of one finger's motion, regardless of
// how many fingers happen to be down this particular frame — and needs
// at least 4 history samples to smooth out jitter. The sample
// immediately before the one just pushed this frame is at index 1,
// since index 0 is always the sample process() pushed moments ago.
func (d *Device) updateSpeed(t *Touch, time int64) {
	if !d.config.HasMT || d.config.SemiMT {
		return
	}
	if t.History.Count() < 4 {
		return
	}

	prev := t.History.At(1)
	dt := time - prev.Time
	if dt <= 0 {
		return
	}

	delta := t.Point.Sub(prev.Point)
	mm := distanceMM(d, delta.X, delta.Y)
	t.Speed.LastSpeed = mm / (float64(dt) / 1_000_000.0)
}

// updateSpeedExceeded implements spec.md §4.3 step 10: a saturating
// counter that climbs while speed stays above the threshold and
// decays otherwise, feeding applySpeedBasedThumbOverride's "was this
// touch moving fast recently" check.
func (d *Device) updateSpeedExceeded(t *Touch) {
	if t.Speed.LastSpeed > speedExceededThresholdMMS {
		if t.Speed.ExceededCount < speedExceededMax {
			t.Speed.ExceededCount++
		}
	} else if t.Speed.ExceededCount > 0 {
		t.Speed.ExceededCount--
	}
}
