package touchpad

const thumbMovementThresholdMM = 7.0
const thumbPairDistanceX = 25.0
const thumbPairDistanceY = 15.0
const thumbSpeedMinorFactor = 0.6

// detectThumb implements the thumb classifier of spec.md §4.3 step 4.
// A touch enters ThumbMaybe on BEGIN, and only touches still in
// ThumbMaybe are evaluated; once a touch latches YES or NO it is left
// alone until the touch ends (spec.md §3 invariants). The thumb lines
// are in millimeters, so touch y coordinates are converted before
// comparing.
func (d *Device) detectThumb(t *Touch, time int64) {
	if !d.config.Thumb.Detect || !d.config.Geometry.ThumbEnabled {
		return
	}
	if t.State == TouchBegin {
		t.Thumb.State = ThumbMaybe
		t.Thumb.Initial = t.Point
		t.Thumb.FirstTouchTime = time
	}
	if t.Thumb.State != ThumbMaybe {
		return
	}

	upper := float64(d.config.Geometry.UpperThumbLine)
	lower := float64(d.config.Geometry.LowerThumbLine)
	yMM := func(p Point) float64 {
		_, y := unitsToMM(d, 0, p.Y)
		return y
	}

	if yMM(t.Point) < upper {
		t.Thumb.State = ThumbNo
		return
	}

	if t.State == TouchUpdate {
		delta := t.Point.Sub(t.Thumb.Initial)
		if distanceMM(d, delta.X, delta.Y) > thumbMovementThresholdMM {
			t.Thumb.State = ThumbNo
			return
		}
	}

	if yMM(t.Point) > upper {
		for i := range d.touches {
			other := &d.touches[i]
			if other == t || !other.IsActive() {
				continue
			}
			if yMM(other.Point) > upper {
				t.Thumb.State = ThumbNo
				if other.Thumb.State == ThumbMaybe {
					other.Thumb.State = ThumbNo
				}
				return
			}
		}
	}

	switch {
	case d.config.Thumb.UsePressure && t.Pressure > d.config.Thumb.PressureThreshold:
		t.Thumb.State = ThumbYes
	case d.config.Thumb.UseSize && t.Major > d.config.Thumb.SizeThreshold &&
		float64(t.Minor) < thumbSpeedMinorFactor*float64(d.config.Thumb.SizeThreshold):
		t.Thumb.State = ThumbYes
	case d.config.ScrollMethod != ScrollEdge && yMM(t.Point) > lower && time-t.Thumb.FirstTouchTime > 300_000:
		t.Thumb.State = ThumbYes
	}
}
