package touchpad

// processMSCTimestamp implements the i2c-sleep jump-repair state
// machine of spec.md §4.5. It is only invoked when queued has the
// TIMESTAMP bit, i.e. an MSC_TIMESTAMP event was seen this frame.
func (d *Device) processMSCTimestamp(time int64) {
	now := d.msc.now

	if now == 0 {
		// Entering EXPECT_FIRST only arms the state; the value that
		// actually seeds `interval` is read from the *next* event,
		// per spec.md §4.5.
		d.msc.state = MSCExpectFirst
		return
	}

	switch d.msc.state {
	case MSCExpectFirst:
		if now > 20_000 {
			d.msc.state = MSCIgnore
		} else {
			d.msc.interval = now
			d.msc.state = MSCExpectDelay
		}
	case MSCExpectDelay:
		if int64(now) > 2*int64(d.msc.interval) {
			tdelta := int64(now - d.msc.interval)
			interval := int64(d.msc.interval)
			for i := range d.touches {
				t := &d.touches[i]
				t.History.rewriteTimes(func(sampleIndex int, _ int64) int64 {
					return time - tdelta - interval*int64(sampleIndex)
				})
			}
			if d.Collaborators != nil {
				d.Collaborators.RestartPointerAccel(d, time-tdelta)
			}
		}
		d.msc.state = MSCIgnore
	case MSCIgnore:
		// absorbs every further timestamp until a zero value
		// restarts the machine at EXPECT_FIRST (handled above).
	}
}
