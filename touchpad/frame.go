package touchpad

// processFrame runs the full per-SYN_REPORT pipeline: pre-process ->
// process -> post-events -> post-process (spec.md §2 data flow, §5:
// "runs atomically per SYN_REPORT"). It is invoked by HandleEvent on
// SYN_REPORT and once by Suspend to flush a clean state.
func (d *Device) processFrame(time int64) {
	if d.queued.Has(QueuedTimestamp) {
		d.processMSCTimestamp(time)
	}

	d.preProcess(time)
	d.recomputeNFingersDown()
	d.process(time)
	d.postEvents(time)
	d.postProcess(time)
}

// recomputeNFingersDown re-derives nfingers_down from the slot table
// right after pre-process has resolved this frame's BEGIN/UPDATE/END
// transitions, so the process phase's analyzers (wobble, motion-history
// reset, edge-palm multifinger release, speed-based thumb override) see
// the finger count that will hold for the rest of the
// frame (spec.md §8 invariant: "nfingers_down = count of touches in
// BEGIN union UPDATE").
func (d *Device) recomputeNFingersDown() {
	n := 0
	for i := range d.touches {
		if d.touches[i].IsActive() {
			n++
		}
	}
	d.nfingers_down = n
}
