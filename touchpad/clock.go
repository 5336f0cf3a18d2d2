package touchpad

import (
	"time"

	"golang.org/x/sys/unix"
)

// nowMicroseconds returns a monotonic microsecond timestamp (spec.md
// §10). golang.org/x/sys/unix.ClockGettime(CLOCK_MONOTONIC) is the
// idiomatic replacement for the teacher's direct
// syscall.Gettimeofday(&tv) call, and matches the clock source
// evdev-mt-touchpad.c uses (libinput_now), which is monotonic, not
// wall-clock.
func nowMicroseconds() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return time.Now().UnixMicro()
	}
	return ts.Sec*1_000_000 + ts.Nsec/1_000
}

// timerEntry is one armed one-shot timer.
type timerEntry struct {
	timer *time.Timer
}

// TimerSet is a registry of named one-shot timers, all firing on the
// single logical actor that owns a Device (spec.md §5, §10). Timers
// are cancelled idempotently; a cancelled timer never fires.
type TimerSet struct {
	entries map[string]*timerEntry
	// fire is an injection point for tests: when set, Arm calls it
	// synchronously after `d` has "elapsed" instead of scheduling a
	// real time.Timer, so frame-pipeline tests stay deterministic.
	fire func(name string, d time.Duration, cb func())
}

// NewTimerSet returns an empty timer registry using real wall-clock
// delays.
func NewTimerSet() *TimerSet {
	return &TimerSet{entries: make(map[string]*timerEntry)}
}

// Arm schedules cb to run once after d, replacing any existing timer
// registered under name.
func (ts *TimerSet) Arm(name string, d time.Duration, cb func()) {
	ts.Cancel(name)
	if ts.fire != nil {
		ts.fire(name, d, cb)
		return
	}
	ts.entries[name] = &timerEntry{timer: time.AfterFunc(d, cb)}
}

// Cancel idempotently cancels the named timer, if armed.
func (ts *TimerSet) Cancel(name string) {
	if e, ok := ts.entries[name]; ok {
		e.timer.Stop()
		delete(ts.entries, name)
	}
}

// CancelAll cancels every armed timer; used on destroy (spec.md §5:
// "timers are cancelled before their owning state is freed").
func (ts *TimerSet) CancelAll() {
	for name := range ts.entries {
		ts.Cancel(name)
	}
}

// Armed reports whether a timer is registered under name: armed and
// not cancelled or re-armed since. A timer whose callback has already
// run stays registered, and timers handed to the fire injection point
// are never registered.
func (ts *TimerSet) Armed(name string) bool {
	_, ok := ts.entries[name]
	return ok
}
