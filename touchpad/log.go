package touchpad

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the narrow logging seam the core writes diagnostics
// through (spec.md §7: hardware bugs, library-bug invariant breaches,
// and recoverable quirks are all logged, never propagated as errors).
// Device discovery and quirk-database access own the *destination* of
// these logs (out of core scope, §1); the core only needs somewhere to
// put the message.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// charmLogger adapts github.com/charmbracelet/log to Logger, matching
// the structured-logging style the wider retrieval pack's input-daemon
// repos (e.g. bnema-waymon) use in place of the teacher's bare
// fmt.Printf.
type charmLogger struct {
	l *charmlog.Logger
}

// NewLogger returns a Logger backed by charmbracelet/log, with a
// "touchpad" prefix so core diagnostics are distinguishable from a
// host application's own log lines.
func NewLogger() Logger {
	l := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Prefix: "touchpad",
	})
	return &charmLogger{l: l}
}

func (c *charmLogger) Debugf(format string, args ...any) { c.l.Debugf(format, args...) }
func (c *charmLogger) Infof(format string, args ...any)  { c.l.Infof(format, args...) }
func (c *charmLogger) Warnf(format string, args ...any)  { c.l.Warnf(format, args...) }

// nopLogger discards everything; the zero value of Device falls back
// to it so a Device is usable without explicit logger wiring in tests.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
