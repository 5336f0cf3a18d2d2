// Package touchpad implements the per-frame touch state machine for a
// multi-touch touchpad: it turns a raw evdev event stream into semantic
// touch lifecycles enriched with palm/thumb classification, hysteresis
// and jump/wobble noise filtering, and peripheral arbitration
// (trackpoint, disable-while-typing, lid/tablet-mode, pen).
//
// The tap, button, edge-scroll, and gesture state machines, device
// discovery, and the outer event-delivery ABI are not part of this
// package; they are invoked through the narrow Collaborators interface.
package touchpad
