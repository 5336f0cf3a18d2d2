package driver

import (
	"time"

	"github.com/bendahl/uinput"

	"github.com/evan-goode/libinput/touchpad"
)

// collaborators is a minimal, demo-grade implementation of
// touchpad.Collaborators: one-finger motion becomes relative mouse
// movement, two-finger vertical motion becomes a scroll wheel, and a
// short low-movement single touch becomes a left click. It exists so
// touchpadctl is runnable end to end; it is not the tap/gesture
// contract the core package is tested against.
type collaborators struct {
	mouse uinput.Mouse
	log   Logger

	lastPoint map[int]touchpad.Point
	tapStart  map[int]time.Time
	tapOrigin map[int]touchpad.Point

	scrollAccY float64
}

const (
	tapMaxDurationMS  = 200
	tapMaxMovementUnits = 800
	scrollUnitsPerTick = 400.0
)

func (c *collaborators) ensureMaps() {
	if c.lastPoint == nil {
		c.lastPoint = make(map[int]touchpad.Point)
		c.tapStart = make(map[int]time.Time)
		c.tapOrigin = make(map[int]touchpad.Point)
	}
}

func (c *collaborators) TapBegin(d *touchpad.Device, t *touchpad.Touch) {
	c.ensureMaps()
	c.tapStart[t.Index] = time.Now()
	c.tapOrigin[t.Index] = t.Point
	c.lastPoint[t.Index] = t.Point
}

func (c *collaborators) TapEnd(d *touchpad.Device, t *touchpad.Touch) {
	c.ensureMaps()
	start, ok := c.tapStart[t.Index]
	delete(c.tapStart, t.Index)
	origin, hadOrigin := c.tapOrigin[t.Index]
	delete(c.tapOrigin, t.Index)
	delete(c.lastPoint, t.Index)
	if !ok || !hadOrigin || t.Tap.IsPalm || t.Tap.IsThumb {
		return
	}
	if time.Since(start) > tapMaxDurationMS*time.Millisecond {
		return
	}
	delta := t.Point.Sub(origin)
	if abs(delta.X) > tapMaxMovementUnits || abs(delta.Y) > tapMaxMovementUnits {
		return
	}
	if err := c.mouse.LeftClick(); err != nil {
		c.log.Warnf("virtual mouse left click: %v", err)
	}
}

func (c *collaborators) TapFilterMotion(d *touchpad.Device) bool { return false }
func (c *collaborators) TapSuspend(d *touchpad.Device)           {}
func (c *collaborators) TapResume(d *touchpad.Device)            {}
func (c *collaborators) TapPostProcess(d *touchpad.Device)       {}

func (c *collaborators) Button(d *touchpad.Device, e touchpad.Event) bool {
	down := e.Value != 0
	var err error
	switch e.Code {
	case evdevBtnLeft:
		if down {
			err = c.mouse.LeftPress()
		} else {
			err = c.mouse.LeftRelease()
		}
	case evdevBtnRight:
		if down {
			err = c.mouse.RightPress()
		} else {
			err = c.mouse.RightRelease()
		}
	case evdevBtnMiddle:
		if down {
			err = c.mouse.MiddlePress()
		} else {
			err = c.mouse.MiddleRelease()
		}
	}
	if err != nil {
		c.log.Warnf("virtual mouse button: %v", err)
	}
	return false
}

func (c *collaborators) EdgeScroll(d *touchpad.Device) bool {
	if d.NFingersDown() != 1 {
		return false
	}
	return false
}

// Gesture is invoked once per frame after the analyzer chain; it is
// the natural place for this demo to turn touch geometry into relative
// pointer motion and two-finger scrolling, since by this point palm
// and thumb classification for the frame are already settled.
func (c *collaborators) Gesture(d *touchpad.Device) {
	c.ensureMaps()

	active := activeTouches(d)
	switch len(active) {
	case 1:
		c.moveFromTouch(active[0])
	case 2:
		c.scrollFromTouches(active[0], active[1])
	}

	for _, t := range active {
		c.lastPoint[t.Index] = t.Point
	}
}

func (c *collaborators) moveFromTouch(t *touchpad.Touch) {
	if t.Tap.IsPalm || t.Tap.IsThumb {
		return
	}
	prev, ok := c.lastPoint[t.Index]
	if !ok {
		return
	}
	delta := t.Point.Sub(prev)
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	if err := c.mouse.Move(delta.X, delta.Y); err != nil {
		c.log.Warnf("virtual mouse move: %v", err)
	}
}

func (c *collaborators) scrollFromTouches(a, b *touchpad.Touch) {
	prevA, okA := c.lastPoint[a.Index]
	prevB, okB := c.lastPoint[b.Index]
	if !okA || !okB {
		return
	}
	dy := float64((a.Point.Y-prevA.Y)+(b.Point.Y-prevB.Y)) / 2
	c.scrollAccY += dy
	for abs32f(c.scrollAccY) > scrollUnitsPerTick {
		tick := int32(1)
		if c.scrollAccY < 0 {
			tick = -1
		}
		if err := c.mouse.Wheel(false, tick); err != nil {
			c.log.Warnf("virtual mouse wheel: %v", err)
		}
		c.scrollAccY -= float64(tick) * scrollUnitsPerTick
	}
}

func (c *collaborators) StopActions(d *touchpad.Device) {
	c.scrollAccY = 0
}

func (c *collaborators) RestartPointerAccel(d *touchpad.Device, atTime int64) {}

func activeTouches(d *touchpad.Device) []*touchpad.Touch {
	touches := d.Touches()
	var active []*touchpad.Touch
	for i := range touches {
		t := &touches[i]
		if t.IsActive() {
			active = append(active, t)
		}
	}
	return active
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func abs32f(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

const (
	evdevBtnLeft   = 0x110
	evdevBtnRight  = 0x111
	evdevBtnMiddle = 0x112
)
