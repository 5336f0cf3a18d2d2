// Package driver wires touchpad.Device to a real evdev input device
// and a uinput virtual mouse. It owns everything the core touchpad
// package deliberately excludes: device discovery, the event read
// loop, and turning touch geometry into relative pointer motion,
// clicks, and scroll ticks.
package driver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bendahl/uinput"
	evdev "github.com/gvalkov/golang-evdev"

	"github.com/evan-goode/libinput/touchpad"
)

// Config is the subset of touchpad.Config this demo driver exposes on
// the command line. Geometry and axis information that a production
// integration would read from the kernel's EVIOCGABS ioctls (out of
// core scope, spec.md §1) are supplied directly instead, since probing
// them is device-discovery territory the core package never touches.
type Config struct {
	DevicePath         string
	DeviceNameKeyword  string
	LeftHanded         bool
	ScrollMethod       string
	DisableWhileTyping bool

	NumSlots int

	WidthMM, HeightMM float64

	AxisMin, AxisMax       int32
	PressureMin, PressureMax int32
}

func (c Config) scrollMethod() touchpad.ScrollMethod {
	switch strings.ToLower(c.ScrollMethod) {
	case "edge":
		return touchpad.ScrollEdge
	case "none":
		return touchpad.ScrollNone
	default:
		return touchpad.ScrollTwoFinger
	}
}

func (c Config) dwtMode() touchpad.DWTMode {
	if c.DisableWhileTyping {
		return touchpad.DWTEnabled
	}
	return touchpad.DWTDisabled
}

// Logger is the subset of touchpad.Logger this driver needs; satisfied
// directly by *charmlog.Logger.
type Logger interface {
	touchpad.Logger
}

// Run opens the touchpad device (cfg.DevicePath, or the first device
// whose name contains cfg.DeviceNameKeyword), creates a virtual mouse,
// and pumps events until ctx is cancelled or the device read loop
// errors out.
func Run(ctx context.Context, cfg Config, log Logger) error {
	path := cfg.DevicePath
	if path == "" {
		found, err := findDevice(cfg.DeviceNameKeyword)
		if err != nil {
			return err
		}
		path = found
	}
	log.Infof("opening %s", path)

	input, err := evdev.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer input.Release()
	input.Grab()

	mouse, err := uinput.CreateMouse("/dev/uinput", []byte("touchpadctl virtual mouse"))
	if err != nil {
		return fmt.Errorf("create virtual mouse: %w", err)
	}
	defer mouse.Close()

	dev := newDevice(cfg)
	dev.Log = log

	collab := &collaborators{mouse: mouse, log: log}
	dev.Collaborators = collab
	dev.TrackpointDispatch = func(touchpad.Event) {}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		events, err := input.Read()
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		for _, e := range events {
			dev.HandleEvent(touchpad.RawEvent{Type: e.Type, Code: e.Code, Value: e.Value}, nowMicros())
		}
	}
}

func nowMicros() int64 {
	return time.Now().UnixMicro()
}

// newDevice builds a touchpad.Device from cfg, applying spec.md §6
// defaults derived from the configured physical size.
func newDevice(cfg Config) *touchpad.Device {
	numSlots := cfg.NumSlots
	if numSlots < 1 {
		numSlots = 1
	}

	pressureRange := cfg.PressureMax > cfg.PressureMin
	tpConfig := touchpad.Config{
		SendEvents:   touchpad.SendEventsEnabled,
		ScrollMethod: cfg.scrollMethod(),
		DWT:          cfg.dwtMode(),
		LeftHanded:   cfg.LeftHanded,
		Reversible:   true,
		Geometry:     touchpad.DefaultGeometry(cfg.WidthMM, cfg.HeightMM, false),
		NumSlots:     numSlots,
		NTouches:     numSlots + 1,
		HasMT:        numSlots > 1,
		ClickpadLike: true,
	}
	tpConfig.Pressure.Use = pressureRange
	tpConfig.Pressure.Range = touchpad.PressureRange{
		Low:  cfg.PressureMin + (cfg.PressureMax-cfg.PressureMin)/4,
		High: cfg.PressureMin + (cfg.PressureMax-cfg.PressureMin)/3,
	}
	tpConfig.Palm.UsePressure = pressureRange
	tpConfig.Palm.PressureThreshold = cfg.PressureMin + (cfg.PressureMax-cfg.PressureMin)*2/3
	tpConfig.Thumb.Detect = true
	tpConfig.Thumb.UsePressure = pressureRange
	tpConfig.Thumb.PressureThreshold = tpConfig.Palm.PressureThreshold

	dev := touchpad.NewDevice(tpConfig)
	dev.SetAxisRange(cfg.AxisMin, cfg.AxisMax, cfg.AxisMin, cfg.AxisMax)
	return dev
}

func findDevice(keyword string) (string, error) {
	devices, err := evdev.ListInputDevices()
	if err != nil {
		return "", fmt.Errorf("list input devices: %w", err)
	}
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(keyword)) {
			return d.Fn, nil
		}
	}
	return "", fmt.Errorf("no input device matching %q", keyword)
}
