// Command touchpadctl is a runnable demo driver built on top of the
// touchpad package: it opens a physical touchpad with
// github.com/gvalkov/golang-evdev, feeds every event through
// touchpad.Device, and renders the resulting touch lifecycle onto a
// github.com/bendahl/uinput virtual mouse. It is the spiritual
// replacement for the teacher's single-file main(), split so the core
// state machine (touchpad/) stays free of device discovery, pointer
// emission, and CLI concerns.
//
// The core package treats tap-to-click, gesture recognition, and
// edge/two-finger scrolling as external collaborators (touchpad.Tap,
// touchpad.Collaborators) it only calls into at fixed points. This
// binary supplies a minimal, deliberately simple implementation of
// those hooks so the demo is runnable end to end; it is not the
// contracted behavior the core package tests against.
package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evan-goode/libinput/internal/driver"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "touchpadctl",
		Short: "Drive a virtual mouse from a multitouch touchpad device node",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := charmlog.NewWithOptions(os.Stderr, charmlog.Options{Prefix: "touchpadctl"})
			if v.GetBool("verbose") {
				log.SetLevel(charmlog.DebugLevel)
			}

			cfg := driver.Config{
				DevicePath:         v.GetString("device"),
				DeviceNameKeyword:  v.GetString("match"),
				LeftHanded:         v.GetBool("left-handed"),
				ScrollMethod:       v.GetString("scroll-method"),
				DisableWhileTyping: v.GetBool("disable-while-typing"),
				NumSlots:           v.GetInt("num-slots"),
				WidthMM:            v.GetFloat64("width-mm"),
				HeightMM:           v.GetFloat64("height-mm"),
				AxisMin:            int32(v.GetInt("axis-min")),
				AxisMax:            int32(v.GetInt("axis-max")),
				PressureMin:        int32(v.GetInt("pressure-min")),
				PressureMax:        int32(v.GetInt("pressure-max")),
			}

			return driver.Run(cmd.Context(), cfg, log)
		},
	}

	flags := cmd.Flags()
	flags.String("device", "", "evdev device node to open (skips auto-discovery)")
	flags.String("match", "Touchpad", "substring to match against evdev device names during auto-discovery")
	flags.Bool("left-handed", false, "swap buttons and mirror coordinates")
	flags.String("scroll-method", "two-finger", "two-finger, edge, or none")
	flags.Bool("disable-while-typing", true, "suppress touch input while a paired keyboard is active")
	flags.Int("num-slots", 5, "number of ABS_MT_SLOT slots the device reports")
	flags.Float64("width-mm", 100, "physical pad width in millimeters")
	flags.Float64("height-mm", 60, "physical pad height in millimeters")
	flags.Int("axis-min", 0, "minimum reported ABS_X/ABS_Y value")
	flags.Int("axis-max", 5000, "maximum reported ABS_X/ABS_Y value")
	flags.Int("pressure-min", 0, "minimum reported pressure value")
	flags.Int("pressure-max", 255, "maximum reported pressure value")
	flags.Bool("verbose", false, "enable debug logging")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix("TOUCHPADCTL")
	v.AutomaticEnv()

	return cmd
}
