// joykbd turns a gamepad into a pointing device: gamepad events in,
// synthetic mouse/arrow-key events out on a uinput virtual device.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/juju/errors"

	"github.com/coolreader18/joykbd/cmd/joykbd/devices"
	"github.com/coolreader18/joykbd/cmd/joykbd/pointer"
	"github.com/coolreader18/joykbd/cmd/joykbd/subcmd"
	"github.com/coolreader18/joykbd/internal/state"
	"github.com/coolreader18/joykbd/log2"
)

var log = log2.NewStderr(log2.LInfo)

// BuildVersion set by ldflags -X
var BuildVersion string = "unknown"

var modules = []subcmd.Mod{
	devices.Mod,
	pointer.Mod,
	{Name: "version", Main: versionMain},
}

func main() {
	flags := flag.NewFlagSet("joykbd", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: joykbd [flags] [pointer|devices|version]\n")
		flags.PrintDefaults()
	}
	devicePath := flags.String("device", "", "explicit input device node; empty searches by name")
	match := flags.String("match", state.DefaultMatch, "device name substring for discovery")
	speed := flags.Float64("speed", state.DefaultSpeed, "pointer speed at full stick deflection")
	repeatTimeout := flags.Uint("repeat-timeout", 16, "motion repeat cadence, milliseconds")
	driftThreshold := flags.Uint("drift-threshold", state.DefaultDriftThreshold, "stick dead zone width in raw units")
	adjustX := flags.Int("adjust-x", 0, "X center bias correction, raw units")
	adjustY := flags.Int("adjust-y", 0, "Y center bias correction, raw units")
	wait := flags.Duration("wait", 0, "wait this long for a matching device to appear")
	grab := flags.Bool("grab", false, "take exclusive hold of the input device")
	debug := flags.Bool("debug", false, "debug logging")
	_ = flags.Parse(os.Args[1:])

	if subcmd.SdNotify("start") {
		// under systemd, journal adds timestamps
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}

	config := &state.Config{
		DevicePath:     *devicePath,
		Match:          *match,
		Speed:          *speed,
		RepeatTimeout:  time.Duration(*repeatTimeout) * time.Millisecond,
		DriftThreshold: uint32(*driftThreshold),
		AdjustX:        int32(*adjustX),
		AdjustY:        int32(*adjustY),
		Wait:           *wait,
		Grab:           *grab,
		Debug:          *debug,
	}

	command := flags.Arg(0)
	if command == "" {
		command = pointer.Mod.Name
	}
	mod, err := subcmd.Parse(command, modules)
	if err != nil {
		fmt.Fprintf(os.Stderr, "command line error: %v\n", err)
		flags.Usage()
		os.Exit(1)
	}

	ctx, g := state.NewContext(log)
	g.BuildVersion = BuildVersion
	if err := mod.Main(ctx, config); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
}

func versionMain(ctx context.Context, config *state.Config) error {
	fmt.Printf("joykbd %s\n", BuildVersion)
	return nil
}
