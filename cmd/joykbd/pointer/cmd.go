// Primary mode: run the translation daemon.
package pointer

import (
	"context"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"

	"github.com/coolreader18/joykbd/cmd/joykbd/subcmd"
	"github.com/coolreader18/joykbd/hardware/joystick"
	"github.com/coolreader18/joykbd/hardware/pointer"
	"github.com/coolreader18/joykbd/internal/pump"
	"github.com/coolreader18/joykbd/internal/state"
)

var Mod = subcmd.Mod{Name: "pointer", Main: Main}

// compile-time interface compliance test
var _ pump.Source = new(joystick.Device)
var _ pump.Sink = new(pointer.Device)

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)

	dev, err := openJoystick(g, config)
	if err != nil {
		return errors.Annotate(err, "joystick")
	}
	defer dev.Close()
	g.Log.Infof("joystick %s", dev.String())
	if config.Grab {
		if err := dev.Grab(); err != nil {
			return err
		}
	}

	sink, err := pointer.New()
	if err != nil {
		return errors.Annotate(err, "virtual pointer")
	}
	defer sink.Close()

	p, err := pump.New(pump.Options{
		Log:           g.Log,
		Source:        dev,
		Sink:          sink,
		Constants:     config.StickConstants(),
		RepeatTimeout: config.RepeatTimeout,
		Alive:         g.Alive,
	})
	if err != nil {
		return err
	}

	g.StopOnSignal()
	subcmd.SdNotify(daemon.SdNotifyReady)
	g.Log.Infof("pointer running speed=%g repeat=%s", config.Speed, config.RepeatTimeout)

	err = p.Run()
	subcmd.SdNotify(daemon.SdNotifyStopping)
	g.Log.Infof("pointer stat=%s", p.Stat().String())
	g.Alive.Stop()
	g.Alive.Wait()
	return err
}

func openJoystick(g *state.Global, config *state.Config) (*joystick.Device, error) {
	if config.DevicePath != "" {
		return joystick.Open(config.DevicePath)
	}
	g.Log.Infof("searching for '%s', please wait...", config.Match)
	if config.Wait > 0 {
		return joystick.WaitFor(g.Log, config.Match, config.Wait, g.Alive.StopChan())
	}
	return joystick.Discover(g.Log, config.Match)
}
