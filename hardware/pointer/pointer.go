// Package pointer owns the virtual output side: a uinput device
// advertising exactly what the translator can produce.
package pointer

import (
	"syscall"
	"time"

	evdev "github.com/holoplot/go-evdev"
	"github.com/juju/errors"

	"github.com/coolreader18/joykbd/internal/keymap"
)

const DeviceName = "joykbd"

type Device struct {
	dev *evdev.InputDevice
}

// New registers the uinput device. Capabilities are the two relative
// axes plus the seven virtual buttons/keys, nothing more; registration
// failure is fatal to the caller before the loop ever starts.
func New() (*Device, error) {
	caps := map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: keymap.VirtualKeys(),
		evdev.EV_REL: keymap.VirtualAxes(),
	}
	dev, err := evdev.CreateDevice(DeviceName, evdev.InputID{BusType: 0x03}, caps)
	if err != nil {
		return nil, errors.Annotatef(err, "uinput create name=%s", DeviceName)
	}
	return &Device{dev: dev}, nil
}

// Emit stamps the event time, writes it and terminates the frame with
// SYN_REPORT as the kernel requires. Keeping the frame terminator here
// means the translator never has to produce sync events.
func (self *Device) Emit(ev *evdev.InputEvent) error {
	now := syscall.NsecToTimeval(time.Now().UnixNano())
	ev.Time = now
	if err := self.dev.WriteOne(ev); err != nil {
		return errors.Annotate(err, "uinput write")
	}
	syn := evdev.InputEvent{Time: now, Type: evdev.EV_SYN, Code: evdev.SYN_REPORT}
	if err := self.dev.WriteOne(&syn); err != nil {
		return errors.Annotate(err, "uinput write syn")
	}
	return nil
}

func (self *Device) Close() error { return self.dev.Close() }
