// Package joystick owns the physical gamepad side: discovery by name,
// open, exclusive grab and blocking raw event reads.
package joystick

import (
	"fmt"
	"strings"
	"time"

	evdev "github.com/holoplot/go-evdev"
	"github.com/juju/errors"
	"golang.org/x/sys/unix"

	"github.com/coolreader18/joykbd/log2"
)

const inputDir = "/dev/input"

// inotify wakeups are only a recheck cue, poll at most this often
const pollStep = 200 * time.Millisecond

type Device struct {
	dev  *evdev.InputDevice
	path string
	name string
}

func Open(path string) (*Device, error) {
	d, err := evdev.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "joystick open path=%s", path)
	}
	name, err := d.Name()
	if err != nil {
		name = "?"
	}
	return &Device{dev: d, path: path, name: name}, nil
}

// List reports every input node with its device name.
func List() ([]evdev.InputPath, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, errors.Annotatef(err, "joystick list %s", inputDir)
	}
	return paths, nil
}

// Discover opens the first device whose name contains match.
func Discover(log *log2.Log, match string) (*Device, error) {
	paths, err := List()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if strings.Contains(p.Name, match) {
			log.Debugf("joystick discover path=%s name=%s", p.Path, p.Name)
			return Open(p.Path)
		}
	}
	return nil, errors.NotFoundf("joystick name~=%s", match)
}

// WaitFor retries discovery while watching /dev/input for new nodes,
// giving hotplug a grace window instead of failing immediately.
func WaitFor(log *log2.Log, match string, timeout time.Duration, stop <-chan struct{}) (*Device, error) {
	if d, err := Discover(log, match); err == nil || !errors.IsNotFound(err) {
		return d, err
	}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, errors.Annotate(err, "inotify init")
	}
	defer unix.Close(fd)
	if _, err = unix.InotifyAddWatch(fd, inputDir, unix.IN_CREATE|unix.IN_ATTRIB); err != nil {
		return nil, errors.Annotatef(err, "inotify watch %s", inputDir)
	}

	log.Infof("joystick wait name~=%s timeout=%s", match, timeout)
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 4096)
	for {
		select {
		case <-stop:
			return nil, errors.NotFoundf("joystick name~=%s (stopped)", match)
		default:
		}

		left := time.Until(deadline)
		if left <= 0 {
			return nil, errors.NotFoundf("joystick name~=%s after %s", match, timeout)
		}
		if left > pollStep {
			left = pollStep
		}
		pfd := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(pfd, int(left/time.Millisecond))
		if err != nil && err != unix.EINTR {
			return nil, errors.Annotate(err, "inotify poll")
		}
		if n > 0 {
			// drain, the event content does not matter
			for {
				if _, err := unix.Read(fd, buf); err != nil {
					break
				}
			}
		}

		d, err := Discover(log, match)
		if err == nil {
			return d, nil
		}
		if !errors.IsNotFound(err) {
			return nil, err
		}
	}
}

func (self *Device) Name() string { return self.name }
func (self *Device) Path() string { return self.path }

func (self *Device) String() string { return fmt.Sprintf("%s (%s)", self.path, self.name) }

// ReadOne blocks until the next raw event arrives.
func (self *Device) ReadOne() (*evdev.InputEvent, error) {
	ev, err := self.dev.ReadOne()
	if err != nil {
		return nil, errors.Annotatef(err, "joystick read %s", self.path)
	}
	return ev, nil
}

// Grab takes an exclusive hold so the desktop stops seeing raw
// gamepad events alongside the translated ones.
func (self *Device) Grab() error {
	return errors.Annotatef(self.dev.Grab(), "joystick grab %s", self.path)
}

func (self *Device) Close() error { return self.dev.Close() }
