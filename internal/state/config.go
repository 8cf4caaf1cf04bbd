package state

import (
	"time"

	"github.com/juju/errors"

	"github.com/coolreader18/joykbd/internal/stick"
)

const (
	DefaultMatch          = "Joy-Con"
	DefaultSpeed          = 20.0
	DefaultRepeatTimeout  = 16 * time.Millisecond
	DefaultDriftThreshold = 2000
)

// Config is assembled from command line flags once at startup and
// never modified after Global.Init.
type Config struct {
	// DevicePath empty means discovery by Match substring.
	DevicePath     string
	Match          string
	Speed          float64
	RepeatTimeout  time.Duration
	DriftThreshold uint32
	AdjustX        int32
	AdjustY        int32
	// Wait > 0 watches /dev/input for a matching device to appear
	// instead of failing discovery immediately.
	Wait  time.Duration
	Grab  bool
	Debug bool
}

// Normalize fills unset values with defaults. DriftThreshold and the
// adjustments stay as given, zero is meaningful for them.
func (c *Config) Normalize() {
	if c.Match == "" {
		c.Match = DefaultMatch
	}
	if c.Speed == 0 {
		c.Speed = DefaultSpeed
	}
	if c.RepeatTimeout == 0 {
		c.RepeatTimeout = DefaultRepeatTimeout
	}
}

func (c *Config) Validate() error {
	if c.Speed <= 0 {
		return errors.NotValidf("config speed=%g", c.Speed)
	}
	if c.RepeatTimeout <= 0 {
		return errors.NotValidf("config repeat-timeout=%v", c.RepeatTimeout)
	}
	return nil
}

// StickConstants derives the immutable curve parameters.
func (c *Config) StickConstants() stick.Constants {
	return stick.FromSpeed(c.Speed, c.DriftThreshold, c.AdjustX, c.AdjustY)
}
