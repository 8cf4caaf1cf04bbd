// Package pump runs the translate and motion-repeat loop.
//
// Sticks of this class stop reporting while held at a constant
// deflection, so each axis keeps a countdown that re-emits the last
// delta at a fixed cadence until fresh input arrives. The two axis
// timers are independent, which keeps diagonal motion smooth.
package pump

import (
	"time"

	evdev "github.com/holoplot/go-evdev"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"

	"github.com/coolreader18/joykbd/internal/keymap"
	"github.com/coolreader18/joykbd/internal/stick"
	"github.com/coolreader18/joykbd/log2"
)

type Source interface {
	ReadOne() (*evdev.InputEvent, error)
	String() string
}

type Sink interface {
	Emit(*evdev.InputEvent) error
}

type Options struct {
	Log           *log2.Log
	Source        Source
	Sink          Sink
	Constants     stick.Constants
	RepeatTimeout time.Duration
	Alive         *alive.Alive
}

type axisState struct {
	last  int32
	timer *time.Timer
	armed bool
}

type Pump struct {
	opt  Options
	stat Stat
	axes [2]axisState
}

func New(opt Options) (*Pump, error) {
	if opt.Source == nil || opt.Sink == nil {
		return nil, errors.NotValidf("code error pump Source/Sink")
	}
	if opt.RepeatTimeout <= 0 {
		return nil, errors.NotValidf("pump repeat-timeout=%v", opt.RepeatTimeout)
	}
	if opt.Alive == nil {
		opt.Alive = alive.NewAlive()
	}
	return &Pump{opt: opt}, nil
}

func (p *Pump) Stat() *Stat { return &p.stat }

// Run consumes the source until stop or a stream error. All mutable
// state is owned by this goroutine; the reader goroutine only blocks
// in ReadOne and is abandoned at process exit.
//
// Stream errors are fatal. The device vanishing mid-use means partial
// operation, which a pointer tool must not attempt.
func (p *Pump) Run() error {
	events := make(chan *evdev.InputEvent)
	readErr := make(chan error, 1)
	go p.readSource(events, readErr)

	for a := range p.axes {
		t := time.NewTimer(time.Hour)
		if !t.Stop() {
			<-t.C
		}
		p.axes[a].timer = t
	}

	stopch := p.opt.Alive.StopChan()
	for {
		select {
		case <-stopch:
			return nil

		case err := <-readErr:
			return errors.Annotatef(err, "pump source=%s", p.opt.Source.String())

		case ev := <-events:
			if err := p.handleEvent(ev); err != nil {
				return err
			}

		case <-p.axes[stick.AxisX].timer.C:
			if err := p.repeat(stick.AxisX); err != nil {
				return err
			}

		case <-p.axes[stick.AxisY].timer.C:
			if err := p.repeat(stick.AxisY); err != nil {
				return err
			}
		}
	}
}

func (p *Pump) handleEvent(ev *evdev.InputEvent) error {
	p.stat.In.Add(1)
	p.stat.LastInput.SetNow()

	out := keymap.Translate(ev, &p.opt.Constants)
	if out == nil {
		p.stat.Drop.Add(1)
		p.opt.Log.Debugf("pump drop type=%d code=%d value=%d", ev.Type, ev.Code, ev.Value)
		return nil
	}
	if out.Type == evdev.EV_REL {
		a := stick.AxisX
		if out.Code == evdev.REL_Y {
			a = stick.AxisY
		}
		p.axes[a].last = out.Value
		p.rearm(a)
		p.stat.Motion.Add(1)
	} else {
		// buttons pass through, timers untouched
		p.stat.Keys.Add(1)
	}
	return p.emit(out)
}

// repeat re-sends the last delta for an axis. A stored 0 is re-sent
// too: a no-op for the sink, but the cadence stays uniform.
func (p *Pump) repeat(a stick.Axis) error {
	p.axes[a].armed = false
	out := &evdev.InputEvent{Type: evdev.EV_REL, Code: relCode(a), Value: p.axes[a].last}
	p.stat.Synth.Add(1)
	p.rearm(a)
	return p.emit(out)
}

// rearm pushes the axis deadline to now+RepeatTimeout. Stop and drain
// first, so a stale expiry can never fire after a fresh event for the
// same axis.
func (p *Pump) rearm(a stick.Axis) {
	st := &p.axes[a]
	if st.armed && !st.timer.Stop() {
		<-st.timer.C
	}
	st.timer.Reset(p.opt.RepeatTimeout)
	st.armed = true
}

func (p *Pump) emit(ev *evdev.InputEvent) error {
	if err := p.opt.Sink.Emit(ev); err != nil {
		return errors.Annotate(err, "pump emit")
	}
	p.stat.Out.Add(1)
	p.stat.LastEmit.SetNow()
	return nil
}

func (p *Pump) readSource(events chan<- *evdev.InputEvent, errch chan<- error) {
	stopch := p.opt.Alive.StopChan()
	for {
		ev, err := p.opt.Source.ReadOne()
		if err != nil {
			errch <- err
			return
		}
		select {
		case events <- ev:
		case <-stopch:
			return
		}
	}
}

func relCode(a stick.Axis) evdev.EvCode {
	if a == stick.AxisY {
		return evdev.REL_Y
	}
	return evdev.REL_X
}
