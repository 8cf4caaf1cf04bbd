package pump

// Counters are updated atomically but not consistently with each
// other, i.e. it is possible to read In=1 Out=0 mid-handling.

import (
	"expvar"
	"fmt"

	"github.com/temoto/atomic_clock"
)

type Stat struct {
	In     expvar.Int // raw events from the source
	Drop   expvar.Int // no mapping, never reached the sink
	Keys   expvar.Int // translated button/key events
	Motion expvar.Int // translated live motion events
	Synth  expvar.Int // timer-synthesized motion events
	Out    expvar.Int // everything delivered to the sink

	LastInput atomic_clock.Clock
	LastEmit  atomic_clock.Clock
}

func (s *Stat) String() string {
	return fmt.Sprintf(`{"in":%d,"drop":%d,"keys":%d,"motion":%d,"synth":%d,"out":%d}`,
		s.In.Value(), s.Drop.Value(), s.Keys.Value(),
		s.Motion.Value(), s.Synth.Value(), s.Out.Value())
}
