// Package stick converts raw analog stick samples to pointer deltas.
//
// The curve is odd-power so sign survives, near-zero close to center
// and steep near the extremes. Factor is chosen so full deflection
// maps to roughly the configured speed.
package stick

import "math"

// Max is the largest raw magnitude a stick of this class reports.
// Factor derivation divides by Max^5 so Map(Max) comes out near speed.
const Max = 30000

type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

// Constants are derived from config once at startup and never modified.
// Pass by value or shared read-only, either is safe.
type Constants struct {
	Factor         float64
	DriftThreshold uint32
	Adjust         [2]int32
}

func FromSpeed(speed float64, driftThreshold uint32, adjustX, adjustY int32) Constants {
	return Constants{
		Factor:         speed / math.Pow(Max, 5),
		DriftThreshold: driftThreshold,
		Adjust:         [2]int32{adjustX, adjustY},
	}
}

// Map converts one raw axis sample to a relative pointer delta.
// Bias correction first, then dead zone, then the response curve.
// Pure arithmetic, no error conditions.
func (c *Constants) Map(a Axis, raw int32) int32 {
	v := raw + c.Adjust[a]
	if uabs(v) < c.DriftThreshold {
		return 0
	}
	f := float64(v)
	x := math.Round(f * f * f * f * f * c.Factor)
	// large adjust values could push the curve out of int32
	switch {
	case x > math.MaxInt32:
		return math.MaxInt32
	case x < math.MinInt32:
		return math.MinInt32
	}
	return int32(x)
}

func uabs(v int32) uint32 {
	if v < 0 {
		return uint32(-int64(v))
	}
	return uint32(v)
}
