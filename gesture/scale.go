package gesture

import (
	"math"

	"github.com/mobile-next/ghostcli/types"
)

// scaleEstimator reports the raw ratio between consecutive inter-pointer
// distances. Clamping is left to the consumer.
type scaleEstimator struct {
	prevDist float64
}

func (e *scaleEstimator) reset(a, b types.Point) {
	e.prevDist = distance(a, b)
}

func (e *scaleEstimator) update(a, b types.Point) (float64, bool) {
	d := distance(a, b)
	prev := e.prevDist
	e.prevDist = d

	// coincident pointers have no meaningful ratio; re-baseline on the next sample
	if prev <= 0 || d <= 0 {
		return 0, false
	}

	ratio := d / prev
	if ratio == 1 {
		return 0, false
	}
	return ratio, true
}

func distance(a, b types.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
