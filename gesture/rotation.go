package gesture

import (
	"math"

	"github.com/mobile-next/ghostcli/types"
)

// rotationEstimator tracks the angle of the line between the two pointers
// and reports the change since the previous sample.
type rotationEstimator struct {
	prevAngle float64
	valid     bool
}

func (e *rotationEstimator) reset(a, b types.Point) {
	e.valid = a != b
	if e.valid {
		e.prevAngle = lineAngle(a, b)
	}
}

func (e *rotationEstimator) update(a, b types.Point) (float64, bool) {
	if a == b {
		return 0, false
	}

	angle := lineAngle(a, b)
	if !e.valid {
		e.prevAngle = angle
		e.valid = true
		return 0, false
	}

	delta := normalizeDegrees(angle - e.prevAngle)
	e.prevAngle = angle
	if delta == 0 {
		return 0, false
	}
	return delta, true
}

// lineAngle returns the angle of the line from a to b in degrees.
func lineAngle(a, b types.Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X) * 180 / math.Pi
}

// normalizeDegrees maps any angle into (-180, 180].
func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}
