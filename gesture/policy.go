package gesture

import (
	"math"
	"time"

	"github.com/mobile-next/ghostcli/types"
)

// selectMode decides what a lone, still-undetermined pointer is doing.
// It returns ModeUndetermined until the pointer leaves the movement
// threshold and the movement is unambiguous.
func (in *Interpreter) selectMode(s *Session, pos types.Point, elapsed time.Duration) Mode {
	dx, dy := pos.X-s.start.X, pos.Y-s.start.Y
	if math.Hypot(dx, dy) <= in.cfg.MovementThreshold {
		return ModeUndetermined
	}

	switch in.cfg.SingleFinger {
	case SingleFingerDrag:
		return ModeDragging

	case SingleFingerModeSelect:
		if elapsed > in.cfg.LongPress {
			return ModeDragging
		}

		ax, ay := math.Abs(dx), math.Abs(dy)
		if ay > in.cfg.DirectionRatio*ax {
			return ModeAdjustingOpacity
		}

		// horizontal-dominant without a long press is inert, diagonal
		// movement waits for a clearer direction
		return ModeUndetermined
	}

	return ModeUndetermined
}

// singleFingerIntent emits the intent for a pointer in a locked mode.
func (in *Interpreter) singleFingerIntent(s *Session, pos types.Point) []types.Intent {
	switch s.mode {
	case ModeDragging:
		return []types.Intent{types.DragFromStart(pos.X-s.start.X, pos.Y-s.start.Y)}
	case ModeAdjustingOpacity:
		dy := pos.Y - s.start.Y
		value := clamp(s.opacityBaseline-dy*in.cfg.OpacitySensitivity, in.cfg.MinOpacity, in.cfg.MaxOpacity)
		return []types.Intent{types.OpacityDeltaTo(value)}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
