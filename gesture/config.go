package gesture

import (
	"fmt"
	"math"
	"time"
)

// SingleFingerPolicy selects what a lone pointer is allowed to do.
type SingleFingerPolicy int

const (
	// SingleFingerNone ignores single-pointer movement; only two-finger
	// gestures and taps are produced. Used by the transform overlay.
	SingleFingerNone SingleFingerPolicy = iota
	// SingleFingerModeSelect runs the long-press / vertical-swipe mode
	// selection used by the ghost icon.
	SingleFingerModeSelect
	// SingleFingerDrag locks to dragging as soon as the pointer leaves the
	// movement threshold. Used by the transform icon.
	SingleFingerDrag
)

func (p SingleFingerPolicy) String() string {
	switch p {
	case SingleFingerNone:
		return "none"
	case SingleFingerModeSelect:
		return "mode-select"
	case SingleFingerDrag:
		return "drag"
	default:
		return fmt.Sprintf("SingleFingerPolicy(%d)", int(p))
	}
}

// ParseSingleFingerPolicy converts a config string into a policy.
func ParseSingleFingerPolicy(s string) (SingleFingerPolicy, error) {
	switch s {
	case "none", "":
		return SingleFingerNone, nil
	case "mode-select":
		return SingleFingerModeSelect, nil
	case "drag":
		return SingleFingerDrag, nil
	default:
		return SingleFingerNone, fmt.Errorf("unknown single finger policy '%s'", s)
	}
}

// Default thresholds.
const (
	DefaultTapThreshold       = 10.0
	DefaultMovementThreshold  = 15.0
	DefaultLongPress          = 500 * time.Millisecond
	DefaultDirectionRatio     = 1.5
	DefaultOpacitySensitivity = 0.003
	DefaultMinOpacity         = 0.1
	DefaultMaxOpacity         = 1.0
)

// Config holds the thresholds used by an Interpreter.
type Config struct {
	// TapThreshold is the largest per-axis displacement, in pixels, that
	// still counts as a tap.
	TapThreshold float64
	// MovementThreshold is the distance a lone pointer must travel before a
	// single-finger mode is chosen.
	MovementThreshold float64
	// LongPress is the press duration after which movement means dragging.
	LongPress time.Duration
	// DirectionRatio is how much one axis must dominate the other.
	DirectionRatio float64
	// OpacitySensitivity is the opacity change per pixel of vertical travel.
	OpacitySensitivity float64
	MinOpacity         float64
	MaxOpacity         float64

	SingleFinger SingleFingerPolicy
}

// DefaultConfig returns the thresholds used by the floating icons.
func DefaultConfig() Config {
	return Config{
		TapThreshold:       DefaultTapThreshold,
		MovementThreshold:  DefaultMovementThreshold,
		LongPress:          DefaultLongPress,
		DirectionRatio:     DefaultDirectionRatio,
		OpacitySensitivity: DefaultOpacitySensitivity,
		MinOpacity:         DefaultMinOpacity,
		MaxOpacity:         DefaultMaxOpacity,
		SingleFinger:       SingleFingerModeSelect,
	}
}

// Validate reports the first nonsensical threshold. NaN is never accepted.
func (c Config) Validate() error {
	if invalidNonNegative(c.TapThreshold) {
		return fmt.Errorf("tap threshold must be non-negative, got %v", c.TapThreshold)
	}
	if invalidNonNegative(c.MovementThreshold) {
		return fmt.Errorf("movement threshold must be non-negative, got %v", c.MovementThreshold)
	}
	if c.LongPress < 0 {
		return fmt.Errorf("long press duration must be non-negative, got %v", c.LongPress)
	}
	if math.IsNaN(c.DirectionRatio) || c.DirectionRatio < 1 {
		return fmt.Errorf("direction ratio must be at least 1, got %v", c.DirectionRatio)
	}
	if invalidNonNegative(c.OpacitySensitivity) || math.IsInf(c.OpacitySensitivity, 0) {
		return fmt.Errorf("opacity sensitivity must be a non-negative number, got %v", c.OpacitySensitivity)
	}
	if math.IsNaN(c.MinOpacity) || math.IsNaN(c.MaxOpacity) ||
		c.MinOpacity < 0 || c.MaxOpacity > 1 || c.MinOpacity > c.MaxOpacity {
		return fmt.Errorf("opacity bounds must satisfy 0 <= min <= max <= 1, got [%v, %v]", c.MinOpacity, c.MaxOpacity)
	}
	return nil
}

func invalidNonNegative(v float64) bool {
	return math.IsNaN(v) || v < 0
}
