package types

import "fmt"

// IntentKind identifies an interpreted user action.
type IntentKind string

const (
	IntentTap            IntentKind = "tap"
	IntentDragBy         IntentKind = "drag"
	IntentScaleBy        IntentKind = "scale"
	IntentRotateBy       IntentKind = "rotate"
	IntentOpacityDeltaTo IntentKind = "opacity"
)

// Intent is a discrete action derived from raw touch samples.
//
// DragBy carries DX/DY. When FromStart is set the delta is the total
// displacement since the session began and the consumer must place the view
// at its starting position plus the delta; otherwise it is incremental.
// ScaleBy carries a multiplicative Factor, RotateBy a relative Degrees value,
// OpacityDeltaTo the absolute Opacity to apply. Tap carries the session start
// Timestamp in milliseconds.
type Intent struct {
	Kind      IntentKind `json:"kind"`
	DX        float64    `json:"dx,omitempty"`
	DY        float64    `json:"dy,omitempty"`
	FromStart bool       `json:"fromStart,omitempty"`
	Factor    float64    `json:"factor,omitempty"`
	Degrees   float64    `json:"degrees,omitempty"`
	Opacity   float64    `json:"opacity,omitempty"`
	Timestamp int64      `json:"timestamp,omitempty"`
}

func Tap(timestampMs int64) Intent {
	return Intent{Kind: IntentTap, Timestamp: timestampMs}
}

func DragBy(dx, dy float64) Intent {
	return Intent{Kind: IntentDragBy, DX: dx, DY: dy}
}

func DragFromStart(dx, dy float64) Intent {
	return Intent{Kind: IntentDragBy, DX: dx, DY: dy, FromStart: true}
}

func ScaleBy(factor float64) Intent {
	return Intent{Kind: IntentScaleBy, Factor: factor}
}

func RotateBy(degrees float64) Intent {
	return Intent{Kind: IntentRotateBy, Degrees: degrees}
}

func OpacityDeltaTo(value float64) Intent {
	return Intent{Kind: IntentOpacityDeltaTo, Opacity: value}
}

func (i Intent) String() string {
	switch i.Kind {
	case IntentTap:
		return "Tap"
	case IntentDragBy:
		if i.FromStart {
			return fmt.Sprintf("DragBy(%.2f,%.2f from start)", i.DX, i.DY)
		}
		return fmt.Sprintf("DragBy(%.2f,%.2f)", i.DX, i.DY)
	case IntentScaleBy:
		return fmt.Sprintf("ScaleBy(%.4f)", i.Factor)
	case IntentRotateBy:
		return fmt.Sprintf("RotateBy(%.2f)", i.Degrees)
	case IntentOpacityDeltaTo:
		return fmt.Sprintf("OpacityDeltaTo(%.3f)", i.Opacity)
	default:
		return string(i.Kind)
	}
}
