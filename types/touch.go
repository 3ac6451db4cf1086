package types

import "fmt"

// Phase is the lifecycle stage of a single pointer sample.
type Phase string

const (
	PhaseDown   Phase = "down"
	PhaseMove   Phase = "move"
	PhaseUp     Phase = "up"
	PhaseCancel Phase = "cancel"
)

// TouchEvent represents one raw pointer sample delivered by the host.
// Timestamp is in milliseconds and is only required on Down; Move may carry
// one, Up and Cancel ignore it.
type TouchEvent struct {
	Phase     Phase   `json:"phase"`
	PointerID int     `json:"pointerId"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp int64   `json:"timestamp,omitempty"`
}

// Down creates a pointer-down event.
func Down(pointerID int, x, y float64, timestampMs int64) TouchEvent {
	return TouchEvent{Phase: PhaseDown, PointerID: pointerID, X: x, Y: y, Timestamp: timestampMs}
}

// Move creates a pointer-move event without a timestamp.
func Move(pointerID int, x, y float64) TouchEvent {
	return TouchEvent{Phase: PhaseMove, PointerID: pointerID, X: x, Y: y}
}

// MoveAt creates a pointer-move event with a timestamp.
func MoveAt(pointerID int, x, y float64, timestampMs int64) TouchEvent {
	return TouchEvent{Phase: PhaseMove, PointerID: pointerID, X: x, Y: y, Timestamp: timestampMs}
}

// Up creates a pointer-up event.
func Up(pointerID int) TouchEvent {
	return TouchEvent{Phase: PhaseUp, PointerID: pointerID}
}

// Cancel creates a cancel event, which drops every active pointer.
func Cancel() TouchEvent {
	return TouchEvent{Phase: PhaseCancel}
}

// Validate checks that the event carries a known phase.
func (e TouchEvent) Validate() error {
	switch e.Phase {
	case PhaseDown, PhaseMove, PhaseUp, PhaseCancel:
		return nil
	case "":
		return fmt.Errorf("phase cannot be empty")
	default:
		return fmt.Errorf("unknown phase '%s', expected one of: down, move, up, cancel", e.Phase)
	}
}

// Point is a position in view coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
