package commands

import (
	"fmt"
	"math"
	"time"

	"github.com/mobile-next/ghostcli/types"
)

// scriptStartMs is the timestamp of the first event in a generated script.
const scriptStartMs = 1000

const defaultScriptSteps = 10

// TapScript is a single pointer going down and up in place.
func TapScript(p types.Point) []types.TouchEvent {
	return []types.TouchEvent{
		types.Down(1, p.X, p.Y, scriptStartMs),
		types.Up(1),
	}
}

// SwipeRequest describes a single-finger swipe. Hold delays the first move,
// which turns the swipe into a long-press drag once it exceeds the long
// press duration.
type SwipeRequest struct {
	From     types.Point
	To       types.Point
	Hold     time.Duration
	Duration time.Duration
	Steps    int
}

// SwipeScript interpolates a straight single-finger swipe.
func SwipeScript(req SwipeRequest) ([]types.TouchEvent, error) {
	if req.Steps <= 0 {
		req.Steps = defaultScriptSteps
	}
	if req.Hold < 0 || req.Duration < 0 {
		return nil, fmt.Errorf("hold and duration must be non-negative")
	}

	events := []types.TouchEvent{types.Down(1, req.From.X, req.From.Y, scriptStartMs)}

	startMs := int64(scriptStartMs) + req.Hold.Milliseconds()
	for i := 1; i <= req.Steps; i++ {
		f := float64(i) / float64(req.Steps)
		x := req.From.X + (req.To.X-req.From.X)*f
		y := req.From.Y + (req.To.Y-req.From.Y)*f
		ts := startMs + int64(float64(req.Duration.Milliseconds())*f)
		events = append(events, types.MoveAt(1, x, y, ts))
	}

	return append(events, types.Up(1)), nil
}

// PinchRequest describes a two-finger pinch around a fixed center. The
// pointers sit on a line through Center; their distance goes from
// FromDistance to ToDistance while the line turns by Rotate degrees.
type PinchRequest struct {
	Center       types.Point
	FromDistance float64
	ToDistance   float64
	Rotate       float64
	Steps        int
}

// PinchScript generates a two-finger pinch/rotate gesture.
func PinchScript(req PinchRequest) ([]types.TouchEvent, error) {
	if req.FromDistance <= 0 || req.ToDistance <= 0 {
		return nil, fmt.Errorf("pinch distances must be positive")
	}
	if req.Steps <= 0 {
		req.Steps = defaultScriptSteps
	}

	ends := func(distance, degrees float64) (types.Point, types.Point) {
		rad := degrees * math.Pi / 180
		dx := math.Cos(rad) * distance / 2
		dy := math.Sin(rad) * distance / 2
		return types.Point{X: req.Center.X - dx, Y: req.Center.Y - dy},
			types.Point{X: req.Center.X + dx, Y: req.Center.Y + dy}
	}

	a, b := ends(req.FromDistance, 0)
	events := []types.TouchEvent{
		types.Down(1, a.X, a.Y, scriptStartMs),
		types.Down(2, b.X, b.Y, scriptStartMs),
	}

	for i := 1; i <= req.Steps; i++ {
		f := float64(i) / float64(req.Steps)
		distance := req.FromDistance + (req.ToDistance-req.FromDistance)*f
		a, b = ends(distance, req.Rotate*f)
		events = append(events, types.Move(1, a.X, a.Y), types.Move(2, b.X, b.Y))
	}

	return append(events, types.Up(2), types.Up(1)), nil
}
