package commands

import (
	"testing"
	"time"

	"github.com/mobile-next/ghostcli/config"
	"github.com/mobile-next/ghostcli/gesture"
	"github.com/mobile-next/ghostcli/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTapScript_ProducesTap(t *testing.T) {
	interp := gesture.NewInterpreter(gesture.DefaultConfig())
	intents := interp.HandleAll(TapScript(types.Point{X: 40, Y: 60}))
	require.Len(t, intents, 1)
	assert.Equal(t, types.IntentTap, intents[0].Kind)
}

func TestSwipeScript_VerticalAdjustsOpacity(t *testing.T) {
	events, err := SwipeScript(SwipeRequest{
		From:     types.Point{X: 0, Y: 0},
		To:       types.Point{X: 0, Y: -100},
		Duration: 200 * time.Millisecond,
		Steps:    5,
	})
	require.NoError(t, err)
	require.Len(t, events, 7)
	assert.Equal(t, int64(1200), events[5].Timestamp)

	resp := ReplayCommand(ReplayRequest{Events: events, Consumer: "ghost"})
	require.Equal(t, "ok", resp.Status, resp.Error)

	state := resp.Data.(ReplayResponse).State.(RigState)
	assert.False(t, state.Ghost.Enabled)
	assert.InDelta(t, 0.8, state.Ghost.Opacity, 1e-9)
}

func TestSwipeScript_HoldDragsIcon(t *testing.T) {
	SetConfig(config.Default())

	events, err := SwipeScript(SwipeRequest{
		From:  types.Point{X: 0, Y: 0},
		To:    types.Point{X: 100, Y: 0},
		Hold:  600 * time.Millisecond,
		Steps: 4,
	})
	require.NoError(t, err)

	resp := ReplayCommand(ReplayRequest{Events: events, Consumer: "ghost"})
	require.Equal(t, "ok", resp.Status, resp.Error)

	state := resp.Data.(ReplayResponse).State.(RigState)
	assert.Equal(t, types.Point{X: 100, Y: 100}, state.View.Position)
	assert.False(t, state.Ghost.Enabled)
}

func TestSwipeScript_Validation(t *testing.T) {
	_, err := SwipeScript(SwipeRequest{Hold: -time.Second})
	assert.Error(t, err)

	events, err := SwipeScript(SwipeRequest{})
	require.NoError(t, err)
	assert.Len(t, events, defaultScriptSteps+2)
}

func TestPinchScript_ScalesAndRotates(t *testing.T) {
	events, err := PinchScript(PinchRequest{
		Center:       types.Point{X: 200, Y: 200},
		FromDistance: 100,
		ToDistance:   300,
		Rotate:       45,
		Steps:        6,
	})
	require.NoError(t, err)

	scale, rotation := 1.0, 0.0
	interp := gesture.NewInterpreter(gesture.DefaultConfig())
	for _, intent := range interp.HandleAll(events) {
		switch intent.Kind {
		case types.IntentScaleBy:
			scale *= intent.Factor
		case types.IntentRotateBy:
			rotation += intent.Degrees
		case types.IntentTap:
			t.Fatal("a pinch must never tap")
		}
	}

	assert.InDelta(t, 3.0, scale, 1e-9)
	assert.InDelta(t, 45.0, rotation, 1e-9)
	assert.False(t, interp.InSession())
}

func TestPinchScript_Validation(t *testing.T) {
	_, err := PinchScript(PinchRequest{FromDistance: 0, ToDistance: 10})
	assert.Error(t, err)
}
