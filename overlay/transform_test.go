package overlay

import (
	"errors"
	"testing"
	"time"

	"github.com/mobile-next/ghostcli/gesture"
	"github.com/mobile-next/ghostcli/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCapture = []byte{0x89, 'P', 'N', 'G'}

func activeMode(t *testing.T, view ImageView) *TransformMode {
	t.Helper()
	mode := NewTransformMode(CapturerFunc(func() ([]byte, error) { return testCapture, nil }), view, nil)
	require.True(t, mode.Enable())
	return mode
}

func TestTransformMode_EnableCapturesAndFiresEvent(t *testing.T) {
	view := NewRecorder()
	mode := NewTransformMode(CapturerFunc(func() ([]byte, error) { return testCapture, nil }), view, nil)

	var captured []byte
	mode.OnImageCaptured = func(image []byte) { captured = image }

	assert.True(t, mode.Enable())
	assert.True(t, mode.IsActive())
	assert.Equal(t, testCapture, captured)
	assert.Equal(t, testCapture, mode.Image())
	assert.Equal(t, Identity(), view.State().Transform)
}

func TestTransformMode_CaptureFailureIsANoOp(t *testing.T) {
	tests := []struct {
		name     string
		capturer Capturer
	}{
		{"error", CapturerFunc(func() ([]byte, error) { return nil, errors.New("no webview") })},
		{"empty", CapturerFunc(func() ([]byte, error) { return nil, nil })},
		{"panic", CapturerFunc(func() ([]byte, error) { panic("drawing cache unavailable") })},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewRecorder()
			mode := NewTransformMode(tt.capturer, view, nil)

			fired := false
			mode.OnImageCaptured = func([]byte) { fired = true }

			assert.NotPanics(t, func() {
				assert.False(t, mode.Enable())
			})
			assert.False(t, mode.IsActive())
			assert.False(t, fired)
			assert.Equal(t, 0, view.State().Calls)
		})
	}
}

func TestTransformMode_FailedRecaptureKeepsPriorState(t *testing.T) {
	fail := false
	view := NewRecorder()
	mode := NewTransformMode(CapturerFunc(func() ([]byte, error) {
		if fail {
			return nil, errors.New("gone")
		}
		return testCapture, nil
	}), view, nil)

	require.True(t, mode.Enable())
	mode.Pan(10, 20)
	before := mode.Transform()

	fail = true
	assert.False(t, mode.Enable())
	assert.True(t, mode.IsActive())
	assert.Equal(t, before, mode.Transform())
	assert.Equal(t, testCapture, mode.Image())
}

func TestTransformMode_ZoomClamps(t *testing.T) {
	mode := activeMode(t, NewRecorder())

	for i := 0; i < 50; i++ {
		mode.ZoomOut()
	}
	assert.Equal(t, MinZoomScale, mode.Transform().Scale)

	for i := 0; i < 50; i++ {
		mode.ZoomIn()
	}
	assert.Equal(t, MaxZoomScale, mode.Transform().Scale)

	mode.SetZoom(0.2)
	assert.Equal(t, MinZoomScale, mode.Transform().Scale)
}

func TestTransformMode_PinchClampsIndependently(t *testing.T) {
	mode := activeMode(t, NewRecorder())

	mode.Pinch(0.25)
	assert.InDelta(t, 0.25, mode.Transform().Scale, 1e-9, "pinch may go below the zoom floor")

	mode.Pinch(0.01)
	assert.Equal(t, MinPinchScale, mode.Transform().Scale)

	mode.Pinch(1000)
	assert.Equal(t, MaxPinchScale, mode.Transform().Scale)

	mode.Pinch(0)
	assert.Equal(t, MaxPinchScale, mode.Transform().Scale, "non-positive factors are ignored")
}

func TestTransformMode_IgnoresManipulationWhileInactive(t *testing.T) {
	view := NewRecorder()
	mode := NewTransformMode(nil, view, nil)

	mode.Pan(5, 5)
	mode.Pinch(2)
	mode.Rotate(45)
	mode.ZoomIn()

	assert.True(t, mode.Transform().IsIdentity())
	assert.Equal(t, 0, view.State().Calls)
}

func TestTransformMode_ToggleDisables(t *testing.T) {
	mode := activeMode(t, NewRecorder())
	assert.False(t, mode.Toggle())
	assert.False(t, mode.IsActive())
	assert.True(t, mode.Toggle())
}

func TestTransformOverlay_ResetRestoresIdentityExactly(t *testing.T) {
	view := NewRecorder()
	mode := activeMode(t, view)
	overlay := NewTransformOverlay(gesture.DefaultConfig(), mode, DefaultDoubleTapWindow)

	events := []types.TouchEvent{
		types.Down(1, 100, 100, 0),
		types.Down(2, 200, 130, 0),
		types.Move(2, 260, 170),
		types.Move(1, 90, 80),
		types.Move(2, 230, 240),
		types.Up(2),
		types.Up(1),
	}
	for _, ev := range events {
		overlay.HandleTouch(ev)
	}
	mode.ZoomIn()
	require.False(t, mode.Transform().IsIdentity())

	mode.Reset()
	assert.Equal(t, Transform{Scale: 1, Rotation: 0, TranslateX: 0, TranslateY: 0}, mode.Transform())
	assert.Equal(t, Identity(), view.State().Transform)
}

func TestTransformOverlay_DoubleTapResets(t *testing.T) {
	view := NewRecorder()
	mode := activeMode(t, view)
	overlay := NewTransformOverlay(gesture.DefaultConfig(), mode, 300*time.Millisecond)

	mode.Pan(40, 40)
	mode.Rotate(30)

	overlay.HandleTouch(types.Down(1, 10, 10, 1000))
	overlay.HandleTouch(types.Up(1))
	assert.False(t, mode.Transform().IsIdentity(), "a single tap does nothing")

	overlay.HandleTouch(types.Down(1, 12, 11, 1200))
	overlay.HandleTouch(types.Up(1))
	assert.True(t, mode.Transform().IsIdentity())
	assert.Equal(t, Identity(), view.State().Transform)
}

func TestTransformOverlay_SlowTapsDoNotReset(t *testing.T) {
	mode := activeMode(t, NewRecorder())
	overlay := NewTransformOverlay(gesture.DefaultConfig(), mode, 300*time.Millisecond)
	mode.Pan(40, 40)

	overlay.HandleTouch(types.Down(1, 10, 10, 1000))
	overlay.HandleTouch(types.Up(1))
	overlay.HandleTouch(types.Down(1, 10, 10, 1500))
	overlay.HandleTouch(types.Up(1))

	assert.False(t, mode.Transform().IsIdentity())
}

func TestTransformOverlay_PinchRotateAndPan(t *testing.T) {
	view := NewRecorder()
	mode := activeMode(t, view)
	overlay := NewTransformOverlay(gesture.DefaultConfig(), mode, 0)

	overlay.HandleTouch(types.Down(1, 0, 0, 0))
	overlay.HandleTouch(types.Down(2, 100, 0, 0))
	// rotate the second finger a quarter turn around the first, doubling the distance
	overlay.HandleTouch(types.Move(2, 0, 200))

	got := mode.Transform()
	assert.InDelta(t, 2.0, got.Scale, 1e-9)
	assert.InDelta(t, 90.0, got.Rotation, 1e-9)
	assert.InDelta(t, -50.0, got.TranslateX, 1e-9)
	assert.InDelta(t, 100.0, got.TranslateY, 1e-9)
	assert.Equal(t, got, view.State().Transform)

	// single finger movement on the overlay is ignored
	overlay.HandleTouch(types.Up(2))
	overlay.HandleTouch(types.Move(1, 300, 300))
	assert.Equal(t, got, mode.Transform())
}

func TestTransformIcon_TapTogglesModeAndDragMovesIcon(t *testing.T) {
	view := NewRecorder()
	mode := NewTransformMode(CapturerFunc(func() ([]byte, error) { return testCapture, nil }), NewRecorder(), nil)
	cfg := gesture.DefaultConfig()
	cfg.TapThreshold = 15
	icon := NewTransformIcon(cfg, view, mode, nil)

	icon.HandleTouch(types.Down(1, 5, 205, 1000))
	icon.HandleTouch(types.MoveAt(1, 17, 205, 1010))
	icon.HandleTouch(types.Up(1))
	assert.True(t, mode.IsActive())
	assert.Equal(t, TransformIconOrigin, icon.Position())

	icon.HandleTouch(types.Down(1, 5, 205, 2000))
	icon.HandleTouch(types.MoveAt(1, 5, 305, 2010))
	icon.HandleTouch(types.Up(1))
	assert.True(t, mode.IsActive(), "a drag does not toggle")
	assert.Equal(t, types.Point{X: 0, Y: 300}, view.State().Position)
}
