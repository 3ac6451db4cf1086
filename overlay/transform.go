package overlay

import (
	"fmt"
	"math"
	"time"

	"github.com/mobile-next/ghostcli/gesture"
	"github.com/mobile-next/ghostcli/types"
	"github.com/mobile-next/ghostcli/utils"
)

// Scale bounds. Pinch gestures and the zoom buttons clamp independently.
const (
	MinPinchScale = 0.1
	MaxPinchScale = 10.0
	MinZoomScale  = 0.5
	MaxZoomScale  = 10.0

	DefaultZoomStep        = 1.25
	DefaultDoubleTapWindow = 300 * time.Millisecond
)

// Transform is the affine state of the overlay image: scale, then rotate
// (degrees), then translate.
type Transform struct {
	Scale      float64 `json:"scale"`
	Rotation   float64 `json:"rotation"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
}

// Identity returns the untransformed state.
func Identity() Transform {
	return Transform{Scale: 1}
}

func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// TransformMode owns the captured overlay image and its transform.
type TransformMode struct {
	capturer Capturer
	view     ImageView
	ui       Dispatcher

	active    bool
	image     []byte
	transform Transform
	zoomStep  float64

	// OnImageCaptured is called with the encoded image after a successful capture.
	OnImageCaptured func(image []byte)
}

func NewTransformMode(capturer Capturer, view ImageView, ui Dispatcher) *TransformMode {
	if ui == nil {
		ui = Immediate
	}
	return &TransformMode{
		capturer:  capturer,
		view:      view,
		ui:        ui,
		transform: Identity(),
		zoomStep:  DefaultZoomStep,
	}
}

// SetZoomStep changes the factor applied by ZoomIn and ZoomOut. Steps at or
// below 1 are ignored.
func (m *TransformMode) SetZoomStep(step float64) {
	if step > 1 {
		m.zoomStep = step
	}
}

// Enable captures the page and shows it as an untransformed overlay. A failed
// capture leaves the previous state untouched and reports false.
func (m *TransformMode) Enable() bool {
	image, err := m.capture()
	if err != nil {
		utils.Warn("error enabling transform mode: %v", err)
		return false
	}

	m.image = image
	m.active = true
	m.transform = Identity()
	m.apply()

	if m.OnImageCaptured != nil {
		m.OnImageCaptured(image)
	}
	utils.Verbose("transform mode enabled with %d byte capture", len(image))
	return true
}

func (m *TransformMode) capture() (image []byte, err error) {
	if m.capturer == nil {
		return nil, fmt.Errorf("no capturer configured")
	}

	defer func() {
		if r := recover(); r != nil {
			image, err = nil, fmt.Errorf("capture panicked: %v", r)
		}
	}()

	image, err = m.capturer.CaptureViewToImage()
	if err != nil {
		return nil, fmt.Errorf("capture failed: %w", err)
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("capture returned no data")
	}
	return image, nil
}

func (m *TransformMode) Disable() {
	m.active = false
	utils.Verbose("transform mode disabled")
}

// Toggle enables or disables transform mode and reports whether it is active.
func (m *TransformMode) Toggle() bool {
	if m.active {
		m.Disable()
		return false
	}
	return m.Enable()
}

func (m *TransformMode) IsActive() bool {
	return m.active
}

// Image returns the last captured image.
func (m *TransformMode) Image() []byte {
	return m.image
}

func (m *TransformMode) Transform() Transform {
	return m.transform
}

// Pan moves the overlay by a relative offset.
func (m *TransformMode) Pan(dx, dy float64) {
	if !m.active {
		return
	}
	m.transform.TranslateX += dx
	m.transform.TranslateY += dy
	m.apply()
}

// Pinch multiplies the scale by factor within the pinch bounds.
func (m *TransformMode) Pinch(factor float64) {
	if !m.active || factor <= 0 || math.IsNaN(factor) {
		return
	}
	m.transform.Scale = clampScale(m.transform.Scale*factor, MinPinchScale, MaxPinchScale)
	m.apply()
}

// Rotate adds a relative rotation in degrees.
func (m *TransformMode) Rotate(degrees float64) {
	if !m.active || math.IsNaN(degrees) {
		return
	}
	m.transform.Rotation += degrees
	m.apply()
}

// ZoomBy is the tool-button zoom: it multiplies the scale within the zoom bounds.
func (m *TransformMode) ZoomBy(factor float64) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	m.SetZoom(m.transform.Scale * factor)
}

func (m *TransformMode) ZoomIn() {
	m.ZoomBy(m.zoomStep)
}

func (m *TransformMode) ZoomOut() {
	m.ZoomBy(1 / m.zoomStep)
}

// SetZoom sets an absolute scale within the zoom bounds.
func (m *TransformMode) SetZoom(scale float64) {
	if !m.active || math.IsNaN(scale) {
		return
	}
	m.transform.Scale = clampScale(scale, MinZoomScale, MaxZoomScale)
	m.apply()
}

// Reset restores the identity transform.
func (m *TransformMode) Reset() {
	m.transform = Identity()
	if m.active {
		m.apply()
	}
}

func (m *TransformMode) apply() {
	if m.view == nil {
		return
	}
	t := m.transform
	m.ui.RunOnUI(func() {
		m.view.SetImageTransform(t.Scale, t.Rotation, t.TranslateX, t.TranslateY)
	})
}

// TransformState is the reported state of transform mode.
type TransformState struct {
	Active     bool      `json:"active"`
	ImageBytes int       `json:"imageBytes"`
	Transform  Transform `json:"transform"`
}

func (m *TransformMode) State() TransformState {
	return TransformState{Active: m.active, ImageBytes: len(m.image), Transform: m.transform}
}

// TransformOverlay feeds two-finger gestures on the overlay image into a
// TransformMode. A double tap resets the transform.
type TransformOverlay struct {
	interp          *gesture.Interpreter
	mode            *TransformMode
	doubleTapWindow time.Duration
	lastTapMs       int64
	hasLastTap      bool
}

func NewTransformOverlay(cfg gesture.Config, mode *TransformMode, doubleTapWindow time.Duration) *TransformOverlay {
	cfg.SingleFinger = gesture.SingleFingerNone
	if doubleTapWindow <= 0 {
		doubleTapWindow = DefaultDoubleTapWindow
	}
	return &TransformOverlay{
		interp:          gesture.NewInterpreter(cfg),
		mode:            mode,
		doubleTapWindow: doubleTapWindow,
	}
}

func (o *TransformOverlay) Mode() *TransformMode {
	return o.mode
}

func (o *TransformOverlay) HandleTouch(ev types.TouchEvent) []types.Intent {
	intents := o.interp.Handle(ev)
	o.Apply(intents)
	return intents
}

// Apply maps intents onto the overlay transform.
func (o *TransformOverlay) Apply(intents []types.Intent) {
	for _, intent := range intents {
		switch intent.Kind {
		case types.IntentDragBy:
			o.mode.Pan(intent.DX, intent.DY)
		case types.IntentScaleBy:
			o.mode.Pinch(intent.Factor)
		case types.IntentRotateBy:
			o.mode.Rotate(intent.Degrees)
		case types.IntentTap:
			o.tap(intent.Timestamp)
		default:
			utils.Verbose("transform overlay ignores %s", intent)
		}
	}
}

func (o *TransformOverlay) tap(ts int64) {
	window := o.doubleTapWindow.Milliseconds()
	if o.hasLastTap && ts-o.lastTapMs >= 0 && ts-o.lastTapMs <= window {
		o.hasLastTap = false
		o.mode.Reset()
		utils.Verbose("double tap, transform reset")
		return
	}
	o.lastTapMs = ts
	o.hasLastTap = true
}

func (o *TransformOverlay) State() interface{} {
	return o.mode.State()
}

func clampScale(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
