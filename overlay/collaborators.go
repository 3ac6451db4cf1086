// Package overlay maps gesture intents onto the ghost-mode window, the
// floating icons and the transform overlay image. The platform side is
// reached only through the small collaborator interfaces declared here.
package overlay

import (
	"sync"

	"github.com/mobile-next/ghostcli/types"
)

// Window is the host window that ghost mode dims and makes passthrough.
type Window interface {
	ApplyOpacity(alpha float64)
	SetPassthrough(enabled bool)
}

// IconView is a floating view that can be repositioned.
type IconView interface {
	SetViewPosition(x, y float64)
}

// ImageView displays the captured overlay image.
type ImageView interface {
	SetImageTransform(scale, rotation, tx, ty float64)
}

// Capturer renders the current page into encoded image bytes.
type Capturer interface {
	CaptureViewToImage() ([]byte, error)
}

// CapturerFunc adapts a function to Capturer.
type CapturerFunc func() ([]byte, error)

func (f CapturerFunc) CaptureViewToImage() ([]byte, error) { return f() }

// Dispatcher runs collaborator mutations on the thread that owns the UI.
type Dispatcher interface {
	RunOnUI(fn func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(fn func())

func (f DispatcherFunc) RunOnUI(fn func()) { f(fn) }

// Immediate runs mutations inline on the calling goroutine.
var Immediate Dispatcher = DispatcherFunc(func(fn func()) { fn() })

// Recorder is a headless collaborator that remembers the last value pushed
// through each call. It backs the CLI replay and server sessions.
type Recorder struct {
	mu          sync.Mutex
	opacity     float64
	passthrough bool
	position    types.Point
	transform   Transform
	calls       int
}

// NewRecorder creates a recorder describing an opaque, untransformed view.
func NewRecorder() *Recorder {
	return &Recorder{opacity: 1, transform: Identity()}
}

func (r *Recorder) ApplyOpacity(alpha float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opacity = alpha
	r.calls++
}

func (r *Recorder) SetPassthrough(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passthrough = enabled
	r.calls++
}

func (r *Recorder) SetViewPosition(x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.position = types.Point{X: x, Y: y}
	r.calls++
}

func (r *Recorder) SetImageTransform(scale, rotation, tx, ty float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transform = Transform{Scale: scale, Rotation: rotation, TranslateX: tx, TranslateY: ty}
	r.calls++
}

// RecorderState is what a Recorder has been told so far.
type RecorderState struct {
	Opacity     float64     `json:"opacity"`
	Passthrough bool        `json:"passthrough"`
	Position    types.Point `json:"position"`
	Transform   Transform   `json:"transform"`
	Calls       int         `json:"calls"`
}

func (r *Recorder) State() RecorderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RecorderState{
		Opacity:     r.opacity,
		Passthrough: r.passthrough,
		Position:    r.position,
		Transform:   r.transform,
		Calls:       r.calls,
	}
}
