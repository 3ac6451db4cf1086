package commands

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/mobile-next/ghostcli/config"
	"github.com/mobile-next/ghostcli/gesture"
	"github.com/mobile-next/ghostcli/overlay"
	"github.com/mobile-next/ghostcli/types"
)

// ConsumerKind names what a touch stream is fed into.
type ConsumerKind string

const (
	ConsumerPlain         ConsumerKind = "plain"
	ConsumerGhost         ConsumerKind = "ghost"
	ConsumerTransform     ConsumerKind = "transform"
	ConsumerTransformIcon ConsumerKind = "transform-icon"
)

const placeholderSize = 64

// ParseConsumerKind validates a consumer name; empty means plain.
func ParseConsumerKind(s string) (ConsumerKind, error) {
	switch ConsumerKind(strings.ToLower(s)) {
	case "", ConsumerPlain:
		return ConsumerPlain, nil
	case ConsumerGhost:
		return ConsumerGhost, nil
	case ConsumerTransform:
		return ConsumerTransform, nil
	case ConsumerTransformIcon:
		return ConsumerTransformIcon, nil
	default:
		return "", fmt.Errorf("invalid consumer '%s'. Supported consumers are 'plain', 'ghost', 'transform' and 'transform-icon'", s)
	}
}

// Rig is a consumer together with the headless collaborators it drives.
type Rig struct {
	Kind      ConsumerKind
	Ghost     *overlay.GhostMode
	Transform *overlay.TransformMode
	Window    *overlay.Recorder
	View      *overlay.Recorder

	consumer overlay.Consumer
}

// NewRig builds a consumer of the given kind. capture is what the transform
// capturer returns; a blank image is used when it is empty.
func NewRig(kind ConsumerKind, cfg config.Config, capture []byte) (*Rig, error) {
	rig := &Rig{Kind: kind}

	switch kind {
	case ConsumerPlain:
		rig.consumer = overlay.NewPassthrough(gesture.NewInterpreter(cfg.Gesture))

	case ConsumerGhost:
		rig.Window = overlay.NewRecorder()
		rig.View = overlay.NewRecorder()
		rig.Ghost = overlay.NewGhostMode(rig.Window, overlay.Immediate, cfg.Ghost.Opacity)
		rig.consumer = overlay.NewGhostIcon(cfg.Gesture, rig.View, rig.Ghost, overlay.Immediate)

	case ConsumerTransform, ConsumerTransformIcon:
		capturer, err := newStaticCapturer(capture)
		if err != nil {
			return nil, err
		}
		rig.View = overlay.NewRecorder()
		rig.Transform = overlay.NewTransformMode(capturer, rig.View, overlay.Immediate)
		rig.Transform.SetZoomStep(cfg.Transform.ZoomStep)

		if kind == ConsumerTransform {
			if !rig.Transform.Enable() {
				return nil, fmt.Errorf("failed to enable transform mode")
			}
			rig.consumer = overlay.NewTransformOverlay(cfg.Gesture, rig.Transform, cfg.Transform.DoubleTapWindow)
		} else {
			rig.Window = overlay.NewRecorder()
			rig.consumer = overlay.NewTransformIcon(cfg.Gesture, rig.Window, rig.Transform, overlay.Immediate)
		}

	default:
		return nil, fmt.Errorf("unsupported consumer '%s'", kind)
	}

	return rig, nil
}

func (r *Rig) HandleTouch(ev types.TouchEvent) []types.Intent {
	return r.consumer.HandleTouch(ev)
}

// RigState is the combined state of a consumer and its collaborators.
type RigState struct {
	Kind      ConsumerKind            `json:"kind"`
	Consumer  interface{}             `json:"consumer"`
	Ghost     *overlay.GhostState     `json:"ghost,omitempty"`
	Transform *overlay.TransformState `json:"transform,omitempty"`
	Window    *overlay.RecorderState  `json:"window,omitempty"`
	View      *overlay.RecorderState  `json:"view,omitempty"`
}

func (r *Rig) State() interface{} {
	state := RigState{Kind: r.Kind, Consumer: r.consumer.State()}
	if r.Ghost != nil {
		s := r.Ghost.State()
		state.Ghost = &s
	}
	if r.Transform != nil {
		s := r.Transform.State()
		state.Transform = &s
	}
	if r.Window != nil {
		s := r.Window.State()
		state.Window = &s
	}
	if r.View != nil {
		s := r.View.State()
		state.View = &s
	}
	return state
}

func newStaticCapturer(capture []byte) (overlay.Capturer, error) {
	if len(capture) == 0 {
		placeholder, err := placeholderImage()
		if err != nil {
			return nil, err
		}
		capture = placeholder
	} else if _, err := imaging.Decode(bytes.NewReader(capture)); err != nil {
		return nil, fmt.Errorf("capture is not a supported image: %w", err)
	}
	return overlay.CapturerFunc(func() ([]byte, error) {
		return capture, nil
	}), nil
}

func placeholderImage() ([]byte, error) {
	img := imaging.New(placeholderSize, placeholderSize, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder image: %w", err)
	}
	return buf.Bytes(), nil
}
