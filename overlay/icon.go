package overlay

import (
	"github.com/mobile-next/ghostcli/gesture"
	"github.com/mobile-next/ghostcli/types"
	"github.com/mobile-next/ghostcli/utils"
)

// Starting positions of the two floating icons.
var (
	GhostIconOrigin     = types.Point{X: 0, Y: 100}
	TransformIconOrigin = types.Point{X: 0, Y: 200}
)

// FloatingIcon is a draggable icon. A tap runs its action, a drag moves it
// and an opacity swipe is forwarded to OnOpacity.
type FloatingIcon struct {
	interp *gesture.Interpreter
	view   IconView
	ui     Dispatcher

	pos    types.Point
	origin types.Point

	OnTap     func()
	OnOpacity func(alpha float64)
}

// NewFloatingIcon places an icon at pos and drives it with interp.
func NewFloatingIcon(interp *gesture.Interpreter, view IconView, ui Dispatcher, pos types.Point) *FloatingIcon {
	if ui == nil {
		ui = Immediate
	}
	icon := &FloatingIcon{
		interp: interp,
		view:   view,
		ui:     ui,
		pos:    pos,
		origin: pos,
	}
	icon.moveTo(pos)
	return icon
}

// NewGhostIcon wires an icon to ghost mode: tap toggles it, a vertical swipe
// adjusts its opacity and a long press drags the icon.
func NewGhostIcon(cfg gesture.Config, view IconView, ghost *GhostMode, ui Dispatcher) *FloatingIcon {
	cfg.SingleFinger = gesture.SingleFingerModeSelect
	interp := gesture.NewInterpreter(cfg, gesture.WithOpacitySource(ghost))
	icon := NewFloatingIcon(interp, view, ui, GhostIconOrigin)
	icon.OnTap = ghost.Toggle
	icon.OnOpacity = ghost.SetOpacity
	return icon
}

// NewTransformIcon wires an icon to transform mode: tap toggles it and any
// movement past the threshold drags the icon.
func NewTransformIcon(cfg gesture.Config, view IconView, mode *TransformMode, ui Dispatcher) *FloatingIcon {
	cfg.SingleFinger = gesture.SingleFingerDrag
	interp := gesture.NewInterpreter(cfg)
	icon := NewFloatingIcon(interp, view, ui, TransformIconOrigin)
	icon.OnTap = func() { mode.Toggle() }
	return icon
}

func (f *FloatingIcon) HandleTouch(ev types.TouchEvent) []types.Intent {
	if ev.Phase == types.PhaseDown && !f.interp.InSession() {
		f.origin = f.pos
	}
	intents := f.interp.Handle(ev)
	f.Apply(intents)
	return intents
}

// Apply performs the icon side of each intent.
func (f *FloatingIcon) Apply(intents []types.Intent) {
	for _, intent := range intents {
		switch intent.Kind {
		case types.IntentTap:
			if f.OnTap != nil {
				f.OnTap()
			}
		case types.IntentDragBy:
			if intent.FromStart {
				f.moveTo(types.Point{X: f.origin.X + intent.DX, Y: f.origin.Y + intent.DY})
			} else {
				f.moveTo(types.Point{X: f.pos.X + intent.DX, Y: f.pos.Y + intent.DY})
			}
		case types.IntentOpacityDeltaTo:
			if f.OnOpacity != nil {
				f.OnOpacity(intent.Opacity)
			}
		default:
			utils.Verbose("floating icon ignores %s", intent)
		}
	}
}

// Position returns where the icon currently is.
func (f *FloatingIcon) Position() types.Point {
	return f.pos
}

func (f *FloatingIcon) moveTo(p types.Point) {
	// window layout positions are whole pixels
	p = types.Point{X: float64(int(p.X)), Y: float64(int(p.Y))}
	f.pos = p
	if f.view == nil {
		return
	}
	f.ui.RunOnUI(func() {
		f.view.SetViewPosition(p.X, p.Y)
	})
}

// IconState is the reported state of a floating icon.
type IconState struct {
	Position types.Point `json:"position"`
	Mode     string      `json:"mode"`
}

func (f *FloatingIcon) State() interface{} {
	return IconState{Position: f.pos, Mode: f.interp.Mode().String()}
}
