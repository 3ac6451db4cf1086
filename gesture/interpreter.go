// Package gesture turns raw multi-touch samples into interpreted intents:
// taps, drags, pinch-scale, two-finger rotation and opacity swipes.
//
// An Interpreter is a synchronous state machine. It performs no I/O, never
// blocks and must be driven by one caller at a time.
package gesture

import (
	"math"
	"time"

	"github.com/mobile-next/ghostcli/types"
)

// OpacitySource supplies the opacity an opacity swipe starts from.
type OpacitySource interface {
	CurrentOpacity() float64
}

// OpacityFunc adapts a function to OpacitySource.
type OpacityFunc func() float64

func (f OpacityFunc) CurrentOpacity() float64 { return f() }

// Interpreter holds at most one live Session.
type Interpreter struct {
	cfg     Config
	opacity OpacitySource
	now     func() time.Time
	session *Session
}

type Option func(*Interpreter)

// WithOpacitySource sets where the opacity baseline is read from when a
// session locks into opacity adjustment.
func WithOpacitySource(src OpacitySource) Option {
	return func(in *Interpreter) {
		in.opacity = src
	}
}

// WithClock overrides the clock used when events carry no timestamp.
// Unstamped Moves are timed against the wall-clock instant of the first Down.
func WithClock(now func() time.Time) Option {
	return func(in *Interpreter) {
		in.now = now
	}
}

// NewInterpreter creates an idle interpreter.
func NewInterpreter(cfg Config, opts ...Option) *Interpreter {
	in := &Interpreter{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Config returns the thresholds in use.
func (in *Interpreter) Config() Config {
	return in.cfg
}

// Handle consumes one event and returns the intents it produced, in order.
// Out-of-order input (a Move or Up for an unknown pointer, a duplicate Down)
// is ignored.
func (in *Interpreter) Handle(ev types.TouchEvent) []types.Intent {
	switch ev.Phase {
	case types.PhaseDown:
		return in.handleDown(ev)
	case types.PhaseMove:
		return in.handleMove(ev)
	case types.PhaseUp:
		return in.handleUp(ev.PointerID)
	case types.PhaseCancel:
		in.session = nil
	}
	return nil
}

// HandleAll feeds a sequence of events and concatenates the intents.
func (in *Interpreter) HandleAll(events []types.TouchEvent) []types.Intent {
	var intents []types.Intent
	for _, ev := range events {
		intents = append(intents, in.Handle(ev)...)
	}
	return intents
}

// InSession reports whether a touch sequence is in progress.
func (in *Interpreter) InSession() bool {
	return in.session != nil
}

// Active returns the number of tracked pointers.
func (in *Interpreter) Active() int {
	if in.session == nil {
		return 0
	}
	return len(in.session.pointers)
}

// Mode returns the current session's mode, or ModeUndetermined when idle.
func (in *Interpreter) Mode() Mode {
	if in.session == nil {
		return ModeUndetermined
	}
	return in.session.mode
}

// State returns a snapshot of the live session, if any.
func (in *Interpreter) State() (SessionState, bool) {
	if in.session == nil {
		return SessionState{}, false
	}
	return in.session.state(), true
}

// Reset drops any live session without emitting intents.
func (in *Interpreter) Reset() {
	in.session = nil
}

func (in *Interpreter) handleDown(ev types.TouchEvent) []types.Intent {
	pos := types.Point{X: ev.X, Y: ev.Y}

	s := in.session
	if s == nil {
		wall := in.nowMs()
		ts := ev.Timestamp
		if ts == 0 {
			ts = wall
		}
		in.session = newSession(ev.PointerID, pos, ts, wall, ev.Timestamp != 0)
		return nil
	}

	if s.index(ev.PointerID) >= 0 || len(s.pointers) >= maxPointers {
		return nil
	}

	s.pointers = append(s.pointers, pointer{id: ev.PointerID, pos: pos})
	s.beginTwoFinger()
	return nil
}

func (in *Interpreter) handleMove(ev types.TouchEvent) []types.Intent {
	s := in.session
	if s == nil {
		return nil
	}

	idx := s.index(ev.PointerID)
	if idx < 0 {
		return nil
	}

	pos := types.Point{X: ev.X, Y: ev.Y}
	s.pointers[idx].pos = pos
	if ev.PointerID == s.primaryID {
		s.lastPrimary = pos
	}

	if s.twoFinger {
		return s.trackTwoFinger()
	}

	// a pointer left over from two-finger tracking never resumes a
	// single-finger drag
	if s.detached || ev.PointerID != s.primaryID {
		return nil
	}

	if s.mode == ModeUndetermined {
		elapsed := time.Duration(s.elapsedMs(ev.Timestamp, in.nowMs())) * time.Millisecond
		if m := in.selectMode(s, pos, elapsed); m != ModeUndetermined {
			if m == ModeAdjustingOpacity {
				s.opacityBaseline = in.currentOpacity()
			}
			s.lock(m)
		}
	}

	return in.singleFingerIntent(s, pos)
}

func (in *Interpreter) handleUp(id int) []types.Intent {
	s := in.session
	if s == nil {
		return nil
	}

	idx := s.index(id)
	if idx < 0 {
		return nil
	}

	s.remove(idx)
	if s.twoFinger && len(s.pointers) < maxPointers {
		s.twoFinger = false
		s.detached = true
	}
	if len(s.pointers) > 0 {
		return nil
	}

	in.session = nil

	if s.mode != ModeUndetermined {
		return nil
	}
	dx, dy := s.displacement()
	if math.Abs(dx) < in.cfg.TapThreshold && math.Abs(dy) < in.cfg.TapThreshold {
		return []types.Intent{types.Tap(s.startMs)}
	}
	return nil
}

func (in *Interpreter) currentOpacity() float64 {
	if in.opacity == nil {
		return in.cfg.MaxOpacity
	}
	return in.opacity.CurrentOpacity()
}

func (in *Interpreter) nowMs() int64 {
	return in.now().UnixMilli()
}
