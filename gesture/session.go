package gesture

import (
	"fmt"

	"github.com/mobile-next/ghostcli/types"
)

// Mode is the interaction a session has committed to.
type Mode int

const (
	ModeUndetermined Mode = iota
	ModeDragging
	ModeAdjustingOpacity
	ModeTwoFingerTransform
)

func (m Mode) String() string {
	switch m {
	case ModeUndetermined:
		return "undetermined"
	case ModeDragging:
		return "dragging"
	case ModeAdjustingOpacity:
		return "adjusting-opacity"
	case ModeTwoFingerTransform:
		return "two-finger-transform"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// maxPointers is the number of simultaneously tracked contacts; further
// pointers are inert.
const maxPointers = 2

type pointer struct {
	id  int
	pos types.Point
}

// Session is the live state of one continuous touch sequence, from the
// first Down to the Up or Cancel that releases the last tracked pointer.
type Session struct {
	pointers []pointer

	primaryID   int
	start       types.Point
	startMs     int64
	startWallMs int64
	stamped     bool
	lastPrimary types.Point

	mode            Mode
	opacityBaseline float64

	twoFinger bool
	centroid  types.Point
	scale     scaleEstimator
	rotation  rotationEstimator

	// set when two-finger tracking drops back to one pointer; the remaining
	// pointer stays silent until a second contact lands again
	detached bool

	// accumulated over the whole session
	scaleFactor float64
	rotationDeg float64
}

func newSession(id int, pos types.Point, startMs, wallMs int64, stamped bool) *Session {
	return &Session{
		pointers:    []pointer{{id: id, pos: pos}},
		primaryID:   id,
		start:       pos,
		startMs:     startMs,
		startWallMs: wallMs,
		stamped:     stamped,
		lastPrimary: pos,
		mode:        ModeUndetermined,
		scaleFactor: 1,
	}
}

func (s *Session) index(id int) int {
	for i, p := range s.pointers {
		if p.id == id {
			return i
		}
	}
	return -1
}

func (s *Session) remove(idx int) {
	s.pointers = append(s.pointers[:idx], s.pointers[idx+1:]...)
}

// lock commits the session to a mode. Once determined the mode never changes.
func (s *Session) lock(m Mode) {
	if s.mode == ModeUndetermined {
		s.mode = m
	}
}

// elapsedMs is the time since the first Down. Event timestamps are only
// compared with each other; an unstamped event is measured on the wall clock.
func (s *Session) elapsedMs(eventMs, wallMs int64) int64 {
	if s.stamped && eventMs != 0 {
		return eventMs - s.startMs
	}
	return wallMs - s.startWallMs
}

// displacement is the primary pointer's travel from the session start.
func (s *Session) displacement() (float64, float64) {
	return s.lastPrimary.X - s.start.X, s.lastPrimary.Y - s.start.Y
}

// beginTwoFinger (re-)engages two-finger tracking and resets every baseline
// so the first sample after the second contact lands produces no jump.
func (s *Session) beginTwoFinger() {
	a, b := s.pointers[0].pos, s.pointers[1].pos
	s.twoFinger = true
	s.detached = false
	s.centroid = midpoint(a, b)
	s.scale.reset(a, b)
	s.rotation.reset(a, b)
	s.lock(ModeTwoFingerTransform)
}

func (s *Session) trackTwoFinger() []types.Intent {
	a, b := s.pointers[0].pos, s.pointers[1].pos
	var intents []types.Intent

	c := midpoint(a, b)
	dx, dy := c.X-s.centroid.X, c.Y-s.centroid.Y
	s.centroid = c
	if dx != 0 || dy != 0 {
		intents = append(intents, types.DragBy(dx, dy))
	}

	if ratio, ok := s.scale.update(a, b); ok {
		s.scaleFactor *= ratio
		intents = append(intents, types.ScaleBy(ratio))
	}

	if delta, ok := s.rotation.update(a, b); ok {
		s.rotationDeg += delta
		intents = append(intents, types.RotateBy(delta))
	}

	return intents
}

// SessionState is a read-only snapshot of a session.
type SessionState struct {
	Active          int         `json:"active"`
	Mode            string      `json:"mode"`
	Start           types.Point `json:"start"`
	StartMs         int64       `json:"startMs"`
	TwoFinger       bool        `json:"twoFinger"`
	Scale           float64     `json:"scale"`
	Rotation        float64     `json:"rotation"`
	OpacityBaseline float64     `json:"opacityBaseline,omitempty"`
}

func (s *Session) state() SessionState {
	return SessionState{
		Active:          len(s.pointers),
		Mode:            s.mode.String(),
		Start:           s.start,
		StartMs:         s.startMs,
		TwoFinger:       s.twoFinger,
		Scale:           s.scaleFactor,
		Rotation:        s.rotationDeg,
		OpacityBaseline: s.opacityBaseline,
	}
}

func midpoint(a, b types.Point) types.Point {
	return types.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
