package overlay

import (
	"github.com/mobile-next/ghostcli/gesture"
	"github.com/mobile-next/ghostcli/types"
)

// Consumer owns an interpreter and reacts to the intents it produces.
type Consumer interface {
	HandleTouch(ev types.TouchEvent) []types.Intent
	State() interface{}
}

// Passthrough runs the interpreter and reports intents without acting on them.
type Passthrough struct {
	interp *gesture.Interpreter
	count  int
}

func NewPassthrough(interp *gesture.Interpreter) *Passthrough {
	return &Passthrough{interp: interp}
}

func (p *Passthrough) HandleTouch(ev types.TouchEvent) []types.Intent {
	intents := p.interp.Handle(ev)
	p.count += len(intents)
	return intents
}

// PassthroughState reports the interpreter session and how many intents
// have been produced.
type PassthroughState struct {
	Intents int                   `json:"intents"`
	Session *gesture.SessionState `json:"session,omitempty"`
}

func (p *Passthrough) State() interface{} {
	state := PassthroughState{Intents: p.count}
	if s, ok := p.interp.State(); ok {
		state.Session = &s
	}
	return state
}
