package commands

import (
	"fmt"

	"github.com/mobile-next/ghostcli/overlay"
)

// GhostToggleCommand flips ghost mode on a ghost session, as a tap on the
// floating icon would.
func GhostToggleCommand(sessionID string) *CommandResponse {
	session, rig, err := findRig(sessionID)
	if err != nil {
		return NewErrorResponse(err)
	}

	if rig.Ghost == nil {
		return NewErrorResponse(fmt.Errorf("session %s is not a ghost session", sessionID))
	}

	var state overlay.GhostState
	session.Do(func(overlay.Consumer) {
		rig.Ghost.Toggle()
		state = rig.Ghost.State()
	})

	return NewSuccessResponse(state)
}

// GhostOpacityRequest sets the ghost opacity directly
type GhostOpacityRequest struct {
	SessionID string  `json:"sessionId"`
	Opacity   float64 `json:"opacity"`
}

// GhostOpacityCommand stores a new ghost opacity, clamped to its bounds. The
// window only changes while ghost mode is enabled.
func GhostOpacityCommand(req GhostOpacityRequest) *CommandResponse {
	session, rig, err := findRig(req.SessionID)
	if err != nil {
		return NewErrorResponse(err)
	}

	if rig.Ghost == nil {
		return NewErrorResponse(fmt.Errorf("session %s is not a ghost session", req.SessionID))
	}

	var state overlay.GhostState
	session.Do(func(overlay.Consumer) {
		rig.Ghost.SetOpacity(req.Opacity)
		state = rig.Ghost.State()
	})

	return NewSuccessResponse(state)
}
