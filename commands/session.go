package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/mobile-next/ghostcli/sessions"
	"github.com/mobile-next/ghostcli/types"
	"github.com/mobile-next/ghostcli/utils"
)

// SessionCreateRequest represents the parameters for opening a session
type SessionCreateRequest struct {
	Consumer string `json:"consumer,omitempty"`
	Image    string `json:"image,omitempty"` // base64 encoded capture for transform consumers
}

type SessionResponse struct {
	SessionID string       `json:"sessionId"`
	Consumer  ConsumerKind `json:"consumer"`
	State     interface{}  `json:"state"`
}

// SessionCreateCommand opens a session backed by a new consumer.
func SessionCreateCommand(req SessionCreateRequest) *CommandResponse {
	if sessionStore == nil {
		return NewErrorResponse(fmt.Errorf("session store is not initialized"))
	}

	kind, err := ParseConsumerKind(req.Consumer)
	if err != nil {
		return NewErrorResponse(err)
	}

	var capture []byte
	if req.Image != "" {
		capture, err = base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			return NewErrorResponse(fmt.Errorf("invalid image: %w", err))
		}
	}

	rig, err := NewRig(kind, GetConfig(), capture)
	if err != nil {
		return NewErrorResponse(err)
	}

	session := sessions.NewSession(string(kind), rig)
	sessionStore.Add(session)
	utils.Verbose("session %s opened with %s consumer", session.ID, kind)

	return NewSuccessResponse(SessionResponse{
		SessionID: session.ID,
		Consumer:  kind,
		State:     rig.State(),
	})
}

// SessionTouchRequest carries events for an open session
type SessionTouchRequest struct {
	SessionID string             `json:"sessionId"`
	Events    []types.TouchEvent `json:"events"`
}

type SessionTouchResponse struct {
	Intents []types.Intent `json:"intents"`
	State   interface{}    `json:"state"`
}

// SessionTouchCommand delivers events to a session in order.
func SessionTouchCommand(req SessionTouchRequest) *CommandResponse {
	session, err := findSession(req.SessionID)
	if err != nil {
		return NewErrorResponse(err)
	}

	if len(req.Events) == 0 {
		return NewErrorResponse(fmt.Errorf("'events' must contain at least one event"))
	}

	if err := ValidateEvents(req.Events); err != nil {
		return NewErrorResponse(err)
	}

	intents := session.Touch(req.Events)

	return NewSuccessResponse(SessionTouchResponse{
		Intents: intents,
		State:   session.Info().State,
	})
}

// SessionCloseCommand drops a session.
func SessionCloseCommand(sessionID string) *CommandResponse {
	if _, err := findSession(sessionID); err != nil {
		return NewErrorResponse(err)
	}

	sessionStore.Close(sessionID)
	utils.Verbose("session %s closed", sessionID)

	return NewSuccessResponse(map[string]interface{}{
		"sessionId": sessionID,
		"closed":    true,
	})
}

// SessionsListCommand lists every live session.
func SessionsListCommand() *CommandResponse {
	if sessionStore == nil {
		return NewErrorResponse(fmt.Errorf("session store is not initialized"))
	}

	return NewSuccessResponse(sessionStore.List())
}
