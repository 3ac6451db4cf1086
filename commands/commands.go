package commands

import (
	"fmt"

	"github.com/mobile-next/ghostcli/config"
	"github.com/mobile-next/ghostcli/overlay"
	"github.com/mobile-next/ghostcli/sessions"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

var currentConfig = config.Default()

// sessionStore holds the live sessions. It is set once at startup via
// SetStore and cleared on graceful shutdown.
var sessionStore *sessions.Store

// SetConfig replaces the configuration used by every command.
func SetConfig(cfg config.Config) {
	currentConfig = cfg
}

func GetConfig() config.Config {
	return currentConfig
}

// SetStore sets the session store used by the session commands.
func SetStore(store *sessions.Store) {
	sessionStore = store
}

// GetStore returns the current session store, or nil if SetStore has not
// been called yet.
func GetStore() *sessions.Store {
	return sessionStore
}

// findSession looks up a session by id in the current store
func findSession(sessionID string) (*sessions.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	if sessionStore == nil {
		return nil, fmt.Errorf("session store is not initialized")
	}

	return sessionStore.Get(sessionID)
}

// findRig looks up a session and returns the rig behind it.
func findRig(sessionID string) (*sessions.Session, *Rig, error) {
	session, err := findSession(sessionID)
	if err != nil {
		return nil, nil, err
	}

	var rig *Rig
	session.Do(func(c overlay.Consumer) {
		rig, _ = c.(*Rig)
	})
	if rig == nil {
		return nil, nil, fmt.Errorf("session %s has no overlay controls", sessionID)
	}

	return session, rig, nil
}
