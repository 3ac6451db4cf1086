package server

import (
	"encoding/json"
	"fmt"

	"github.com/mobile-next/ghostcli/commands"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// shutdownRequests is signalled by the server.shutdown method.
var shutdownRequests = make(chan struct{}, 1)

// GetMethodRegistry returns a map of method names to handler functions
// This is used by both the HTTP and the websocket transports
func GetMethodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"session_create":    handleSessionCreate,
		"session_touch":     handleSessionTouch,
		"session_close":     handleSessionClose,
		"sessions_list":     handleSessionsList,
		"transform_reset":   handleTransformReset,
		"transform_zoom":    handleTransformZoom,
		"transform_preview": handleTransformPreview,
		"ghost_toggle":      handleGhostToggle,
		"ghost_opacity":     handleGhostOpacity,
		"server.shutdown":   handleShutdown,
	}
}

// Execute dispatches a method call using the registry
func Execute(method string, params json.RawMessage) (interface{}, error) {
	registry := GetMethodRegistry()

	handler, exists := registry[method]
	if !exists {
		return nil, &rpcError{code: ErrCodeMethodNotFound, message: "Method not found", data: fmt.Sprintf("Method '%s' not found", method)}
	}

	return handler(params)
}

// decodeParams unmarshals params into v, reporting the fields a caller should send.
func decodeParams(params json.RawMessage, v interface{}, fields string) error {
	if len(params) == 0 {
		return invalidParams("'params' is required with fields: %s", fields)
	}
	if err := json.Unmarshal(params, v); err != nil {
		return invalidParams("invalid parameters: %v. Expected fields: %s", err, fields)
	}
	return nil
}

// result unwraps a command response into a JSON-RPC result.
func result(response *commands.CommandResponse) (interface{}, error) {
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

type SessionParams struct {
	SessionID string `json:"sessionId"`
}

func handleSessionCreate(params json.RawMessage) (interface{}, error) {
	var req commands.SessionCreateRequest
	if len(params) > 0 {
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, invalidParams("invalid parameters: %v. Expected fields: consumer, image", err)
		}
	}
	return result(commands.SessionCreateCommand(req))
}

func handleSessionTouch(params json.RawMessage) (interface{}, error) {
	var req commands.SessionTouchRequest
	if err := decodeParams(params, &req, "sessionId, events"); err != nil {
		return nil, err
	}
	return result(commands.SessionTouchCommand(req))
}

func handleSessionClose(params json.RawMessage) (interface{}, error) {
	var req SessionParams
	if err := decodeParams(params, &req, "sessionId"); err != nil {
		return nil, err
	}
	return result(commands.SessionCloseCommand(req.SessionID))
}

func handleSessionsList(params json.RawMessage) (interface{}, error) {
	return result(commands.SessionsListCommand())
}

func handleTransformReset(params json.RawMessage) (interface{}, error) {
	var req SessionParams
	if err := decodeParams(params, &req, "sessionId"); err != nil {
		return nil, err
	}
	return result(commands.TransformResetCommand(req.SessionID))
}

func handleTransformZoom(params json.RawMessage) (interface{}, error) {
	var req commands.TransformZoomRequest
	if err := decodeParams(params, &req, "sessionId, direction or scale"); err != nil {
		return nil, err
	}
	return result(commands.TransformZoomCommand(req))
}

type TransformPreviewParams struct {
	SessionID string `json:"sessionId"`
	Format    string `json:"format,omitempty"`  // "png" or "jpeg"
	Quality   int    `json:"quality,omitempty"` // 1-100, only used for JPEG
}

func handleTransformPreview(params json.RawMessage) (interface{}, error) {
	var previewParams TransformPreviewParams
	if err := decodeParams(params, &previewParams, "sessionId, format, quality"); err != nil {
		return nil, err
	}

	if previewParams.SessionID == "" {
		return nil, invalidParams("'sessionId' is required")
	}

	response := commands.TransformPreviewCommand(commands.TransformPreviewRequest{
		SessionID:  previewParams.SessionID,
		Format:     previewParams.Format,
		Quality:    previewParams.Quality,
		OutputPath: "-", // always return base64 data for server
	})
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}

	preview, ok := response.Data.(commands.TransformPreviewResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response format")
	}

	return map[string]interface{}{
		"format":    preview.Format,
		"transform": preview.Transform,
		"data":      fmt.Sprintf("data:image/%s;base64,%s", preview.Format, preview.Data),
	}, nil
}

func handleGhostToggle(params json.RawMessage) (interface{}, error) {
	var req SessionParams
	if err := decodeParams(params, &req, "sessionId"); err != nil {
		return nil, err
	}
	return result(commands.GhostToggleCommand(req.SessionID))
}

func handleGhostOpacity(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, invalidParams("'params' is required with fields: sessionId, opacity")
	}

	// 'opacity' must be present; zero is a valid value
	var rawParams map[string]interface{}
	if err := json.Unmarshal(params, &rawParams); err != nil {
		return nil, invalidParams("invalid parameters format")
	}
	if _, exists := rawParams["opacity"]; !exists {
		return nil, invalidParams("'opacity' is required")
	}

	var req commands.GhostOpacityRequest
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, invalidParams("invalid parameters: %v. Expected fields: sessionId, opacity", err)
	}
	return result(commands.GhostOpacityCommand(req))
}

func handleShutdown(params json.RawMessage) (interface{}, error) {
	select {
	case shutdownRequests <- struct{}{}:
	default:
		// a shutdown is already pending
	}
	return okResponse, nil
}
