package commands

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/mobile-next/ghostcli/overlay"
	"github.com/mobile-next/ghostcli/sessions"
	"github.com/mobile-next/ghostcli/types"
	"github.com/mobile-next/ghostcli/utils"
)

// transformSession finds a session that owns a transform mode.
func transformSession(sessionID string) (*sessions.Session, *Rig, error) {
	session, rig, err := findRig(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if rig.Transform == nil {
		return nil, nil, fmt.Errorf("session %s is not a transform session", sessionID)
	}
	return session, rig, nil
}

// withTransform runs fn under the session lock and reports the resulting state.
func withTransform(session *sessions.Session, rig *Rig, fn func(m *overlay.TransformMode)) overlay.TransformState {
	var state overlay.TransformState
	session.Do(func(overlay.Consumer) {
		fn(rig.Transform)
		state = rig.Transform.State()
	})
	return state
}

// TransformResetCommand restores the identity transform.
func TransformResetCommand(sessionID string) *CommandResponse {
	session, rig, err := transformSession(sessionID)
	if err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(withTransform(session, rig, func(m *overlay.TransformMode) {
		m.Reset()
	}))
}

// TransformZoomRequest is a tool-button zoom. Direction is "in" or "out";
// Scale, when set, is an absolute zoom level instead.
type TransformZoomRequest struct {
	SessionID string   `json:"sessionId"`
	Direction string   `json:"direction,omitempty"`
	Scale     *float64 `json:"scale,omitempty"`
}

// TransformZoomCommand applies a zoom step within the button zoom bounds.
func TransformZoomCommand(req TransformZoomRequest) *CommandResponse {
	var zoom func(m *overlay.TransformMode)

	switch {
	case req.Scale != nil:
		scale := *req.Scale
		if scale <= 0 {
			return NewErrorResponse(fmt.Errorf("scale must be positive, got %v", scale))
		}
		zoom = func(m *overlay.TransformMode) { m.SetZoom(scale) }
	case strings.EqualFold(req.Direction, "in"):
		zoom = func(m *overlay.TransformMode) { m.ZoomIn() }
	case strings.EqualFold(req.Direction, "out"):
		zoom = func(m *overlay.TransformMode) { m.ZoomOut() }
	default:
		return NewErrorResponse(fmt.Errorf("invalid direction '%s'. Use 'in', 'out' or set 'scale'", req.Direction))
	}

	session, rig, err := transformSession(req.SessionID)
	if err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(withTransform(session, rig, zoom))
}

// TransformPreviewRequest renders a captured image under a transform
type TransformPreviewRequest struct {
	SessionID  string             `json:"sessionId,omitempty"`
	ImagePath  string             `json:"imagePath,omitempty"`
	Events     []types.TouchEvent `json:"events,omitempty"`
	Format     string             `json:"format,omitempty"`     // "png" or "jpeg"
	Quality    int                `json:"quality,omitempty"`    // 1-100, only used for JPEG
	OutputPath string             `json:"outputPath,omitempty"` // file path, "-" for base64 data, or empty for default naming
}

// TransformPreviewResponse describes the rendered preview
type TransformPreviewResponse struct {
	Format    string            `json:"format"`
	Transform overlay.Transform `json:"transform"`
	Data      string            `json:"data,omitempty"`
	FilePath  string            `json:"filePath,omitempty"`
}

// TransformPreviewCommand renders the overlay image with its transform. The
// image and transform come from a live session when SessionID is set, or
// from replaying Events over the image at ImagePath.
func TransformPreviewCommand(req TransformPreviewRequest) *CommandResponse {
	if req.Format == "" {
		req.Format = "png"
	}

	req.Format = strings.ToLower(req.Format)
	if req.Format != "png" && req.Format != "jpeg" {
		return NewErrorResponse(fmt.Errorf("invalid format '%s'. Supported formats are 'png' and 'jpeg'", req.Format))
	}

	if req.Format == "jpeg" && (req.Quality < 1 || req.Quality > 100) {
		req.Quality = GetConfig().Server.JpegQuality
	}

	var imageBytes []byte
	var transform overlay.Transform

	if req.SessionID != "" {
		session, rig, err := transformSession(req.SessionID)
		if err != nil {
			return NewErrorResponse(err)
		}
		state := withTransform(session, rig, func(m *overlay.TransformMode) {
			imageBytes = m.Image()
		})
		if !state.Active || len(imageBytes) == 0 {
			return NewErrorResponse(fmt.Errorf("transform mode is not active on session %s", req.SessionID))
		}
		transform = state.Transform
	} else {
		if req.ImagePath == "" {
			return NewErrorResponse(fmt.Errorf("either a session ID or an image path is required"))
		}
		if err := ValidateEvents(req.Events); err != nil {
			return NewErrorResponse(err)
		}

		rig, err := buildRig(string(ConsumerTransform), req.ImagePath)
		if err != nil {
			return NewErrorResponse(err)
		}
		for _, ev := range req.Events {
			rig.HandleTouch(ev)
		}
		imageBytes = rig.Transform.Image()
		transform = rig.Transform.Transform()
	}

	rendered, err := overlay.RenderEncoded(imageBytes, transform, imaging.PNG)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error rendering preview: %w", err))
	}

	if req.Format == "jpeg" {
		converted, err := utils.ConvertPngToJpeg(rendered, req.Quality)
		if err != nil {
			return NewErrorResponse(fmt.Errorf("error converting to JPEG: %w", err))
		}
		rendered = converted
	}

	response := TransformPreviewResponse{
		Format:    req.Format,
		Transform: transform,
	}

	if req.OutputPath == "-" {
		response.Data = base64.StdEncoding.EncodeToString(rendered)
		return NewSuccessResponse(response)
	}

	finalPath := req.OutputPath
	if finalPath == "" {
		extension := ".png"
		if req.Format == "jpeg" {
			extension = ".jpg"
		}
		finalPath = fmt.Sprintf("preview-%s%s", time.Now().Format("20060102150405"), extension)
	}

	finalPath, err = filepath.Abs(finalPath)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("invalid output path: %w", err))
	}

	if err := os.WriteFile(finalPath, rendered, 0644); err != nil {
		return NewErrorResponse(fmt.Errorf("error writing preview to %s: %w", finalPath, err))
	}

	response.FilePath = finalPath
	return NewSuccessResponse(response)
}
