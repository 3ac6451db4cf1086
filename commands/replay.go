package commands

import (
	"fmt"
	"os"

	"github.com/mobile-next/ghostcli/types"
	"github.com/mobile-next/ghostcli/utils"
)

// ReplayRequest describes a recorded touch stream to run through a consumer.
type ReplayRequest struct {
	Events    []types.TouchEvent `json:"events"`
	Consumer  string             `json:"consumer,omitempty"`
	ImagePath string             `json:"imagePath,omitempty"`
}

// ReplayResponse lists every intent produced and the final consumer state.
type ReplayResponse struct {
	Consumer ConsumerKind   `json:"consumer"`
	Events   int            `json:"events"`
	Intents  []types.Intent `json:"intents"`
	State    interface{}    `json:"state"`
}

// ReplayCommand feeds events, in order, to a freshly built consumer.
func ReplayCommand(req ReplayRequest) *CommandResponse {
	rig, err := buildRig(req.Consumer, req.ImagePath)
	if err != nil {
		return NewErrorResponse(err)
	}

	if err := ValidateEvents(req.Events); err != nil {
		return NewErrorResponse(err)
	}

	intents := []types.Intent{}
	for _, ev := range req.Events {
		produced := rig.HandleTouch(ev)
		for _, intent := range produced {
			utils.Verbose("%s %d -> %s", ev.Phase, ev.PointerID, intent)
		}
		intents = append(intents, produced...)
	}

	return NewSuccessResponse(ReplayResponse{
		Consumer: rig.Kind,
		Events:   len(req.Events),
		Intents:  intents,
		State:    rig.State(),
	})
}

// buildRig parses the consumer name and loads the capture image, if any.
func buildRig(consumer, imagePath string) (*Rig, error) {
	kind, err := ParseConsumerKind(consumer)
	if err != nil {
		return nil, err
	}

	var capture []byte
	if imagePath != "" {
		capture, err = os.ReadFile(imagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", imagePath, err)
		}
	}

	return NewRig(kind, GetConfig(), capture)
}
