package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mobile-next/ghostcli/types"
)

// EventScript is the on-disk form of a recorded touch stream. A bare JSON
// array of events is accepted as well.
type EventScript struct {
	Events []types.TouchEvent `json:"events"`
}

// ParseEvents decodes and validates an event script.
func ParseEvents(data []byte) ([]types.TouchEvent, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("event script is empty")
	}

	var events []types.TouchEvent
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, fmt.Errorf("invalid event script: %w", err)
		}
	} else {
		var script EventScript
		if err := json.Unmarshal(trimmed, &script); err != nil {
			return nil, fmt.Errorf("invalid event script: %w", err)
		}
		events = script.Events
	}

	if err := ValidateEvents(events); err != nil {
		return nil, err
	}

	return events, nil
}

// LoadEvents reads an event script from path, or from stdin when path is "-".
func LoadEvents(path string) ([]types.TouchEvent, error) {
	if path == "" {
		return nil, fmt.Errorf("event file is required")
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read events from %s: %w", path, err)
	}

	return ParseEvents(data)
}

// ValidateEvents reports the first event with an unknown phase.
func ValidateEvents(events []types.TouchEvent) error {
	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}
