package cli

import "time"

var (
	verbose    bool
	configPath string

	// for replay and transform preview
	eventsFile   string
	consumerName string
	imagePath    string

	// for transform preview
	previewOutputPath  string
	previewFormat      string
	previewJpegQuality int

	// for script commands
	scriptSteps    int
	scriptHold     time.Duration
	scriptDuration time.Duration
	pinchFrom      float64
	pinchTo        float64
	pinchRotate    float64
)
