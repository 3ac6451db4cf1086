package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mobile-next/ghostcli/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	content := `[gesture]
tap_threshold = 12
long_press = 750ms
single_finger = drag

[ghost]
opacity = 0.3

[transform]
double_tap_window = 250ms
zoom_step = 1.5

[server]
listen = 0.0.0.0:13000
cors = true
max_sessions = 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12.0, cfg.Gesture.TapThreshold)
	assert.Equal(t, 750*time.Millisecond, cfg.Gesture.LongPress)
	assert.Equal(t, gesture.SingleFingerDrag, cfg.Gesture.SingleFinger)
	assert.Equal(t, gesture.DefaultMovementThreshold, cfg.Gesture.MovementThreshold)
	assert.Equal(t, 0.3, cfg.Ghost.Opacity)
	assert.Equal(t, 250*time.Millisecond, cfg.Transform.DoubleTapWindow)
	assert.Equal(t, 1.5, cfg.Transform.ZoomStep)
	assert.Equal(t, "0.0.0.0:13000", cfg.Server.Listen)
	assert.True(t, cfg.Server.CORS)
	assert.Equal(t, 8, cfg.Server.MaxSessions)
	assert.Equal(t, DefaultJpegQuality, cfg.Server.JpegQuality)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown policy", "[gesture]\nsingle_finger = wiggle\n"},
		{"direction ratio below one", "[gesture]\ndirection_ratio = 0.5\n"},
		{"negative opacity sensitivity", "[gesture]\nopacity_sensitivity = -1\n"},
		{"NaN movement threshold", "[gesture]\nmovement_threshold = NaN\n"},
		{"ghost opacity out of range", "[ghost]\nopacity = 0.01\n"},
		{"zoom step not growing", "[transform]\nzoom_step = 1\n"},
		{"jpeg quality too high", "[server]\njpeg_quality = 101\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParse_MalformedValueKeepsDefault(t *testing.T) {
	cfg, err := Parse([]byte("[gesture]\ntap_threshold = lots\n"))
	require.NoError(t, err)
	assert.Equal(t, gesture.DefaultTapThreshold, cfg.Gesture.TapThreshold)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.ini")

	cfg := Default()
	cfg.Gesture.LongPress = 600 * time.Millisecond
	cfg.Ghost.Opacity = 0.7
	cfg.Server.CORS = true

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
