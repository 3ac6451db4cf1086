// Package config loads ghostcli settings from an INI file.
//
// Every key is optional; a missing file or key keeps the built-in default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mobile-next/ghostcli/gesture"
	"github.com/mobile-next/ghostcli/overlay"
	"github.com/mobile-next/ghostcli/sessions"
	"gopkg.in/ini.v1"
)

const (
	DefaultListenAddress = "localhost:12000"
	DefaultJpegQuality   = 90
)

type GhostConfig struct {
	Opacity float64
}

type TransformConfig struct {
	DoubleTapWindow time.Duration
	ZoomStep        float64
}

type ServerConfig struct {
	Listen      string
	CORS        bool
	MaxSessions int
	JpegQuality int
}

// Config is the effective configuration of the tool.
type Config struct {
	Gesture   gesture.Config
	Ghost     GhostConfig
	Transform TransformConfig
	Server    ServerConfig
}

func Default() Config {
	return Config{
		Gesture: gesture.DefaultConfig(),
		Ghost: GhostConfig{
			Opacity: overlay.DefaultGhostOpacity,
		},
		Transform: TransformConfig{
			DoubleTapWindow: overlay.DefaultDoubleTapWindow,
			ZoomStep:        overlay.DefaultZoomStep,
		},
		Server: ServerConfig{
			Listen:      DefaultListenAddress,
			MaxSessions: sessions.DefaultMaxSessions,
			JpegQuality: DefaultJpegQuality,
		},
	}
}

// DefaultPath returns $HOME/.ghostcli/config.ini.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ghostcli", "config.ini"), nil
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if err := cfg.apply(file); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse reads INI content on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	file, err := ini.Load(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.apply(file); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) apply(file *ini.File) error {
	g := file.Section("gesture")
	c.Gesture.TapThreshold = g.Key("tap_threshold").MustFloat64(c.Gesture.TapThreshold)
	c.Gesture.MovementThreshold = g.Key("movement_threshold").MustFloat64(c.Gesture.MovementThreshold)
	c.Gesture.LongPress = g.Key("long_press").MustDuration(c.Gesture.LongPress)
	c.Gesture.DirectionRatio = g.Key("direction_ratio").MustFloat64(c.Gesture.DirectionRatio)
	c.Gesture.OpacitySensitivity = g.Key("opacity_sensitivity").MustFloat64(c.Gesture.OpacitySensitivity)
	c.Gesture.MinOpacity = g.Key("min_opacity").MustFloat64(c.Gesture.MinOpacity)
	c.Gesture.MaxOpacity = g.Key("max_opacity").MustFloat64(c.Gesture.MaxOpacity)

	if g.HasKey("single_finger") {
		policy, err := gesture.ParseSingleFingerPolicy(g.Key("single_finger").String())
		if err != nil {
			return err
		}
		c.Gesture.SingleFinger = policy
	}

	if err := c.Gesture.Validate(); err != nil {
		return err
	}

	c.Ghost.Opacity = file.Section("ghost").Key("opacity").MustFloat64(c.Ghost.Opacity)
	if c.Ghost.Opacity < overlay.MinGhostOpacity || c.Ghost.Opacity > overlay.MaxGhostOpacity {
		return fmt.Errorf("ghost opacity must be within [%v, %v], got %v", overlay.MinGhostOpacity, overlay.MaxGhostOpacity, c.Ghost.Opacity)
	}

	t := file.Section("transform")
	c.Transform.DoubleTapWindow = t.Key("double_tap_window").MustDuration(c.Transform.DoubleTapWindow)
	c.Transform.ZoomStep = t.Key("zoom_step").MustFloat64(c.Transform.ZoomStep)
	if c.Transform.ZoomStep <= 1 {
		return fmt.Errorf("zoom step must be greater than 1, got %v", c.Transform.ZoomStep)
	}

	s := file.Section("server")
	c.Server.Listen = s.Key("listen").MustString(c.Server.Listen)
	c.Server.CORS = s.Key("cors").MustBool(c.Server.CORS)
	c.Server.MaxSessions = s.Key("max_sessions").MustInt(c.Server.MaxSessions)
	c.Server.JpegQuality = s.Key("jpeg_quality").MustInt(c.Server.JpegQuality)
	if c.Server.JpegQuality < 1 || c.Server.JpegQuality > 100 {
		return fmt.Errorf("jpeg quality must be between 1 and 100, got %d", c.Server.JpegQuality)
	}

	return nil
}

// File renders the configuration as INI.
func (c Config) File() *ini.File {
	file := ini.Empty()

	g := file.Section("gesture")
	setFloat(g, "tap_threshold", c.Gesture.TapThreshold)
	setFloat(g, "movement_threshold", c.Gesture.MovementThreshold)
	g.Key("long_press").SetValue(c.Gesture.LongPress.String())
	setFloat(g, "direction_ratio", c.Gesture.DirectionRatio)
	setFloat(g, "opacity_sensitivity", c.Gesture.OpacitySensitivity)
	setFloat(g, "min_opacity", c.Gesture.MinOpacity)
	setFloat(g, "max_opacity", c.Gesture.MaxOpacity)
	g.Key("single_finger").SetValue(c.Gesture.SingleFinger.String())

	setFloat(file.Section("ghost"), "opacity", c.Ghost.Opacity)

	t := file.Section("transform")
	t.Key("double_tap_window").SetValue(c.Transform.DoubleTapWindow.String())
	setFloat(t, "zoom_step", c.Transform.ZoomStep)

	s := file.Section("server")
	s.Key("listen").SetValue(c.Server.Listen)
	s.Key("cors").SetValue(strconv.FormatBool(c.Server.CORS))
	s.Key("max_sessions").SetValue(strconv.Itoa(c.Server.MaxSessions))
	s.Key("jpeg_quality").SetValue(strconv.Itoa(c.Server.JpegQuality))

	return file
}

// Save writes the configuration to path, creating its directory.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := c.File().SaveTo(path); err != nil {
		return fmt.Errorf("failed to save config %s: %w", path, err)
	}
	return nil
}

func setFloat(section *ini.Section, key string, v float64) {
	section.Key(key).SetValue(strconv.FormatFloat(v, 'g', -1, 64))
}
