package overlay

import (
	"math"

	"github.com/mobile-next/ghostcli/utils"
)

const (
	DefaultGhostOpacity = 0.5
	MinGhostOpacity     = 0.1
	MaxGhostOpacity     = 1.0
)

// GhostMode dims the host window and lets touches pass through it.
type GhostMode struct {
	window  Window
	ui      Dispatcher
	enabled bool
	opacity float64
}

// NewGhostMode creates a disabled ghost mode that will dim the window to
// opacity once enabled.
func NewGhostMode(window Window, ui Dispatcher, opacity float64) *GhostMode {
	if ui == nil {
		ui = Immediate
	}
	return &GhostMode{
		window:  window,
		ui:      ui,
		opacity: clampOpacity(opacity),
	}
}

func (g *GhostMode) Enable() {
	if g.enabled {
		return
	}
	g.enabled = true
	alpha := g.opacity
	g.ui.RunOnUI(func() {
		g.window.SetPassthrough(true)
		g.window.ApplyOpacity(alpha)
	})
	utils.Verbose("ghost mode enabled at opacity %.2f", alpha)
}

func (g *GhostMode) Disable() {
	if !g.enabled {
		return
	}
	g.enabled = false
	g.ui.RunOnUI(func() {
		g.window.SetPassthrough(false)
		g.window.ApplyOpacity(MaxGhostOpacity)
	})
	utils.Verbose("ghost mode disabled")
}

func (g *GhostMode) Toggle() {
	if g.enabled {
		g.Disable()
	} else {
		g.Enable()
	}
}

func (g *GhostMode) IsEnabled() bool {
	return g.enabled
}

// Opacity returns the ghost opacity, whether or not ghost mode is on.
func (g *GhostMode) Opacity() float64 {
	return g.opacity
}

// CurrentOpacity lets ghost mode act as the baseline for opacity swipes.
func (g *GhostMode) CurrentOpacity() float64 {
	return g.opacity
}

// SetOpacity stores the ghost opacity and applies it while ghost mode is on.
func (g *GhostMode) SetOpacity(alpha float64) {
	g.opacity = clampOpacity(alpha)
	if !g.enabled {
		return
	}
	applied := g.opacity
	g.ui.RunOnUI(func() {
		g.window.ApplyOpacity(applied)
	})
}

// GhostState is the reported state of ghost mode.
type GhostState struct {
	Enabled bool    `json:"enabled"`
	Opacity float64 `json:"opacity"`
}

func (g *GhostMode) State() GhostState {
	return GhostState{Enabled: g.enabled, Opacity: g.opacity}
}

func clampOpacity(alpha float64) float64 {
	if math.IsNaN(alpha) {
		return DefaultGhostOpacity
	}
	return math.Max(MinGhostOpacity, math.Min(alpha, MaxGhostOpacity))
}
