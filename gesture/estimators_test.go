package gesture

import (
	"math"
	"testing"

	"github.com/mobile-next/ghostcli/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{190, -170},
		{-190, 170},
		{358.85, -1.15},
		{-358.85, 1.15},
		{720, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, normalizeDegrees(tt.in), 1e-9, "normalizeDegrees(%v)", tt.in)
	}
}

func TestScaleEstimator_IgnoresCoincidentPointers(t *testing.T) {
	var e scaleEstimator
	p := types.Point{X: 10, Y: 10}
	e.reset(p, p)

	_, ok := e.update(p, types.Point{X: 20, Y: 10})
	assert.False(t, ok, "no ratio from a zero baseline")

	ratio, ok := e.update(p, types.Point{X: 30, Y: 10})
	assert.True(t, ok)
	assert.InDelta(t, 2.0, ratio, 1e-9)
}

func TestRotationEstimator_ReportsRelativeDelta(t *testing.T) {
	var e rotationEstimator
	origin := types.Point{}
	e.reset(origin, types.Point{X: 100, Y: 0})

	delta, ok := e.update(origin, types.Point{X: 0, Y: 100})
	assert.True(t, ok)
	assert.InDelta(t, 90, delta, 1e-9)

	delta, ok = e.update(origin, types.Point{X: -100, Y: 0})
	assert.True(t, ok)
	assert.InDelta(t, 90, delta, 1e-9)

	_, ok = e.update(origin, types.Point{X: -100, Y: 0})
	assert.False(t, ok)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.DirectionRatio = 0.5
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MinOpacity = 0.9
	cfg.MaxOpacity = 0.2
	assert.Error(t, cfg.Validate())
}

func TestConfig_ValidateRejectsNegativeAndNaN(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative sensitivity", func(c *Config) { c.OpacitySensitivity = -1 }},
		{"NaN sensitivity", func(c *Config) { c.OpacitySensitivity = nan }},
		{"infinite sensitivity", func(c *Config) { c.OpacitySensitivity = math.Inf(1) }},
		{"NaN tap threshold", func(c *Config) { c.TapThreshold = nan }},
		{"NaN movement threshold", func(c *Config) { c.MovementThreshold = nan }},
		{"NaN direction ratio", func(c *Config) { c.DirectionRatio = nan }},
		{"NaN min opacity", func(c *Config) { c.MinOpacity = nan }},
		{"NaN max opacity", func(c *Config) { c.MaxOpacity = nan }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.OpacitySensitivity = 0
	assert.NoError(t, cfg.Validate())
}

func TestParseSingleFingerPolicy(t *testing.T) {
	p, err := ParseSingleFingerPolicy("drag")
	assert.NoError(t, err)
	assert.Equal(t, SingleFingerDrag, p)
	assert.Equal(t, "drag", p.String())

	_, err = ParseSingleFingerPolicy("swipe")
	assert.Error(t, err)
}
