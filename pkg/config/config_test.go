package config

import (
	"testing"

	"github.com/decker502/glowtrail/internal/gradient"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.FadeSeconds != 1.5 {
		t.Errorf("FadeSeconds: got %v, want 1.5", cfg.FadeSeconds)
	}
	if cfg.FadeSlowdown != 2.5 {
		t.Errorf("FadeSlowdown: got %v, want 2.5", cfg.FadeSlowdown)
	}
	if cfg.StrokeThickness != 16 {
		t.Errorf("StrokeThickness: got %v, want 16", cfg.StrokeThickness)
	}
	if cfg.GradientLayers != 6 {
		t.Errorf("GradientLayers: got %v, want 6", cfg.GradientLayers)
	}
	if cfg.NumColors != 3 {
		t.Errorf("NumColors: got %v, want 3", cfg.NumColors)
	}
	if !cfg.ParticlesEnabled || !cfg.CometEnabled {
		t.Error("Expected particles and comets enabled by default")
	}
	if cfg.DrawMode != DrawModeOff {
		t.Errorf("DrawMode: got %v, want off", cfg.DrawMode)
	}
	if cfg.SoundEnabled {
		t.Error("Expected sound disabled by default")
	}
}

func TestNormalizeClampsRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		check  func(*Config) bool
	}{
		{
			name:   "NumColorsInvalid",
			mutate: func(c *Config) { c.NumColors = 5 },
			check:  func(c *Config) bool { return c.NumColors == 3 },
		},
		{
			name:   "NumColorsRainbowKept",
			mutate: func(c *Config) { c.NumColors = 7 },
			check:  func(c *Config) bool { return c.NumColors == 7 },
		},
		{
			name:   "FadeSecondsTooLow",
			mutate: func(c *Config) { c.FadeSeconds = 0 },
			check:  func(c *Config) bool { return c.FadeSeconds == 0.1 },
		},
		{
			name:   "FadeSlowdownTooHigh",
			mutate: func(c *Config) { c.FadeSlowdown = 99 },
			check:  func(c *Config) bool { return c.FadeSlowdown == 3.0 },
		},
		{
			name:   "GradientLayersTooLow",
			mutate: func(c *Config) { c.GradientLayers = 0 },
			check:  func(c *Config) bool { return c.GradientLayers == 2 },
		},
		{
			name:   "GradientLayersTooHigh",
			mutate: func(c *Config) { c.GradientLayers = 100 },
			check:  func(c *Config) bool { return c.GradientLayers == 25 },
		},
		{
			name:   "EmaAlphaNegative",
			mutate: func(c *Config) { c.EmaAlpha = -1 },
			check:  func(c *Config) bool { return c.EmaAlpha == 0 },
		},
		{
			name:   "TensionTooLow",
			mutate: func(c *Config) { c.Tension = 0 },
			check:  func(c *Config) bool { return c.Tension == 0.2 },
		},
		{
			name:   "ExplosionFrequencyTooHigh",
			mutate: func(c *Config) { c.ExplosionFrequency = 1000 },
			check:  func(c *Config) bool { return c.ExplosionFrequency == 60 },
		},
		{
			name:   "ExplosionIntensityTooLow",
			mutate: func(c *Config) { c.ExplosionIntensity = 0 },
			check:  func(c *Config) bool { return c.ExplosionIntensity == 0.1 },
		},
		{
			name:   "DrawModeInvalid",
			mutate: func(c *Config) { c.DrawMode = "scribble" },
			check:  func(c *Config) bool { return c.DrawMode == DrawModeOff },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			cfg.Normalize()
			if !tt.check(cfg) {
				t.Errorf("Normalize did not clamp as expected: %+v", cfg)
			}
		})
	}
}

func TestStopsResolution(t *testing.T) {
	tests := []struct {
		name      string
		numColors int
		wantLen   int
	}{
		{name: "OneStop", numColors: 1, wantLen: 1},
		{name: "TwoStops", numColors: 2, wantLen: 2},
		{name: "ThreeStops", numColors: 3, wantLen: 3},
		{name: "Rainbow", numColors: 7, wantLen: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.NumColors = tt.numColors
			stops := cfg.Stops()
			if len(stops) != tt.wantLen {
				t.Errorf("Expected %d stops, got=%d", tt.wantLen, len(stops))
			}
		})
	}
}

func TestStopsTwoStopSkipsMiddle(t *testing.T) {
	cfg := Default()
	cfg.NumColors = 2
	stops := cfg.Stops()

	if stops[0] != (gradient.RGB{R: 170, G: 0, B: 255}) {
		t.Errorf("Expected start stop, got=%v", stops[0])
	}
	if stops[1] != (gradient.RGB{R: 255, G: 255, B: 0}) {
		t.Errorf("Expected end stop (not middle), got=%v", stops[1])
	}
}

func TestStopsMalformedHexFallsBack(t *testing.T) {
	cfg := Default()
	cfg.ColorStart = "not-a-color"
	stops := cfg.Stops()

	if stops[0] != (gradient.RGB{R: 170, G: 0, B: 255}) {
		t.Errorf("Expected factory start color fallback, got=%v", stops[0])
	}
}

func TestGlowWidth(t *testing.T) {
	cfg := Default()
	cfg.StrokeThickness = 16

	cfg.GlowPercent = 0
	if got := cfg.GlowWidth(); got != 16 {
		t.Errorf("Expected glow width 16 at 0%%, got=%v", got)
	}

	cfg.GlowPercent = 50
	if got := cfg.GlowWidth(); got != 24 {
		t.Errorf("Expected glow width 24 at 50%%, got=%v", got)
	}

	cfg.GlowPercent = 200
	if got := cfg.GlowWidth(); got != 48 {
		t.Errorf("Expected glow width 48 at 200%%, got=%v", got)
	}
}

func TestBurstInterval(t *testing.T) {
	cfg := Default()
	cfg.ExplosionFrequency = 20
	if got := cfg.BurstInterval(); got != 0.05 {
		t.Errorf("Expected 0.05s interval, got=%v", got)
	}

	cfg.ExplosionFrequency = 0 // pre-Normalize input
	if got := cfg.BurstInterval(); got != 1.0 {
		t.Errorf("Expected 1s fallback interval, got=%v", got)
	}
}

func TestModelMatchesSnapshot(t *testing.T) {
	cfg := Default()
	cfg.NumColors = 7
	m := cfg.Model()

	if len(m.Stops) != 7 {
		t.Errorf("Expected 7 model stops, got=%d", len(m.Stops))
	}
	if m.FadeSeconds != cfg.FadeSeconds || m.Slowdown != cfg.FadeSlowdown {
		t.Errorf("Expected model to carry fade params, got=%+v", m)
	}
}
