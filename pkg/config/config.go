// Package config defines the engine tunables and the atomic snapshot store
// that publishes them to the running components.
package config

import (
	"github.com/decker502/glowtrail/internal/gradient"
)

// Window dimensions (逻辑分辨率)
const (
	WindowWidth  = 1280
	WindowHeight = 800
)

// DrawMode selects between freehand trailing and shape stamping.
type DrawMode string

const (
	DrawModeOff    DrawMode = "off"
	DrawModeRect   DrawMode = "rect"
	DrawModeCircle DrawMode = "circle"
	DrawModeArrow  DrawMode = "arrow"
)

// Config 引擎全部可调参数的一次快照
// A snapshot is immutable once published; components read it for a whole
// tick and never observe partial updates.
type Config struct {
	// Gradient stops (渐变色)
	ColorStart string `yaml:"colorStart"` // hex, first stop
	ColorMid   string `yaml:"colorMid"`   // hex, middle stop (3-stop mode)
	ColorEnd   string `yaml:"colorEnd"`   // hex, last stop
	NumColors  int    `yaml:"numColors"`  // 1, 2, 3, or 7 (rainbow scheme)

	// Fade curve
	FadeSeconds  float64 `yaml:"fadeSeconds"`  // seconds until fully transparent
	FadeSlowdown float64 `yaml:"fadeSlowdown"` // 1.0 linear .. 3.0 late drop

	// Stroke geometry
	StrokeThickness float64 `yaml:"strokeThickness"` // core width in px
	GlowPercent     float64 `yaml:"glowPercent"`     // extra glow width as % of core
	GradientLayers  int     `yaml:"gradientLayers"`  // concentric glow pass count

	// Sampling
	EmaAlpha  float64 `yaml:"emaAlpha"`  // smoothing factor, 1.0 follows raw input
	MinDistPx float64 `yaml:"minDistPx"` // minimum spacing between trail points
	Tension   float64 `yaml:"tension"`   // curve tension, 1.0 standard

	// Particles
	ParticlesEnabled   bool    `yaml:"particlesEnabled"`   // spark bursts
	CometEnabled       bool    `yaml:"cometEnabled"`       // crystal motes
	ExplosionFrequency float64 `yaml:"explosionFrequency"` // bursts per second
	ExplosionIntensity float64 `yaml:"explosionIntensity"` // burst size multiplier

	// Extras
	DrawMode     DrawMode `yaml:"drawMode"`     // off / rect / circle / arrow
	SoundEnabled bool     `yaml:"soundEnabled"` // synthesized burst sound
}

// Default returns the factory settings.
func Default() *Config {
	return &Config{
		ColorStart:         "#AA00FF",
		ColorMid:           "#FF8C00",
		ColorEnd:           "#FFFF00",
		NumColors:          3,
		FadeSeconds:        1.5,
		FadeSlowdown:       2.5,
		StrokeThickness:    16,
		GlowPercent:        0,
		GradientLayers:     6,
		EmaAlpha:           0.35,
		MinDistPx:          3.5,
		Tension:            1.0,
		ParticlesEnabled:   true,
		CometEnabled:       true,
		ExplosionFrequency: 15.0,
		ExplosionIntensity: 1.0,
		DrawMode:           DrawModeOff,
		SoundEnabled:       false,
	}
}

// Normalize clamps every field into its legal range in place. Applied after
// every load and before every publish so components may assume a valid
// snapshot.
func (c *Config) Normalize() {
	switch c.NumColors {
	case 1, 2, 3, 7:
	default:
		c.NumColors = 3
	}
	c.FadeSeconds = clampFloat(c.FadeSeconds, 0.1, 10.0)
	c.FadeSlowdown = clampFloat(c.FadeSlowdown, 1.0, 3.0)
	c.StrokeThickness = clampFloat(c.StrokeThickness, 1, 100)
	c.GlowPercent = clampFloat(c.GlowPercent, 0, 200)
	c.GradientLayers = clampInt(c.GradientLayers, 2, 25)
	c.EmaAlpha = clampFloat(c.EmaAlpha, 0, 1)
	c.MinDistPx = clampFloat(c.MinDistPx, 0, 20)
	c.Tension = clampFloat(c.Tension, 0.2, 2.0)
	c.ExplosionFrequency = clampFloat(c.ExplosionFrequency, 1, 60)
	c.ExplosionIntensity = clampFloat(c.ExplosionIntensity, 0.1, 5.0)
	switch c.DrawMode {
	case DrawModeOff, DrawModeRect, DrawModeCircle, DrawModeArrow:
	default:
		c.DrawMode = DrawModeOff
	}
}

// Stops resolves the configured gradient stops. NumColors 7 selects the
// fixed rainbow scheme; otherwise the hex fields are parsed, falling back to
// the factory colors on malformed input.
func (c *Config) Stops() []gradient.RGB {
	if c.NumColors == 7 {
		return gradient.Rainbow()
	}

	def := Default()
	parse := func(s, fallback string) gradient.RGB {
		if rgb, err := gradient.ParseHex(s); err == nil {
			return rgb
		}
		rgb, _ := gradient.ParseHex(fallback)
		return rgb
	}

	start := parse(c.ColorStart, def.ColorStart)
	mid := parse(c.ColorMid, def.ColorMid)
	end := parse(c.ColorEnd, def.ColorEnd)

	switch c.NumColors {
	case 1:
		return []gradient.RGB{start}
	case 2:
		return []gradient.RGB{start, end}
	default:
		return []gradient.RGB{start, mid, end}
	}
}

// Model builds the fade/color model for this snapshot.
func (c *Config) Model() gradient.Model {
	return gradient.Model{
		Stops:       c.Stops(),
		FadeSeconds: c.FadeSeconds,
		Slowdown:    c.FadeSlowdown,
	}
}

// GlowWidth returns the full outer glow width in px.
func (c *Config) GlowWidth() float64 {
	return c.StrokeThickness + c.StrokeThickness*c.GlowPercent/100.0
}

// BurstInterval returns the seconds between time-triggered spark bursts.
func (c *Config) BurstInterval() float64 {
	if c.ExplosionFrequency <= 0 {
		return 1.0
	}
	return 1.0 / c.ExplosionFrequency
}

// MinDistSq returns the squared minimum point spacing, the form the sampler
// compares against.
func (c *Config) MinDistSq() float64 {
	return c.MinDistPx * c.MinDistPx
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
