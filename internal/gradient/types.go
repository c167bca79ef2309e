// Package gradient maps the age of a trail point or particle to an opacity
// and an interpolated color from a multi-stop gradient.
//
// The fade curve and the stop interpolation are pure functions; the trail
// renderer and both cap renderers call the same Model so segment and cap
// colors stay continuous at stroke boundaries.
package gradient

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is an 8-bit-per-channel opaque color. Alpha is decided by the fade
// curve at draw time, never stored with the color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses a "#RRGGBB" or "RRGGBB" color string.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// Hex formats the color as "#RRGGBB" (settings file form).
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Lerp blends two colors component-wise. t is clamped to [0, 1].
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t + 0.5),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t + 0.5),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t + 0.5),
	}
}

// Rainbow returns the fixed 7-stop scheme (红橙黄绿蓝紫棕).
// Selected by a stop count of 7; the stops themselves are not configurable.
func Rainbow() []RGB {
	return []RGB{
		{255, 0, 0},
		{255, 165, 0},
		{255, 255, 0},
		{0, 200, 55},
		{75, 0, 180},
		{128, 0, 128},
		{139, 69, 19},
	}
}
