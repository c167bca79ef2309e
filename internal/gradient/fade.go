package gradient

import "math"

// Model evaluates the fade curve and the gradient for one Config snapshot.
// Stops holds 1, 2, 3 stops, or the 7 Rainbow stops. Slowdown reshapes the
// decay: 1.0 is linear, larger values hold opacity longer before a late
// rapid drop.
type Model struct {
	Stops       []RGB
	FadeSeconds float64
	Slowdown    float64
}

// Life converts an age in seconds to normalized progress in [0, 1].
func (m Model) Life(age float64) float64 {
	if m.FadeSeconds <= 0 {
		return 1
	}
	return clamp01(age / m.FadeSeconds)
}

// Fade returns the opacity factor in [0, 1] for an age. A result of 0 means
// fully invisible; callers skip drawing entirely.
func (m Model) Fade(age float64) float64 {
	life := m.Life(age)
	if life >= 1 {
		return 0
	}
	slowdown := m.Slowdown
	if slowdown < 1 {
		slowdown = 1
	}
	return clamp01(math.Pow(1-life, 1/slowdown))
}

// ColorAt interpolates the gradient at a normalized life value.
// One stop is constant; n stops interpolate across n-1 equal segments, which
// covers the 2-stop, 3-stop (midpoint at life 0.5) and 7-stop rainbow modes
// with the same arithmetic.
func (m Model) ColorAt(life float64) RGB {
	n := len(m.Stops)
	switch {
	case n == 0:
		return RGB{255, 255, 255}
	case n == 1:
		return m.Stops[0]
	}
	life = clamp01(life)
	seg := int(life * float64(n-1))
	if seg > n-2 {
		seg = n - 2
	}
	t := life*float64(n-1) - float64(seg)
	return Lerp(m.Stops[seg], m.Stops[seg+1], t)
}

// Evaluate returns (fade, color) for an age. The fade is 0 at or beyond
// FadeSeconds; the color at life 0 is exactly the first stop and at life 1
// exactly the last.
func (m Model) Evaluate(age float64) (float64, RGB) {
	return m.Fade(age), m.ColorAt(m.Life(age))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
