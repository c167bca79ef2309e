// Package clock provides the pausable logical clock that all aging in the
// engine is computed against.
//
// Logical time advances with the wall clock while running and freezes while
// paused. Every pause span is accumulated and subtracted from later
// readings, so an entity's age (logical now minus logical creation time)
// never jumps across a pause/resume boundary.
package clock

import (
	"sync"
	"time"
)

// PausableClock 可暂停的逻辑时钟
// Safe for concurrent use by the render thread and the physics goroutine.
type PausableClock struct {
	mu          sync.RWMutex
	now         func() time.Time // wall clock source, replaceable in tests
	paused      bool
	pauseStart  time.Time     // wall instant the current pause began
	totalPaused time.Duration // cumulative duration of finished pauses
}

// New creates a running clock backed by the system wall clock.
func New() *PausableClock {
	return NewWithSource(time.Now)
}

// NewWithSource creates a running clock reading wall time from now.
func NewWithSource(now func() time.Time) *PausableClock {
	return &PausableClock{now: now}
}

// Now returns the current logical time. While paused it returns the frozen
// instant captured when the pause began; otherwise wall time minus the
// total paused duration.
func (c *PausableClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.paused {
		return c.pauseStart.Add(-c.totalPaused)
	}
	return c.now().Add(-c.totalPaused)
}

// Pause freezes logical time. Pausing an already paused clock is a no-op.
func (c *PausableClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused {
		return
	}
	c.paused = true
	c.pauseStart = c.now()
}

// Resume unfreezes logical time, folding the elapsed pause span into the
// running total. Resuming a running clock is a no-op.
func (c *PausableClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.paused {
		return
	}
	c.paused = false
	c.totalPaused += c.now().Sub(c.pauseStart)
	c.pauseStart = time.Time{}
}

// SetPaused switches between the paused and running states.
func (c *PausableClock) SetPaused(paused bool) {
	if paused {
		c.Pause()
	} else {
		c.Resume()
	}
}

// IsPaused reports whether logical time is currently frozen.
func (c *PausableClock) IsPaused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// TotalPaused returns the cumulative paused duration, including the
// still-open pause when the clock is currently frozen.
func (c *PausableClock) TotalPaused() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.totalPaused
	if c.paused {
		total += c.now().Sub(c.pauseStart)
	}
	return total
}
