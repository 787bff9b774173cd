// Package clock supplies the millisecond time source the simulation reads.
package clock

import (
	"sync"
	"time"
)

// Clock returns a monotonically non-decreasing time in milliseconds.
type Clock interface {
	Now() float64
}

// Monotonic measures milliseconds elapsed since it was created.
type Monotonic struct {
	start time.Time
}

// NewMonotonic starts a clock at zero.
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

// Now returns elapsed milliseconds. time.Since uses the monotonic reading.
func (m *Monotonic) Now() float64 {
	return float64(time.Since(m.start)) / float64(time.Millisecond)
}

// Manual is a hand-driven clock for tests and replays.
type Manual struct {
	mu  sync.Mutex
	now float64
}

// NewManual creates a manual clock reading start.
func NewManual(start float64) *Manual {
	return &Manual{now: start}
}

// Now returns the current reading.
func (m *Manual) Now() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by ms. Negative values are ignored.
func (m *Manual) Advance(ms float64) {
	if ms <= 0 {
		return
	}
	m.mu.Lock()
	m.now += ms
	m.mu.Unlock()
}

// Set jumps to t if it is not earlier than the current reading.
func (m *Manual) Set(t float64) {
	m.mu.Lock()
	if t > m.now {
		m.now = t
	}
	m.mu.Unlock()
}

var (
	_ Clock = (*Monotonic)(nil)
	_ Clock = (*Manual)(nil)
)
