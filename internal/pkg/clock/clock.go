package clock

import (
	"sync"
	"time"
)

// Clock allows injecting time in domain/services.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always returns the same instant (useful for tests).
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// Monotonic wraps a clock so that successive readings strictly increase, even when the
// underlying clock stalls or steps back. Stores use it to stamp creation times that
// order documents unambiguously.
type Monotonic struct {
	base       Clock
	resolution time.Duration
	mu         sync.Mutex
	last       time.Time
}

// MonotonicOption configures a Monotonic clock.
type MonotonicOption func(*Monotonic)

// WithResolution truncates readings to d and steps by d, for stores that keep timestamps
// at a coarser precision than the Go runtime (MongoDB keeps milliseconds).
func WithResolution(d time.Duration) MonotonicOption {
	return func(m *Monotonic) {
		if d > 0 {
			m.resolution = d
		}
	}
}

// NewMonotonic returns a strictly increasing clock on top of base. Readings step by one
// microsecond unless WithResolution says otherwise.
func NewMonotonic(base Clock, opts ...MonotonicOption) *Monotonic {
	m := &Monotonic{base: base, resolution: time.Microsecond}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Monotonic) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.base.Now().Truncate(m.resolution)
	if !now.After(m.last) {
		now = m.last.Add(m.resolution)
	}
	m.last = now
	return now
}
