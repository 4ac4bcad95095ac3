package clock

import (
	"sync"
	"time"
)

// Clocker reports the current time.
type Clocker interface {
	Now() time.Time
}

// System reads the operating system clock in UTC.
type System struct{}

// New returns the system clock.
func New() System {
	return System{}
}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Frozen is a manually driven clock. It only moves when told to.
type Frozen struct {
	mu  sync.Mutex
	now time.Time
}

// NewFrozen returns a clock stopped at t.
func NewFrozen(t time.Time) *Frozen {
	return &Frozen{now: t}
}

func (f *Frozen) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d and returns the new time.
func (f *Frozen) Advance(d time.Duration) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	return f.now
}

// Set moves the clock to t.
func (f *Frozen) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}
