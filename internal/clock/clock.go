package clock

import (
	"sync"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// Clock provides an abstraction for time operations
type Clock interface {
	// Now returns the current time in the clock's location
	Now() time.Time
	// Today returns the current calendar day formatted as domain.DateLayout
	Today() string
}

// RealClock uses the system time in a fixed location
type RealClock struct {
	loc *time.Location
}

// NewRealClock creates a RealClock. A nil location uses time.Local.
func NewRealClock(loc *time.Location) *RealClock {
	if loc == nil {
		loc = time.Local
	}
	return &RealClock{loc: loc}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the local calendar day
func (c *RealClock) Today() string {
	return c.Now().Format(domain.DateLayout)
}

// SimulatedClock allows time manipulation for testing
type SimulatedClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewSimulatedClock creates a new SimulatedClock starting at the given time
func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{current: start}
}

// Now returns the simulated current time
func (c *SimulatedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Today returns the simulated calendar day
func (c *SimulatedClock) Today() string {
	return c.Now().Format(domain.DateLayout)
}

// Advance moves the simulated time forward by the given duration
func (c *SimulatedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

// AdvanceDays moves the simulated time forward by whole calendar days
func (c *SimulatedClock) AdvanceDays(days int) {
	c.mu.Lock()
	c.current = c.current.AddDate(0, 0, days)
	c.mu.Unlock()
}

// Set sets the simulated time to a specific value
func (c *SimulatedClock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}
