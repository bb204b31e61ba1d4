// Package clock provides the monotonic time source used for reaction stamps
// and fire-rate gating.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// System reads time.Now, which carries a monotonic reading; Sub between two
// of its values is immune to wall-clock changes.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Manual is advanced by hand. Tests and replays drive it alongside Tick.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Seconds converts a float seconds value to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
