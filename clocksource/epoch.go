//go:build !stdtime

package clocksource

import (
	"time"

	"github.com/benbjohnson/clock"
)

func init() {
	register(Epoch, 10, func() clock.Clock {
		return NewEpochClock(clock.New())
	})
}

// EpochClock reports wall-clock time as nanoseconds since the Unix epoch.
// Readings carry no monotonic component, so the difference between two of
// them can be negative if the system clock is stepped backwards.
type EpochClock struct {
	clock.Clock
}

// NewEpochClock wraps c so that Now drops the monotonic reading.
func NewEpochClock(c clock.Clock) *EpochClock {
	return &EpochClock{Clock: c}
}

// Now returns the current wall-clock time in UTC.
func (c *EpochClock) Now() time.Time {
	return time.Unix(0, c.Clock.Now().UnixNano()).UTC()
}

// Since returns the wall-clock time elapsed since t.
func (c *EpochClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}
