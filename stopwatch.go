// Package stopwatch measures elapsed wall-clock time across start/stop cycles.
//
// Only the intervals during which the stopwatch runs are accumulated; the
// time between a Stop and the following Start is never counted.
//
//	sw := stopwatch.StartNew()
//	// Do something ...
//	sw.Stop()
//	fmt.Printf("Elapsed time: %dms\n", sw.ElapsedMsWhole())
//
// A Stopwatch is not safe for concurrent use. Callers sharing one between
// goroutines must synchronize access themselves.
package stopwatch

import (
	"math"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/influxdata/stopwatch/clocksource"
)

// maxDuration is the largest duration a Stopwatch accumulates before saturating.
const maxDuration = time.Duration(math.MaxInt64)

// Stopwatch accumulates the time spent between calls to Start and Stop.
//
// The zero value is a stopped stopwatch with no elapsed time that reads from
// clocksource.Default.
type Stopwatch struct {
	// elapsed is the sum of all completed run segments.
	elapsed time.Duration
	// timer is the clock reading at the most recent Start. It is stale while
	// the stopwatch is stopped.
	timer   time.Time
	running bool

	clock clock.Clock
}

// Option configures a Stopwatch.
type Option func(*Stopwatch)

// WithClock sets the clock the stopwatch reads from.
func WithClock(c clock.Clock) Option {
	return func(s *Stopwatch) {
		s.clock = c
	}
}

// New returns a stopped stopwatch with no elapsed time.
func New(opts ...Option) *Stopwatch {
	s := &Stopwatch{}
	for _, opt := range opts {
		opt(s)
	}
	s.timer = s.now()
	return s
}

// StartNew returns a new stopwatch that is already running.
func StartNew(opts ...Option) *Stopwatch {
	s := New(opts...)
	s.Start()
	return s
}

// FromDuration returns a stopped stopwatch seeded with d of elapsed time.
// Negative durations are treated as zero.
func FromDuration(d time.Duration, opts ...Option) *Stopwatch {
	s := New(opts...)
	if d > 0 {
		s.elapsed = d
	}
	return s
}

func (s *Stopwatch) now() time.Time {
	if s.clock == nil {
		return clocksource.Default().Now()
	}
	return s.clock.Now()
}

// lap returns the time elapsed since the last Start.
func (s *Stopwatch) lap() time.Duration {
	d := s.now().Sub(s.timer)
	if d < 0 {
		// Wall clocks can step backwards.
		d = -d
	}
	return d
}

func addSaturating(a, b time.Duration) time.Duration {
	if a > maxDuration-b {
		return maxDuration
	}
	return a + b
}

// Start starts or resumes the stopwatch. Calling Start on a running
// stopwatch has no effect.
func (s *Stopwatch) Start() {
	if s.running {
		return
	}
	s.timer = s.now()
	s.running = true
}

// Stop stops (pauses) the stopwatch, adding the current lap to the elapsed
// time. Calling Stop on a stopped stopwatch has no effect.
func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.elapsed = addSaturating(s.elapsed, s.lap())
	s.running = false
}

// Reset stops the stopwatch and discards all elapsed time.
func (s *Stopwatch) Reset() {
	s.elapsed = 0
	s.running = false
	s.timer = s.now()
}

// Restart resets the stopwatch and starts it again.
func (s *Stopwatch) Restart() {
	s.Reset()
	s.Start()
}

// IsRunning reports whether the stopwatch is running.
func (s *Stopwatch) IsRunning() bool {
	return s.running
}

// Measure runs fn with the stopwatch started and stops it once fn returns.
func (s *Stopwatch) Measure(fn func()) {
	s.Start()
	defer s.Stop()
	fn()
}

// Elapsed returns the total elapsed time, including the current lap if the
// stopwatch is running.
func (s *Stopwatch) Elapsed() time.Duration {
	if !s.running {
		return s.elapsed
	}
	return addSaturating(s.elapsed, s.lap())
}

// Duration returns the elapsed time. It is the conversion of a stopwatch into
// a plain duration.
func (s *Stopwatch) Duration() time.Duration {
	return s.Elapsed()
}

// ElapsedMs returns the elapsed time in fractional milliseconds.
func (s *Stopwatch) ElapsedMs() float64 {
	return float64(s.Elapsed()) / float64(time.Millisecond)
}

// ElapsedUs returns the elapsed time in fractional microseconds.
func (s *Stopwatch) ElapsedUs() float64 {
	return float64(s.Elapsed()) / float64(time.Microsecond)
}

// ElapsedNs returns the elapsed time in nanoseconds as a float.
func (s *Stopwatch) ElapsedNs() float64 {
	return float64(s.Elapsed())
}

// ElapsedS returns the elapsed time in fractional seconds.
func (s *Stopwatch) ElapsedS() float64 {
	return s.Elapsed().Seconds()
}

// The whole-unit accessors round to the nearest unit, with halfway values
// rounded away from zero.

// ElapsedMsWhole returns the elapsed time rounded to whole milliseconds.
func (s *Stopwatch) ElapsedMsWhole() int64 {
	return wholeUnits(s.Elapsed(), time.Millisecond)
}

// ElapsedUsWhole returns the elapsed time rounded to whole microseconds.
func (s *Stopwatch) ElapsedUsWhole() int64 {
	return wholeUnits(s.Elapsed(), time.Microsecond)
}

// ElapsedNsWhole returns the elapsed time in whole nanoseconds.
func (s *Stopwatch) ElapsedNsWhole() int64 {
	return int64(s.Elapsed())
}

// ElapsedSWhole returns the elapsed time rounded to whole seconds.
func (s *Stopwatch) ElapsedSWhole() int64 {
	return wholeUnits(s.Elapsed(), time.Second)
}

func wholeUnits(d, unit time.Duration) int64 {
	// Round saturates rather than overflowing near maxDuration.
	return int64(d.Round(unit) / unit)
}

// String returns the elapsed time in whole milliseconds, e.g. "1500ms".
func (s *Stopwatch) String() string {
	return strconv.FormatInt(s.ElapsedMsWhole(), 10) + "ms"
}
