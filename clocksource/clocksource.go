// Package clocksource selects the clock a stopwatch reads from.
//
// Sources register themselves at init time with a priority. The source with
// the highest priority wins when the caller asks for Auto. The epoch source is
// compiled in unless the stdtime build tag is set.
package clocksource

import (
	"fmt"
	"sort"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/influxdata/stopwatch/kit/platform/errors"
)

const (
	// Auto selects the highest priority registered source.
	Auto = "auto"
	// Monotonic reads time.Now, keeping Go's monotonic clock reading.
	Monotonic = "monotonic"
	// Epoch reads wall-clock nanoseconds since the Unix epoch.
	Epoch = "epoch"
)

type source struct {
	name     string
	priority int
	new      func() clock.Clock
}

var (
	mu      sync.RWMutex
	sources = make(map[string]source)

	defaultOnce  sync.Once
	defaultClock clock.Clock
)

// register makes a clock source available by name.
// Registering the same name twice panics.
func register(name string, priority int, fn func() clock.Clock) {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := sources[name]; ok {
		panic(fmt.Sprintf("clocksource: source %q registered twice", name))
	}
	sources[name] = source{name: name, priority: priority, new: fn}
}

// Names returns the registered sources ordered by priority, highest first.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	return sortedNames()
}

func sortedNames() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := sources[names[i]].priority, sources[names[j]].priority
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})
	return names
}

// Resolve maps name to the registered source it selects.
// An empty name is treated as Auto.
func Resolve(name string) (string, error) {
	mu.RLock()
	defer mu.RUnlock()

	if name == "" || name == Auto {
		names := sortedNames()
		if len(names) == 0 {
			return "", &errors.Error{
				Code: errors.EInternal,
				Op:   "clocksource.Resolve",
				Msg:  "no clock sources registered",
			}
		}
		return names[0], nil
	}

	if _, ok := sources[name]; !ok {
		return "", &errors.Error{
			Code: errors.EInvalid,
			Op:   "clocksource.Resolve",
			Msg:  fmt.Sprintf("unknown clock source %q; supported sources are %s and %v", name, Auto, sortedNames()),
		}
	}
	return name, nil
}

// New returns a clock for the named source.
func New(name string) (clock.Clock, error) {
	resolved, err := Resolve(name)
	if err != nil {
		return nil, err
	}

	mu.RLock()
	defer mu.RUnlock()
	return sources[resolved].new(), nil
}

// Default returns the clock selected by Auto. It is created once and shared.
func Default() clock.Clock {
	defaultOnce.Do(func() {
		c, err := New(Auto)
		if err != nil {
			// monotonic is always registered, so this only happens if init
			// ordering is broken.
			panic(err)
		}
		defaultClock = c
	})
	return defaultClock
}
