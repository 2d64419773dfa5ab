package clocksource

import "github.com/benbjohnson/clock"

func init() {
	register(Monotonic, 0, clock.New)
}
