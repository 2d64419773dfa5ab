package stopwatch_test

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/influxdata/stopwatch"
)

func ExampleStopwatch() {
	mock := clock.NewMock()
	sw := stopwatch.New(stopwatch.WithClock(mock))

	sw.Start()
	mock.Add(time.Second)
	sw.Stop()

	// paused time is not counted
	mock.Add(time.Minute)

	sw.Start()
	mock.Add(time.Second)
	sw.Stop()

	fmt.Println(sw)
	fmt.Println(sw.ElapsedSWhole())
	// Output:
	// 2000ms
	// 2
}

func ExampleFromDuration() {
	sw := stopwatch.FromDuration(1500 * time.Millisecond)
	fmt.Println(sw.ElapsedS(), sw.Duration())
	// Output:
	// 1.5 1.5s
}
