// Package prom exposes stopwatches as Prometheus metrics.
package prom

import (
	"github.com/influxdata/stopwatch"
	"github.com/prometheus/client_golang/prometheus"
)

// StopwatchCollector reports the state of a single stopwatch each time it is
// gathered.
//
// The stopwatch is read from the gathering goroutine, so callers must not
// mutate it concurrently with a Gather.
type StopwatchCollector struct {
	sw *stopwatch.Stopwatch

	elapsed *prometheus.Desc
	running *prometheus.Desc
}

var _ prometheus.Collector = (*StopwatchCollector)(nil)

// NewStopwatchCollector returns a collector reporting
// <namespace>_<subsystem>_elapsed_seconds and <namespace>_<subsystem>_running.
func NewStopwatchCollector(sw *stopwatch.Stopwatch, namespace, subsystem string, constLabels prometheus.Labels) *StopwatchCollector {
	return &StopwatchCollector{
		sw: sw,
		elapsed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "elapsed_seconds"),
			"Total time the stopwatch has been running.",
			nil, constLabels,
		),
		running: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, "running"),
			"Whether the stopwatch is running (1) or stopped (0).",
			nil, constLabels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StopwatchCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.elapsed
	ch <- c.running
}

// Collect implements prometheus.Collector.
func (c *StopwatchCollector) Collect(ch chan<- prometheus.Metric) {
	running := 0.0
	if c.sw.IsRunning() {
		running = 1
	}
	ch <- prometheus.MustNewConstMetric(c.elapsed, prometheus.GaugeValue, c.sw.ElapsedS())
	ch <- prometheus.MustNewConstMetric(c.running, prometheus.GaugeValue, running)
}
