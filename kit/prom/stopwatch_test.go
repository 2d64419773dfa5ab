package prom_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/influxdata/stopwatch"
	"github.com/influxdata/stopwatch/kit/prom"
	"github.com/influxdata/stopwatch/kit/prom/promtest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwatchCollector(t *testing.T) {
	mock := clock.NewMock()
	sw := stopwatch.New(stopwatch.WithClock(mock))

	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(prom.NewStopwatchCollector(sw, "stopwatch", "run", prometheus.Labels{"command": "sleep"}))

	labels := map[string]string{"command": "sleep"}

	mfs := promtest.MustGather(t, reg)
	assert.Equal(t, 0.0, promtest.MustFindMetric(t, mfs, "stopwatch_run_elapsed_seconds", labels).GetGauge().GetValue())
	assert.Equal(t, 0.0, promtest.MustFindMetric(t, mfs, "stopwatch_run_running", labels).GetGauge().GetValue())

	sw.Start()
	mock.Add(1500 * time.Millisecond)

	// values are read at gather time
	mfs = promtest.MustGather(t, reg)
	assert.Equal(t, 1.5, promtest.MustFindMetric(t, mfs, "stopwatch_run_elapsed_seconds", labels).GetGauge().GetValue())
	assert.Equal(t, 1.0, promtest.MustFindMetric(t, mfs, "stopwatch_run_running", labels).GetGauge().GetValue())

	sw.Stop()
	mock.Add(time.Minute)
	mfs = promtest.MustGather(t, reg)
	assert.Equal(t, 1.5, promtest.MustFindMetric(t, mfs, "stopwatch_run_elapsed_seconds", labels).GetGauge().GetValue())
	assert.Equal(t, 0.0, promtest.MustFindMetric(t, mfs, "stopwatch_run_running", labels).GetGauge().GetValue())

	assert.Nil(t, promtest.FindMetric(mfs, "stopwatch_run_elapsed_seconds", map[string]string{"command": "true"}))
}

func TestStopwatchCollector_Textfile(t *testing.T) {
	sw := stopwatch.FromDuration(250 * time.Millisecond)

	reg := prometheus.NewRegistry()
	reg.MustRegister(prom.NewStopwatchCollector(sw, "stopwatch", "", nil))

	path := filepath.Join(t.TempDir(), "stopwatch.prom")
	require.NoError(t, prometheus.WriteToTextfile(path, reg))

	mfs, err := promtest.FromTextfile(path)
	require.NoError(t, err)
	require.Len(t, mfs, 2)
	assert.Equal(t, "stopwatch_elapsed_seconds", mfs[0].GetName())
	assert.Equal(t, "stopwatch_running", mfs[1].GetName())
	assert.Equal(t, 0.25, promtest.MustFindMetric(t, mfs, "stopwatch_elapsed_seconds", nil).GetGauge().GetValue())
}
