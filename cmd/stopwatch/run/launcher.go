package run

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/influxdata/stopwatch"
	"github.com/influxdata/stopwatch/clocksource"
	"github.com/influxdata/stopwatch/kit/cli"
	"github.com/influxdata/stopwatch/kit/platform/errors"
	"github.com/influxdata/stopwatch/kit/prom"
	"github.com/influxdata/stopwatch/logger"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	// TextFormat renders the report as aligned key/value lines.
	TextFormat = "text"
	// JSONFormat renders the report as an indented JSON document.
	JSONFormat = "json"
)

// Runner runs a single invocation of the timed command.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the command as a child process wired to the given streams.
func ExecRunner(stdin io.Reader, stdout, stderr io.Writer) Runner {
	return func(ctx context.Context, name string, args ...string) error {
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Stdin = stdin
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		return cmd.Run()
	}
}

// Launcher times repeated runs of a command.
type Launcher struct {
	// Runner runs the command. Defaults to ExecRunner on the process's stdio.
	Runner Runner
	// Clock overrides the configured clock source when set.
	Clock clock.Clock

	clockName   string
	repeat      int
	pause       time.Duration
	keepGoing   bool
	format      *cli.Choice
	metricsFile string
	logConfig   logger.Config

	stdout io.Writer
	stderr io.Writer
}

// NewLauncher returns a Launcher writing its report to stdout and its logs to stderr.
func NewLauncher(stdout, stderr io.Writer) *Launcher {
	return &Launcher{
		Runner:    ExecRunner(os.Stdin, stdout, stderr),
		repeat:    1,
		format:    cli.NewChoice(TextFormat, JSONFormat),
		logConfig: logger.NewConfig(),
		stdout:    stdout,
		stderr:    stderr,
	}
}

// Report summarizes the measured runs.
type Report struct {
	Command []string        `json:"command"`
	Clock   string          `json:"clock"`
	Runs    int             `json:"runs"`
	Failed  int             `json:"failed"`
	Total   Measurement     `json:"total"`
	Mean    Measurement     `json:"mean"`
	Errors  []*errors.Error `json:"errors,omitempty"`
}

// Measurement is a duration expressed in the units a report shows.
type Measurement struct {
	Nanoseconds  int64   `json:"ns"`
	Milliseconds int64   `json:"ms"`
	Seconds      float64 `json:"s"`
}

func newMeasurement(sw *stopwatch.Stopwatch) Measurement {
	return Measurement{
		Nanoseconds:  sw.ElapsedNsWhole(),
		Milliseconds: sw.ElapsedMsWhole(),
		Seconds:      sw.ElapsedS(),
	}
}

// Run times the command in args, writes the report and, if configured, the
// metrics file. The returned error aggregates every failed run.
func (l *Launcher) Run(ctx context.Context, args []string) error {
	log, err := l.logConfig.New(l.stderr)
	if err != nil {
		return err
	}
	ctx = logger.NewContextWithLogger(ctx, log)

	clk, source, err := l.clock()
	if err != nil {
		return err
	}
	log.Debug("Selected clock source", zap.String("clock", source))

	sw := stopwatch.New(stopwatch.WithClock(clk))
	report, runErr := l.measure(ctx, clk, sw, args)
	report.Clock = source

	if err := l.writeReport(report); err != nil {
		return pkgerrors.Wrap(err, "writing report")
	}
	if l.metricsFile != "" {
		if err := l.writeMetrics(sw, report); err != nil {
			return pkgerrors.Wrapf(err, "writing metrics file %s", l.metricsFile)
		}
		log.Debug("Wrote metrics file", zap.String("path", l.metricsFile))
	}
	return runErr
}

func (l *Launcher) clock() (clock.Clock, string, error) {
	if l.Clock != nil {
		return l.Clock, "custom", nil
	}
	source, err := clocksource.Resolve(l.clockName)
	if err != nil {
		return nil, "", err
	}
	clk, err := clocksource.New(source)
	if err != nil {
		return nil, "", err
	}
	return clk, source, nil
}

func (l *Launcher) measure(ctx context.Context, clk clock.Clock, sw *stopwatch.Stopwatch, args []string) (*Report, error) {
	log, logEnd := logger.NewOperation(logger.FromContext(ctx), "Timing command", "run_command",
		zap.Strings("command", args), zap.Int("repeat", l.repeat))
	defer logEnd()

	report := &Report{Command: args}
	var result *multierror.Error

	for i := 0; i < l.repeat; i++ {
		if i > 0 && l.pause > 0 {
			if err := sleep(ctx, clk, l.pause); err != nil {
				result = multierror.Append(result, interrupted(i, err))
				break
			}
		}
		if err := ctx.Err(); err != nil {
			result = multierror.Append(result, interrupted(i, err))
			break
		}

		before := sw.Elapsed()
		sw.Start()
		err := l.Runner(ctx, args[0], args[1:]...)
		sw.Stop()
		report.Runs++

		lap := sw.Elapsed() - before
		if err != nil {
			report.Failed++
			e := &errors.Error{
				Code: errors.EInternal,
				Op:   "run",
				Msg:  fmt.Sprintf("run %d of %d failed", i+1, l.repeat),
				Err:  err,
			}
			result = multierror.Append(result, e)
			log.Warn("Run failed", zap.Int("run", i+1), zap.Duration("elapsed", lap), zap.Error(err))
			if !l.keepGoing {
				break
			}
			continue
		}
		log.Debug("Run finished", zap.Int("run", i+1), zap.Duration("elapsed", lap))
	}

	report.Total = newMeasurement(sw)
	if report.Runs > 0 {
		mean, err := sw.Div(int64(report.Runs))
		if err != nil {
			return report, err
		}
		report.Mean = newMeasurement(mean)
	}

	if result != nil {
		for _, err := range result.Errors {
			if e, ok := err.(*errors.Error); ok {
				report.Errors = append(report.Errors, e)
			}
		}
	}
	return report, result.ErrorOrNil()
}

func interrupted(run int, err error) *errors.Error {
	return &errors.Error{
		Code: errors.EInternal,
		Op:   "run",
		Msg:  fmt.Sprintf("interrupted before run %d", run+1),
		Err:  err,
	}
}

func sleep(ctx context.Context, clk clock.Clock, d time.Duration) error {
	timer := clk.Timer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (l *Launcher) writeReport(r *Report) error {
	switch l.format.Value {
	case JSONFormat:
		enc := json.NewEncoder(l.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		_, err := fmt.Fprintf(l.stdout,
			"command: %s\nclock:   %s\nruns:    %d (%d failed)\nelapsed: %sms\nmean:    %sms\n",
			strings.Join(r.Command, " "),
			r.Clock,
			r.Runs, r.Failed,
			humanize.Comma(r.Total.Milliseconds),
			humanize.Comma(r.Mean.Milliseconds),
		)
		return err
	}
}

func (l *Launcher) writeMetrics(sw *stopwatch.Stopwatch, r *Report) error {
	labels := prometheus.Labels{"command": filepath.Base(r.Command[0])}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "stopwatch",
		Subsystem:   "command",
		Name:        "runs_total",
		Help:        "Number of measured runs by result.",
		ConstLabels: labels,
	}, []string{"result"})
	runs.WithLabelValues("success").Add(float64(r.Runs - r.Failed))
	runs.WithLabelValues("failure").Add(float64(r.Failed))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		runs,
		prom.NewStopwatchCollector(sw, "stopwatch", "command", labels),
	)
	return prometheus.WriteToTextfile(l.metricsFile, reg)
}
