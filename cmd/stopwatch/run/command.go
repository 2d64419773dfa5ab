package run

import (
	"context"
	"fmt"
	"time"

	"github.com/influxdata/stopwatch/clocksource"
	"github.com/influxdata/stopwatch/kit/cli"
	"github.com/influxdata/stopwatch/kit/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// NewCommand returns the stopwatch command, timing the command given as
// positional arguments with l.
func NewCommand(v *viper.Viper, l *Launcher) (*cobra.Command, error) {
	return cli.NewCommand(v, &cli.Program{
		Name:  "stopwatch",
		Use:   "stopwatch [flags] -- command [args...]",
		Short: "Measure how long a command takes to run",
		Args:  cobra.MinimumNArgs(1),
		Run: func(args []string) error {
			// exit with SIGINT and SIGTERM
			ctx := signals.WithStandardSignals(context.Background())
			return l.Run(ctx, args)
		},
		Opts: l.options(),
	})
}

func (l *Launcher) options() []cli.Opt {
	return []cli.Opt{
		{
			DestP:   &l.clockName,
			Flag:    "clock",
			Default: clocksource.Auto,
			Desc:    fmt.Sprintf("clock source; supported sources are %s and %v", clocksource.Auto, clocksource.Names()),
		},
		{
			DestP:   &l.repeat,
			Flag:    "repeat",
			Default: 1,
			Desc:    "number of times to run the command",
		},
		{
			DestP:   &l.pause,
			Flag:    "pause",
			Default: time.Duration(0),
			Desc:    "time to wait between runs; not included in the measurement",
		},
		{
			DestP:   &l.keepGoing,
			Flag:    "keep-going",
			Default: false,
			Desc:    "keep running after a failed run and report every failure",
		},
		{
			DestP: l.format,
			Flag:  "format",
			Desc:  "output format; supported formats are text and json",
		},
		{
			DestP:   &l.metricsFile,
			Flag:    "metrics-file",
			Default: "",
			Desc:    "write Prometheus metrics in text format to this file",
		},
		{
			DestP:   &l.logConfig.Level,
			Flag:    "log-level",
			Default: zapcore.WarnLevel,
			Desc:    "supported log levels are debug, info, warn and error",
		},
		{
			DestP:   &l.logConfig.Format,
			Flag:    "log-format",
			Default: "auto",
			Desc:    "supported log formats are auto, console, json and logfmt",
		},
	}
}
