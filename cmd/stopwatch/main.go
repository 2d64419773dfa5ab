package main

import (
	"fmt"
	"os"

	"github.com/influxdata/stopwatch/cmd/stopwatch/run"
	"github.com/spf13/viper"
)

func main() {
	l := run.NewLauncher(os.Stdout, os.Stderr)
	cmd, err := run.NewCommand(viper.New(), l)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
