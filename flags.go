package main

import (
	"flag"
	"time"

	"github.com/sheikhrachel/lifegrid/utils"
)

// cliOptions holds command-line overrides for the config file
type cliOptions struct {
	ConfigPath  string
	Rows        int
	Columns     int
	Seed        uint64
	Interval    time.Duration
	Interactive bool
}

func newCLIOptions() *cliOptions {
	d := utils.DefaultConfig()
	return &cliOptions{
		ConfigPath: "config.json",
		Rows:       d.Rows,
		Columns:    d.Columns,
		Interval:   d.Interval,
	}
}

// Bind attaches the options to the provided FlagSet
func (o *cliOptions) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "path to JSON config")
	fs.IntVar(&o.Rows, "rows", o.Rows, "grid rows")
	fs.IntVar(&o.Columns, "columns", o.Columns, "grid columns")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "random seed, 0 seeds from the clock")
	fs.DurationVar(&o.Interval, "interval", o.Interval, "time between generations")
	fs.BoolVar(&o.Interactive, "interactive", o.Interactive, "read commands from stdin")
}

// Apply copies flags that were set explicitly on top of config
func (o *cliOptions) Apply(fs *flag.FlagSet, config *utils.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rows":
			config.Rows = o.Rows
		case "columns":
			config.Columns = o.Columns
		case "seed":
			config.Seed = o.Seed
		case "interval":
			config.Interval = o.Interval
		case "interactive":
			config.Interactive = o.Interactive
		}
	})
}
