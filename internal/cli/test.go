// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tochemey/pcheck/checker"
	"github.com/tochemey/pcheck/config"
	"github.com/tochemey/pcheck/log"
)

// TestOptions holds the flags of the test command.
type TestOptions struct {
	*RootOptions
	ConfigPath     string
	Strategy       string
	Bound          int
	Iterations     int
	MaxSteps       int
	FairMaxSteps   int
	Seed           uint64
	Timeout        time.Duration
	FailOnMaxSteps bool
	StorePath      string
	Timeline       bool
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <name>",
		Short: "Explore the schedules of a registered test",
		Long: `Explore the schedules of a registered test until a bug is found or the
iterations run out. A found bug is saved to the store when one is given
and makes the command exit with status 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&opts.Strategy, "strategy", "s", config.DefaultStrategy, fmt.Sprintf("scheduling strategy %v", config.Strategies))
	flags.IntVarP(&opts.Bound, "bound", "b", config.DefaultStrategyBound, "priority switch bound of the PCT strategies")
	flags.IntVarP(&opts.Iterations, "iterations", "i", config.DefaultIterations, "number of iterations")
	flags.IntVar(&opts.MaxSteps, "max-steps", config.DefaultMaxSteps, "steps bound of an iteration")
	flags.IntVar(&opts.FairMaxSteps, "fair-max-steps", config.DefaultFairMaxSteps, "steps bound of an iteration under a fair strategy")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the strategy random generators")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "session timeout, zero disables it")
	flags.BoolVar(&opts.FailOnMaxSteps, "fail-on-max-steps", false, "report reaching the steps bound as a bug")
	flags.StringVar(&opts.StorePath, "store", "", "replay records database")
	flags.BoolVar(&opts.Timeline, "timeline", false, "print the timeline of the buggy iteration")
	return cmd
}

func runTest(cmd *cobra.Command, opts *TestOptions, name string) error {
	test, err := opts.lookup(name)
	if err != nil {
		return err
	}

	cfg, err := opts.config(cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	engine, err := checker.NewEngine(cmd.Context(), cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create the engine", err)
	}
	defer func() { _ = engine.Close() }()

	report, err := engine.Run(cmd.Context(), test)
	if err != nil {
		return WrapExitError(ExitFailure, "test run failed", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report)
	if !report.Found() {
		return nil
	}

	if report.Record != nil && cfg.StorePath != "" {
		fmt.Fprintf(out, "record %s saved to %s\n", report.Record.ID, cfg.StorePath)
	}
	if opts.Timeline && report.Timeline != nil {
		fmt.Fprintln(out, report.Timeline)
	}
	return NewExitError(ExitFailure, "bug found in "+test.Name)
}

// config builds the session configuration. Flags override the
// configuration file only when set on the command line.
func (o *TestOptions) config(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	var options []config.Option
	set := func(flag string, apply func(*config.Config)) {
		if flags.Changed(flag) {
			options = append(options, config.OptionFunc(apply))
		}
	}

	set("strategy", func(c *config.Config) { c.Strategy = o.Strategy })
	set("bound", func(c *config.Config) { c.StrategyBound = o.Bound })
	set("iterations", func(c *config.Config) { c.Iterations = o.Iterations })
	set("max-steps", func(c *config.Config) { c.MaxSteps = o.MaxSteps })
	set("fair-max-steps", func(c *config.Config) { c.FairMaxSteps = o.FairMaxSteps })
	set("seed", func(c *config.Config) { c.Seed = o.Seed })
	set("timeout", func(c *config.Config) { c.Timeout = o.Timeout })
	set("fail-on-max-steps", func(c *config.Config) { c.FailOnMaxSteps = o.FailOnMaxSteps })
	set("store", func(c *config.Config) { c.StorePath = o.StorePath })
	options = append(options, config.WithLogger(o.logger(cmd)))

	if o.ConfigPath != "" {
		return config.Load(o.ConfigPath, options...)
	}
	return config.New(options...), nil
}

// logger writes the session logs to the command error stream.
func (o *RootOptions) logger(cmd *cobra.Command) log.Logger {
	if o.Verbose {
		return log.NewZap(log.DebugLevel, cmd.ErrOrStderr())
	}
	return log.NewZap(log.ErrorLevel, cmd.ErrOrStderr())
}
