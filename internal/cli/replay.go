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

	"github.com/spf13/cobra"

	"github.com/tochemey/pcheck/checker"
	"github.com/tochemey/pcheck/config"
)

// ReplayOptions holds the flags of the replay command.
type ReplayOptions struct {
	*RootOptions
	ID        string
	StorePath string
	Timeline  bool
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <name>",
		Short: "Replay a saved record of a registered test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "record identifier")
	cmd.Flags().StringVar(&opts.StorePath, "store", "", "replay records database")
	cmd.Flags().BoolVar(&opts.Timeline, "timeline", false, "print the replayed timeline")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("store")
	return cmd
}

func runReplay(cmd *cobra.Command, opts *ReplayOptions, name string) error {
	test, err := opts.lookup(name)
	if err != nil {
		return err
	}

	engine, err := checker.NewEngine(cmd.Context(), config.New(
		config.WithStorePath(opts.StorePath),
		config.WithLogger(opts.logger(cmd))))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create the engine", err)
	}
	defer func() { _ = engine.Close() }()

	report, err := engine.ReplayByID(cmd.Context(), test, opts.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "replay failed", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report)
	if opts.Timeline && report.Timeline != nil {
		fmt.Fprintln(out, report.Timeline)
	}
	if !report.Reproduced {
		return NewExitError(ExitFailure, "record "+opts.ID+" did not reproduce")
	}
	fmt.Fprintf(out, "record %s reproduced\n", opts.ID)
	return nil
}
