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

// Package cli implements the pcheck command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tochemey/pcheck/checker"
)

// RootOptions holds the global flags of every command.
type RootOptions struct {
	Verbose  bool
	Registry *checker.Registry
}

// NewRootCommand creates the pcheck command over the default registry.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWith(checker.DefaultRegistry())
}

// NewRootCommandWith creates the pcheck command over the given registry.
func NewRootCommandWith(registry *checker.Registry) *cobra.Command {
	opts := &RootOptions{Registry: registry}

	cmd := &cobra.Command{
		Use:   "pcheck",
		Short: "pcheck - systematic testing of timed actor programs",
		Long: `pcheck explores the interleavings and message delays of registered actor
programs under virtual time, reports the bugs it finds and replays them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every scheduling step")

	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewRecordsCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	return cmd
}

func (o *RootOptions) lookup(name string) (*checker.Test, error) {
	test, err := o.Registry.Get(name)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "unknown test", err)
	}
	return test, nil
}
