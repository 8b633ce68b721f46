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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tochemey/pcheck/checker"
	"github.com/tochemey/pcheck/config"
)

// NewRecordsCommand creates the records command.
func NewRecordsCommand(rootOpts *RootOptions) *cobra.Command {
	var storePath string

	cmd := &cobra.Command{
		Use:   "records <name>",
		Short: "List the saved records of a registered test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := checker.NewEngine(cmd.Context(), config.New(
				config.WithStorePath(storePath),
				config.WithLogger(rootOpts.logger(cmd))))
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to create the engine", err)
			}
			defer func() { _ = engine.Close() }()

			records, err := engine.Records(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list the records", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTRATEGY\tITERATION\tBUG")
			for _, record := range records {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", record.ID, record.Strategy, record.Iteration, record.Bug)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "replay records database")
	_ = cmd.MarkFlagRequired("store")
	return cmd
}
