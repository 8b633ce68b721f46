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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/log"
)

func TestNew(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		config := New()
		require.NoError(t, config.Validate())
		assert.Equal(t, "random", config.Strategy)
		assert.Equal(t, DefaultStrategyBound, config.StrategyBound)
		assert.Equal(t, DefaultIterations, config.Iterations)
		assert.Equal(t, DefaultMaxSteps, config.MaxSteps)
		assert.Equal(t, DefaultFairMaxSteps, config.FairMaxSteps)
		assert.Equal(t, 25, config.ScheduleMutationBound)
		assert.Equal(t, 50, config.MaxMutationsWithoutNewSaved)
		assert.Equal(t, log.DefaultLogger, config.Logger)
		assert.Nil(t, config.MeterProvider)
		assert.Empty(t, config.StorePath)
	})
	t.Run("With options", func(t *testing.T) {
		provider := noop.NewMeterProvider()
		config := New(
			WithStrategy(" PCT ", 2),
			WithIterations(10),
			WithMaxSteps(50, 500),
			WithSeed(42),
			WithTimeout(time.Minute),
			WithFailOnMaxSteps(),
			WithFeedbackBounds(5, 10),
			WithStorePath("bugs.db"),
			WithLogger(log.DiscardLogger),
			WithMeterProvider(provider),
		)

		require.NoError(t, config.Validate())
		assert.Equal(t, "pct", config.Strategy)
		assert.Equal(t, 2, config.StrategyBound)
		assert.Equal(t, 10, config.Iterations)
		assert.Equal(t, 50, config.MaxSteps)
		assert.Equal(t, 500, config.FairMaxSteps)
		assert.EqualValues(t, 42, config.Seed)
		assert.Equal(t, time.Minute, config.Timeout)
		assert.True(t, config.FailOnMaxSteps)
		assert.Equal(t, 5, config.ScheduleMutationBound)
		assert.Equal(t, 10, config.MaxMutationsWithoutNewSaved)
		assert.Equal(t, "bugs.db", config.StorePath)
		assert.Equal(t, log.DiscardLogger, config.Logger)
		assert.Equal(t, provider, config.MeterProvider)
	})
	t.Run("With verbose", func(t *testing.T) {
		config := New(WithVerbose())
		assert.Equal(t, log.DebugLogger, config.Logger)
	})
	t.Run("With StepBound", func(t *testing.T) {
		config := New(WithMaxSteps(10, 20))
		assert.Equal(t, 20, config.StepBound(true))
		assert.Equal(t, 10, config.StepBound(false))
	})
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		config *Config
		err    error
		msg    string
	}{
		{name: "unknown strategy", config: New(WithStrategy("dfs", 0)), msg: `the [Strategy] must be one of`},
		{name: "negative bound", config: New(WithStrategy("pct", -1)), err: perrors.ErrInvalidStrategyBound},
		{name: "negative iterations", config: New(WithIterations(-1)), err: perrors.ErrInvalidIterations},
		{name: "negative steps", config: New(WithMaxSteps(-1, 10)), err: perrors.ErrInvalidMaxSteps},
		{name: "fair steps lower than steps", config: New(WithMaxSteps(100, 10)), msg: "FairMaxSteps must not be lower than MaxSteps"},
		{name: "negative timeout", config: New(WithTimeout(-time.Second)), err: perrors.ErrInvalidTimeout},
		{name: "negative feedback bound", config: New(WithFeedbackBounds(-1, 10)), msg: "the [ScheduleMutationBound] must be at least 0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			require.Error(t, err)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			}
			if tc.msg != "" {
				assert.Contains(t, err.Error(), tc.msg)
			}
		})
	}

	t.Run("With all the violations reported", func(t *testing.T) {
		err := New(WithIterations(-1), WithTimeout(-time.Second)).Validate()
		assert.ErrorIs(t, err, perrors.ErrInvalidIterations)
		assert.ErrorIs(t, err, perrors.ErrInvalidTimeout)
	})
}

func TestLoad(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "pcheck.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("With a complete file", func(t *testing.T) {
		path := write(t, `
strategy: fairpct
strategy-bound: 4
iterations: 250
max-steps: 300
fair-max-steps: 3000
seed: 7
timeout: 90s
fail-on-max-steps: true
schedule-mutation-bound: 10
max-mutations-without-new-saved: 20
store-path: /tmp/bugs.db
verbose: true
`)
		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "fairpct", config.Strategy)
		assert.Equal(t, 4, config.StrategyBound)
		assert.Equal(t, 250, config.Iterations)
		assert.Equal(t, 300, config.MaxSteps)
		assert.Equal(t, 3000, config.FairMaxSteps)
		assert.EqualValues(t, 7, config.Seed)
		assert.Equal(t, 90*time.Second, config.Timeout)
		assert.True(t, config.FailOnMaxSteps)
		assert.Equal(t, 10, config.ScheduleMutationBound)
		assert.Equal(t, 20, config.MaxMutationsWithoutNewSaved)
		assert.Equal(t, "/tmp/bugs.db", config.StorePath)
		assert.Equal(t, log.DebugLogger, config.Logger)
	})
	t.Run("With a partial file and options", func(t *testing.T) {
		path := write(t, "strategy: feedback\n")
		config, err := Load(path, WithIterations(5), WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		assert.Equal(t, FeedbackStrategy, config.Strategy)
		assert.Equal(t, 5, config.Iterations)
		assert.Equal(t, DefaultMaxSteps, config.MaxSteps)
		assert.Equal(t, log.DiscardLogger, config.Logger)
	})
	t.Run("With an empty file", func(t *testing.T) {
		config, err := Load(write(t, ""))
		require.NoError(t, err)
		assert.Equal(t, DefaultStrategy, config.Strategy)
		assert.Equal(t, log.DefaultLogger, config.Logger)
	})
	t.Run("With an unknown field", func(t *testing.T) {
		_, err := Load(write(t, "strategies: pct\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
	t.Run("With an invalid value", func(t *testing.T) {
		_, err := Load(write(t, "iterations: -3\n"))
		require.ErrorIs(t, err, perrors.ErrInvalidIterations)
	})
	t.Run("With a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
