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
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/pcheck/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(config *Config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Config)

// Apply applies the Config option
func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithStrategy sets the exploration strategy and its bound.
func WithStrategy(name string, bound int) Option {
	return OptionFunc(func(config *Config) {
		config.Strategy = name
		config.StrategyBound = bound
	})
}

// WithIterations sets the number of explored iterations.
func WithIterations(iterations int) Option {
	return OptionFunc(func(config *Config) {
		config.Iterations = iterations
	})
}

// WithMaxSteps sets the scheduling steps bounds of unfair and fair strategies.
func WithMaxSteps(maxSteps, fairMaxSteps int) Option {
	return OptionFunc(func(config *Config) {
		config.MaxSteps = maxSteps
		config.FairMaxSteps = fairMaxSteps
	})
}

// WithSeed sets the seed of the session.
func WithSeed(seed uint64) Option {
	return OptionFunc(func(config *Config) {
		config.Seed = seed
	})
}

// WithTimeout bounds the wall clock duration of the session.
func WithTimeout(timeout time.Duration) Option {
	return OptionFunc(func(config *Config) {
		config.Timeout = timeout
	})
}

// WithFailOnMaxSteps reports iterations reaching the steps bound as bugs.
func WithFailOnMaxSteps() Option {
	return OptionFunc(func(config *Config) {
		config.FailOnMaxSteps = true
	})
}

// WithFeedbackBounds sets the stagnation bounds of the feedback strategy.
func WithFeedbackBounds(scheduleMutationBound, maxMutationsWithoutNewSaved int) Option {
	return OptionFunc(func(config *Config) {
		config.ScheduleMutationBound = scheduleMutationBound
		config.MaxMutationsWithoutNewSaved = maxMutationsWithoutNewSaved
	})
}

// WithStorePath sets the replay store file.
func WithStorePath(path string) Option {
	return OptionFunc(func(config *Config) {
		config.StorePath = path
	})
}

// WithVerbose turns on the debug logs.
func WithVerbose() Option {
	return OptionFunc(func(config *Config) {
		config.Verbose = true
	})
}

// WithLogger sets the session logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *Config) {
		config.Logger = logger
	})
}

// WithMeterProvider sets the meter provider of the session instruments.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(config *Config) {
		config.MeterProvider = provider
	})
}
