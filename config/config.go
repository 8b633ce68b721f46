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

// Package config holds the settings of a checker session.
package config

import (
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"

	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/feedback"
	"github.com/tochemey/pcheck/internal/validation"
	"github.com/tochemey/pcheck/log"
	"github.com/tochemey/pcheck/strategy"
)

// names of the strategies that are not built by strategy.New
const (
	FeedbackStrategy  = "feedback"
	PortfolioStrategy = "portfolio"
)

const (
	// DefaultStrategy is the strategy used when none is configured.
	DefaultStrategy = strategy.RandomName
	// DefaultStrategyBound is the default number of coins of probabilistic and
	// of priority change points of pct and fairpct.
	DefaultStrategyBound = 3
	// DefaultIterations is the default number of explored iterations.
	DefaultIterations = 100
	// DefaultMaxSteps bounds the scheduling steps of an iteration driven by
	// an unfair strategy.
	DefaultMaxSteps = 10_000
	// DefaultFairMaxSteps bounds the scheduling steps of an iteration driven
	// by a fair strategy.
	DefaultFairMaxSteps = 100_000
)

// Strategies lists the strategy names a session accepts.
var Strategies = []string{
	strategy.RandomName,
	strategy.ProbabilisticName,
	strategy.PCTName,
	strategy.FairPCTName,
	FeedbackStrategy,
	PortfolioStrategy,
}

// Config defines a checker session.
type Config struct {
	// Strategy names the exploration strategy. The default is random.
	Strategy string `yaml:"strategy"`
	// StrategyBound is the parameter of probabilistic, pct and fairpct.
	StrategyBound int `yaml:"strategy-bound"`
	// Iterations is the number of executions explored by the session.
	Iterations int `yaml:"iterations"`
	// MaxSteps bounds the scheduling steps of an iteration under an unfair strategy.
	MaxSteps int `yaml:"max-steps"`
	// FairMaxSteps bounds the scheduling steps of an iteration under a fair strategy.
	// It must not be lower than MaxSteps.
	FairMaxSteps int `yaml:"fair-max-steps"`
	// Seed derives every generator of the session.
	Seed uint64 `yaml:"seed"`
	// Timeout bounds the wall clock duration of the session. Zero disables it.
	Timeout time.Duration `yaml:"timeout"`
	// FailOnMaxSteps reports an iteration reaching the steps bound as a bug.
	FailOnMaxSteps bool `yaml:"fail-on-max-steps"`
	// ScheduleMutationBound is the feedback stagnation bound before the input is mutated.
	ScheduleMutationBound int `yaml:"schedule-mutation-bound"`
	// MaxMutationsWithoutNewSaved is the feedback stagnation bound before a restart.
	MaxMutationsWithoutNewSaved int `yaml:"max-mutations-without-new-saved"`
	// StorePath is the replay store file. Bugs are not persisted when empty.
	StorePath string `yaml:"store-path"`
	// Verbose turns on the debug logs of every scheduling step.
	Verbose bool `yaml:"verbose"`

	// Logger receives the session logs. Defaults to log.DefaultLogger, or
	// log.DebugLogger when Verbose is set.
	Logger log.Logger `yaml:"-"`
	// MeterProvider creates the session instruments. The global provider is
	// used when nil.
	MeterProvider metric.MeterProvider `yaml:"-"`
}

var _ validation.Validator = (*Config)(nil)

// New creates a Config populated with defaults and the given options.
func New(opts ...Option) *Config {
	config := &Config{
		Strategy:                    DefaultStrategy,
		StrategyBound:               DefaultStrategyBound,
		Iterations:                  DefaultIterations,
		MaxSteps:                    DefaultMaxSteps,
		FairMaxSteps:                DefaultFairMaxSteps,
		ScheduleMutationBound:       feedback.DefaultScheduleMutationBound,
		MaxMutationsWithoutNewSaved: feedback.DefaultMaxMutationsWithoutNewSaved,
	}

	for _, opt := range opts {
		opt.Apply(config)
	}

	config.Sanitize()
	return config
}

// Validate implements validation.Validator.
func (c *Config) Validate() error {
	return validation.New(validation.AllErrors()).
		AddValidator(validation.NewOneOfValidator("Strategy", c.Strategy, Strategies...)).
		AddValidator(check(c.StrategyBound >= 0, perrors.ErrInvalidStrategyBound)).
		AddValidator(check(c.Iterations > 0, perrors.ErrInvalidIterations)).
		AddValidator(check(c.MaxSteps > 0, perrors.ErrInvalidMaxSteps)).
		AddAssertion(c.FairMaxSteps >= c.MaxSteps, "FairMaxSteps must not be lower than MaxSteps").
		AddValidator(check(c.Timeout >= 0, perrors.ErrInvalidTimeout)).
		AddValidator(validation.NewMinValidator("ScheduleMutationBound", c.ScheduleMutationBound, 0)).
		AddValidator(validation.NewMinValidator("MaxMutationsWithoutNewSaved", c.MaxMutationsWithoutNewSaved, 0)).
		Validate()
}

// Sanitize normalizes the strategy name and fills the zero-value fields
// with defaults.
func (c *Config) Sanitize() {
	c.Strategy = strings.ToLower(strings.TrimSpace(c.Strategy))
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	}

	if c.Iterations == 0 {
		c.Iterations = DefaultIterations
	}

	if c.MaxSteps == 0 {
		c.MaxSteps = DefaultMaxSteps
	}

	if c.FairMaxSteps == 0 {
		c.FairMaxSteps = max(DefaultFairMaxSteps, c.MaxSteps)
	}

	if c.Logger == nil {
		c.Logger = log.DefaultLogger
		if c.Verbose {
			c.Logger = log.DebugLogger
		}
	}
}

// StepBound returns the scheduling steps bound of an iteration driven by a
// strategy of the given fairness.
func (c *Config) StepBound(fair bool) int {
	if fair {
		return c.FairMaxSteps
	}
	return c.MaxSteps
}

func check(cond bool, err error) validation.Validator {
	return validation.ValidatorFunc(func() error {
		if !cond {
			return err
		}
		return nil
	})
}
