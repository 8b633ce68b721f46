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

package checker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/tochemey/pcheck/config"
	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/feedback"
	"github.com/tochemey/pcheck/internal/errorschain"
	"github.com/tochemey/pcheck/log"
	"github.com/tochemey/pcheck/replay"
	"github.com/tochemey/pcheck/strategy"
	"github.com/tochemey/pcheck/telemetry"
)

var errSessionTimeout = errors.New("session timed out")

// Report summarizes the exploration of a test by one strategy.
type Report struct {
	Test     string
	Strategy string
	// Iterations is the number of completed iterations.
	Iterations int
	// Steps is the total number of scheduling steps.
	Steps int
	// MaxStepsHits counts the iterations cut at the steps bound.
	MaxStepsHits int
	// Saved counts the behaviors saved by the feedback strategy.
	Saved int
	// Bug is the first bug found, nil when none.
	Bug *Bug
	// Record is the replayable trace of the buggy iteration.
	Record *replay.Record
	// Timeline holds the mailbox operations of the buggy iteration.
	Timeline *Timeline
	Duration time.Duration
	// Reproduced is set by a replay that found the recorded bug again.
	Reproduced bool
}

// Found reports whether a bug was found.
func (r *Report) Found() bool {
	return r != nil && r.Bug != nil
}

// String implements fmt.Stringer
func (r *Report) String() string {
	if r.Found() {
		return fmt.Sprintf("test=%s strategy=%s iterations=%d steps=%d: %s",
			r.Test, r.Strategy, r.Iterations, r.Steps, r.Bug)
	}
	return fmt.Sprintf("test=%s strategy=%s iterations=%d steps=%d: no bug found",
		r.Test, r.Strategy, r.Iterations, r.Steps)
}

// Engine runs checker sessions.
type Engine struct {
	config    *config.Config
	logger    log.Logger
	telemetry *telemetry.Telemetry
	metrics   *telemetry.Metrics
	store     replay.Store
	session   string
}

// NewEngine creates an Engine for the given configuration. The replay
// store is opened when the configuration names one.
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.New()
	}

	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tel, err := telemetry.New(telemetry.WithMeterProvider(cfg.MeterProvider))
	if err != nil {
		return nil, err
	}

	session := uuid.NewString()
	engine := &Engine{
		config:    cfg,
		logger:    cfg.Logger.With("session", session),
		telemetry: tel,
		metrics:   tel.Metrics(),
		session:   session,
	}

	if cfg.StorePath != "" {
		store, err := replay.OpenBoltStore(ctx, cfg.StorePath)
		if err != nil {
			return nil, err
		}
		engine.store = store
	}
	return engine, nil
}

// Session returns the identifier of the session.
func (e *Engine) Session() string {
	return e.session
}

// Config returns the session configuration.
func (e *Engine) Config() *config.Config {
	return e.config
}

// Close releases the replay store and flushes the logs.
func (e *Engine) Close() error {
	chain := errorschain.New(errorschain.ReturnAll())
	if e.store != nil {
		chain.AddErrorFn(e.store.Close)
	}
	return chain.AddErrorFn(e.logger.Flush).Error()
}

// NewStrategy builds the strategy named by the configuration.
func NewStrategy(cfg *config.Config) (strategy.Strategy, error) {
	switch cfg.Strategy {
	case config.FeedbackStrategy:
		return newFeedback(cfg, cfg.Seed), nil
	case config.PortfolioStrategy:
		return nil, fmt.Errorf("%w: portfolio runs several strategies", perrors.ErrInvalidStrategy)
	default:
		return strategy.New(cfg.Strategy, cfg.StrategyBound, cfg.Seed)
	}
}

func newFeedback(cfg *config.Config, seed uint64) *feedback.Strategy {
	return feedback.New(seed,
		feedback.WithScheduleMutationBound(cfg.ScheduleMutationBound),
		feedback.WithMaxMutationsWithoutNewSaved(cfg.MaxMutationsWithoutNewSaved))
}

// Run explores the test with the configured strategy and stops at the
// first bug. The session timeout ends the exploration without error.
func (e *Engine) Run(ctx context.Context, test *Test) (*Report, error) {
	if e.config.Strategy == config.PortfolioStrategy {
		reports, err := e.RunPortfolio(ctx, test)
		if err != nil {
			return nil, err
		}
		return Summarize(test.Name, reports), nil
	}

	strat, err := NewStrategy(e.config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	return e.explore(ctx, test, strat, e.config.Seed, nil)
}

// explore runs the iterations of the session with the given strategy.
// stop is shared by the strategies of a portfolio, it may be nil.
func (e *Engine) explore(ctx context.Context, test *Test, strat strategy.Strategy, seed uint64, stop *atomic.Bool) (*Report, error) {
	start := time.Now()
	description := strat.Description()
	logger := e.logger.With("test", test.Name, "strategy", description)
	recorder := strategy.NewRecorder(strat)
	feedbackStrategy, _ := strat.(*feedback.Strategy)
	maxSteps := e.config.StepBound(strat.IsFair())
	observer := feedback.NewObserver()

	report := &Report{Test: test.Name, Strategy: description}
	defer func() {
		report.Duration = time.Since(start)
	}()

	logger.Infof("exploring %d iterations with at most %d steps", e.config.Iterations, maxSteps)
	for iteration := 0; iteration < e.config.Iterations; iteration++ {
		if stop != nil && stop.Load() {
			logger.Debug("stopped, a bug was found by another strategy")
			break
		}

		if err := ctx.Err(); err != nil {
			if timedOut(ctx) {
				logger.Warnf("session timed out after %d iterations", report.Iterations)
				break
			}
			return report, err
		}

		if !recorder.InitializeNextIteration(iteration) {
			logger.Infof("nothing left to explore after %d iterations", report.Iterations)
			break
		}

		observer.Reset()
		runtime := NewRuntime(test, recorder,
			WithRuntimeLogger(logger),
			WithMaxSteps(maxSteps, e.config.FailOnMaxSteps),
			WithObserver(observer))

		result, err := runtime.Run(ctx)
		if err != nil {
			if timedOut(ctx) {
				logger.Warnf("session timed out after %d iterations", report.Iterations)
				break
			}
			return report, err
		}

		report.Iterations++
		report.Steps += result.Steps
		if result.MaxStepsReached {
			report.MaxStepsHits++
		}
		e.metrics.RecordIteration(ctx, description, result.Steps)

		if feedbackStrategy != nil && feedbackStrategy.ObserveRun(result.Signature) {
			report.Saved++
			e.metrics.RecordSaved(ctx, description, 1)
		}

		if result.Bug != nil {
			if stop != nil {
				stop.Store(true)
			}

			record := replay.NewRecord(test.Name, description, seed, iteration, recorder.Decisions(), result.Bug.Error())
			record.MaxSteps = maxSteps
			report.Bug = result.Bug
			report.Record = record
			report.Timeline = result.Timeline

			e.metrics.RecordBug(ctx, description, result.Bug.Kind.String())
			logger.Errorf("iteration %d found a %s (record=%s)", iteration, result.Bug, record.ID)
			return report, e.persist(ctx, record)
		}
	}

	logger.Infof("no bug found after %d iterations and %d steps", report.Iterations, report.Steps)
	return report, nil
}

// Replay runs the recorded iteration again and reports whether it ends
// with the recorded bug.
func (e *Engine) Replay(ctx context.Context, test *Test, record *replay.Record) (*Report, error) {
	if record.Test != test.Name {
		return nil, fmt.Errorf("(record=%s, test=%s) %w", record.ID, test.Name, perrors.ErrRecordMismatch)
	}

	start := time.Now()
	strat := strategy.NewReplay(record)
	strat.InitializeNextIteration(record.Iteration)
	maxSteps := record.MaxSteps
	if maxSteps <= 0 {
		maxSteps = e.config.StepBound(true)
	}

	logger := e.logger.With("test", test.Name, "record", record.ID)
	runtime := NewRuntime(test, strat,
		WithRuntimeLogger(logger),
		WithMaxSteps(maxSteps, true))

	result, err := runtime.Run(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Test:       test.Name,
		Strategy:   strat.Description(),
		Iterations: 1,
		Steps:      result.Steps,
		Bug:        result.Bug,
		Record:     record,
		Timeline:   result.Timeline,
		Duration:   time.Since(start),
	}

	if result.Bug == nil {
		if err := strat.Err(); err != nil {
			return report, err
		}
		report.Reproduced = record.Bug == ""
	} else {
		report.Reproduced = result.Bug.Error() == record.Bug
	}

	if report.Reproduced {
		logger.Infof("replay reproduced: %s", record.Bug)
	} else {
		logger.Warnf("replay did not reproduce %q", record.Bug)
	}
	return report, nil
}

// ReplayByID loads the record from the replay store and replays it.
func (e *Engine) ReplayByID(ctx context.Context, test *Test, id string) (*Report, error) {
	if e.store == nil {
		return nil, perrors.ErrStoreNotConfigured
	}

	record, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.Replay(ctx, test, record)
}

// Records lists the stored records of the test.
func (e *Engine) Records(ctx context.Context, test string) ([]*replay.Record, error) {
	if e.store == nil {
		return nil, perrors.ErrStoreNotConfigured
	}
	return e.store.List(ctx, test)
}

func (e *Engine) persist(ctx context.Context, record *replay.Record) error {
	if e.store == nil {
		return nil
	}

	if err := e.store.Put(context.WithoutCancel(ctx), record); err != nil {
		e.logger.Errorf("failed to persist record %s: %v", record.ID, err)
		return err
	}
	return nil
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeoutCause(ctx, e.config.Timeout, errSessionTimeout)
}

func timedOut(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), errSessionTimeout)
}
