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

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/tochemey/pcheck/strategy"
)

// PortfolioStrategies returns the strategies explored by a portfolio
// session: the strategy.Portfolio set followed by a feedback strategy.
func (e *Engine) PortfolioStrategies() []strategy.Strategy {
	strategies := strategy.Portfolio(e.config.Seed, e.config.StrategyBound)
	return append(strategies, newFeedback(e.config, e.config.Seed+uint64(len(strategies))))
}

// RunPortfolio explores the test with every portfolio strategy in
// parallel, one goroutine per strategy. Every strategy stops as soon as
// one of them finds a bug. The reports are returned in the order of
// PortfolioStrategies.
func (e *Engine) RunPortfolio(ctx context.Context, test *Test) ([]*Report, error) {
	strategies := e.PortfolioStrategies()
	reports := make([]*Report, len(strategies))
	stop := atomic.NewBool(false)

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	for index, strat := range strategies {
		eg.Go(func() error {
			report, err := e.explore(ctx, test, strat, e.config.Seed+uint64(index), stop)
			reports[index] = report
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}

// Summarize merges portfolio reports. The first report holding a bug is
// returned when there is one, otherwise the counters are summed up.
func Summarize(test string, reports []*Report) *Report {
	summary := &Report{Test: test, Strategy: "portfolio"}
	for _, report := range reports {
		if report == nil {
			continue
		}

		if report.Found() {
			return report
		}

		summary.Iterations += report.Iterations
		summary.Steps += report.Steps
		summary.MaxStepsHits += report.MaxStepsHits
		summary.Saved += report.Saved
		summary.Duration = max(summary.Duration, report.Duration)
	}
	return summary
}
