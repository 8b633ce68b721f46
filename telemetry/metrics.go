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

package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	iterationsCounterName = "pcheck.iterations.count"
	bugsCounterName       = "pcheck.bugs.count"
	stepsHistogramName    = "pcheck.iteration.steps"
	savedCounterName      = "pcheck.feedback.saved"

	strategyKey = attribute.Key("strategy")
	bugKey      = attribute.Key("bug")
)

// Metrics groups the instruments of a checker session.
//
// Instruments:
//   - pcheck.iterations.count  (Int64Counter)
//   - pcheck.bugs.count        (Int64Counter)
//   - pcheck.iteration.steps   (Int64Histogram)
//   - pcheck.feedback.saved    (Int64UpDownCounter)
//
// Every measurement carries the description of the strategy that produced it.
type Metrics struct {
	iterations metric.Int64Counter
	bugs       metric.Int64Counter
	steps      metric.Int64Histogram
	saved      metric.Int64UpDownCounter
}

// NewMetrics creates the session instruments using the provided Meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	metrics := new(Metrics)
	var err error

	if metrics.iterations, err = meter.Int64Counter(
		iterationsCounterName,
		metric.WithDescription("The total number of explored iterations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create iterations instrument: %w", err)
	}

	if metrics.bugs, err = meter.Int64Counter(
		bugsCounterName,
		metric.WithDescription("The total number of bugs found"),
	); err != nil {
		return nil, fmt.Errorf("failed to create bugs instrument: %w", err)
	}

	if metrics.steps, err = meter.Int64Histogram(
		stepsHistogramName,
		metric.WithDescription("The number of scheduling steps of an iteration"),
		metric.WithUnit("{step}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create steps instrument: %w", err)
	}

	if metrics.saved, err = meter.Int64UpDownCounter(
		savedCounterName,
		metric.WithDescription("The number of generator pairs saved by the feedback strategy"),
	); err != nil {
		return nil, fmt.Errorf("failed to create saved instrument: %w", err)
	}

	return metrics, nil
}

// RecordIteration records a finished iteration and its number of steps.
func (m *Metrics) RecordIteration(ctx context.Context, strategy string, steps int) {
	attrs := metric.WithAttributes(strategyKey.String(strategy))
	m.iterations.Add(ctx, 1, attrs)
	m.steps.Record(ctx, int64(steps), attrs)
}

// RecordBug records a bug of the given kind.
func (m *Metrics) RecordBug(ctx context.Context, strategy, kind string) {
	m.bugs.Add(ctx, 1, metric.WithAttributes(strategyKey.String(strategy), bugKey.String(kind)))
}

// RecordSaved records the generator pairs newly saved by a feedback strategy.
func (m *Metrics) RecordSaved(ctx context.Context, strategy string, delta int) {
	if delta == 0 {
		return
	}
	m.saved.Add(ctx, int64(delta), metric.WithAttributes(strategyKey.String(strategy)))
}
