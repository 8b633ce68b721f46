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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type measurement struct {
	value int64
	attrs attribute.Set
}

type recordingCounter struct {
	noop.Int64Counter
	measurements []measurement
}

func (c *recordingCounter) Add(_ context.Context, incr int64, opts ...metric.AddOption) {
	c.measurements = append(c.measurements, measurement{incr, metric.NewAddConfig(opts).Attributes()})
}

type recordingUpDownCounter struct {
	noop.Int64UpDownCounter
	measurements []measurement
}

func (c *recordingUpDownCounter) Add(_ context.Context, incr int64, opts ...metric.AddOption) {
	c.measurements = append(c.measurements, measurement{incr, metric.NewAddConfig(opts).Attributes()})
}

type recordingHistogram struct {
	noop.Int64Histogram
	measurements []measurement
}

func (h *recordingHistogram) Record(_ context.Context, value int64, opts ...metric.RecordOption) {
	h.measurements = append(h.measurements, measurement{value, metric.NewRecordConfig(opts).Attributes()})
}

type recordingMeter struct {
	noop.Meter
	counters   map[string]*recordingCounter
	histograms map[string]*recordingHistogram
	upDowns    map[string]*recordingUpDownCounter
	failOn     string
}

func newRecordingMeter() *recordingMeter {
	return &recordingMeter{
		counters:   make(map[string]*recordingCounter),
		histograms: make(map[string]*recordingHistogram),
		upDowns:    make(map[string]*recordingUpDownCounter),
	}
}

func (m *recordingMeter) Int64Counter(name string, _ ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	if name == m.failOn {
		return nil, errors.New("instrument refused")
	}
	counter := &recordingCounter{}
	m.counters[name] = counter
	return counter, nil
}

func (m *recordingMeter) Int64Histogram(name string, _ ...metric.Int64HistogramOption) (metric.Int64Histogram, error) {
	if name == m.failOn {
		return nil, errors.New("instrument refused")
	}
	histogram := &recordingHistogram{}
	m.histograms[name] = histogram
	return histogram, nil
}

func (m *recordingMeter) Int64UpDownCounter(name string, _ ...metric.Int64UpDownCounterOption) (metric.Int64UpDownCounter, error) {
	if name == m.failOn {
		return nil, errors.New("instrument refused")
	}
	counter := &recordingUpDownCounter{}
	m.upDowns[name] = counter
	return counter, nil
}

type recorderMeterProvider struct {
	noop.MeterProvider
	called []string
	meter  metric.Meter
}

func (p *recorderMeterProvider) Meter(name string, _ ...metric.MeterOption) metric.Meter {
	p.called = append(p.called, name)
	return p.meter
}

func strategyOf(t *testing.T, attrs attribute.Set) string {
	t.Helper()
	value, ok := attrs.Value(strategyKey)
	require.True(t, ok)
	return value.AsString()
}

func TestNewUsesGlobalProvider(t *testing.T) {
	prevProvider := otel.GetMeterProvider()
	recorder := &recorderMeterProvider{meter: noop.NewMeterProvider().Meter("base")}
	otel.SetMeterProvider(recorder)
	t.Cleanup(func() {
		otel.SetMeterProvider(prevProvider)
	})

	telemetry, err := New()
	require.NoError(t, err)
	require.Equal(t, recorder, telemetry.MeterProvider())
	require.Equal(t, recorder.meter, telemetry.Meter())
	require.NotNil(t, telemetry.Metrics())
	require.Equal(t, []string{instrumentationName}, recorder.called)
}

func TestWithMeterProvider(t *testing.T) {
	t.Run("With a custom provider", func(t *testing.T) {
		custom := &recorderMeterProvider{meter: newRecordingMeter()}
		telemetry, err := New(WithMeterProvider(custom))
		require.NoError(t, err)
		require.Equal(t, custom, telemetry.MeterProvider())
		require.Equal(t, []string{instrumentationName}, custom.called)
	})
	t.Run("With a nil provider", func(t *testing.T) {
		telemetry, err := New(WithMeterProvider(nil))
		require.NoError(t, err)
		require.Equal(t, otel.GetMeterProvider(), telemetry.MeterProvider())
	})
	t.Run("With an instrument failure", func(t *testing.T) {
		meter := newRecordingMeter()
		meter.failOn = stepsHistogramName
		telemetry, err := New(WithMeterProvider(&recorderMeterProvider{meter: meter}))
		require.Error(t, err)
		require.Nil(t, telemetry)
		assert.Contains(t, err.Error(), "failed to create steps instrument")
	})
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	meter := newRecordingMeter()
	metrics, err := NewMetrics(meter)
	require.NoError(t, err)

	metrics.RecordIteration(ctx, "random", 12)
	metrics.RecordIteration(ctx, "pct[bound=2]", 30)
	metrics.RecordBug(ctx, "pct[bound=2]", "deadlock")
	metrics.RecordSaved(ctx, "feedback", 2)
	metrics.RecordSaved(ctx, "feedback", 0)

	iterations := meter.counters[iterationsCounterName].measurements
	require.Len(t, iterations, 2)
	assert.Equal(t, "random", strategyOf(t, iterations[0].attrs))

	steps := meter.histograms[stepsHistogramName].measurements
	require.Len(t, steps, 2)
	assert.EqualValues(t, 30, steps[1].value)
	assert.Equal(t, "pct[bound=2]", strategyOf(t, steps[1].attrs))

	bugs := meter.counters[bugsCounterName].measurements
	require.Len(t, bugs, 1)
	kind, ok := bugs[0].attrs.Value(bugKey)
	require.True(t, ok)
	assert.Equal(t, "deadlock", kind.AsString())

	saved := meter.upDowns[savedCounterName].measurements
	require.Len(t, saved, 1)
	assert.EqualValues(t, 2, saved[0].value)
}
