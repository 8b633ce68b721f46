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

// Package telemetry exposes the OpenTelemetry instruments recorded while a
// checker session explores a test.
package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/tochemey/pcheck/telemetry"
)

// Telemetry holds the meter and the instruments of a checker session.
type Telemetry struct {
	meterProvider metric.MeterProvider
	meter         metric.Meter
	metrics       *Metrics
}

// Option is the interface that applies a Telemetry option.
type Option interface {
	// Apply sets the Option value of a Telemetry.
	Apply(*Telemetry)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Telemetry)

// Apply applies the Telemetry option
func (f OptionFunc) Apply(t *Telemetry) {
	f(t)
}

// WithMeterProvider specifies the meter provider used to create the
// instruments. A nil provider keeps the global one.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(t *Telemetry) {
		if provider != nil {
			t.meterProvider = provider
		}
	})
}

// New creates the session Telemetry. The global meter provider is used
// unless WithMeterProvider says otherwise.
func New(opts ...Option) (*Telemetry, error) {
	telemetry := &Telemetry{
		meterProvider: otel.GetMeterProvider(),
	}

	for _, opt := range opts {
		opt.Apply(telemetry)
	}

	telemetry.meter = telemetry.meterProvider.Meter(instrumentationName)
	metrics, err := NewMetrics(telemetry.meter)
	if err != nil {
		return nil, err
	}

	telemetry.metrics = metrics
	return telemetry, nil
}

// Meter returns the Meter used by this Telemetry.
func (t *Telemetry) Meter() metric.Meter {
	return t.meter
}

// MeterProvider returns the provider the meter was created from.
func (t *Telemetry) MeterProvider() metric.MeterProvider {
	return t.meterProvider
}

// Metrics returns the session instruments.
func (t *Telemetry) Metrics() *Metrics {
	return t.metrics
}
