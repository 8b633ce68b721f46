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

package strategy

import (
	"slices"

	"github.com/tochemey/pcheck/clock"
	"github.com/tochemey/pcheck/replay"
)

// Recorder decorates a Strategy and records every decision of the current
// iteration. The recorded decisions replay the iteration through Replay.
type Recorder struct {
	inner     Strategy
	decisions []replay.Decision
}

// enforce compilation error
var _ Strategy = (*Recorder)(nil)

// NewRecorder wraps the given strategy.
func NewRecorder(inner Strategy) *Recorder {
	return &Recorder{inner: inner}
}

// InitializeNextIteration implements Strategy. Decisions of the previous
// iteration are discarded.
func (r *Recorder) InitializeNextIteration(iteration int) bool {
	r.decisions = r.decisions[:0]
	return r.inner.InitializeNextIteration(iteration)
}

// NextOperation implements Strategy.
func (r *Recorder) NextOperation(ops []Operation, current Operation) (Operation, bool) {
	op, ok := r.inner.NextOperation(ops, current)
	if ok {
		r.decisions = append(r.decisions, replay.Decision{Kind: replay.KindOperation, Value: int64(op.OperationID())})
	}
	return op, ok
}

// NextBool implements Strategy.
func (r *Recorder) NextBool(maxValue int) bool {
	value := r.inner.NextBool(maxValue)
	decision := replay.Decision{Kind: replay.KindBool}
	if value {
		decision.Value = 1
	}
	r.decisions = append(r.decisions, decision)
	return value
}

// NextInt implements Strategy.
func (r *Recorder) NextInt(maxValue int) int {
	value := r.inner.NextInt(maxValue)
	r.decisions = append(r.decisions, replay.Decision{Kind: replay.KindInt, Value: int64(value)})
	return value
}

// SampleDelay implements DelaySampler.
func (r *Recorder) SampleDelay(tag string) (bool, clock.Duration) {
	sampled, delay := r.inner.SampleDelay(tag)
	r.decisions = append(r.decisions, replay.Decision{Kind: replay.KindDelay, Value: int64(delay), Sampled: sampled})
	return sampled, delay
}

// StepCount implements Strategy.
func (r *Recorder) StepCount() int { return r.inner.StepCount() }

// IsFair implements Strategy.
func (r *Recorder) IsFair() bool { return r.inner.IsFair() }

// Description implements Strategy.
func (r *Recorder) Description() string { return r.inner.Description() }

// Reset implements Strategy.
func (r *Recorder) Reset() {
	r.decisions = r.decisions[:0]
	r.inner.Reset()
}

// Decisions returns a copy of the decisions recorded in the current iteration.
func (r *Recorder) Decisions() []replay.Decision {
	return slices.Clone(r.decisions)
}

// Inner returns the decorated strategy.
func (r *Recorder) Inner() Strategy { return r.inner }
