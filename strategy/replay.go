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
	"fmt"

	"github.com/tochemey/pcheck/clock"
	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/replay"
)

// Replay answers every question with the recorded decisions.
//
// The first time the execution asks a question the record cannot answer,
// either because the kinds differ, the recorded operation is not enabled or
// the record is exhausted, Replay stops answering and Err reports the
// divergence.
type Replay struct {
	record *replay.Record
	cursor int
	err    error
}

// enforce compilation error
var _ Strategy = (*Replay)(nil)

// NewReplay creates a Replay strategy over the given record.
func NewReplay(record *replay.Record) *Replay {
	return &Replay{record: record}
}

// InitializeNextIteration implements Strategy. Every iteration replays the
// record from its first decision.
func (r *Replay) InitializeNextIteration(int) bool {
	r.Reset()
	return true
}

// NextOperation implements Strategy.
func (r *Replay) NextOperation(ops []Operation, _ Operation) (Operation, bool) {
	decision, ok := r.next(replay.KindOperation)
	if !ok {
		return nil, false
	}
	for _, op := range ops {
		if op.OperationID() == uint64(decision.Value) {
			return op, true
		}
	}
	r.diverge(fmt.Sprintf("operation %d is not enabled", decision.Value))
	return nil, false
}

// NextBool implements Strategy.
func (r *Replay) NextBool(int) bool {
	decision, ok := r.next(replay.KindBool)
	return ok && decision.Value == 1
}

// NextInt implements Strategy.
func (r *Replay) NextInt(maxValue int) int {
	decision, ok := r.next(replay.KindInt)
	if !ok {
		return 0
	}
	if decision.Value < 0 || decision.Value >= int64(max(maxValue, 1)) {
		r.diverge(fmt.Sprintf("value %d is out of [0, %d)", decision.Value, maxValue))
		return 0
	}
	return int(decision.Value)
}

// SampleDelay implements DelaySampler.
func (r *Replay) SampleDelay(string) (bool, clock.Duration) {
	decision, ok := r.next(replay.KindDelay)
	if !ok || !decision.Sampled {
		return false, 0
	}
	return true, clock.Duration(decision.Value)
}

// StepCount implements Strategy.
func (r *Replay) StepCount() int { return r.cursor }

// IsFair implements Strategy.
func (r *Replay) IsFair() bool { return true }

// Description implements Strategy.
func (r *Replay) Description() string {
	return fmt.Sprintf("replay[record=%s]", r.record.ID)
}

// Reset implements Strategy.
func (r *Replay) Reset() {
	r.cursor = 0
	r.err = nil
}

// Err returns the divergence between the execution and the record, if any.
func (r *Replay) Err() error { return r.err }

// Done reports whether every recorded decision has been consumed.
func (r *Replay) Done() bool {
	return r.cursor >= len(r.record.Decisions)
}

func (r *Replay) next(kind replay.Kind) (replay.Decision, bool) {
	if r.err != nil {
		return replay.Decision{}, false
	}
	if r.cursor >= len(r.record.Decisions) {
		r.err = fmt.Errorf("(decision=%d) %w", r.cursor, perrors.ErrReplayExhausted)
		return replay.Decision{}, false
	}

	decision := r.record.Decisions[r.cursor]
	if decision.Kind != kind {
		r.diverge(fmt.Sprintf("expected a %s decision, recorded %s", kind, decision))
		return replay.Decision{}, false
	}
	r.cursor++
	return decision, true
}

func (r *Replay) diverge(reason string) {
	if r.err == nil {
		r.err = perrors.NewErrReplayDiverged(r.cursor, reason)
	}
}
