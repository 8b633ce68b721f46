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

// Package strategy implements the scheduling strategies that drive a
// controlled execution.
//
// A strategy answers every nondeterministic question an iteration asks:
// which operation runs next, how long a message is delayed and which value
// a nondeterministic choice takes. Its answers are a pure function of the
// generators it consumes, hence replaying the same generators yields the
// same execution.
package strategy

import "github.com/tochemey/pcheck/clock"

// Operation is a schedulable unit of work, usually an actor.
type Operation interface {
	// OperationID returns the unique identifier of the operation within an iteration.
	OperationID() uint64
	// OperationName returns a human readable name.
	OperationName() string
}

// DelaySampler samples delivery delays.
type DelaySampler interface {
	// SampleDelay samples the distribution named by tag. It returns false
	// when no delay applies, either because the tag is empty or because it
	// cannot be parsed.
	SampleDelay(tag string) (bool, clock.Duration)
}

// Strategy is the decision oracle of a controlled execution.
type Strategy interface {
	DelaySampler
	// InitializeNextIteration prepares the given zero based iteration. It
	// returns false when the strategy has nothing left to explore.
	InitializeNextIteration(iteration int) bool
	// NextOperation picks the operation to run among the enabled ones.
	// current is the operation that ran last and may be nil.
	NextOperation(ops []Operation, current Operation) (Operation, bool)
	// NextBool returns a nondeterministic boolean, true with probability
	// 1/maxValue.
	NextBool(maxValue int) bool
	// NextInt returns a nondeterministic value in [0, maxValue).
	NextInt(maxValue int) int
	// StepCount returns the number of decisions taken in the current iteration.
	StepCount() int
	// IsFair reports whether the strategy eventually schedules every enabled operation.
	IsFair() bool
	// Description describes the strategy and its parameters.
	Description() string
	// Reset clears the per iteration state.
	Reset()
}

func indexOf(ops []Operation, op Operation) int {
	if op == nil {
		return -1
	}
	for i, candidate := range ops {
		if candidate.OperationID() == op.OperationID() {
			return i
		}
	}
	return -1
}
