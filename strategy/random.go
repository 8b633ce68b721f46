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
	"github.com/tochemey/pcheck/clock"
	"github.com/tochemey/pcheck/generator"
)

// Random schedules a uniformly chosen enabled operation at every step.
//
// Data choices are drawn from the input generator. Scheduling choices and
// delays are drawn from the schedule generator. Generators are never reset
// between iterations, so every iteration explores a new part of the streams.
type Random struct {
	input    generator.Input
	schedule generator.Schedule
	delays   *delays
	steps    int
}

// enforce compilation error
var _ Strategy = (*Random)(nil)

// NewRandom creates a Random strategy over the given generators.
func NewRandom(input generator.Input, schedule generator.Schedule) *Random {
	return &Random{
		input:    input,
		schedule: schedule,
		delays:   newDelays(),
	}
}

// InitializeNextIteration implements Strategy.
func (r *Random) InitializeNextIteration(int) bool {
	r.steps = 0
	return true
}

// NextOperation implements Strategy.
func (r *Random) NextOperation(ops []Operation, _ Operation) (Operation, bool) {
	if len(ops) == 0 {
		return nil, false
	}
	r.steps++
	return ops[r.schedule.NextIndex(len(ops))], true
}

// NextBool implements Strategy.
func (r *Random) NextBool(maxValue int) bool {
	r.steps++
	return r.input.NextInt(maxValue) == 0
}

// NextInt implements Strategy.
func (r *Random) NextInt(maxValue int) int {
	r.steps++
	return r.input.NextInt(maxValue)
}

// SampleDelay implements DelaySampler.
func (r *Random) SampleDelay(tag string) (bool, clock.Duration) {
	return r.delays.sample(r.schedule, tag)
}

// StepCount implements Strategy.
func (r *Random) StepCount() int { return r.steps }

// IsFair implements Strategy.
func (r *Random) IsFair() bool { return true }

// Description implements Strategy.
func (r *Random) Description() string { return "random" }

// Reset implements Strategy.
func (r *Random) Reset() { r.steps = 0 }

// Input returns the input generator.
func (r *Random) Input() generator.Input { return r.input }

// Schedule returns the schedule generator.
func (r *Random) Schedule() generator.Schedule { return r.schedule }
