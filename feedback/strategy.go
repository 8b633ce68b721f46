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

package feedback

import (
	"fmt"

	"github.com/tochemey/pcheck/clock"
	"github.com/tochemey/pcheck/strategy"
)

const (
	// DefaultScheduleMutationBound is the number of consecutive runs without
	// a new behavior after which the input generator is mutated instead of
	// the schedule generator.
	DefaultScheduleMutationBound = 25
	// DefaultMaxMutationsWithoutNewSaved is the number of consecutive runs
	// without a new behavior after which the search restarts from the next
	// saved pair.
	DefaultMaxMutationsWithoutNewSaved = 50
)

// Mutation tells how the current pair was derived from the previous one.
type Mutation int

const (
	// NoMutation means the pair is the initial one or was taken from the pool.
	NoMutation Mutation = iota
	// ScheduleMutation means the input was copied and the schedule mutated.
	ScheduleMutation
	// InputMutation means the input was mutated and the schedule copied.
	InputMutation
)

// String implements fmt.Stringer
func (m Mutation) String() string {
	switch m {
	case ScheduleMutation:
		return "schedule"
	case InputMutation:
		return "input"
	default:
		return "none"
	}
}

// Option is the interface that applies a Strategy option.
type Option interface {
	// Apply sets the Option value of a Strategy.
	Apply(s *Strategy)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(s *Strategy)

// Apply applies the Strategy option
func (f OptionFunc) Apply(s *Strategy) {
	f(s)
}

// WithScheduleMutationBound sets the number of stagnating runs tolerated
// before switching to input mutation.
func WithScheduleMutationBound(bound int) Option {
	return OptionFunc(func(s *Strategy) {
		s.scheduleMutationBound = bound
	})
}

// WithMaxMutationsWithoutNewSaved sets the number of stagnating runs
// tolerated before restarting from the next saved pair.
func WithMaxMutationsWithoutNewSaved(bound int) Option {
	return OptionFunc(func(s *Strategy) {
		s.maxMutationsWithoutNewSaved = bound
	})
}

// Strategy is the two stage feedback guided strategy.
//
// Decisions are delegated to a random strategy over the current pair of
// generators. After every run the caller reports the behavior signature
// through ObserveRun, and the next iteration runs a variant of the current
// pair: while the search keeps finding new behaviors only the schedule is
// mutated, once it stagnates for more than the schedule mutation bound the
// input is mutated instead. After too many runs without a new behavior the
// search restarts from the next saved pair.
type Strategy struct {
	pool    *Pool
	seed    uint64
	current Pair
	random  *strategy.Random

	mutation Mutation

	// runs without a new behavior since the last input change
	stagnation int
	// runs without a new behavior since the last saved pair
	withoutNewSaved int

	nextSaved int
	restarts  uint64

	scheduleMutationBound       int
	maxMutationsWithoutNewSaved int
}

// enforce compilation error
var _ strategy.Strategy = (*Strategy)(nil)

// New creates a two stage feedback strategy seeded with the given seed.
func New(seed uint64, opts ...Option) *Strategy {
	input, schedule := strategy.Generators(seed)
	s := &Strategy{
		pool:                        NewPool(),
		seed:                        seed,
		current:                     Pair{Input: input, Schedule: schedule},
		scheduleMutationBound:       DefaultScheduleMutationBound,
		maxMutationsWithoutNewSaved: DefaultMaxMutationsWithoutNewSaved,
	}

	for _, opt := range opts {
		opt.Apply(s)
	}

	s.random = strategy.NewRandom(s.current.Input, s.current.Schedule)
	return s
}

// InitializeNextIteration implements strategy.Strategy. Every iteration but
// the first one runs a pair derived from the previous one.
func (s *Strategy) InitializeNextIteration(iteration int) bool {
	if iteration > 0 {
		if s.withoutNewSaved > s.maxMutationsWithoutNewSaved {
			s.MoveToNextInput()
		}
		s.current = s.mutate(s.current)
	}

	s.random = strategy.NewRandom(s.current.Input, s.current.Schedule)
	return s.random.InitializeNextIteration(iteration)
}

// ObserveRun reports the behavior signature of the run that just ended.
// It returns whether the behavior was new, in which case the pair that
// produced it is saved.
func (s *Strategy) ObserveRun(signature uint64) bool {
	if s.pool.Observe(s.current, signature) {
		s.stagnation = 0
		s.withoutNewSaved = 0
		return true
	}
	s.stagnation++
	s.withoutNewSaved++
	return false
}

// MoveToNextInput restarts the search from the next saved pair, or from
// fresh generators when nothing has been saved yet. The stagnation counter
// is reset.
func (s *Strategy) MoveToNextInput() {
	if s.pool.Len() == 0 {
		s.restarts++
		input, schedule := strategy.Generators(s.seed + s.restarts)
		s.current = Pair{Input: input, Schedule: schedule}
	} else {
		s.current = s.pool.At(s.nextSaved % s.pool.Len()).Copy()
		s.nextSaved++
	}

	s.mutation = NoMutation
	s.stagnation = 0
	s.withoutNewSaved = 0
}

// mutate derives the next pair. The stagnation counter is reset when
// switching to input mutation.
func (s *Strategy) mutate(prev Pair) Pair {
	if s.stagnation > s.scheduleMutationBound {
		s.stagnation = 0
		s.mutation = InputMutation
		return Pair{Input: prev.Input.Mutate(), Schedule: prev.Schedule.Copy()}
	}
	s.mutation = ScheduleMutation
	return Pair{Input: prev.Input.Copy(), Schedule: prev.Schedule.Mutate()}
}

// NextOperation implements strategy.Strategy.
func (s *Strategy) NextOperation(ops []strategy.Operation, current strategy.Operation) (strategy.Operation, bool) {
	return s.random.NextOperation(ops, current)
}

// NextBool implements strategy.Strategy.
func (s *Strategy) NextBool(maxValue int) bool {
	return s.random.NextBool(maxValue)
}

// NextInt implements strategy.Strategy.
func (s *Strategy) NextInt(maxValue int) int {
	return s.random.NextInt(maxValue)
}

// SampleDelay implements strategy.DelaySampler.
func (s *Strategy) SampleDelay(tag string) (bool, clock.Duration) {
	return s.random.SampleDelay(tag)
}

// StepCount implements strategy.Strategy.
func (s *Strategy) StepCount() int { return s.random.StepCount() }

// IsFair implements strategy.Strategy.
func (s *Strategy) IsFair() bool { return true }

// Description implements strategy.Strategy.
func (s *Strategy) Description() string {
	return fmt.Sprintf("feedback[schedule-bound=%d,restart-bound=%d]",
		s.scheduleMutationBound, s.maxMutationsWithoutNewSaved)
}

// Reset implements strategy.Strategy.
func (s *Strategy) Reset() { s.random.Reset() }

// StagnationCounter returns the number of consecutive runs without a new
// behavior since the input last changed.
func (s *Strategy) StagnationCounter() int { return s.stagnation }

// PoolSize returns the number of saved pairs.
func (s *Strategy) PoolSize() int { return s.pool.Len() }

// Current returns the pair driving the current iteration.
func (s *Strategy) Current() Pair { return s.current }

// LastMutation returns how the current pair was derived.
func (s *Strategy) LastMutation() Mutation { return s.mutation }
