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

// Package generator provides the reproducible decision streams consumed by
// the scheduling strategies.
//
// A generator is never modified in place by a derivation: Copy returns an
// independent branch that replays the very same decisions, and Mutate
// returns a variant that shares a prefix of the parent history before
// diverging. Both are pure functions of the parent seed and history, which is
// what makes a recorded search session replayable.
package generator

// Input drives the values a program under test observes, such as the
// results of nondeterministic boolean or integer choices.
type Input interface {
	// NextInt returns a value in [0, maxValue). It returns 0 without
	// consuming the stream when maxValue is lower than two.
	NextInt(maxValue int) int
	// NextBool returns the next boolean choice.
	NextBool() bool
	// NextFloat returns a value in [0, 1).
	NextFloat() float64
	// Copy returns an independent branch with the same history.
	Copy() Input
	// Mutate returns a variant decision stream.
	Mutate() Input
	// Seed returns the seed of the stream suffix.
	Seed() uint64
	// Draws returns the number of raw values drawn so far.
	Draws() int
}

// Schedule drives scheduling decisions: which operation runs next and how
// long a message is delayed.
type Schedule interface {
	// NextIndex returns a value in [0, n). It returns 0 without consuming
	// the stream when n is lower than two.
	NextIndex(n int) int
	// NextFloat returns a value in [0, 1).
	NextFloat() float64
	// Copy returns an independent branch with the same history.
	Copy() Schedule
	// Mutate returns a variant decision stream.
	Mutate() Schedule
	// Seed returns the seed of the stream suffix.
	Seed() uint64
	// Draws returns the number of raw values drawn so far.
	Draws() int
}

// RandomInput is an Input backed by a seeded pseudo-random stream.
type RandomInput struct {
	stream *stream
}

// enforce compilation error
var _ Input = (*RandomInput)(nil)

// NewRandomInput creates an Input seeded with the given value.
func NewRandomInput(seed uint64) *RandomInput {
	return &RandomInput{stream: newStream(seed, nil)}
}

// NextInt returns a value in [0, maxValue).
func (x *RandomInput) NextInt(maxValue int) int {
	return x.stream.intn(maxValue)
}

// NextBool returns the next boolean choice.
func (x *RandomInput) NextBool() bool {
	return x.stream.next()&1 == 1
}

// NextFloat returns a value in [0, 1).
func (x *RandomInput) NextFloat() float64 {
	return x.stream.float()
}

// Copy returns an independent branch with the same history.
func (x *RandomInput) Copy() Input {
	return &RandomInput{stream: x.stream.copy()}
}

// Mutate returns a variant decision stream.
func (x *RandomInput) Mutate() Input {
	return &RandomInput{stream: x.stream.mutate()}
}

// Seed returns the seed of the stream suffix.
func (x *RandomInput) Seed() uint64 { return x.stream.seed }

// Draws returns the number of raw values drawn so far.
func (x *RandomInput) Draws() int { return len(x.stream.drawn) }

// RandomSchedule is a Schedule backed by a seeded pseudo-random stream.
type RandomSchedule struct {
	stream *stream
}

// enforce compilation error
var _ Schedule = (*RandomSchedule)(nil)

// NewRandomSchedule creates a Schedule seeded with the given value.
func NewRandomSchedule(seed uint64) *RandomSchedule {
	return &RandomSchedule{stream: newStream(seed, nil)}
}

// NextIndex returns a value in [0, n).
func (x *RandomSchedule) NextIndex(n int) int {
	return x.stream.intn(n)
}

// NextFloat returns a value in [0, 1).
func (x *RandomSchedule) NextFloat() float64 {
	return x.stream.float()
}

// Copy returns an independent branch with the same history.
func (x *RandomSchedule) Copy() Schedule {
	return &RandomSchedule{stream: x.stream.copy()}
}

// Mutate returns a variant decision stream.
func (x *RandomSchedule) Mutate() Schedule {
	return &RandomSchedule{stream: x.stream.mutate()}
}

// Seed returns the seed of the stream suffix.
func (x *RandomSchedule) Seed() uint64 { return x.stream.seed }

// Draws returns the number of raw values drawn so far.
func (x *RandomSchedule) Draws() int { return len(x.stream.drawn) }
