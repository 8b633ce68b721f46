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

	"github.com/tochemey/pcheck/generator"
)

// DefaultFairPrefix is the number of PCT steps a FairPCT strategy takes
// before scheduling uniformly.
const DefaultFairPrefix = 10_000

// FairPCT follows PCT for the first prefix steps of an iteration and then
// schedules uniformly at random, which makes it fair.
type FairPCT struct {
	*PCT
	prefix int
}

// enforce compilation error
var _ Strategy = (*FairPCT)(nil)

// NewFairPCT creates a FairPCT strategy.
func NewFairPCT(input generator.Input, schedule generator.Schedule, bound, prefix int) *FairPCT {
	return &FairPCT{
		PCT:    NewPCT(input, schedule, bound),
		prefix: prefix,
	}
}

// NextOperation implements Strategy.
func (f *FairPCT) NextOperation(ops []Operation, current Operation) (Operation, bool) {
	if f.steps < f.prefix {
		return f.PCT.NextOperation(ops, current)
	}
	if len(ops) == 0 {
		return nil, false
	}
	f.steps++
	return ops[f.schedule.NextIndex(len(ops))], true
}

// IsFair implements Strategy.
func (f *FairPCT) IsFair() bool { return true }

// Description implements Strategy.
func (f *FairPCT) Description() string {
	return fmt.Sprintf("fairpct[bound=%d,prefix=%d]", f.bound, f.prefix)
}
