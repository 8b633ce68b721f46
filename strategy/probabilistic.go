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

// Probabilistic keeps running the current operation as long as it is
// enabled, and switches to a uniformly chosen one with probability 0.5^N
// at each step.
type Probabilistic struct {
	*Random
	bound int
}

// enforce compilation error
var _ Strategy = (*Probabilistic)(nil)

// NewProbabilistic creates a Probabilistic strategy switching with
// probability 0.5^bound.
func NewProbabilistic(input generator.Input, schedule generator.Schedule, bound int) *Probabilistic {
	return &Probabilistic{
		Random: NewRandom(input, schedule),
		bound:  bound,
	}
}

// NextOperation implements Strategy.
func (p *Probabilistic) NextOperation(ops []Operation, current Operation) (Operation, bool) {
	if len(ops) == 0 {
		return nil, false
	}

	if index := indexOf(ops, current); index >= 0 && !p.shouldSwitch() {
		p.steps++
		return ops[index], true
	}
	return p.Random.NextOperation(ops, current)
}

// shouldSwitch flips bound coins and switches only when all of them land
// on heads.
func (p *Probabilistic) shouldSwitch() bool {
	for range p.bound {
		if p.schedule.NextIndex(2) == 1 {
			return false
		}
	}
	return true
}

// Description implements Strategy.
func (p *Probabilistic) Description() string {
	return fmt.Sprintf("probabilistic[bound=%d]", p.bound)
}
