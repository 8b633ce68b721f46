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

// Package feedback implements the feedback guided exploration: generator
// pairs producing a new behavior are saved and mutated to drive the next
// iterations.
package feedback

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/pcheck/generator"
)

// Pair is the couple of generators driving one iteration.
type Pair struct {
	Input    generator.Input
	Schedule generator.Schedule
}

// Copy returns a pair of independent branches replaying the same decisions.
func (p Pair) Copy() Pair {
	return Pair{Input: p.Input.Copy(), Schedule: p.Schedule.Copy()}
}

// Pool is the append only collection of the pairs that produced a new
// behavior signature during a search session.
type Pool struct {
	saved []Pair
	seen  mapset.Set[uint64]
}

// NewPool creates an empty Pool.
func NewPool() *Pool {
	return &Pool{seen: mapset.NewThreadUnsafeSet[uint64]()}
}

// Observe records the signature produced by the pair. A pair producing a
// signature never seen before is saved and Observe returns true.
func (p *Pool) Observe(pair Pair, signature uint64) bool {
	if !p.seen.Add(signature) {
		return false
	}
	p.saved = append(p.saved, pair)
	return true
}

// Len returns the number of saved pairs.
func (p *Pool) Len() int {
	return len(p.saved)
}

// At returns the i-th saved pair.
func (p *Pool) At(i int) Pair {
	return p.saved[i]
}

// Signatures returns the number of distinct signatures observed.
func (p *Pool) Signatures() int {
	return p.seen.Cardinality()
}
