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
	"slices"

	"github.com/Workiva/go-datastructures/queue"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/pcheck/clock"
	"github.com/tochemey/pcheck/generator"
)

// changePoint is the step at which the highest priority operation is demoted.
type changePoint int

// Compare implements queue.Item
func (c changePoint) Compare(other queue.Item) int {
	o := other.(changePoint)
	switch {
	case c > o:
		return 1
	case c < o:
		return -1
	default:
		return 0
	}
}

// PCT is the probabilistic concurrency testing strategy.
//
// Every operation gets a random priority when first seen and the enabled
// operation with the highest priority always runs. At bound randomly chosen
// steps, drawn from the length of the longest schedule seen so far, the
// running operation is demoted to the lowest priority. PCT is not fair.
type PCT struct {
	input    generator.Input
	schedule generator.Schedule
	delays   *delays

	bound          int
	steps          int
	scheduleLength int

	// operations from the highest to the lowest priority
	prioritized []Operation
	known       mapset.Set[uint64]

	points  mapset.Set[int]
	changes *queue.PriorityQueue
}

// enforce compilation error
var _ Strategy = (*PCT)(nil)

// NewPCT creates a PCT strategy with the given number of priority change points.
func NewPCT(input generator.Input, schedule generator.Schedule, bound int) *PCT {
	return &PCT{
		input:    input,
		schedule: schedule,
		delays:   newDelays(),
		bound:    bound,
		known:    mapset.NewThreadUnsafeSet[uint64](),
		points:   mapset.NewThreadUnsafeSet[int](),
		changes:  queue.NewPriorityQueue(bound, false),
	}
}

// InitializeNextIteration implements Strategy.
func (p *PCT) InitializeNextIteration(int) bool {
	p.scheduleLength = max(p.scheduleLength, p.steps)
	p.Reset()

	candidates := make([]int, p.scheduleLength)
	for i := range candidates {
		candidates[i] = i
	}

	for i := 0; i < p.bound && i < len(candidates); i++ {
		j := i + p.schedule.NextIndex(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		p.addChangePoint(candidates[i])
	}
	return true
}

// NextOperation implements Strategy.
func (p *PCT) NextOperation(ops []Operation, _ Operation) (Operation, bool) {
	if len(ops) == 0 {
		return nil, false
	}

	for _, op := range ops {
		if p.known.Contains(op.OperationID()) {
			continue
		}
		p.known.Add(op.OperationID())
		if len(p.prioritized) == 0 {
			p.prioritized = append(p.prioritized, op)
			continue
		}
		index := p.schedule.NextIndex(len(p.prioritized)) + 1
		p.prioritized = slices.Insert(p.prioritized, index, op)
	}

	if p.isChangePoint(p.steps) {
		if len(ops) == 1 {
			p.moveChangePointForward(p.steps)
		} else {
			p.demote(p.highest(ops))
		}
	}

	p.steps++
	return p.highest(ops), true
}

// NextBool implements Strategy.
func (p *PCT) NextBool(maxValue int) bool {
	p.steps++
	return p.input.NextInt(maxValue) == 0
}

// NextInt implements Strategy.
func (p *PCT) NextInt(maxValue int) int {
	p.steps++
	return p.input.NextInt(maxValue)
}

// SampleDelay implements DelaySampler.
func (p *PCT) SampleDelay(tag string) (bool, clock.Duration) {
	return p.delays.sample(p.schedule, tag)
}

// StepCount implements Strategy.
func (p *PCT) StepCount() int { return p.steps }

// IsFair implements Strategy.
func (p *PCT) IsFair() bool { return false }

// Description implements Strategy.
func (p *PCT) Description() string {
	return fmt.Sprintf("pct[bound=%d]", p.bound)
}

// Reset implements Strategy. The longest schedule length is kept.
func (p *PCT) Reset() {
	p.steps = 0
	p.prioritized = p.prioritized[:0]
	p.known.Clear()
	p.points.Clear()
	p.changes.Dispose()
	p.changes = queue.NewPriorityQueue(p.bound, false)
}

// ChangePoints returns the pending change points in ascending order.
func (p *PCT) ChangePoints() []int {
	points := p.points.ToSlice()
	slices.Sort(points)
	return points
}

func (p *PCT) addChangePoint(point int) {
	p.points.Add(point)
	_ = p.changes.Put(changePoint(point))
}

// isChangePoint consumes the change point of the given step, discarding
// the points of steps spent on data choices.
func (p *PCT) isChangePoint(step int) bool {
	for !p.changes.Empty() {
		top := p.changes.Peek().(changePoint)
		if int(top) > step {
			return false
		}
		_, _ = p.changes.Get(1)
		p.points.Remove(int(top))
		if int(top) == step {
			return true
		}
	}
	return false
}

func (p *PCT) moveChangePointForward(step int) {
	point := step + 1
	for p.points.Contains(point) {
		point++
	}
	p.addChangePoint(point)
}

// highest returns the enabled operation with the highest priority.
func (p *PCT) highest(ops []Operation) Operation {
	for _, candidate := range p.prioritized {
		if index := indexOf(ops, candidate); index >= 0 {
			return ops[index]
		}
	}
	return ops[0]
}

// demote moves the operation to the lowest priority.
func (p *PCT) demote(op Operation) {
	index := indexOf(p.prioritized, op)
	if index < 0 {
		return
	}
	p.prioritized = append(slices.Delete(p.prioritized, index, index+1), op)
}
