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

package checker

import (
	"context"
	"fmt"

	"github.com/tochemey/pcheck/actor"
	"github.com/tochemey/pcheck/clock"
	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/event"
	"github.com/tochemey/pcheck/feedback"
	"github.com/tochemey/pcheck/log"
	"github.com/tochemey/pcheck/strategy"
)

// DefaultRuntimeMaxSteps bounds the scheduling steps of a Runtime created
// without WithMaxSteps.
const DefaultRuntimeMaxSteps = 10_000

// RuntimeOption configures a Runtime.
type RuntimeOption func(r *Runtime)

// WithRuntimeLogger sets the logger of the iteration.
func WithRuntimeLogger(logger log.Logger) RuntimeOption {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithMaxSteps bounds the scheduling steps of the iteration. Reaching the
// bound is reported as a bug when failOnMaxSteps is set.
func WithMaxSteps(maxSteps int, failOnMaxSteps bool) RuntimeOption {
	return func(r *Runtime) {
		r.maxSteps = maxSteps
		r.failOnMaxSteps = failOnMaxSteps
	}
}

// WithObserver sets the observer fed with the handling steps of the iteration.
func WithObserver(observer *feedback.Observer) RuntimeOption {
	return func(r *Runtime) {
		r.observer = observer
	}
}

// Result is the outcome of an iteration.
type Result struct {
	// Steps is the number of scheduling steps taken.
	Steps int
	// Time is the virtual time the iteration ended at.
	Time clock.Timestamp
	// Bug is the failure found by the iteration, nil when none.
	Bug *Bug
	// MaxStepsReached reports whether the iteration was cut at the steps bound.
	MaxStepsReached bool
	// Signature is the behavior signature of the iteration.
	Signature uint64
	// Timeline holds the mailbox operations of the iteration.
	Timeline *Timeline
}

// Runtime runs a single iteration of a test.
//
// Every machine of the iteration is driven by the goroutine calling Run.
// At each step the strategy picks one of the enabled machines. When none
// is enabled the clock moves to the earliest pending delivery. The
// iteration ends when the program is quiet, when the steps bound is
// reached or at the first bug.
type Runtime struct {
	test           *Test
	strategy       strategy.Strategy
	clock          *clock.Clock
	logger         log.Logger
	maxSteps       int
	failOnMaxSteps bool
	observer       *feedback.Observer
	timeline       *Timeline

	machines  []*machine
	behaviors map[*Definition]map[string]*behavior
	current   *machine
	steps     int
}

// NewRuntime creates a Runtime for one iteration of the test driven by the
// given strategy. The strategy must have been initialized for the iteration.
func NewRuntime(test *Test, strat strategy.Strategy, opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		test:      test,
		strategy:  strat,
		clock:     clock.New(),
		logger:    log.DiscardLogger,
		maxSteps:  DefaultRuntimeMaxSteps,
		behaviors: make(map[*Definition]map[string]*behavior),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.observer == nil {
		r.observer = feedback.NewObserver()
	}
	r.timeline = newTimeline(r.logger)
	return r
}

// Run executes the iteration. The returned error is only set when the
// context is done, bugs are reported in the Result.
func (r *Runtime) Run(ctx context.Context) (*Result, error) {
	result := &Result{Timeline: r.timeline}
	defer func() {
		result.Steps = r.steps
		result.Time = r.clock.Now()
		result.Signature = r.observer.Signature()
	}()

	if bug := r.guard(func() { r.spawn(r.test.Main, r.test.Payload, event.Origin{}) }); bug != nil {
		result.Bug = bug
		return result, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if r.steps >= r.maxSteps {
			result.MaxStepsReached = true
			if r.failOnMaxSteps {
				result.Bug = r.locate(newBug(MaxStepsReached,
					fmt.Errorf("%w: %d", perrors.ErrMaxStepsReached, r.maxSteps)))
			}
			return result, nil
		}

		ops := r.enabled()
		if len(ops) == 0 {
			if r.advanceClock() {
				continue
			}
			result.Bug = r.checkDeadlock()
			return result, nil
		}

		var current strategy.Operation
		if r.current != nil {
			current = r.current
		}

		op, ok := r.strategy.NextOperation(ops, current)
		if !ok {
			return result, nil
		}

		next := op.(*machine)
		r.current = next
		r.steps++
		if r.logger.Enabled(log.DebugLevel) {
			r.logger.Debugf("step %d at time %s: %s", r.steps, r.clock.Now(), next.name)
		}

		if bug := r.guard(next.step); bug != nil {
			result.Bug = bug
			return result, nil
		}
	}
}

// Steps returns the number of scheduling steps taken so far.
func (r *Runtime) Steps() int {
	return r.steps
}

// Now returns the virtual time of the iteration.
func (r *Runtime) Now() clock.Timestamp {
	return r.clock.Now()
}

// guard runs fn and turns a failure raised by a handler into a Bug.
func (r *Runtime) guard(fn func()) (bug *Bug) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		switch x := recovered.(type) {
		case *Bug:
			bug = x
		default:
			machine, state := r.describeCurrent()
			err := fmt.Errorf("panic: %v", x)
			bug = newBug(HandlerFailure, perrors.NewErrHandlerFailure(machine, state, err))
		}
		bug = r.locate(bug)
	}()

	fn()
	return nil
}

// locate stamps the bug with the step, the time and the running machine.
func (r *Runtime) locate(bug *Bug) *Bug {
	bug.Step = r.steps
	bug.Time = r.clock.Now()
	if bug.Machine == "" {
		bug.Machine, bug.State = r.describeCurrent()
	}
	return bug
}

func (r *Runtime) describeCurrent() (string, string) {
	if r.current == nil {
		return "", ""
	}
	return r.current.name, r.current.current.name
}

// enabled returns the machines that can take a step, in creation order.
func (r *Runtime) enabled() []strategy.Operation {
	ops := make([]strategy.Operation, 0, len(r.machines))
	for _, m := range r.machines {
		if m.enabled() {
			ops = append(ops, m)
		}
	}
	return ops
}

// advanceClock moves the clock to the earliest dequeue time among the
// delayed events and the events awaited by blocked machines, then resumes
// the machines whose receive can now be satisfied. It reports whether
// anything changed.
func (r *Runtime) advanceClock() bool {
	var (
		next  clock.Timestamp
		found bool
	)

	for _, m := range r.machines {
		if m.halted || !m.started {
			continue
		}

		var candidate *event.Event
		switch {
		case m.waiting():
			candidate, _ = m.mailbox.PeekEarliestWaitCandidate()
		case m.pending == nil:
			if status, evt, _ := m.mailbox.CheckDequeue(); status == actor.Delayed {
				candidate = evt
			}
		}

		if candidate != nil && (!found || candidate.DequeueTime.Before(next)) {
			next = candidate.DequeueTime
			found = true
		}
	}

	if !found {
		return false
	}

	moved := r.clock.AdvanceTo(next)
	if moved && r.logger.Enabled(log.DebugLevel) {
		r.logger.Debugf("clock advanced to %s", next)
	}

	resolved := false
	for _, m := range r.machines {
		if m.waiting() && m.mailbox.ResolveDelayedWait() {
			resolved = true
		}
	}
	return moved || resolved
}

// checkDeadlock reports the machines blocked on a receive once nothing
// else can happen.
func (r *Runtime) checkDeadlock() *Bug {
	var (
		names []string
		first *machine
	)
	for _, m := range r.machines {
		if m.waiting() {
			if first == nil {
				first = m
			}
			names = append(names, m.name)
		}
	}

	if first == nil {
		return nil
	}

	bug := newBug(Deadlock, perrors.NewErrDeadlock(names))
	bug.Machine = first.name
	bug.State = first.current.name
	return r.locate(bug)
}

// spawn creates a machine. The definition is validated the first time it
// is used in the iteration.
func (r *Runtime) spawn(def *Definition, payload any, origin event.Origin) MachineID {
	behaviors, ok := r.behaviors[def]
	if !ok {
		if err := def.Validate(); err != nil {
			panic(newBug(HandlerFailure, perrors.NewErrHandlerFailure(origin.SenderType, origin.SenderState, err)))
		}
		behaviors = compile(def)
		r.behaviors[def] = behaviors
	}

	id := MachineID(len(r.machines) + 1)
	m := &machine{
		id:        id,
		name:      fmt.Sprintf("%s(%d)", def.Name, id),
		def:       def,
		behaviors: behaviors,
		current:   behaviors[def.Start],
		runtime:   r,
		creation:  event.New(EntryType, payload),
	}
	m.creationEnv = event.NewEnvelope(m.creation, origin)
	m.logger = r.logger.With("machine", m.name)
	m.mailbox = actor.NewTimedMailbox(m, r.clock, r.strategy)
	r.machines = append(r.machines, m)

	if r.logger.Enabled(log.DebugLevel) {
		r.logger.Debugf("%s created by %s", m.name, origin)
	}
	return id
}

// send delivers a copy of the event to the target mailbox.
func (r *Runtime) send(from *machine, target MachineID, evt *event.Event, opts ...SendOption) {
	if target == NoMachine || int(target) > len(r.machines) {
		panic(newBug(HandlerFailure,
			perrors.NewErrHandlerFailure(from.name, from.current.name, perrors.NewErrMachineNotFound(uint64(target)))))
	}

	sent := *evt
	env := event.NewEnvelope(&sent, from.Origin())
	for _, opt := range opts {
		opt(&sent, env)
	}

	receiver := r.machines[target-1]
	status := receiver.mailbox.Enqueue(&sent, env)
	if r.logger.Enabled(log.DebugLevel) {
		r.logger.Debugf("%s sent %s to %s: %s", from.name, &sent, receiver.name, status)
	}
}
