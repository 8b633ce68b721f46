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
	"fmt"

	"github.com/tochemey/pcheck/actor"
	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/event"
	"github.com/tochemey/pcheck/log"
	"github.com/tochemey/pcheck/strategy"
)

// machine is a running instance of a Definition.
//
// A machine is driven one scheduling step at a time by the Runtime. A step
// runs the start entry, the continuation of a resolved receive or the
// handler of the next dequeued event, then settles the machine: raised
// events and pending transitions are processed before the step ends.
type machine struct {
	id        MachineID
	name      string
	def       *Definition
	behaviors map[string]*behavior
	current   *behavior
	runtime   *Runtime
	mailbox   *actor.TimedMailbox
	logger    log.Logger

	data any

	creation    *event.Event
	creationEnv *event.Envelope

	started bool
	halted  bool
	running bool

	pending      *actor.Pending
	continuation Handler

	target     string
	trigger    *event.Event
	triggerEnv *event.Envelope
}

// enforce compilation error
var (
	_ actor.Manager      = (*machine)(nil)
	_ strategy.Operation = (*machine)(nil)
)

// OperationID implements strategy.Operation.
func (m *machine) OperationID() uint64 {
	return uint64(m.id)
}

// OperationName implements strategy.Operation.
func (m *machine) OperationName() string {
	return m.name
}

// Origin implements actor.Manager.
func (m *machine) Origin() event.Origin {
	return event.Origin{
		SenderID:    uint64(m.id),
		SenderType:  m.def.Name,
		SenderState: m.current.name,
	}
}

// OnEnqueue implements actor.Manager.
func (m *machine) OnEnqueue(evt *event.Event, _ *event.Envelope) {
	m.runtime.timeline.record(m.timelineEntry(Enqueued, evt))
}

// OnDequeue implements actor.Manager.
func (m *machine) OnDequeue(evt *event.Event, _ *event.Envelope) {
	m.runtime.timeline.record(m.timelineEntry(Dequeued, evt))
	m.runtime.observer.OnDequeue(uint64(m.id), m.def.Name, m.current.name, evt.Type)
}

// OnReceive implements actor.Manager.
func (m *machine) OnReceive(evt *event.Event, _ *event.Envelope, wasBlocked bool) {
	m.runtime.timeline.record(m.timelineEntry(Received, evt))
	m.runtime.observer.OnDequeue(uint64(m.id), m.def.Name, m.current.name, evt.Type)
	if wasBlocked {
		m.logger.Debugf("%s resumed by %s", m.name, evt)
	}
}

// OnRaise implements actor.Manager.
func (m *machine) OnRaise(evt *event.Event, _ *event.Envelope) {
	m.logger.Debugf("%s raised %s in state %s", m.name, evt, m.current.name)
}

// OnWait implements actor.Manager.
func (m *machine) OnWait(types []event.Type) {
	m.logger.Debugf("%s waits for %v in state %s", m.name, types, m.current.name)
}

// OnDrop implements actor.Manager.
func (m *machine) OnDrop(evt *event.Event, _ *event.Envelope) {
	m.runtime.timeline.record(m.timelineEntry(Dropped, evt))
}

// IsIgnored implements actor.Manager.
func (m *machine) IsIgnored(evt *event.Event, _ *event.Envelope) bool {
	return m.current.ignored.Contains(evt.Type)
}

// IsDeferred implements actor.Manager.
func (m *machine) IsDeferred(evt *event.Event, _ *event.Envelope) bool {
	return m.current.deferred.Contains(evt.Type)
}

// HasDefaultHandler implements actor.Manager.
func (m *machine) HasDefaultHandler() bool {
	return m.current.state.Default != nil
}

// Assert implements actor.Manager.
func (m *machine) Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(newBug(AssertionFailure, perrors.NewErrAssertionFailed(fmt.Sprintf(format, args...))))
	}
}

// IsHandlerRunning implements actor.Manager.
func (m *machine) IsHandlerRunning() bool {
	return m.running
}

// SetHandlerRunning implements actor.Manager.
func (m *machine) SetHandlerRunning(running bool) {
	m.running = running
}

// enabled reports whether the machine can take a scheduling step at the
// current instant.
func (m *machine) enabled() bool {
	switch {
	case m.halted:
		return false
	case !m.started:
		return true
	case m.pending != nil:
		return m.pending.Resolved()
	case m.mailbox.IsEventRaised():
		return true
	}

	status, _, _ := m.mailbox.CheckDequeue()
	switch status {
	case actor.Success:
		return true
	case actor.NotAvailable:
		return m.HasDefaultHandler()
	default:
		return false
	}
}

// waiting reports whether the machine is blocked on a receive.
func (m *machine) waiting() bool {
	return !m.halted && m.pending != nil && !m.pending.Resolved()
}

// step runs one scheduling step of the machine.
func (m *machine) step() {
	switch {
	case !m.started:
		m.started = true
		m.running = true
		m.enter(m.creation, m.creationEnv)
	case m.pending != nil:
		m.resume()
	default:
		status, evt, env := m.mailbox.Dequeue()
		switch status {
		case actor.Success, actor.Raised, actor.Default:
			m.handle(status, evt, env)
		default:
			return
		}
	}
	m.settle()
}

// settle processes what the last handler left behind, in order: a
// resolved receive, a transition and a raised event. It stops as soon as
// the machine blocks or halts.
func (m *machine) settle() {
	for !m.halted {
		switch {
		case m.pending != nil:
			if !m.pending.Resolved() {
				return
			}
			m.resume()
		case m.target != "":
			target, trigger, env := m.target, m.trigger, m.triggerEnv
			m.target, m.trigger, m.triggerEnv = "", nil, nil
			m.transition(target, trigger, env)
		case m.mailbox.IsEventRaised():
			status, evt, env := m.mailbox.Dequeue()
			if status != actor.Raised && status != actor.Success {
				return
			}
			m.handle(status, evt, env)
		default:
			return
		}
	}
}

func (m *machine) resume() {
	pending, continuation := m.pending, m.continuation
	m.pending, m.continuation = nil, nil
	m.invoke(continuation, pending.Event(), pending.Envelope())
}

func (m *machine) handle(status actor.DequeueStatus, evt *event.Event, env *event.Envelope) {
	if status == actor.Default {
		m.invoke(m.current.state.Default, evt, env)
		return
	}

	if handler, ok := m.current.handler(evt.Type); ok {
		m.invoke(handler, evt, env)
		return
	}

	if evt.Type == event.HaltType {
		m.halt()
		return
	}

	panic(newBug(UnhandledEvent, perrors.NewErrUnhandledEvent(m.name, m.current.name, string(evt.Type))))
}

func (m *machine) invoke(handler Handler, evt *event.Event, env *event.Envelope) {
	if handler == nil {
		return
	}

	ctx := newContext(m, evt, env)
	handler(ctx)
	if ctx.err != nil {
		panic(newBug(HandlerFailure, perrors.NewErrHandlerFailure(m.name, m.current.name, ctx.err)))
	}
}

func (m *machine) enter(evt *event.Event, env *event.Envelope) {
	m.logger.Debugf("%s enters state %s", m.name, m.current.name)
	m.invoke(m.current.state.OnEntry, evt, env)
}

func (m *machine) transition(target string, evt *event.Event, env *event.Envelope) {
	next, ok := m.behaviors[target]
	if !ok {
		panic(newBug(HandlerFailure,
			perrors.NewErrHandlerFailure(m.name, m.current.name, perrors.NewErrUnknownState(m.name, target))))
	}
	m.current = next
	m.enter(evt, env)
}

func (m *machine) become(state string, evt *event.Event, env *event.Envelope) {
	m.target = state
	m.trigger = evt
	m.triggerEnv = env
}

func (m *machine) receive(waitSet actor.WaitSet, continuation Handler) {
	m.pending = m.mailbox.Receive(waitSet)
	m.continuation = continuation
}

// halt closes the mailbox and reports the queued events as dropped.
func (m *machine) halt() {
	if m.halted {
		return
	}
	m.halted = true
	m.running = false
	m.pending, m.continuation = nil, nil
	m.target = ""
	m.mailbox.Close()
	m.mailbox.Dispose()
	m.logger.Debugf("%s halted in state %s", m.name, m.current.name)
}

func (m *machine) timelineEntry(kind TimelineKind, evt *event.Event) TimelineEntry {
	return TimelineEntry{
		Time:    m.runtime.clock.Now(),
		Kind:    kind,
		Event:   evt.Type,
		Payload: evt.Payload,
		Machine: m.name,
		State:   m.current.name,
	}
}
