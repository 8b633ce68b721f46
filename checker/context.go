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
	"github.com/tochemey/pcheck/clock"
	"github.com/tochemey/pcheck/event"
	"github.com/tochemey/pcheck/log"
)

// MachineID identifies a machine within an iteration. Identifiers are
// assigned in creation order starting at 1; zero means no machine.
type MachineID uint64

// NoMachine is the sender of the events that do not come from a machine.
const NoMachine MachineID = 0

// SendOption customizes an event sent with Context.Tell.
type SendOption func(evt *event.Event, env *event.Envelope)

// WithDelay delays the delivery by a duration sampled from the given
// distribution tag, e.g. "uniform:1:10".
func WithDelay(tag string) SendOption {
	return func(evt *event.Event, _ *event.Envelope) {
		evt.DelayDistribution = tag
	}
}

// Unordered lets the event overtake the delayed events previously sent to
// the same machine.
func Unordered() SendOption {
	return func(evt *event.Event, _ *event.Envelope) {
		evt.Unordered = true
	}
}

// WithMaxInstances asserts that the receiver never holds more than n
// queued events of the sent type.
func WithMaxInstances(n int) SendOption {
	return func(_ *event.Event, env *event.Envelope) {
		env.MaxInstances = n
	}
}

// Context is handed over to every handler. It is only valid for the
// duration of the handler call.
type Context struct {
	machine *machine
	evt     *event.Event
	env     *event.Envelope
	err     error
}

func newContext(m *machine, evt *event.Event, env *event.Envelope) *Context {
	return &Context{machine: m, evt: evt, env: env}
}

// Self returns the identifier of the running machine.
func (c *Context) Self() MachineID {
	return c.machine.id
}

// Name returns the display name of the running machine.
func (c *Context) Name() string {
	return c.machine.name
}

// Sender returns the machine that sent the handled event, NoMachine when
// the event does not come from a machine.
func (c *Context) Sender() MachineID {
	if c.env == nil {
		return NoMachine
	}
	return MachineID(c.env.Origin.SenderID)
}

// State returns the current state of the running machine.
func (c *Context) State() string {
	return c.machine.current.name
}

// Now returns the virtual time.
func (c *Context) Now() clock.Timestamp {
	return c.machine.runtime.clock.Now()
}

// Data returns the value attached to the running machine with SetData.
func (c *Context) Data() any {
	return c.machine.data
}

// SetData attaches a value to the running machine. Handlers share the
// definition of a machine, per machine values live here.
func (c *Context) SetData(data any) {
	c.machine.data = data
}

// Event returns the handled event.
func (c *Context) Event() *event.Event {
	return c.evt
}

// Spawn creates a machine. Its start state is entered in a later
// scheduling step, with an event of type EntryType carrying the payload.
func (c *Context) Spawn(def *Definition, payload any) MachineID {
	return c.machine.runtime.spawn(def, payload, c.machine.Origin())
}

// Tell sends the event to the target machine. The event is copied, so the
// same value can be sent several times.
func (c *Context) Tell(target MachineID, evt *event.Event, opts ...SendOption) {
	c.machine.runtime.send(c.machine, target, evt, opts...)
}

// Raise queues an event to the running machine with priority over every
// other event. It is handled in the same scheduling step, once the
// handler returns.
func (c *Context) Raise(evt *event.Event) {
	raised := *evt
	c.machine.mailbox.Raise(&raised)
}

// Become moves the machine to the given state once the handler returns.
// The entry handler of the state sees the handled event. When the machine
// waits on a receive, the transition happens after the continuation ran.
func (c *Context) Become(state string) {
	c.machine.become(state, c.evt, c.env)
}

// Receive blocks the machine until an event accepted by the wait set is
// delivered, then runs the continuation with that event. Nothing else is
// dequeued in the meantime.
func (c *Context) Receive(waitSet actor.WaitSet, continuation Handler) {
	c.machine.receive(waitSet, continuation)
}

// Shutdown halts the running machine. Events sent to it afterwards are dropped.
func (c *Context) Shutdown() {
	c.machine.halt()
}

// Assert reports an assertion failure when cond is false. It does not
// return in that case.
func (c *Context) Assert(cond bool, format string, args ...any) {
	c.machine.Assert(cond, format, args...)
}

// RandomBool returns a boolean chosen by the scheduling strategy.
func (c *Context) RandomBool() bool {
	return c.machine.runtime.strategy.NextBool(2)
}

// RandomInt returns a value in [0, n) chosen by the scheduling strategy.
func (c *Context) RandomInt(n int) int {
	return c.machine.runtime.strategy.NextInt(n)
}

// Err reports a handler failure. The iteration stops once the handler returns.
func (c *Context) Err(err error) {
	c.err = err
}

// Errf is a convenience wrapper around Err.
func (c *Context) Errf(format string, args ...any) {
	c.err = fmt.Errorf(format, args...)
}

// Logger returns the logger of the running machine.
func (c *Context) Logger() log.Logger {
	return c.machine.logger
}
