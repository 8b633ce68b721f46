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

package actor

import (
	"slices"

	"github.com/tochemey/pcheck/event"
)

// Predicate filters the events accepted by a receive.
type Predicate func(evt *event.Event) bool

// WaitSet maps the event types an actor waits for to an optional Predicate.
// A nil Predicate accepts every event of its type.
type WaitSet map[event.Type]Predicate

// WaitFor builds a WaitSet accepting any event of the given types.
func WaitFor(types ...event.Type) WaitSet {
	waitSet := make(WaitSet, len(types))
	for _, eventType := range types {
		waitSet[eventType] = nil
	}
	return waitSet
}

// Accepts reports whether the event satisfies the wait set.
func (w WaitSet) Accepts(evt *event.Event) bool {
	predicate, ok := w[evt.Type]
	if !ok {
		return false
	}
	return predicate == nil || predicate(evt)
}

// Types returns the awaited types in lexical order.
func (w WaitSet) Types() []event.Type {
	types := make([]event.Type, 0, len(w))
	for eventType := range w {
		types = append(types, eventType)
	}
	slices.Sort(types)
	return types
}

// Pending is the result slot of a receive. It is resolved at most once,
// either immediately when a matching event is already queued or later by
// ResolveDelayedWait or a matching Enqueue.
type Pending struct {
	resolved bool
	evt      *event.Event
	env      *event.Envelope
}

func resolvedPending(evt *event.Event, env *event.Envelope) *Pending {
	return &Pending{resolved: true, evt: evt, env: env}
}

// resolve fills the slot. It returns false and leaves the slot untouched
// when it has already been resolved.
func (p *Pending) resolve(evt *event.Event, env *event.Envelope) bool {
	if p == nil || p.resolved {
		return false
	}
	p.resolved = true
	p.evt = evt
	p.env = env
	return true
}

// Resolved reports whether the receive has been satisfied.
func (p *Pending) Resolved() bool {
	return p != nil && p.resolved
}

// Event returns the received event or nil while unresolved.
func (p *Pending) Event() *event.Event {
	if p == nil {
		return nil
	}
	return p.evt
}

// Envelope returns the envelope of the received event or nil while unresolved.
func (p *Pending) Envelope() *event.Envelope {
	if p == nil {
		return nil
	}
	return p.env
}
