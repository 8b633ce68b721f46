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

import "github.com/tochemey/pcheck/event"

// Manager is the narrow view a TimedMailbox has of the actor owning it.
//
// It provides the state dependent oracles (ignore, defer, default handler)
// that drive the delivery decisions and receives the lifecycle notifications
// the runtime uses for logging, coverage and bug reports.
//
// Implementations are called from the single goroutine running the
// iteration and need no synchronization.
type Manager interface {
	// Origin describes the owning actor in its current state. It is used to
	// build the envelopes of raised and default events.
	Origin() event.Origin

	// OnEnqueue is called right before an event is stored in the mailbox.
	OnEnqueue(evt *event.Event, env *event.Envelope)
	// OnDequeue is called when an event is removed from the mailbox to be handled.
	OnDequeue(evt *event.Event, env *event.Envelope)
	// OnReceive is called when an event satisfies an explicit receive.
	// wasBlocked reports whether the actor had to wait for it.
	OnReceive(evt *event.Event, env *event.Envelope, wasBlocked bool)
	// OnRaise is called when the actor raises an event to itself.
	OnRaise(evt *event.Event, env *event.Envelope)
	// OnWait is called when the actor blocks on a receive of the given types.
	OnWait(types []event.Type)
	// OnDrop is called for every event that will never be delivered.
	OnDrop(evt *event.Event, env *event.Envelope)

	// IsIgnored reports whether the current state discards the event.
	IsIgnored(evt *event.Event, env *event.Envelope) bool
	// IsDeferred reports whether the current state postpones the event.
	IsDeferred(evt *event.Event, env *event.Envelope) bool
	// HasDefaultHandler reports whether the current state handles the default event.
	HasDefaultHandler() bool

	// Assert reports a safety violation when cond is false. Implementations
	// abort the iteration and are not expected to return in that case.
	Assert(cond bool, format string, args ...any)

	// IsHandlerRunning reports whether the actor handler loop is active.
	IsHandlerRunning() bool
	// SetHandlerRunning records whether the actor handler loop is active.
	SetHandlerRunning(running bool)
}
