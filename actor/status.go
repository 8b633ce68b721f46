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

// EnqueueStatus tells the runtime what to do with the receiving actor after an Enqueue.
type EnqueueStatus int

const (
	// HandlerRunning means the actor handler loop is already active.
	HandlerRunning EnqueueStatus = iota
	// HandlerAlreadyRunning means the event resumed an actor blocked on a
	// receive. The event was handed over directly and never stored.
	HandlerAlreadyRunning
	// HandlerNotRunning means the actor was idle and has something to
	// process now. The handler loop has been marked as started.
	HandlerNotRunning
	// NextEventUnavailable means the actor is idle and nothing is
	// deliverable at the current instant.
	NextEventUnavailable
	// Dropped means the mailbox is closed and the event has been discarded.
	Dropped
)

// String implements fmt.Stringer
func (s EnqueueStatus) String() string {
	switch s {
	case HandlerRunning:
		return "HandlerRunning"
	case HandlerAlreadyRunning:
		return "HandlerAlreadyRunning"
	case HandlerNotRunning:
		return "HandlerNotRunning"
	case NextEventUnavailable:
		return "NextEventUnavailable"
	case Dropped:
		return "Dropped"
	default:
		return "Unknown"
	}
}

// DequeueStatus describes the outcome of a Dequeue.
type DequeueStatus int

const (
	// Success means a queued event has been removed and must be handled.
	Success DequeueStatus = iota
	// Raised means the raised event has been consumed and must be handled.
	Raised
	// Delayed means the next deliverable event is in the future. The event
	// stays queued and the actor must wait for the clock to reach its
	// dequeue time.
	Delayed
	// Default means nothing is deliverable and the current state handles
	// the default event.
	Default
	// NotAvailable means nothing can be delivered.
	NotAvailable
)

// String implements fmt.Stringer
func (s DequeueStatus) String() string {
	switch s {
	case Success:
		return "Success"
	case Raised:
		return "Raised"
	case Delayed:
		return "Delayed"
	case Default:
		return "Default"
	case NotAvailable:
		return "NotAvailable"
	default:
		return "Unknown"
	}
}
