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

// Package event defines the messages exchanged by actors and their delivery metadata.
package event

import (
	"fmt"

	"github.com/tochemey/pcheck/clock"
)

// Type identifies an event. Two events are of the same kind when their
// types are equal, whatever their payloads.
type Type string

const (
	// DefaultType is the type of the event synthesized by a mailbox when
	// nothing can be dequeued and the current state declares a default handler.
	DefaultType Type = "Default"
	// HaltType is the type of the event that terminates its receiver.
	HaltType Type = "Halt"
)

// Event is the message unit exchanged between actors.
//
// EnqueueTime is stamped once, when the event is sent. DequeueTime is first
// set to the earliest instant the event may be delivered and is overwritten
// with the clock value at actual delivery, so that DequeueTime is never
// before EnqueueTime.
type Event struct {
	Type    Type
	Payload any

	// DelayDistribution names the distribution sampled to delay the delivery.
	// An empty value means the event is deliverable as soon as it is sent.
	DelayDistribution string
	// Unordered relaxes the per-sender FIFO guarantee for delayed events.
	Unordered bool

	EnqueueTime clock.Timestamp
	DequeueTime clock.Timestamp
}

// New creates an ordered event of the given type.
func New(eventType Type, payload any) *Event {
	return &Event{Type: eventType, Payload: payload}
}

// Default returns a fresh default event.
func Default() *Event {
	return New(DefaultType, nil)
}

// Halt returns a fresh halt event.
func Halt() *Event {
	return New(HaltType, nil)
}

// IsOrdered reports whether the delivery of the event must respect the
// FIFO order of its sender, even under randomized delays.
func (e *Event) IsOrdered() bool {
	return !e.Unordered
}

// String implements fmt.Stringer
func (e *Event) String() string {
	if e == nil {
		return "<nil>"
	}
	if e.Payload == nil {
		return string(e.Type)
	}
	return fmt.Sprintf("%s(%v)", e.Type, e.Payload)
}
