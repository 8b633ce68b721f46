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

package event

import "fmt"

// NoBound marks an envelope without an instance assertion bound.
const NoBound = -1

// Origin describes who sent an event.
type Origin struct {
	SenderID    uint64
	SenderType  string
	SenderState string
}

// String implements fmt.Stringer
func (o Origin) String() string {
	return fmt.Sprintf("%s(%d)@%s", o.SenderType, o.SenderID, o.SenderState)
}

// Envelope carries the delivery metadata paired with exactly one event.
type Envelope struct {
	Origin Origin
	// Name is the display name of the event, used in logs and fingerprints.
	Name string
	// MaxInstances bounds how many instances of the event type may be queued
	// at the same time in the receiving mailbox. NoBound disables the check.
	MaxInstances int
}

// NewEnvelope creates the envelope of the given event without any assertion bound.
func NewEnvelope(evt *Event, origin Origin) *Envelope {
	return &Envelope{
		Origin:       origin,
		Name:         string(evt.Type),
		MaxInstances: NoBound,
	}
}

// HasBound reports whether an instance assertion bound has been declared.
func (e *Envelope) HasBound() bool {
	return e.MaxInstances >= 0
}
