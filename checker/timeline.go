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
	"strings"

	"github.com/tochemey/pcheck/clock"
	"github.com/tochemey/pcheck/event"
	"github.com/tochemey/pcheck/log"
)

// TimelineKind is the kind of a timeline entry.
type TimelineKind int

const (
	Enqueued TimelineKind = iota
	Dequeued
	Received
	Dropped
)

// String implements fmt.Stringer
func (k TimelineKind) String() string {
	switch k {
	case Enqueued:
		return "enqueue"
	case Dequeued:
		return "dequeue"
	case Received:
		return "receive"
	case Dropped:
		return "drop"
	default:
		return "unknown"
	}
}

// TimelineEntry is one mailbox operation on the virtual timeline.
type TimelineEntry struct {
	Time    clock.Timestamp
	Kind    TimelineKind
	Event   event.Type
	Payload any
	// Machine is the display name of the machine owning the mailbox.
	Machine string
	// State is the state of the machine at the time of the operation.
	State string
}

// String implements fmt.Stringer
func (e TimelineEntry) String() string {
	payload := ""
	if e.Payload != nil {
		payload = fmt.Sprint(e.Payload)
	}
	return fmt.Sprintf("%s,%s,%s,%s,%s,%s", e.Time, e.Kind, e.Event, payload, e.Machine, e.State)
}

// Timeline records the mailbox operations of an iteration.
type Timeline struct {
	logger  log.Logger
	entries []TimelineEntry
}

func newTimeline(logger log.Logger) *Timeline {
	return &Timeline{logger: logger}
}

func (t *Timeline) record(entry TimelineEntry) {
	t.entries = append(t.entries, entry)
	if t.logger.Enabled(log.DebugLevel) {
		t.logger.Debugf("timeline: %s", entry)
	}
}

// Entries returns the recorded entries in order.
func (t *Timeline) Entries() []TimelineEntry {
	return t.entries
}

// Len returns the number of recorded entries.
func (t *Timeline) Len() int {
	return len(t.entries)
}

// String renders one entry per line as time,kind,event,payload,machine,state.
func (t *Timeline) String() string {
	var builder strings.Builder
	for _, entry := range t.entries {
		builder.WriteString(entry.String())
		builder.WriteByte('\n')
	}
	return builder.String()
}
