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

	"github.com/tochemey/pcheck/clock"
)

// BugKind classifies the failures found by the checker.
type BugKind int

const (
	// AssertionFailure is a violated assertion, including the mailbox
	// instances bound.
	AssertionFailure BugKind = iota + 1
	// Deadlock means the program went quiet while machines still wait to receive.
	Deadlock
	// UnhandledEvent means a machine dequeued an event its state does not handle.
	UnhandledEvent
	// HandlerFailure is an error reported by a handler or a panic raised by it.
	HandlerFailure
	// MaxStepsReached means the iteration hit the scheduling steps bound.
	MaxStepsReached
)

// String implements fmt.Stringer
func (k BugKind) String() string {
	switch k {
	case AssertionFailure:
		return "assertion"
	case Deadlock:
		return "deadlock"
	case UnhandledEvent:
		return "unhandled-event"
	case HandlerFailure:
		return "handler-failure"
	case MaxStepsReached:
		return "max-steps"
	default:
		return "unknown"
	}
}

// Bug is a failure found during an iteration.
//
// The error message does not depend on the step or the time the bug was
// found at, so that a replay can compare it with the recorded one.
type Bug struct {
	Kind BugKind
	// Machine is the display name of the machine that failed, if any.
	Machine string
	// State is the state the machine was in.
	State string
	// Step is the scheduling step the bug was found at.
	Step int
	// Time is the virtual time the bug was found at.
	Time clock.Timestamp
	// Err describes the failure.
	Err error
}

var _ error = (*Bug)(nil)

func newBug(kind BugKind, err error) *Bug {
	return &Bug{Kind: kind, Err: err}
}

// Error implements error.
func (b *Bug) Error() string {
	return b.Err.Error()
}

// Unwrap returns the failure.
func (b *Bug) Unwrap() error {
	return b.Err
}

// String implements fmt.Stringer
func (b *Bug) String() string {
	return fmt.Sprintf("%s bug at step %d (time=%s): %v", b.Kind, b.Step, b.Time, b.Err)
}
