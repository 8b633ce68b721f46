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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrAssertionFailed is returned when a safety assertion of the program under test does not hold.
	ErrAssertionFailed = errors.New("assertion failure")

	// ErrDeadlock is returned when an actor is blocked on a receive that can never be satisfied.
	ErrDeadlock = errors.New("deadlock detected")

	// ErrUnhandledEvent is returned when an actor dequeues an event its current state does not handle.
	ErrUnhandledEvent = errors.New("unhandled event")

	// ErrHandlerFailure is returned when an event handler of the program under test returns an error.
	ErrHandlerFailure = errors.New("event handler failed")

	// ErrMaxStepsReached is returned when an iteration hits the scheduling steps bound and
	// the configuration treats it as a bug.
	ErrMaxStepsReached = errors.New("max scheduling steps reached")

	// ErrUnknownState is returned when a machine transitions to a state it does not declare.
	ErrUnknownState = errors.New("unknown state")

	// ErrMachineNotFound is returned when an event is sent to a machine that was never created.
	ErrMachineNotFound = errors.New("machine not found")

	// ErrInvalidDefinition is returned when a machine definition is structurally invalid.
	ErrInvalidDefinition = errors.New("invalid machine definition")

	// ErrInvalidStrategy is returned when the configured scheduling strategy is not supported.
	ErrInvalidStrategy = errors.New("invalid scheduling strategy, must be one of: 'random', 'probabilistic', 'pct', 'fairpct', 'feedback' or 'portfolio'")

	// ErrInvalidDistribution is returned when a delay distribution tag cannot be parsed.
	ErrInvalidDistribution = errors.New("invalid delay distribution")

	// ErrReplayDiverged is returned when a replayed execution asks for a decision that does
	// not match the recorded one.
	ErrReplayDiverged = errors.New("replay diverged from the recorded schedule")

	// ErrReplayExhausted is returned when a replayed execution asks for more decisions than recorded.
	ErrReplayExhausted = errors.New("replay record exhausted")

	// ErrRecordNotFound is returned when a replay record cannot be found in the store.
	ErrRecordNotFound = errors.New("replay record not found")

	// ErrInvalidRecord is returned when a replay record cannot be decoded.
	ErrInvalidRecord = errors.New("invalid replay record")

	// ErrStoreClosed is returned when the replay store is used after it has been closed.
	ErrStoreClosed = errors.New("replay store is closed")

	// ErrStoreNotConfigured is returned when a stored record is requested from a session without store.
	ErrStoreNotConfigured = errors.New("replay store is not configured")

	// ErrRecordMismatch is returned when a record is replayed against another test.
	ErrRecordMismatch = errors.New("record does not belong to the test")

	// ErrTestNotFound is returned when a test case is not registered.
	ErrTestNotFound = errors.New("test not found")

	// ErrTestAlreadyRegistered is returned when a test case name is registered twice.
	ErrTestAlreadyRegistered = errors.New("test already registered")

	// ErrInvalidIterations is returned when the number of iterations is not strictly positive.
	ErrInvalidIterations = errors.New("invalid number of iterations, must be greater than zero")

	// ErrInvalidMaxSteps is returned when the scheduling steps bound is not strictly positive.
	ErrInvalidMaxSteps = errors.New("invalid max steps, must be greater than zero")

	// ErrInvalidStrategyBound is returned when a strategy bound is negative.
	ErrInvalidStrategyBound = errors.New("invalid strategy bound, must not be negative")

	// ErrInvalidTimeout is returned when a timeout value is negative.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// NewErrAssertionFailed formats an ErrAssertionFailed with the assertion message.
func NewErrAssertionFailed(message string) error {
	return fmt.Errorf("%w: %s", ErrAssertionFailed, message)
}

// NewErrDeadlock formats an ErrDeadlock with the blocked machines.
func NewErrDeadlock(machines []string) error {
	return fmt.Errorf("%w: machines=%v are waiting to receive an event", ErrDeadlock, machines)
}

// NewErrUnhandledEvent formats an ErrUnhandledEvent for the given machine, state and event.
func NewErrUnhandledEvent(machine, state, eventType string) error {
	return fmt.Errorf("(machine=%s, state=%s, event=%s) %w", machine, state, eventType, ErrUnhandledEvent)
}

// NewErrHandlerFailure wraps a handler error with ErrHandlerFailure.
func NewErrHandlerFailure(machine, state string, err error) error {
	return errors.Join(fmt.Errorf("(machine=%s, state=%s) %w", machine, state, ErrHandlerFailure), err)
}

// NewErrUnknownState formats an ErrUnknownState with the given state name.
func NewErrUnknownState(machine, state string) error {
	return fmt.Errorf("(machine=%s, state=%s) %w", machine, state, ErrUnknownState)
}

// NewErrMachineNotFound formats an ErrMachineNotFound with the given machine id.
func NewErrMachineNotFound(id uint64) error {
	return fmt.Errorf("(machine=%d) %w", id, ErrMachineNotFound)
}

// NewErrInvalidDefinition wraps a definition problem with ErrInvalidDefinition.
func NewErrInvalidDefinition(name, reason string) error {
	return fmt.Errorf("(definition=%s) %w: %s", name, ErrInvalidDefinition, reason)
}

// NewErrInvalidStrategy formats an ErrInvalidStrategy with the given strategy name.
func NewErrInvalidStrategy(name string) error {
	return fmt.Errorf("strategy=(%s) %w", name, ErrInvalidStrategy)
}

// NewErrInvalidDistribution formats an ErrInvalidDistribution with the given tag.
func NewErrInvalidDistribution(tag string, err error) error {
	return errors.Join(fmt.Errorf("distribution=(%s) %w", tag, ErrInvalidDistribution), err)
}

// NewErrReplayDiverged formats an ErrReplayDiverged at the given decision index.
func NewErrReplayDiverged(index int, reason string) error {
	return fmt.Errorf("(decision=%d) %w: %s", index, ErrReplayDiverged, reason)
}

// NewErrRecordNotFound formats an ErrRecordNotFound with the given record id.
func NewErrRecordNotFound(id string) error {
	return fmt.Errorf("(record=%s) %w", id, ErrRecordNotFound)
}

// NewErrInvalidRecord wraps a decoding error with ErrInvalidRecord.
func NewErrInvalidRecord(err error) error {
	return errors.Join(ErrInvalidRecord, err)
}

// NewErrTestNotFound formats an ErrTestNotFound with the given test name.
func NewErrTestNotFound(name string) error {
	return fmt.Errorf("test=(%s) %w", name, ErrTestNotFound)
}

// NewErrTestAlreadyRegistered formats an ErrTestAlreadyRegistered with the given test name.
func NewErrTestAlreadyRegistered(name string) error {
	return fmt.Errorf("test=(%s) %w", name, ErrTestAlreadyRegistered)
}
