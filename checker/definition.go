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

	mapset "github.com/deckarep/golang-set/v2"

	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/event"
	"github.com/tochemey/pcheck/internal/validation"
)

// EntryType is the type of the event seen by the entry handler of the
// start state. Its payload is the payload given at creation.
const EntryType event.Type = "Entry"

// Handler handles the event returned by Context.Event.
type Handler func(ctx *Context)

// State describes how a machine reacts to events while in a given state.
type State struct {
	// OnEntry runs when the machine enters the state.
	OnEntry Handler
	// Handlers maps the handled event types to their handler.
	Handlers map[event.Type]Handler
	// Ignored lists the event types silently discarded in the state.
	Ignored []event.Type
	// Deferred lists the event types kept queued until the machine leaves the state.
	Deferred []event.Type
	// Default runs when nothing can be dequeued at the current instant.
	Default Handler
}

// Definition describes a state machine.
type Definition struct {
	// Name is the type name of the machine, used in logs and bug reports.
	Name string
	// Start is the state entered at creation.
	Start string
	// States holds the states of the machine by name.
	States map[string]*State
}

var _ validation.Validator = (*Definition)(nil)

// Validate implements validation.Validator.
func (d *Definition) Validate() error {
	return validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("Name", d.Name)).
		AddValidator(validation.NewEmptyStringValidator("Start", d.Start)).
		AddValidator(validation.ValidatorFunc(d.validateStates)).
		Validate()
}

func (d *Definition) validateStates() error {
	if _, ok := d.States[d.Start]; !ok {
		return perrors.NewErrInvalidDefinition(d.Name, fmt.Sprintf("start state %q is not defined", d.Start))
	}

	for name, state := range d.States {
		if state == nil {
			return perrors.NewErrInvalidDefinition(d.Name, fmt.Sprintf("state %q is nil", name))
		}

		ignored := mapset.NewThreadUnsafeSet(state.Ignored...)
		deferred := mapset.NewThreadUnsafeSet(state.Deferred...)
		if both := ignored.Intersect(deferred); both.Cardinality() > 0 {
			return perrors.NewErrInvalidDefinition(d.Name,
				fmt.Sprintf("state %q both ignores and defers %v", name, both.ToSlice()))
		}

		for eventType := range state.Handlers {
			if ignored.Contains(eventType) || deferred.Contains(eventType) {
				return perrors.NewErrInvalidDefinition(d.Name,
					fmt.Sprintf("state %q handles and ignores or defers %s", name, eventType))
			}
		}
	}
	return nil
}

// behavior is the compiled form of a State.
type behavior struct {
	name     string
	state    *State
	ignored  mapset.Set[event.Type]
	deferred mapset.Set[event.Type]
}

func compile(def *Definition) map[string]*behavior {
	behaviors := make(map[string]*behavior, len(def.States))
	for name, state := range def.States {
		behaviors[name] = &behavior{
			name:     name,
			state:    state,
			ignored:  mapset.NewThreadUnsafeSet(state.Ignored...),
			deferred: mapset.NewThreadUnsafeSet(state.Deferred...),
		}
	}
	return behaviors
}

func (b *behavior) handler(eventType event.Type) (Handler, bool) {
	handler, ok := b.state.Handlers[eventType]
	return handler, ok && handler != nil
}
