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
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/pcheck/actor"
	"github.com/tochemey/pcheck/clock"
	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/event"
)

func kinds(timeline *Timeline) []TimelineKind {
	out := make([]TimelineKind, 0, timeline.Len())
	for _, entry := range timeline.Entries() {
		out = append(out, entry.Kind)
	}
	return out
}

func TestRuntime(t *testing.T) {
	t.Run("With a quiet program", func(t *testing.T) {
		result := run(t, single("quiet", &State{}))
		assert.Nil(t, result.Bug)
		assert.Equal(t, 1, result.Steps)
		assert.False(t, result.MaxStepsReached)
		assert.Equal(t, clock.Zero, result.Time)
	})
	t.Run("With the creation payload", func(t *testing.T) {
		var seen []any
		test := single("payload", &State{
			OnEntry: func(ctx *Context) {
				assert.Equal(t, EntryType, ctx.Event().Type)
				assert.Equal(t, NoMachine, ctx.Sender())
				assert.Equal(t, MachineID(1), ctx.Self())
				assert.Equal(t, "M(1)", ctx.Name())
				seen = append(seen, ctx.Event().Payload)
			},
		})
		test.Payload = 42
		result := run(t, test)
		require.Nil(t, result.Bug)
		assert.Equal(t, []any{42}, seen)
	})
	t.Run("With raised events and transitions", func(t *testing.T) {
		var trace []string
		test := &Test{
			Name: "raise",
			Main: &Definition{
				Name:  "M",
				Start: "A",
				States: map[string]*State{
					"A": {
						OnEntry: func(ctx *Context) {
							ctx.Raise(event.New(next, "go"))
						},
						Handlers: map[event.Type]Handler{
							next: func(ctx *Context) {
								trace = append(trace, "next in "+ctx.State())
								ctx.Become("B")
							},
						},
					},
					"B": {
						OnEntry: func(ctx *Context) {
							trace = append(trace, "enter B with "+ctx.Event().Payload.(string))
						},
					},
				},
			},
		}
		result := run(t, test)
		require.Nil(t, result.Bug)
		assert.Equal(t, []string{"next in A", "enter B with go"}, trace)
		assert.Equal(t, 1, result.Steps)
	})
	t.Run("With a default handler", func(t *testing.T) {
		calls := 0
		test := single("default", &State{
			Default: func(ctx *Context) {
				calls++
				assert.Equal(t, event.DefaultType, ctx.Event().Type)
				if calls == 3 {
					ctx.Shutdown()
				}
			},
		})
		result := run(t, test)
		require.Nil(t, result.Bug)
		assert.Equal(t, 3, calls)
		assert.Equal(t, 4, result.Steps)
	})
	t.Run("With a timed receive", func(t *testing.T) {
		var resumedAt clock.Timestamp
		var order []string
		child := &Definition{
			Name:  "Child",
			Start: "Start",
			States: map[string]*State{
				"Start": {
					OnEntry: func(ctx *Context) {
						ctx.Tell(ctx.Sender(), event.New(tick, nil), WithDelay("constant:5"))
					},
				},
			},
		}
		test := &Test{
			Name: "receive",
			Main: &Definition{
				Name:  "M",
				Start: "A",
				States: map[string]*State{
					"A": {
						OnEntry: func(ctx *Context) {
							ctx.Spawn(child, nil)
							ctx.Become("B")
							ctx.Receive(actor.WaitFor(tick), func(ctx *Context) {
								resumedAt = ctx.Now()
								order = append(order, "received "+string(ctx.Event().Type))
							})
						},
					},
					"B": {
						OnEntry: func(ctx *Context) {
							order = append(order, "enter B")
						},
					},
				},
			},
		}
		result := run(t, test)
		require.Nil(t, result.Bug)
		assert.Equal(t, clock.At(5), resumedAt)
		assert.Equal(t, clock.At(5), result.Time)
		assert.Equal(t, []string{"received Tick", "enter B"}, order)
		assert.Equal(t, []TimelineKind{Enqueued, Received}, kinds(result.Timeline))
	})
	t.Run("With a halted machine", func(t *testing.T) {
		child := &Definition{
			Name:   "Child",
			Start:  "Start",
			States: map[string]*State{"Start": {}},
		}
		test := single("halt", &State{
			OnEntry: func(ctx *Context) {
				target := ctx.Spawn(child, nil)
				ctx.Tell(target, event.Halt())
				ctx.Tell(target, event.New(tick, nil))
			},
		})
		result := run(t, test)
		require.Nil(t, result.Bug)
		assert.Equal(t, []TimelineKind{Enqueued, Enqueued, Dequeued, Dropped}, kinds(result.Timeline))
		assert.Equal(t, "Child(2)", result.Timeline.Entries()[3].Machine)
	})
	t.Run("With an event sent to a halted machine", func(t *testing.T) {
		child := &Definition{
			Name:   "Child",
			Start:  "Start",
			States: map[string]*State{"Start": {}},
		}
		test := single("send-after-halt", &State{
			OnEntry: func(ctx *Context) {
				target := ctx.Spawn(child, nil)
				ctx.SetData(target)
				ctx.Tell(target, event.Halt())
				ctx.Tell(ctx.Self(), event.New(next, nil), WithDelay("constant:1"))
			},
			Handlers: map[event.Type]Handler{
				next: func(ctx *Context) {
					ctx.Tell(ctx.Data().(MachineID), event.New(tick, nil))
				},
			},
		})
		result := run(t, test)
		require.Nil(t, result.Bug)
		assert.Equal(t, []TimelineKind{Enqueued, Enqueued, Dequeued, Dequeued, Dropped}, kinds(result.Timeline))

		dropped := result.Timeline.Entries()[4]
		assert.Equal(t, tick, dropped.Event)
		assert.Equal(t, "Child(2)", dropped.Machine)
		assert.Equal(t, clock.At(1), dropped.Time)
	})
	t.Run("With an unhandled event", func(t *testing.T) {
		test := single("unhandled", &State{
			OnEntry: func(ctx *Context) {
				ctx.Tell(ctx.Self(), event.New(tick, nil))
			},
		})
		result := run(t, test)
		require.NotNil(t, result.Bug)
		assert.Equal(t, UnhandledEvent, result.Bug.Kind)
		assert.ErrorIs(t, result.Bug, perrors.ErrUnhandledEvent)
		assert.Equal(t, "M(1)", result.Bug.Machine)
		assert.Equal(t, "Start", result.Bug.State)
		assert.Equal(t, 2, result.Bug.Step)
	})
	t.Run("With an ignored event", func(t *testing.T) {
		test := single("ignored", &State{
			Ignored: []event.Type{tick},
			OnEntry: func(ctx *Context) {
				ctx.Tell(ctx.Self(), event.New(tick, nil))
			},
		})
		result := run(t, test)
		assert.Nil(t, result.Bug)
	})
	t.Run("With a handler error", func(t *testing.T) {
		failure := errors.New("disk full")
		test := single("failure", &State{
			OnEntry: func(ctx *Context) {
				ctx.Err(failure)
			},
		})
		result := run(t, test)
		require.NotNil(t, result.Bug)
		assert.Equal(t, HandlerFailure, result.Bug.Kind)
		assert.ErrorIs(t, result.Bug, perrors.ErrHandlerFailure)
		assert.ErrorIs(t, result.Bug, failure)
	})
	t.Run("With a handler panic", func(t *testing.T) {
		test := single("panic", &State{
			OnEntry: func(*Context) {
				panic("boom")
			},
		})
		result := run(t, test)
		require.NotNil(t, result.Bug)
		assert.Equal(t, HandlerFailure, result.Bug.Kind)
		assert.Contains(t, result.Bug.Error(), "panic: boom")
		assert.Equal(t, "M(1)", result.Bug.Machine)
	})
	t.Run("With an unknown state", func(t *testing.T) {
		test := single("unknown-state", &State{
			OnEntry: func(ctx *Context) {
				ctx.Become("Nowhere")
			},
		})
		result := run(t, test)
		require.NotNil(t, result.Bug)
		assert.ErrorIs(t, result.Bug, perrors.ErrUnknownState)
	})
	t.Run("With an unknown target", func(t *testing.T) {
		test := single("unknown-target", &State{
			OnEntry: func(ctx *Context) {
				ctx.Tell(MachineID(42), event.New(tick, nil))
			},
		})
		result := run(t, test)
		require.NotNil(t, result.Bug)
		assert.ErrorIs(t, result.Bug, perrors.ErrMachineNotFound)
	})
	t.Run("With an invalid spawned definition", func(t *testing.T) {
		test := single("invalid-spawn", &State{
			OnEntry: func(ctx *Context) {
				ctx.Spawn(&Definition{Name: "Broken", Start: "Missing"}, nil)
			},
		})
		result := run(t, test)
		require.NotNil(t, result.Bug)
		assert.ErrorIs(t, result.Bug, perrors.ErrInvalidDefinition)
	})
	t.Run("With the instances bound", func(t *testing.T) {
		child := &Definition{
			Name:   "Child",
			Start:  "Start",
			States: map[string]*State{"Start": {Ignored: []event.Type{tick}}},
		}
		test := single("bound", &State{
			OnEntry: func(ctx *Context) {
				target := ctx.Spawn(child, nil)
				ctx.Tell(target, event.New(tick, nil), WithMaxInstances(1))
				ctx.Tell(target, event.New(tick, nil), WithMaxInstances(1))
			},
		})
		result := run(t, test)
		require.NotNil(t, result.Bug)
		assert.Equal(t, AssertionFailure, result.Bug.Kind)
		assert.Contains(t, result.Bug.Error(), "more than 1 instances of 'Tick' in the input queue of Child(2)")
	})
	t.Run("With a deadlock", func(t *testing.T) {
		test := single("deadlock", &State{
			OnEntry: func(ctx *Context) {
				ctx.Receive(actor.WaitFor(tick), func(*Context) {})
			},
		})
		result := run(t, test)
		require.NotNil(t, result.Bug)
		assert.Equal(t, Deadlock, result.Bug.Kind)
		assert.ErrorIs(t, result.Bug, perrors.ErrDeadlock)
		assert.Equal(t, "M(1)", result.Bug.Machine)
	})
	t.Run("With the steps bound", func(t *testing.T) {
		result := run(t, spinTest(), WithMaxSteps(10, false))
		assert.Nil(t, result.Bug)
		assert.True(t, result.MaxStepsReached)
		assert.Equal(t, 10, result.Steps)

		result = run(t, spinTest(), WithMaxSteps(10, true))
		require.NotNil(t, result.Bug)
		assert.Equal(t, MaxStepsReached, result.Bug.Kind)
		assert.ErrorIs(t, result.Bug, perrors.ErrMaxStepsReached)
	})
	t.Run("With a canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewRuntime(spinTest(), newRandom(t, 1)).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRuntimeDeterminism(t *testing.T) {
	first := run(t, relayTest())
	second := run(t, relayTest())

	require.Nil(t, first.Bug)
	assert.Equal(t, first.Timeline.String(), second.Timeline.String())
	assert.Equal(t, first.Signature, second.Signature)
	assert.Equal(t, first.Steps, second.Steps)
	assert.Equal(t, first.Time, second.Time)
}

func TestBugKindString(t *testing.T) {
	assert.Equal(t, "assertion", AssertionFailure.String())
	assert.Equal(t, "deadlock", Deadlock.String())
	assert.Equal(t, "unhandled-event", UnhandledEvent.String())
	assert.Equal(t, "handler-failure", HandlerFailure.String())
	assert.Equal(t, "max-steps", MaxStepsReached.String())
	assert.Equal(t, "unknown", BugKind(0).String())
	assert.Equal(t, "drop", Dropped.String())
	assert.Equal(t, "unknown", TimelineKind(9).String())
}
