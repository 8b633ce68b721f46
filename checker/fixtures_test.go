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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tochemey/pcheck/config"
	"github.com/tochemey/pcheck/event"
	"github.com/tochemey/pcheck/log"
	"github.com/tochemey/pcheck/strategy"
)

const (
	tick  event.Type = "Tick"
	other event.Type = "Other"
	next  event.Type = "Next"
)

// single wraps a one state definition into a test.
func single(name string, state *State) *Test {
	return &Test{
		Name: name,
		Main: &Definition{
			Name:   "M",
			Start:  "Start",
			States: map[string]*State{"Start": state},
		},
	}
}

// coinTest fails when two coins flipped by the strategy both land on heads.
func coinTest() *Test {
	return single("coins", &State{
		OnEntry: func(ctx *Context) {
			first := ctx.RandomBool()
			second := ctx.RandomBool()
			ctx.Assert(!first || !second, "two heads")
		},
	})
}

// spinTest never goes quiet: its default handler runs forever.
func spinTest() *Test {
	return single("spin", &State{
		Default: func(*Context) {},
	})
}

// relayTest has several senders racing delayed events to a collector.
func relayTest() *Test {
	collector := &Definition{
		Name:  "Collector",
		Start: "Collecting",
		States: map[string]*State{
			"Collecting": {
				Handlers: map[event.Type]Handler{
					tick: func(ctx *Context) {
						if ctx.RandomInt(3) == 0 {
							ctx.Raise(event.New(other, ctx.Event().Payload))
						}
					},
					other: func(*Context) {},
				},
			},
		},
	}

	sender := &Definition{
		Name:  "Sender",
		Start: "Sending",
		States: map[string]*State{
			"Sending": {
				OnEntry: func(ctx *Context) {
					target := MachineID(ctx.Event().Payload.(uint64))
					for i := range 3 {
						ctx.Tell(target, event.New(tick, i), WithDelay("uniform:0:4"), Unordered())
					}
				},
			},
		},
	}

	return &Test{
		Name: "relay",
		Main: &Definition{
			Name:  "Root",
			Start: "Init",
			States: map[string]*State{
				"Init": {
					OnEntry: func(ctx *Context) {
						target := ctx.Spawn(collector, nil)
						for range 3 {
							ctx.Spawn(sender, uint64(target))
						}
					},
				},
			},
		},
	}
}

func newRandom(t *testing.T, seed uint64) strategy.Strategy {
	t.Helper()
	strat, err := strategy.New(strategy.RandomName, 0, seed)
	require.NoError(t, err)
	require.True(t, strat.InitializeNextIteration(0))
	return strat
}

func run(t *testing.T, test *Test, opts ...RuntimeOption) *Result {
	t.Helper()
	result, err := NewRuntime(test, newRandom(t, 1), opts...).Run(context.Background())
	require.NoError(t, err)
	return result
}

func newTestEngine(t *testing.T, opts ...config.Option) *Engine {
	t.Helper()
	opts = append([]config.Option{config.WithLogger(log.DiscardLogger)}, opts...)
	engine, err := NewEngine(context.Background(), config.New(opts...))
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}
