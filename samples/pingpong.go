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

package samples

import (
	"github.com/tochemey/pcheck/actor"
	"github.com/tochemey/pcheck/checker"
	"github.com/tochemey/pcheck/event"
)

const (
	Ping event.Type = "Ping"
	Pong event.Type = "Pong"
)

// PingPongRounds is the number of ping pong exchanges of the PingPong test.
const PingPongRounds = 3

const networkDelay = "uniform:1:5"

type pingerData struct {
	ponger checker.MachineID
	next   int
}

// PingPong is a bug free exchange. The pinger sends a numbered Ping and
// blocks until the matching Pong comes back, both travelling with a random
// network delay. Once every round is done both machines halt.
func PingPong() *checker.Test {
	ponger := &checker.Definition{
		Name:  "Ponger",
		Start: "Serving",
		States: map[string]*checker.State{
			"Serving": {
				Handlers: map[event.Type]checker.Handler{
					Ping: func(ctx *checker.Context) {
						ctx.Tell(ctx.Sender(), event.New(Pong, ctx.Event().Payload), checker.WithDelay(networkDelay))
					},
				},
			},
		},
	}

	var ping func(ctx *checker.Context)
	onPong := func(ctx *checker.Context) {
		state := ctx.Data().(*pingerData)
		round := ctx.Event().Payload.(int)
		ctx.Assert(round == state.next, "expected pong %d, got pong %d", state.next, round)
		if round == PingPongRounds {
			ctx.Tell(state.ponger, event.Halt())
			ctx.Shutdown()
			return
		}
		state.next++
		ping(ctx)
	}
	ping = func(ctx *checker.Context) {
		state := ctx.Data().(*pingerData)
		ctx.Tell(state.ponger, event.New(Ping, state.next), checker.WithDelay(networkDelay), checker.WithMaxInstances(1))
		ctx.Receive(actor.WaitFor(Pong), onPong)
	}

	main := &checker.Definition{
		Name:  "Pinger",
		Start: "Init",
		States: map[string]*checker.State{
			"Init": {
				OnEntry: func(ctx *checker.Context) {
					ctx.SetData(&pingerData{ponger: ctx.Spawn(ponger, nil), next: 1})
					ctx.Become("Playing")
				},
			},
			"Playing": {
				OnEntry: ping,
			},
		},
	}

	return &checker.Test{
		Name:        "pingpong",
		Description: "numbered ping pong rounds over a delayed network",
		Main:        main,
	}
}
