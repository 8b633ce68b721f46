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
	Request event.Type = "Request"
	Reply   event.Type = "Reply"
	Unlock  event.Type = "Unlock"
)

// Deadlock has a client blocked on the reply to a request the server
// defers until it is unlocked. Nobody ever unlocks the server.
func Deadlock() *checker.Test {
	server := &checker.Definition{
		Name:  "Server",
		Start: "Locked",
		States: map[string]*checker.State{
			"Locked": {
				Deferred: []event.Type{Request},
				Handlers: map[event.Type]checker.Handler{
					Unlock: func(ctx *checker.Context) {
						ctx.Become("Serving")
					},
				},
			},
			"Serving": {
				Handlers: map[event.Type]checker.Handler{
					Request: func(ctx *checker.Context) {
						ctx.Tell(ctx.Sender(), event.New(Reply, nil))
					},
				},
			},
		},
	}

	client := &checker.Definition{
		Name:  "Client",
		Start: "Requesting",
		States: map[string]*checker.State{
			"Requesting": {
				OnEntry: func(ctx *checker.Context) {
					target := ctx.Spawn(server, nil)
					ctx.Tell(target, event.New(Request, nil), checker.WithDelay("constant:2"))
					ctx.Receive(actor.WaitFor(Reply), func(ctx *checker.Context) {
						ctx.Shutdown()
					})
				},
			},
		},
	}

	return &checker.Test{
		Name:        "deadlock",
		Description: "a client waits on a request the server never serves",
		Main:        client,
	}
}
