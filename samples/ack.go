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
	"github.com/tochemey/pcheck/checker"
	"github.com/tochemey/pcheck/event"
)

const (
	Data event.Type = "Data"
	Ack  event.Type = "Ack"
)

// AckWindow is the number of Data events sent by the ack tests.
const AckWindow = 3

type senderData struct {
	expected int
}

// LostAck sends a window of numbered Data events to a receiver that acks
// each of them at once. The sender treats an ack out of sequence as lost.
// The Data events are delayed and unordered, so a later one can overtake
// an earlier one and the acks come back out of sequence.
func LostAck() *checker.Test {
	return ackTest("lostack", "acks lost to unordered delayed delivery", true)
}

// OrderedAck is LostAck with ordered delivery. Delays never reorder the
// events of a sender, so every ack comes back in sequence.
func OrderedAck() *checker.Test {
	return ackTest("orderedack", "acks of ordered delayed delivery", false)
}

func ackTest(name, description string, unordered bool) *checker.Test {
	receiver := &checker.Definition{
		Name:  "Receiver",
		Start: "Receiving",
		States: map[string]*checker.State{
			"Receiving": {
				Handlers: map[event.Type]checker.Handler{
					Data: func(ctx *checker.Context) {
						ctx.Tell(ctx.Sender(), event.New(Ack, ctx.Event().Payload))
					},
				},
			},
		},
	}

	opts := []checker.SendOption{checker.WithDelay("uniform:0:10")}
	if unordered {
		opts = append(opts, checker.Unordered())
	}

	sender := &checker.Definition{
		Name:  "Sender",
		Start: "Sending",
		States: map[string]*checker.State{
			"Sending": {
				OnEntry: func(ctx *checker.Context) {
					ctx.SetData(&senderData{expected: 1})
					target := ctx.Spawn(receiver, nil)
					for seq := 1; seq <= AckWindow; seq++ {
						ctx.Tell(target, event.New(Data, seq), opts...)
					}
				},
				Handlers: map[event.Type]checker.Handler{
					Ack: func(ctx *checker.Context) {
						state := ctx.Data().(*senderData)
						seq := ctx.Event().Payload.(int)
						ctx.Assert(seq == state.expected, "ack %d lost, got ack %d", state.expected, seq)
						state.expected++
						if state.expected > AckWindow {
							ctx.Tell(ctx.Sender(), event.Halt())
							ctx.Become("Done")
						}
					},
				},
			},
			"Done": {
				OnEntry: func(ctx *checker.Context) {
					ctx.Shutdown()
				},
			},
		},
	}

	return &checker.Test{
		Name:        name,
		Description: description,
		Main:        sender,
	}
}
