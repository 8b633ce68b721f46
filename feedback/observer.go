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

package feedback

import (
	"encoding/binary"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/zeebo/xxh3"

	"github.com/tochemey/pcheck/event"
)

// Observer computes the behavior signature of a run.
//
// Each dequeue is summarized as an (actor type, state, event type) triple.
// The signature covers the distinct transitions between consecutive triples
// of the same actor, so two runs share a signature when every actor went
// through the same handling steps, whatever the interleaving between actors.
type Observer struct {
	last        map[uint64]uint64
	transitions mapset.Set[uint64]
}

// NewObserver creates an Observer.
func NewObserver() *Observer {
	return &Observer{
		last:        make(map[uint64]uint64),
		transitions: mapset.NewThreadUnsafeSet[uint64](),
	}
}

// OnDequeue records that the given actor handled an event in the given state.
func (o *Observer) OnDequeue(actorID uint64, actorType, state string, eventType event.Type) {
	hasher := xxh3.New()
	_, _ = hasher.WriteString(actorType)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(state)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(string(eventType))
	triple := hasher.Sum64()

	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], o.last[actorID])
	binary.LittleEndian.PutUint64(buf[8:], triple)
	o.last[actorID] = triple
	o.transitions.Add(xxh3.Hash(buf[:]))
}

// Signature returns the signature of the run observed so far.
func (o *Observer) Signature() uint64 {
	transitions := o.transitions.ToSlice()
	slices.Sort(transitions)

	buf := make([]byte, 0, 8*len(transitions))
	for _, transition := range transitions {
		buf = binary.LittleEndian.AppendUint64(buf, transition)
	}
	return xxh3.Hash(buf)
}

// Transitions returns the number of distinct transitions observed.
func (o *Observer) Transitions() int {
	return o.transitions.Cardinality()
}

// Reset clears the observer before the next run.
func (o *Observer) Reset() {
	clear(o.last)
	o.transitions.Clear()
}
