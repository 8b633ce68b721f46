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

package actor

import (
	"github.com/tochemey/pcheck/clock"
	"github.com/tochemey/pcheck/event"
	"github.com/tochemey/pcheck/hash"
	"github.com/tochemey/pcheck/strategy"
)

// fingerprintSeed is the fingerprint of an empty mailbox.
const fingerprintSeed uint64 = 19

// entry is a node of the arrival ordered list of queued events.
type entry struct {
	evt  *event.Event
	env  *event.Envelope
	prev *entry
	next *entry
}

// TimedMailbox is the mailbox of an actor running under virtual time.
//
// Events are kept in arrival order. Each event carries the earliest instant
// it may be delivered, computed at Enqueue from the delay sampled by the
// scheduling strategy. Delivery follows these rules:
//   - a raised event has absolute priority unless ignored in the current state.
//   - events ignored by the current state are discarded on sight.
//   - the first event in arrival order that is due and not deferred is delivered.
//   - otherwise the non deferred event with the earliest dequeue time is
//     reported as Delayed without being removed.
//
// Ordered events of the same sender never overtake each other: the dequeue
// time of an ordered event is clamped to the latest dequeue time assigned
// to its sender before the sampled delay is added.
//
// Notes:
//   - TimedMailbox is not goroutine-safe. It is owned by exactly one actor and
//     driven by the single goroutine running the iteration.
//   - Close is terminal: once closed, every Enqueue reports Dropped.
type TimedMailbox struct {
	manager Manager
	clock   *clock.Clock
	sampler strategy.DelaySampler
	hasher  hash.Hasher

	head *entry
	tail *entry
	size int

	raised *entry

	waitSet WaitSet
	pending *Pending

	closed bool

	// latest dequeue time assigned to the ordered events of each sender
	latest map[uint64]clock.Timestamp
}

// NewTimedMailbox creates a TimedMailbox owned by the given manager.
// A nil sampler disables delay sampling: every event is due as soon as sent.
func NewTimedMailbox(manager Manager, clk *clock.Clock, sampler strategy.DelaySampler) *TimedMailbox {
	mailbox := &TimedMailbox{
		manager: manager,
		clock:   clk,
		sampler: sampler,
		hasher:  hash.DefaultHasher(),
	}
	if sampler != nil {
		mailbox.latest = make(map[uint64]clock.Timestamp)
	}
	return mailbox
}

// Enqueue stores the event sent to the owning actor and tells the runtime
// whether the actor needs to be scheduled.
//
// The delay is sampled before the closed check, so a dropped send consumes
// the same scheduling decisions as a delivered one.
func (m *TimedMailbox) Enqueue(evt *event.Event, env *event.Envelope) EnqueueStatus {
	now := m.clock.Now()
	evt.EnqueueTime = now
	evt.DequeueTime = now

	if m.sampler != nil {
		sampled, delay := m.sampler.SampleDelay(evt.DelayDistribution)
		if evt.IsOrdered() {
			if latest, ok := m.latest[env.Origin.SenderID]; ok {
				evt.DequeueTime = clock.Max(evt.DequeueTime, latest)
			}
		}

		if sampled {
			evt.DequeueTime = evt.DequeueTime.Add(delay)
		}

		if evt.IsOrdered() {
			m.latest[env.Origin.SenderID] = evt.DequeueTime
		}
	}

	if m.closed {
		m.manager.OnDrop(evt, env)
		return Dropped
	}

	if !evt.DequeueTime.After(now) && m.waitSet.Accepts(evt) {
		m.waitSet = nil
		m.manager.OnReceive(evt, env, true)
		m.pending.resolve(evt, env)
		return HandlerAlreadyRunning
	}

	m.manager.OnEnqueue(evt, env)
	m.pushBack(&entry{evt: evt, env: env})

	if env.HasBound() {
		count := m.count(evt.Type)
		owner := m.manager.Origin()
		m.manager.Assert(count <= env.MaxInstances,
			"there are more than %d instances of '%s' in the input queue of %s(%d)",
			env.MaxInstances, env.Name, owner.SenderType, owner.SenderID)
	}

	if !m.manager.IsHandlerRunning() {
		next, delayed := m.scan(true)
		if next == nil || delayed {
			return NextEventUnavailable
		}
		m.manager.SetHandlerRunning(true)
		return HandlerNotRunning
	}

	return HandlerRunning
}

// Dequeue returns the next event the owning actor must handle.
//
// A Delayed result carries the earliest future event, which stays queued,
// and marks the handler loop as stopped. Events ignored by the current
// state are removed while scanning.
func (m *TimedMailbox) Dequeue() (DequeueStatus, *event.Event, *event.Envelope) {
	if m.raised != nil {
		raised := m.raised
		m.raised = nil
		if !m.manager.IsIgnored(raised.evt, raised.env) {
			return Raised, raised.evt, raised.env
		}
	}

	hasDefault := m.manager.HasDefaultHandler()
	next, delayed := m.scan(false)
	if delayed {
		if next == nil {
			return NotAvailable, nil, nil
		}
		m.manager.SetHandlerRunning(false)
		return Delayed, next.evt, next.env
	}

	if next != nil {
		m.manager.OnDequeue(next.evt, next.env)
		return Success, next.evt, next.env
	}

	if !hasDefault {
		m.manager.SetHandlerRunning(false)
		return NotAvailable, nil, nil
	}

	now := m.clock.Now()
	evt := event.Default()
	evt.EnqueueTime = now
	evt.DequeueTime = now
	return Default, evt, event.NewEnvelope(evt, m.manager.Origin())
}

// CheckDequeue reports what Dequeue would deliver from the queue without
// mutating anything. Neither the raised event nor the default handler are
// considered, and ignored events are left in place.
func (m *TimedMailbox) CheckDequeue() (DequeueStatus, *event.Event, *event.Envelope) {
	next, delayed := m.scan(true)
	if next == nil {
		return NotAvailable, nil, nil
	}
	if delayed {
		return Delayed, next.evt, next.env
	}
	return Success, next.evt, next.env
}

// scan looks for the next deliverable entry. It returns the first due
// entry in arrival order, or else the earliest future entry flagged as
// delayed. While a receive is outstanding nothing can be dequeued and the
// scan reports a delayed nil entry.
func (m *TimedMailbox) scan(checkOnly bool) (*entry, bool) {
	if len(m.waitSet) > 0 {
		return nil, true
	}

	now := m.clock.Now()
	var candidate *entry
	for node := m.head; node != nil; {
		next := node.next
		if m.manager.IsIgnored(node.evt, node.env) {
			if !checkOnly {
				m.remove(node)
			}
			node = next
			continue
		}

		if m.manager.IsDeferred(node.evt, node.env) {
			node = next
			continue
		}

		if !node.evt.DequeueTime.After(now) {
			if !checkOnly {
				node.evt.DequeueTime = now
				m.remove(node)
			}
			return node, false
		}

		if candidate == nil || candidate.evt.DequeueTime.After(node.evt.DequeueTime) {
			candidate = node
		}
		node = next
	}
	return candidate, candidate != nil
}

// Raise stores a self targeted event with absolute priority over the queue.
// A raised event that was not consumed yet is replaced.
func (m *TimedMailbox) Raise(evt *event.Event) {
	now := m.clock.Now()
	evt.EnqueueTime = now
	evt.DequeueTime = now
	env := event.NewEnvelope(evt, m.manager.Origin())
	m.raised = &entry{evt: evt, env: env}
	m.manager.OnRaise(evt, env)
}

// Receive waits for an event accepted by the wait set. The returned Pending
// is already resolved when a due matching event is queued. Otherwise the
// wait set becomes active, replacing any previous one, and the Pending is
// resolved later by ResolveDelayedWait or by a matching Enqueue.
func (m *TimedMailbox) Receive(waitSet WaitSet) *Pending {
	if node := m.firstDue(waitSet); node != nil {
		node.evt.DequeueTime = m.clock.Now()
		m.remove(node)
		m.manager.OnReceive(node.evt, node.env, false)
		return resolvedPending(node.evt, node.env)
	}

	m.pending = &Pending{}
	m.waitSet = waitSet
	m.manager.OnWait(waitSet.Types())
	return m.pending
}

// ResolveDelayedWait resumes an actor blocked on a receive once the clock
// has reached the dequeue time of a matching event. It returns whether the
// pending receive has been resolved.
func (m *TimedMailbox) ResolveDelayedWait() bool {
	if len(m.waitSet) == 0 {
		return false
	}

	node := m.firstDue(m.waitSet)
	if node == nil {
		return false
	}

	node.evt.DequeueTime = m.clock.Now()
	m.remove(node)
	m.waitSet = nil
	m.manager.OnReceive(node.evt, node.env, true)
	m.pending.resolve(node.evt, node.env)
	return true
}

// PeekEarliestWaitCandidate returns the queued event accepted by the active
// wait set with the earliest dequeue time, ties going to the earliest
// arrival. The runtime advances the clock to its dequeue time before
// calling ResolveDelayedWait.
func (m *TimedMailbox) PeekEarliestWaitCandidate() (*event.Event, bool) {
	if len(m.waitSet) == 0 {
		return nil, false
	}

	var earliest *event.Event
	for node := m.head; node != nil; node = node.next {
		if !m.waitSet.Accepts(node.evt) {
			continue
		}
		if earliest == nil || node.evt.DequeueTime.Before(earliest.DequeueTime) {
			earliest = node.evt
		}
	}
	return earliest, earliest != nil
}

// Fingerprint hashes the names of the queued events in arrival order.
// Two mailboxes holding the same events in a different order have
// different fingerprints.
func (m *TimedMailbox) Fingerprint() uint64 {
	fingerprint := fingerprintSeed
	for node := m.head; node != nil; node = node.next {
		fingerprint = fingerprint*31 + m.hasher.HashString(node.env.Name)
	}
	return fingerprint
}

// Close stops the mailbox from accepting events. Queued events remain
// deliverable.
func (m *TimedMailbox) Close() {
	m.closed = true
}

// Dispose reports every queued event as dropped and empties the mailbox.
func (m *TimedMailbox) Dispose() {
	for node := m.head; node != nil; node = node.next {
		m.manager.OnDrop(node.evt, node.env)
	}
	m.head = nil
	m.tail = nil
	m.size = 0
}

// Len returns the number of queued events.
func (m *TimedMailbox) Len() int {
	return m.size
}

// IsEventRaised reports whether a raised event is waiting to be handled.
func (m *TimedMailbox) IsEventRaised() bool {
	return m.raised != nil
}

// IsWaiting reports whether the owning actor is blocked on a receive.
func (m *TimedMailbox) IsWaiting() bool {
	return len(m.waitSet) > 0
}

// IsClosed reports whether the mailbox has been closed.
func (m *TimedMailbox) IsClosed() bool {
	return m.closed
}

// firstDue returns the first entry in arrival order that is due and
// accepted by the wait set.
func (m *TimedMailbox) firstDue(waitSet WaitSet) *entry {
	now := m.clock.Now()
	for node := m.head; node != nil; node = node.next {
		if !node.evt.DequeueTime.After(now) && waitSet.Accepts(node.evt) {
			return node
		}
	}
	return nil
}

func (m *TimedMailbox) count(eventType event.Type) int {
	count := 0
	for node := m.head; node != nil; node = node.next {
		if node.evt.Type == eventType {
			count++
		}
	}
	return count
}

func (m *TimedMailbox) pushBack(node *entry) {
	node.prev = m.tail
	node.next = nil
	if m.tail == nil {
		m.head = node
	} else {
		m.tail.next = node
	}
	m.tail = node
	m.size++
}

// remove unlinks the node. The node keeps its payload so that it can still
// be returned to the caller.
func (m *TimedMailbox) remove(node *entry) {
	if node.prev == nil {
		m.head = node.next
	} else {
		node.prev.next = node.next
	}
	if node.next == nil {
		m.tail = node.prev
	} else {
		node.next.prev = node.prev
	}
	node.prev = nil
	node.next = nil
	m.size--
}
