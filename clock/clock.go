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

// Package clock implements the virtual time used by the checker.
//
// Time never flows on its own: the driver advances the Clock to the earliest
// pending delivery time once no actor can make progress at the current
// instant. A Timestamp is a plain value; copying it yields an independent
// instant.
//
// Note: Clock is not goroutine-safe. Each test iteration owns exactly one
// Clock and only the driver writes to it.
package clock

import (
	"math"
	"strconv"
)

// Duration is a non-negative number of virtual ticks.
type Duration int64

// MaxDuration is the longest representable delay.
const MaxDuration = Duration(math.MaxInt64)

// Timestamp is an instant on the virtual timeline.
type Timestamp struct {
	ticks int64
}

// Zero is the origin of every iteration timeline.
var Zero = Timestamp{}

// At returns the Timestamp located the given number of ticks after Zero.
func At(ticks int64) Timestamp {
	return Timestamp{ticks: ticks}
}

// Ticks returns the raw tick count of the timestamp.
func (t Timestamp) Ticks() int64 { return t.ticks }

// Add returns the timestamp advanced by d. Negative durations are ignored
// and the result saturates at the end of the timeline.
func (t Timestamp) Add(d Duration) Timestamp {
	if d <= 0 {
		return t
	}
	if int64(d) > math.MaxInt64-t.ticks {
		return Timestamp{ticks: math.MaxInt64}
	}
	return Timestamp{ticks: t.ticks + int64(d)}
}

// Before reports whether t happens strictly before u.
func (t Timestamp) Before(u Timestamp) bool { return t.ticks < u.ticks }

// After reports whether t happens strictly after u.
func (t Timestamp) After(u Timestamp) bool { return t.ticks > u.ticks }

// Equal reports whether t and u denote the same instant.
func (t Timestamp) Equal(u Timestamp) bool { return t.ticks == u.ticks }

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or after u.
func (t Timestamp) Compare(u Timestamp) int {
	switch {
	case t.ticks < u.ticks:
		return -1
	case t.ticks > u.ticks:
		return 1
	default:
		return 0
	}
}

// Sub returns the duration elapsed from u to t, or zero when u is later.
func (t Timestamp) Sub(u Timestamp) Duration {
	if t.ticks <= u.ticks {
		return 0
	}
	return Duration(t.ticks - u.ticks)
}

// String implements fmt.Stringer
func (t Timestamp) String() string {
	return strconv.FormatInt(t.ticks, 10)
}

// Max returns the later of the two timestamps.
func Max(t, u Timestamp) Timestamp {
	if t.After(u) {
		return t
	}
	return u
}

// Clock is the virtual clock shared by every mailbox of an iteration.
type Clock struct {
	now Timestamp
}

// New creates a Clock positioned at Zero.
func New() *Clock {
	return &Clock{}
}

// Now returns the current virtual time.
func (c *Clock) Now() Timestamp { return c.now }

// AdvanceTo moves the clock forward to t. The clock never moves backwards:
// the call is a no-op when t is not after the current time. It reports
// whether the clock moved.
func (c *Clock) AdvanceTo(t Timestamp) bool {
	if !t.After(c.now) {
		return false
	}
	c.now = t
	return true
}

// Reset rewinds the clock to Zero. It is used between iterations only.
func (c *Clock) Reset() {
	c.now = Zero
}
