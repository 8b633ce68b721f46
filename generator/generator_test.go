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

package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawInts(in Input, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = in.NextInt(1000)
	}
	return out
}

func drawIndexes(s Schedule, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = s.NextIndex(1000)
	}
	return out
}

func TestRandomInput(t *testing.T) {
	t.Run("With same seed", func(t *testing.T) {
		a := NewRandomInput(42)
		b := NewRandomInput(42)
		assert.Equal(t, drawInts(a, 50), drawInts(b, 50))
		assert.Equal(t, 50, a.Draws())
	})
	t.Run("With bounds", func(t *testing.T) {
		in := NewRandomInput(7)
		for range 100 {
			v := in.NextInt(5)
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 5)
			f := in.NextFloat()
			assert.GreaterOrEqual(t, f, 0.0)
			assert.Less(t, f, 1.0)
		}
		draws := in.Draws()
		// degenerate ranges do not consume the stream
		assert.Zero(t, in.NextInt(1))
		assert.Zero(t, in.NextInt(0))
		assert.Equal(t, draws, in.Draws())
	})
	t.Run("With Copy", func(t *testing.T) {
		in := NewRandomInput(11)
		expected := drawInts(in, 20)
		_ = in.NextBool()

		branch := in.Copy()
		assert.Equal(t, expected, drawInts(branch, 20))
		assert.Equal(t, in.Seed(), branch.Seed())
		assert.Equal(t, 21, in.Draws())
	})
	t.Run("With Mutate", func(t *testing.T) {
		in := NewRandomInput(11)
		parent := drawInts(in, 20)

		mutated := in.Mutate()
		require.NotNil(t, mutated)
		// the parent is left untouched
		assert.Equal(t, 20, in.Draws())

		child := mutated.(*RandomInput)
		cut := len(child.stream.prefix)
		assert.Less(t, cut, 20)
		values := drawInts(child, 20)
		assert.Equal(t, parent[:cut], values[:cut])
		// the raw histories diverge right at the cut point
		assert.NotEqual(t, in.stream.drawn[cut], child.stream.drawn[cut])
		assert.NotEqual(t, in.Seed(), child.Seed())
	})
	t.Run("With deterministic Mutate", func(t *testing.T) {
		a := NewRandomInput(5)
		b := NewRandomInput(5)
		drawInts(a, 10)
		drawInts(b, 10)
		assert.Equal(t, drawInts(a.Mutate(), 30), drawInts(b.Mutate(), 30))
	})
	t.Run("With Mutate of a fresh stream", func(t *testing.T) {
		in := NewRandomInput(5)
		child := in.Mutate().(*RandomInput)
		assert.Empty(t, child.stream.prefix)
		assert.NotEqual(t, in.Seed(), child.Seed())
	})
}

func TestRandomSchedule(t *testing.T) {
	t.Run("With Copy", func(t *testing.T) {
		s := NewRandomSchedule(3)
		expected := drawIndexes(s, 40)
		assert.Equal(t, expected, drawIndexes(s.Copy(), 40))
		assert.Equal(t, uint64(3), s.Seed())
	})
	t.Run("With Copy of a mutated stream", func(t *testing.T) {
		s := NewRandomSchedule(3)
		drawIndexes(s, 40)
		mutated := s.Mutate()
		expected := drawIndexes(mutated, 60)
		assert.Equal(t, expected, drawIndexes(mutated.Copy(), 60))
	})
	t.Run("With Mutate", func(t *testing.T) {
		s := NewRandomSchedule(3)
		parent := drawIndexes(s, 40)
		child := s.Mutate().(*RandomSchedule)
		cut := len(child.stream.prefix)
		values := drawIndexes(child, 40)
		assert.Equal(t, parent[:cut], values[:cut])
		assert.Equal(t, 40, s.Draws())
	})
	t.Run("With NextFloat", func(t *testing.T) {
		s := NewRandomSchedule(9)
		for range 100 {
			f := s.NextFloat()
			assert.GreaterOrEqual(t, f, 0.0)
			assert.Less(t, f, 1.0)
		}
	})
}
