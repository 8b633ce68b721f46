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

package xsync

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("With Set and Get", func(t *testing.T) {
		sm := NewMap[string, int]()
		sm.Set("one", 1)
		sm.Set("one", 11)

		value, ok := sm.Get("one")
		require.True(t, ok)
		assert.Equal(t, 11, value)

		_, ok = sm.Get("two")
		assert.False(t, ok)
		assert.Equal(t, 1, sm.Len())
	})
	t.Run("With SetIfAbsent", func(t *testing.T) {
		sm := NewMap[string, int]()
		assert.True(t, sm.SetIfAbsent("one", 1))
		assert.False(t, sm.SetIfAbsent("one", 2))
		value, _ := sm.Get("one")
		assert.Equal(t, 1, value)
	})
	t.Run("With sorted Keys and Values", func(t *testing.T) {
		sm := NewMap[string, int]()
		sm.Set("c", 3)
		sm.Set("a", 1)
		sm.Set("b", 2)
		assert.Equal(t, []string{"a", "b", "c"}, sm.Keys())
		assert.Equal(t, []int{1, 2, 3}, sm.Values())
	})
	t.Run("With Delete and Reset", func(t *testing.T) {
		sm := NewMap[string, int]()
		sm.Set("a", 1)
		sm.Set("b", 2)
		sm.Delete("a")
		assert.Equal(t, []string{"b"}, sm.Keys())
		sm.Reset()
		assert.Zero(t, sm.Len())
	})
	t.Run("With concurrent writers", func(t *testing.T) {
		sm := NewMap[string, int]()
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				sm.SetIfAbsent(strconv.Itoa(i%10), i)
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 10, sm.Len())
	})
}
