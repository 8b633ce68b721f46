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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/event"
)

func TestDefinitionValidate(t *testing.T) {
	noop := func(*Context) {}
	testCases := []struct {
		name       string
		definition *Definition
		err        error
		msg        string
	}{
		{
			name:       "missing name",
			definition: &Definition{Start: "A", States: map[string]*State{"A": {}}},
			msg:        "the [Name] is required",
		},
		{
			name:       "missing start",
			definition: &Definition{Name: "M", States: map[string]*State{"A": {}}},
			msg:        "the [Start] is required",
		},
		{
			name:       "undefined start",
			definition: &Definition{Name: "M", Start: "B", States: map[string]*State{"A": {}}},
			err:        perrors.ErrInvalidDefinition,
			msg:        `start state "B" is not defined`,
		},
		{
			name:       "nil state",
			definition: &Definition{Name: "M", Start: "A", States: map[string]*State{"A": nil}},
			err:        perrors.ErrInvalidDefinition,
		},
		{
			name: "ignored and deferred",
			definition: &Definition{Name: "M", Start: "A", States: map[string]*State{"A": {
				Ignored:  []event.Type{tick},
				Deferred: []event.Type{tick},
			}}},
			err: perrors.ErrInvalidDefinition,
			msg: "both ignores and defers",
		},
		{
			name: "handled and ignored",
			definition: &Definition{Name: "M", Start: "A", States: map[string]*State{"A": {
				Ignored:  []event.Type{tick},
				Handlers: map[event.Type]Handler{tick: noop},
			}}},
			err: perrors.ErrInvalidDefinition,
			msg: "handles and ignores or defers Tick",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.definition.Validate()
			require.Error(t, err)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			}
			if tc.msg != "" {
				assert.Contains(t, err.Error(), tc.msg)
			}
		})
	}

	t.Run("With a valid definition", func(t *testing.T) {
		definition := &Definition{Name: "M", Start: "A", States: map[string]*State{
			"A": {Handlers: map[event.Type]Handler{tick: noop}, Deferred: []event.Type{other}},
			"B": {Ignored: []event.Type{tick}},
		}}
		require.NoError(t, definition.Validate())

		behaviors := compile(definition)
		require.Len(t, behaviors, 2)
		assert.True(t, behaviors["A"].deferred.Contains(other))
		assert.True(t, behaviors["B"].ignored.Contains(tick))
		_, ok := behaviors["A"].handler(tick)
		assert.True(t, ok)
		_, ok = behaviors["B"].handler(tick)
		assert.False(t, ok)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("With Register and Get", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.Register(coinTest(), spinTest()))
		assert.Equal(t, []string{"coins", "spin"}, registry.Names())
		assert.Len(t, registry.Tests(), 2)

		test, err := registry.Get("spin")
		require.NoError(t, err)
		assert.Equal(t, "spin", test.Name)
	})
	t.Run("With a duplicate", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.Register(coinTest()))
		err := registry.Register(coinTest())
		assert.ErrorIs(t, err, perrors.ErrTestAlreadyRegistered)
		assert.Panics(t, func() { registry.MustRegister(coinTest()) })
	})
	t.Run("With an unknown test", func(t *testing.T) {
		_, err := NewRegistry().Get("missing")
		assert.ErrorIs(t, err, perrors.ErrTestNotFound)
	})
	t.Run("With an invalid test", func(t *testing.T) {
		registry := NewRegistry()
		assert.Error(t, registry.Register(&Test{Name: "no-main"}))
		assert.ErrorIs(t, registry.Register(&Test{Name: "bad", Main: &Definition{Name: "M", Start: "A"}}), perrors.ErrInvalidDefinition)
		assert.Empty(t, registry.Names())
	})
}
