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
	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/internal/validation"
	"github.com/tochemey/pcheck/internal/xsync"
)

// Test is a program to check. Every iteration starts by creating the Main
// machine with the given payload.
type Test struct {
	Name        string
	Description string
	Main        *Definition
	Payload     any
}

var _ validation.Validator = (*Test)(nil)

// Validate implements validation.Validator.
func (t *Test) Validate() error {
	return validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("Name", t.Name)).
		AddAssertion(t.Main != nil, "the [Main] definition is required").
		AddValidator(validation.ValidatorFunc(func() error { return t.Main.Validate() })).
		Validate()
}

// Registry holds named tests. It is safe for concurrent use.
type Registry struct {
	tests *xsync.Map[string, *Test]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tests: xsync.NewMap[string, *Test]()}
}

// Register adds the tests to the registry. It stops at the first invalid
// or already registered test.
func (r *Registry) Register(tests ...*Test) error {
	for _, test := range tests {
		if err := test.Validate(); err != nil {
			return err
		}
		if !r.tests.SetIfAbsent(test.Name, test) {
			return perrors.NewErrTestAlreadyRegistered(test.Name)
		}
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(tests ...*Test) {
	if err := r.Register(tests...); err != nil {
		panic(err)
	}
}

// Get returns the test registered under the given name.
func (r *Registry) Get(name string) (*Test, error) {
	test, ok := r.tests.Get(name)
	if !ok {
		return nil, perrors.NewErrTestNotFound(name)
	}
	return test, nil
}

// Names returns the registered test names in ascending order.
func (r *Registry) Names() []string {
	return r.tests.Keys()
}

// Tests returns the registered tests ordered by name.
func (r *Registry) Tests() []*Test {
	return r.tests.Values()
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
