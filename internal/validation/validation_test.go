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

package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type validationTestSuite struct {
	suite.Suite
}

// In order for 'go test' to run this suite, we need to create
// a normal test function and pass our suite to suite.Run
func TestValidation(t *testing.T) {
	suite.Run(t, new(validationTestSuite))
}

func (s *validationTestSuite) TestNewChain() {
	s.Run("new chain without option", func() {
		chain := New()
		s.Assert().NotNil(chain)
		s.Assert().False(chain.failFast)
	})
	s.Run("new chain with options", func() {
		s.Assert().True(New(FailFast()).failFast)
		s.Assert().False(New(AllErrors()).failFast)
	})
}

func (s *validationTestSuite) TestValidate() {
	s.Run("with single validator", func() {
		chain := New().AddValidator(NewEmptyStringValidator("Strategy", " "))
		err := chain.Validate()
		s.Assert().EqualError(err, "the [Strategy] is required")
	})
	s.Run("with FailFast option", func() {
		err := New(FailFast()).
			AddValidator(NewMinValidator("Iterations", 0, 1)).
			AddAssertion(false, "this is false").
			Validate()
		s.Assert().EqualError(err, "the [Iterations] must be at least 1, got 0")
	})
	s.Run("with AllErrors option", func() {
		err := New(AllErrors()).
			AddValidator(NewMinValidator("Iterations", 0, 1)).
			AddAssertion(false, "this is false").
			Validate()
		s.Assert().EqualError(err, "the [Iterations] must be at least 1, got 0; this is false")
	})
	s.Run("with a validator func", func() {
		sentinel := errors.New("invalid distribution")
		err := New().
			AddValidator(ValidatorFunc(func() error { return sentinel })).
			Validate()
		s.Assert().ErrorIs(err, sentinel)
	})
	s.Run("without violations", func() {
		err := New().
			AddValidator(NewEmptyStringValidator("Strategy", "pct")).
			AddValidator(NewOneOfValidator("Strategy", "pct", "random", "pct")).
			AddValidator(NewMinValidator("Bound", 2, 0)).
			AddAssertion(true, "never").
			Validate()
		s.Assert().NoError(err)
	})
}

func (s *validationTestSuite) TestOneOfValidator() {
	err := NewOneOfValidator("Strategy", "dfs", "random", "pct").Validate()
	s.Assert().EqualError(err, `the [Strategy] must be one of [random, pct], got "dfs"`)
}

func (s *validationTestSuite) TestMinValidator() {
	s.Assert().NoError(NewMinValidator("Timeout", 1.5, 0.0).Validate())
	s.Assert().Error(NewMinValidator("Timeout", -1.5, 0.0).Validate())
}
