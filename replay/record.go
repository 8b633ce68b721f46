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

// Package replay captures the scheduling decisions of a buggy iteration so
// that the very same execution can be reproduced later.
package replay

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies the question a Decision answers.
type Kind uint8

const (
	// KindOperation records the identifier of the operation scheduled next.
	KindOperation Kind = iota + 1
	// KindBool records a nondeterministic boolean choice.
	KindBool
	// KindInt records a nondeterministic integer choice.
	KindInt
	// KindDelay records a delivery delay sample.
	KindDelay
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case KindOperation:
		return "operation"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDelay:
		return "delay"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Decision is a single answer of a scheduling strategy.
//
// For a boolean choice Value is 1 for true. For a delay, Sampled tells
// whether a delay was drawn at all and Value holds the sampled ticks.
type Decision struct {
	Kind    Kind
	Value   int64
	Sampled bool
}

// String implements fmt.Stringer
func (d Decision) String() string {
	if d.Kind == KindDelay && !d.Sampled {
		return "delay(none)"
	}
	return fmt.Sprintf("%s(%d)", d.Kind, d.Value)
}

// Record is the replayable trace of one iteration.
type Record struct {
	// ID uniquely identifies the record. Identifiers are time ordered.
	ID string
	// Test is the name of the test the record belongs to.
	Test string
	// Strategy describes the strategy that produced the decisions.
	Strategy string
	// Seed is the seed of the session that produced the record.
	Seed uint64
	// Iteration is the zero based index of the recorded iteration.
	Iteration int
	// Decisions holds every decision of the iteration in order.
	Decisions []Decision
	// Bug describes the failure found by the iteration, if any.
	Bug string
	// MaxSteps is the scheduling steps bound the iteration ran under.
	MaxSteps int
}

// NewRecord creates a Record with a fresh time ordered identifier.
func NewRecord(test, strategy string, seed uint64, iteration int, decisions []Decision, bug string) *Record {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Record{
		ID:        id.String(),
		Test:      test,
		Strategy:  strategy,
		Seed:      seed,
		Iteration: iteration,
		Decisions: decisions,
		Bug:       bug,
	}
}
