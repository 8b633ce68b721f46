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

package strategy

import (
	"strings"

	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/generator"
)

// names of the strategies built by New
const (
	RandomName        = "random"
	ProbabilisticName = "probabilistic"
	PCTName           = "pct"
	FairPCTName       = "fairpct"
)

// scheduleSalt separates the schedule stream from the input stream of a seed.
const scheduleSalt uint64 = 0x9e3779b97f4a7c15

// Generators returns the input and schedule generators derived from a seed.
func Generators(seed uint64) (generator.Input, generator.Schedule) {
	return generator.NewRandomInput(seed), generator.NewRandomSchedule(seed ^ scheduleSalt)
}

// New creates the strategy with the given name. bound is the strategy
// parameter: the number of coins of probabilistic and the number of
// priority change points of pct and fairpct. It is ignored by random.
func New(name string, bound int, seed uint64) (Strategy, error) {
	input, schedule := Generators(seed)
	switch strings.ToLower(strings.TrimSpace(name)) {
	case RandomName:
		return NewRandom(input, schedule), nil
	case ProbabilisticName:
		return NewProbabilistic(input, schedule, bound), nil
	case PCTName:
		return NewPCT(input, schedule, bound), nil
	case FairPCTName:
		return NewFairPCT(input, schedule, bound, DefaultFairPrefix), nil
	default:
		return nil, perrors.NewErrInvalidStrategy(name)
	}
}

// Portfolio returns the strategies a portfolio run executes side by side:
// random, probabilistic with one to three coins, pct and fairpct. Each
// strategy consumes its own generators derived from the seed.
func Portfolio(seed uint64, bound int) []Strategy {
	seeds := func(i uint64) (generator.Input, generator.Schedule) {
		return Generators(seed + i)
	}

	input, schedule := seeds(0)
	portfolio := []Strategy{NewRandom(input, schedule)}
	for coins := 1; coins <= 3; coins++ {
		input, schedule = seeds(uint64(coins))
		portfolio = append(portfolio, NewProbabilistic(input, schedule, coins))
	}

	input, schedule = seeds(4)
	portfolio = append(portfolio, NewPCT(input, schedule, bound))
	input, schedule = seeds(5)
	portfolio = append(portfolio, NewFairPCT(input, schedule, bound, DefaultFairPrefix))
	return portfolio
}
