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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tochemey/pcheck/clock"
	perrors "github.com/tochemey/pcheck/errors"
	"github.com/tochemey/pcheck/generator"
)

// Distribution is a delay distribution sampled from a schedule generator.
type Distribution interface {
	// Sample draws a delay.
	Sample(schedule generator.Schedule) clock.Duration
	// String returns the tag the distribution was parsed from.
	String() string
}

// ParseDistribution parses a delay distribution tag. The supported forms are
//
//	constant:N          always N ticks
//	uniform:LO:HI       uniform in [LO, HI]
//	exponential:RATE    exponential with the given rate, rounded down
//	discrete:A,B,C      one of the listed values, uniformly
func ParseDistribution(tag string) (Distribution, error) {
	name, args, found := strings.Cut(strings.TrimSpace(tag), ":")
	if !found {
		return nil, perrors.NewErrInvalidDistribution(tag, fmt.Errorf("missing parameters"))
	}

	switch strings.ToLower(name) {
	case "constant":
		value, err := parseTicks(args)
		if err != nil {
			return nil, perrors.NewErrInvalidDistribution(tag, err)
		}
		return constant{tag: tag, value: value}, nil
	case "uniform":
		lo, hi, ok := strings.Cut(args, ":")
		if !ok {
			return nil, perrors.NewErrInvalidDistribution(tag, fmt.Errorf("expected uniform:LO:HI"))
		}
		low, err := parseTicks(lo)
		if err != nil {
			return nil, perrors.NewErrInvalidDistribution(tag, err)
		}
		high, err := parseTicks(hi)
		if err != nil {
			return nil, perrors.NewErrInvalidDistribution(tag, err)
		}
		if high < low {
			return nil, perrors.NewErrInvalidDistribution(tag, fmt.Errorf("empty range [%d, %d]", low, high))
		}
		return uniform{tag: tag, low: low, high: high}, nil
	case "exponential":
		rate, err := strconv.ParseFloat(strings.TrimSpace(args), 64)
		if err != nil {
			return nil, perrors.NewErrInvalidDistribution(tag, err)
		}
		if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
			return nil, perrors.NewErrInvalidDistribution(tag, fmt.Errorf("rate must be positive"))
		}
		return exponential{tag: tag, rate: rate}, nil
	case "discrete":
		parts := strings.Split(args, ",")
		values := make([]clock.Duration, 0, len(parts))
		for _, part := range parts {
			value, err := parseTicks(part)
			if err != nil {
				return nil, perrors.NewErrInvalidDistribution(tag, err)
			}
			values = append(values, value)
		}
		return discrete{tag: tag, values: values}, nil
	default:
		return nil, perrors.NewErrInvalidDistribution(tag, fmt.Errorf("unknown distribution %q", name))
	}
}

func parseTicks(value string) (clock.Duration, error) {
	ticks, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, err
	}
	if ticks < 0 {
		return 0, fmt.Errorf("negative delay %d", ticks)
	}
	return clock.Duration(ticks), nil
}

type constant struct {
	tag   string
	value clock.Duration
}

func (c constant) Sample(generator.Schedule) clock.Duration { return c.value }
func (c constant) String() string                           { return c.tag }

type uniform struct {
	tag       string
	low, high clock.Duration
}

func (u uniform) Sample(schedule generator.Schedule) clock.Duration {
	span := u.high - u.low
	if span == clock.MaxDuration {
		return u.low + clock.Duration(schedule.NextIndex(math.MaxInt))
	}
	return u.low + clock.Duration(schedule.NextIndex(int(span)+1))
}

func (u uniform) String() string { return u.tag }

type exponential struct {
	tag  string
	rate float64
}

// Sample clamps the draw to MaxDuration, tiny rates overflow int64.
func (e exponential) Sample(schedule generator.Schedule) clock.Duration {
	delay := math.Floor(-math.Log1p(-schedule.NextFloat()) / e.rate)
	if math.IsNaN(delay) || delay >= math.MaxInt64 {
		return clock.MaxDuration
	}
	return clock.Duration(delay)
}

func (e exponential) String() string { return e.tag }

type discrete struct {
	tag    string
	values []clock.Duration
}

func (d discrete) Sample(schedule generator.Schedule) clock.Duration {
	return d.values[schedule.NextIndex(len(d.values))]
}

func (d discrete) String() string { return d.tag }

// delays samples delays from a schedule generator, caching parsed tags.
// Unparsable tags are cached as nil and never sampled.
type delays struct {
	cache map[string]Distribution
}

func newDelays() *delays {
	return &delays{cache: make(map[string]Distribution)}
}

func (d *delays) sample(schedule generator.Schedule, tag string) (bool, clock.Duration) {
	if tag == "" {
		return false, 0
	}

	distribution, ok := d.cache[tag]
	if !ok {
		distribution, _ = ParseDistribution(tag)
		d.cache[tag] = distribution
	}

	if distribution == nil {
		return false, 0
	}
	return true, distribution.Sample(schedule)
}
