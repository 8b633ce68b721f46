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

import "math/rand/v2"

// pcgIncrement is the fixed PCG stream selector shared by every generator.
const pcgIncrement = 0xda3e39cb94b95bdb

// stream is a seeded source of raw 64-bit values. The values of prefix are
// replayed first; the seeded source takes over once the prefix is exhausted.
// Every value handed out is kept in drawn.
type stream struct {
	seed   uint64
	prefix []uint64
	rng    *rand.Rand
	drawn  []uint64
}

func newStream(seed uint64, prefix []uint64) *stream {
	return &stream{
		seed:   seed,
		prefix: prefix,
		rng:    rand.New(rand.NewPCG(seed, pcgIncrement)),
	}
}

func (s *stream) next() uint64 {
	var value uint64
	if n := len(s.drawn); n < len(s.prefix) {
		value = s.prefix[n]
	} else {
		value = s.rng.Uint64()
	}
	s.drawn = append(s.drawn, value)
	return value
}

func (s *stream) intn(n int) int {
	if n < 2 {
		return 0
	}
	return int(s.next() % uint64(n))
}

func (s *stream) float() float64 {
	return float64(s.next()>>11) / (1 << 53)
}

// copy starts a fresh branch that hands out exactly the same values.
func (s *stream) copy() *stream {
	return newStream(s.seed, s.prefix)
}

// mutate keeps the history drawn before a cut point and continues with a
// derived seed. The cut point and the new seed only depend on the parent seed
// and on how many values it has drawn.
func (s *stream) mutate() *stream {
	n := len(s.drawn)
	h := splitmix(s.seed ^ (uint64(n) * 0x9e3779b97f4a7c15))
	cut := 0
	if n > 0 {
		cut = int(h % uint64(n))
	}
	prefix := make([]uint64, cut)
	copy(prefix, s.drawn[:cut])
	return newStream(splitmix(h), prefix)
}

// splitmix is the SplitMix64 finalizer.
func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
