/*
 * Altair8K - RND() pseudo-random sequence state.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package rnd implements the RND() generator contract: RND(x>0) advances
// and returns the next value in [0,1); RND(0)
// replays the previous value; RND(x<0) reseeds deterministically from the
// bits of x. Output must be reproducible run-to-run for a given seed.
//
// The historical Altair ROM's exact 5-byte LCG constants aren't available
// in the source this was built from (see DESIGN.md); this ships an explicit,
// inspectable state and a documented replacement generator instead of
// guessing at bit-for-bit parity.
package rnd

import "altair8k/internal/mbf"

// State is the generator's full mutable state: an explicit struct, not a
// package-level global, so an Interpreter can own one per instance.
type State struct {
	reg  [5]byte // five bytes of shift-register state, Altair-style
	last mbf.Float
	has  bool
}

// New returns a generator seeded from a fixed default, matching a freshly
// powered-on machine before any RND(-x) reseed.
func New() *State {
	s := &State{}
	s.reg = [5]byte{0x35, 0x4b, 0x10, 0x70, 0x00}
	return s
}

// Seed reseeds deterministically from the bits of x, as RND(x<0) does.
func (s *State) Seed(x mbf.Float) {
	s.reg[0] = x[0]
	s.reg[1] = x[1]
	s.reg[2] = x[2]
	s.reg[3] = x[3]
	s.reg[4] = x[3] ^ x[0]
	s.has = false
}

// next advances the 40-bit shift register one step. This is a
// Fibonacci-form LFSR: the register shifts left and the XOR of bits 39, 37,
// 32 and 4 enters at bit 0. Its feedback polynomial is not primitive, so it
// does not pass through all 2^40-1 nonzero states before repeating. Not the
// historical Altair constants, but a real, seedable, reproducible
// generator, which is the part of the contract that matters (see DESIGN.md).
func (s *State) next() {
	var v uint64
	for i := 0; i < 5; i++ {
		v |= uint64(s.reg[i]) << uint(8*i)
	}
	bit := ((v >> 39) ^ (v >> 37) ^ (v >> 32) ^ (v >> 4)) & 1
	v = (v << 1) | bit
	v &= (1 << 40) - 1
	for i := 0; i < 5; i++ {
		s.reg[i] = byte(v >> uint(8*i))
	}
}

// Next returns the next value in [0,1), advancing state.
func (s *State) Next() mbf.Float {
	s.next()
	// 24 bits of register state, scaled into [0,1).
	bits := uint32(s.reg[0]) | uint32(s.reg[1])<<8 | uint32(s.reg[2])<<16
	value := float64(bits) / float64(1<<24)
	v, _ := mbf.FromFloat64(value)
	s.last = v
	s.has = true
	return v
}

// Current returns the previously returned value, or a fresh one if none
// has been produced yet, matching RND(0).
func (s *State) Current() mbf.Float {
	if !s.has {
		return s.Next()
	}
	return s.last
}
