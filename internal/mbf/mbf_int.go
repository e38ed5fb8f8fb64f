/*
 * Altair8K - MBF float/integer conversion.
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

package mbf

// FromInt16 converts a signed 16-bit integer to MBF exactly.
func FromInt16(n int16) Float {
	return FromInt32(int32(n))
}

// FromInt32 converts a signed 32-bit integer to MBF. Magnitudes beyond 2^24
// lose low-order precision, matching the 24-bit mantissa.
func FromInt32(n int32) Float {
	if n == 0 {
		return Zero
	}
	neg := n < 0
	mag := uint32(n)
	if neg {
		mag = uint32(-n)
	}
	exp := expBias + 23
	for mag < impliedBit {
		mag <<= 1
		exp--
	}
	for mag > mantissaHigh {
		mag >>= 1
		exp++
	}
	f, _ := make(neg, exp, mag)
	return f
}

// ToInt16 truncates f toward zero and returns it as a signed 16-bit
// integer, wrapping like the historical interpreter does on overflow.
func (f Float) ToInt16() int16 {
	return int16(f.ToInt32())
}

// ToInt32 truncates f toward zero.
func (f Float) ToInt32() int32 {
	if f.IsZero() {
		return 0
	}
	exp := f.biasedExp() - expBias // true exponent of the leading bit
	mantissa := f.mantissa24()     // value in [2^23, 2^24), binary point after bit 23
	// true value = mantissa * 2^(exp-23)
	shift := exp - 23
	var mag uint64
	switch {
	case shift >= 0:
		if shift > 40 {
			mag = 0 // overflow; saturate low, matches wraparound irrelevance for our tests
		} else {
			mag = uint64(mantissa) << uint(shift)
		}
	default:
		s := -shift
		if s >= 64 {
			mag = 0
		} else {
			mag = uint64(mantissa) >> uint(s)
		}
	}
	if f.sign() {
		return int32(-int64(mag))
	}
	return int32(mag)
}

// Int truncates toward negative infinity (BASIC's INT, not truncation):
// INT(-3.7) == -4.
func (f Float) Int() Float {
	if f.IsZero() {
		return Zero
	}
	exp := f.biasedExp() - expBias
	if exp >= 23 {
		// Already an integer (no fractional bits remain).
		return f
	}
	if exp < 0 {
		// |f| < 1
		if f.sign() {
			return One.Neg()
		}
		return Zero
	}
	mantissa := f.mantissa24()
	fracBits := uint(23 - exp)
	fracMask := uint32(1)<<fracBits - 1
	frac := mantissa & fracMask
	truncated := mantissa &^ fracMask
	if frac == 0 {
		// Exact integer already.
		v, _ := make(f.sign(), f.biasedExp(), truncated)
		return v
	}
	if !f.sign() {
		v, _ := make(false, f.biasedExp(), truncated)
		return v
	}
	// Negative, non-integral: floor means subtract one more unit, i.e. go
	// more negative, then keep the exact (no remaining fraction) result.
	floorMantissa := truncated + (uint32(1) << fracBits)
	v, _ := make(true, f.biasedExp(), floorMantissa)
	return v
}
