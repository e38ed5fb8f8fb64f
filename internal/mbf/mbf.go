/*
 * Altair8K - Microsoft Binary Format float arithmetic.
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

// Package mbf implements the Microsoft Binary Format float used by Altair
// 8K BASIC 4.0: a 4-byte sign-magnitude layout with a biased exponent and
// an implicit leading mantissa bit.
package mbf

// Float is a 4-byte MBF value: [m0][m1][m2 with sign in bit 7][exp].
type Float [4]byte

// ErrorKind is the arithmetic error state an operation may leave behind.
type ErrorKind int

const (
	OK ErrorKind = iota
	Overflow
	Underflow
	DivZero
	Domain
)

func (k ErrorKind) String() string {
	switch k {
	case OK:
		return "OK"
	case Overflow:
		return "OVERFLOW"
	case Underflow:
		return "UNDERFLOW"
	case DivZero:
		return "DIV_ZERO"
	case Domain:
		return "DOMAIN"
	default:
		return "UNKNOWN"
	}
}

// Zero is the canonical zero value (exp == 0, other bytes irrelevant but
// kept clean).
var Zero = Float{}

// One is 1.0: exponent biased to 129, mantissa all zero (the implicit
// leading bit supplies the 1.0 itself).
var One = Float{0, 0, 0, 0x81}

const (
	mantissaMask = 0x7fffff // 23 stored mantissa bits
	impliedBit   = 0x800000 // bit 23, the implicit leading 1
	mantissaLow  = 0x800000
	mantissaHigh = 0xffffff
	expBias      = 129
	expMax       = 255
)

// sign reports the sign bit (true = negative). Zero has no meaningful sign.
func (f Float) sign() bool { return f[2]&0x80 != 0 }

// biasedExp returns the raw stored exponent byte; 0 means the value is zero.
func (f Float) biasedExp() int { return int(f[3]) }

// mantissa24 reconstructs the 24-bit mantissa with its implicit leading bit
// restored. Only meaningful for non-zero values.
func (f Float) mantissa24() uint32 {
	return (uint32(f[2]&0x7f) << 16) | (uint32(f[1]) << 8) | uint32(f[0]) | impliedBit
}

// IsZero reports whether f is the zero value.
func (f Float) IsZero() bool { return f[3] == 0 }

// Sign returns -1, 0, or 1, matching the SGN function.
func (f Float) Sign() int {
	if f.IsZero() {
		return 0
	}
	if f.sign() {
		return -1
	}
	return 1
}

// make packs a sign/exponent/24-bit-mantissa triple into a normalized Float,
// reporting Overflow/Underflow as appropriate. Underflow silently flushes to
// zero, matching the historical interpreter (underflow is not a user-visible
// error).
func make(negative bool, exp int, mantissa uint32) (Float, ErrorKind) {
	if mantissa == 0 {
		return Zero, OK
	}
	// Normalize: mantissa must land in [0x800000, 0xffffff].
	for mantissa > mantissaHigh {
		mantissa >>= 1
		exp++
	}
	for mantissa != 0 && mantissa < mantissaLow {
		mantissa <<= 1
		exp--
	}
	if mantissa == 0 {
		return Zero, OK
	}
	if exp > expMax {
		return Zero, Overflow
	}
	if exp <= 0 {
		return Zero, OK // underflow, flush to zero silently
	}
	var f Float
	f[0] = byte(mantissa)
	f[1] = byte(mantissa >> 8)
	f[2] = byte((mantissa>>16)&0x7f) | boolByte(negative)<<7
	f[3] = byte(exp)
	return f, OK
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Neg returns -f.
func (f Float) Neg() Float {
	if f.IsZero() {
		return Zero
	}
	out := f
	out[2] ^= 0x80
	return out
}

// Abs returns |f|.
func (f Float) Abs() Float {
	if f.IsZero() {
		return Zero
	}
	out := f
	out[2] &^= 0x80
	return out
}

// Add returns a + b.
func Add(a, b Float) (Float, ErrorKind) {
	return addImpl(a, b)
}

// Sub returns a - b.
func Sub(a, b Float) (Float, ErrorKind) {
	return addImpl(a, b.Neg())
}

func addImpl(a, b Float) (Float, ErrorKind) {
	if a.IsZero() {
		return b, OK
	}
	if b.IsZero() {
		return a, OK
	}

	ea, eb := a.biasedExp(), b.biasedExp()
	ma, mb := a.mantissa24(), b.mantissa24()
	sa, sb := a.sign(), b.sign()

	var exp int
	switch {
	case ea == eb:
		exp = ea
	case ea > eb:
		shift := ea - eb
		if shift >= 24 {
			return a, OK
		}
		mb >>= uint(shift)
		exp = ea
	default:
		shift := eb - ea
		if shift >= 24 {
			return b, OK
		}
		ma >>= uint(shift)
		exp = eb
	}

	if sa == sb {
		sum := uint64(ma) + uint64(mb)
		if sum&0x1000000 != 0 {
			sum >>= 1
			exp++
		}
		return make(sa, exp, uint32(sum))
	}

	// Different signs: subtract magnitudes, result takes sign of the
	// larger magnitude.
	if ma >= mb {
		return make(sa, exp, ma-mb)
	}
	return make(sb, exp, mb-ma)
}

// Mul returns a * b, truncating the 48-bit product to its top 24 bits (no
// rounding), matching the historical reference.
func Mul(a, b Float) (Float, ErrorKind) {
	if a.IsZero() || b.IsZero() {
		return Zero, OK
	}
	exp := a.biasedExp() + b.biasedExp() - expBias
	if exp > expMax {
		return Zero, Overflow
	}
	if exp <= 0 {
		return Zero, OK
	}
	// Both mantissas are 1.x scaled by 2^23, so the product is 1.x..3.x
	// scaled by 2^46; shifting by 23 leaves it scaled by 2^23 again, and
	// make truncates the one extra bit when the product reached 2.0.
	product := uint64(a.mantissa24()) * uint64(b.mantissa24()) // 48 bits
	mantissa := uint32(product >> 23)                          // truncate, keep top 24 (or 25) bits
	sign := a.sign() != b.sign()
	return make(sign, exp, mantissa)
}

// Div returns a / b.
func Div(a, b Float) (Float, ErrorKind) {
	if b.IsZero() {
		return Zero, DivZero
	}
	if a.IsZero() {
		return Zero, OK
	}
	exp := a.biasedExp() - b.biasedExp() + expBias
	if exp > expMax {
		return Zero, Overflow
	}
	if exp <= 0 {
		return Zero, OK
	}
	// Widen the dividend so the 24-bit quotient keeps full precision. The
	// extra bit of widening scales the quotient by 2^24 rather than the
	// mantissa's 2^23, so make gets an exponent one lower to compensate.
	num := uint64(a.mantissa24()) << 24
	den := uint64(b.mantissa24())
	quotient := uint32(num / den)
	sign := a.sign() != b.sign()
	return make(sign, exp-1, quotient)
}

// Cmp returns -1, 0, or 1 for a<b, a==b, a>b.
func Cmp(a, b Float) int {
	az, bz := a.IsZero(), b.IsZero()
	if az && bz {
		return 0
	}
	if az {
		if b.sign() {
			return 1
		}
		return -1
	}
	if bz {
		if a.sign() {
			return -1
		}
		return 1
	}
	sa, sb := a.sign(), b.sign()
	if sa != sb {
		if sa {
			return -1
		}
		return 1
	}
	// Same sign: compare exponent then mantissa; flip sense for negatives.
	ea, eb := a.biasedExp(), b.biasedExp()
	var result int
	switch {
	case ea != eb:
		if ea < eb {
			result = -1
		} else {
			result = 1
		}
	default:
		ma, mb := a.mantissa24(), b.mantissa24()
		switch {
		case ma < mb:
			result = -1
		case ma > mb:
			result = 1
		default:
			result = 0
		}
	}
	if sa {
		result = -result
	}
	return result
}

// Equal reports whether a and b compare equal.
func Equal(a, b Float) bool { return Cmp(a, b) == 0 }
