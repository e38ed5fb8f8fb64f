/*
 * Altair8K - MBF elementary function approximations.
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

import "math"

// Sqr returns the square root of f. Negative operands are a domain error.
func Sqr(f Float) (Float, ErrorKind) {
	if f.Sign() < 0 {
		return Zero, Domain
	}
	if f.IsZero() {
		return Zero, OK
	}
	return fromFloat64(math.Sqrt(f.toFloat64()))
}

// Log returns the natural logarithm of f. x <= 0 is a domain error.
func Log(f Float) (Float, ErrorKind) {
	if f.Sign() <= 0 {
		return Zero, Domain
	}
	return fromFloat64(math.Log(f.toFloat64()))
}

// Exp returns e^f, reporting Overflow for large x.
func Exp(f Float) (Float, ErrorKind) {
	return fromFloat64(math.Exp(f.toFloat64()))
}

// Sin returns the sine of f (radians).
func Sin(f Float) (Float, ErrorKind) {
	return fromFloat64(math.Sin(f.toFloat64()))
}

// Cos returns the cosine of f (radians).
func Cos(f Float) (Float, ErrorKind) {
	return fromFloat64(math.Cos(f.toFloat64()))
}

// Tan returns the tangent of f (radians).
func Tan(f Float) (Float, ErrorKind) {
	return fromFloat64(math.Tan(f.toFloat64()))
}

// Atn returns the arctangent of f (radians).
func Atn(f Float) (Float, ErrorKind) {
	return fromFloat64(math.Atan(f.toFloat64()))
}
