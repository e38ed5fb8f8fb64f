/*
 * Altair8K - MBF float/string conversion.
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

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// toFloat64 widens f to an IEEE double for parsing/formatting/elementary-
// function support. The MBF<->float64 round trip carries far more than the
// ~7 significant digits MBF can represent, so no precision is lost that
// MBF itself didn't already discard.
func (f Float) toFloat64() float64 {
	if f.IsZero() {
		return 0
	}
	mantissa := f.mantissa24()
	exp := f.biasedExp() - expBias
	v := float64(mantissa) / float64(impliedBit) * math.Pow(2, float64(exp))
	if f.sign() {
		v = -v
	}
	return v
}

// fromFloat64 narrows an IEEE double to MBF, reporting Overflow if it's out
// of MBF range.
func fromFloat64(v float64) (Float, ErrorKind) {
	if v == 0 {
		return Zero, OK
	}
	neg := v < 0
	if neg {
		v = -v
	}
	if math.IsInf(v, 1) {
		return Zero, Overflow
	}
	exp := 0
	for v >= 1 {
		v /= 2
		exp++
	}
	for v < 0.5 {
		v *= 2
		exp--
	}
	// v is now in [0.5, 1); the MBF mantissa holds 2v (in [1, 2)), so the
	// stored exponent is one below exp+expBias.
	mantissa := uint32(math.Round(v * float64(impliedBit) * 2))
	return make(neg, exp+expBias-1, mantissa)
}

// FromFloat64 converts an IEEE double to MBF, rounding to the nearest
// representable value.
func FromFloat64(v float64) (Float, ErrorKind) {
	return fromFloat64(v)
}

// ToFloat64 widens f to an IEEE double.
func (f Float) ToFloat64() float64 { return f.toFloat64() }

// FromString parses the longest valid numeric prefix of s per the grammar
// sign? (digit+ ('.' digit*)? | '.' digit+) (('E'|'e') sign? digit+)? and
// returns the parsed value plus the count of bytes consumed. consumed == 0
// means parse failure.
func FromString(s string) (Float, int) {
	i := 0
	n := len(s)
	start := i
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digitsStart := i
	for i < n && isDigit(s[i]) {
		i++
	}
	hasIntDigits := i > digitsStart
	hasFracDigits := false
	if i < n && s[i] == '.' {
		i++
		fracStart := i
		for i < n && isDigit(s[i]) {
			i++
		}
		hasFracDigits = i > fracStart
	}
	if !hasIntDigits && !hasFracDigits {
		return Zero, 0
	}
	mantissaEnd := i
	if i < n && (s[i] == 'E' || s[i] == 'e') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigitsStart := j
		for j < n && isDigit(s[j]) {
			j++
		}
		if j > expDigitsStart {
			i = j
		}
	}
	text := s[start:i]
	// Reparse using the standard library on the vetted prefix: strip
	// nothing, the grammar above already only accepted valid float text.
	// A range error still returns ±Inf or 0, which fromFloat64 maps to
	// Overflow or zero below.
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// Shouldn't happen given the grammar check above, but degrade to
		// the bare mantissa text without exponent as a fallback.
		v, err = strconv.ParseFloat(s[start:mantissaEnd], 64)
		if err != nil {
			return Zero, 0
		}
	}
	f, errKind := fromFloat64(v)
	if errKind == Overflow {
		return Zero, i - start
	}
	return f, i - start
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// ToString formats f the way the interpreter's PRINT/LIST do: a leading
// space for non-negative values, '-' for negative, no trailing zeros, no
// decimal point if integral, and scientific notation when |x| < 1e-2 or
// |x| >= 1e9, with roughly 7 significant digits.
func (f Float) ToString() string {
	if f.IsZero() {
		return " 0"
	}
	v := f.toFloat64()
	neg := v < 0
	av := v
	if neg {
		av = -v
	}

	var sign string
	if neg {
		sign = "-"
	} else {
		sign = " "
	}

	if av < 1e-2 || av >= 1e9 {
		return sign + scientific(av)
	}
	return sign + fixed(av)
}

// fixed formats a positive magnitude with up to 7 significant digits,
// trimming trailing zeros and an unnecessary trailing decimal point.
func fixed(v float64) string {
	digits := 7
	s := strconv.FormatFloat(v, 'f', -1, 64)
	// Round to 7 significant digits using %g, then reformat to plain
	// decimal so we never emit 'e' notation here.
	g := strconv.FormatFloat(v, 'g', digits, 64)
	if pv, err := strconv.ParseFloat(g, 64); err == nil {
		s = strconv.FormatFloat(pv, 'f', -1, 64)
	}
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if strings.HasPrefix(s, "0.") {
		s = s[1:]
	}
	if s == "" {
		s = "0"
	}
	return s
}

// scientific formats a positive magnitude as mE±dd with no trailing zeros
// in the mantissa.
func scientific(v float64) string {
	s := strconv.FormatFloat(v, 'e', 6, 64) // 7 significant digits
	mantissa, exp, _ := strings.Cut(s, "e")
	if strings.Contains(mantissa, ".") {
		mantissa = strings.TrimRight(mantissa, "0")
		mantissa = strings.TrimSuffix(mantissa, ".")
	}
	expVal, _ := strconv.Atoi(exp)
	sign := "+"
	if expVal < 0 {
		sign = "-"
		expVal = -expVal
	}
	expStr := strconv.Itoa(expVal)
	if len(expStr) < 2 {
		expStr = "0" + expStr
	}
	return mantissa + "E" + sign + expStr
}
