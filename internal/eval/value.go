/*
 * Altair8K - Expression evaluator value type.
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

// Package eval implements the recursive-descent expression evaluator:
// precedence climbing over the tokenized byte stream, function dispatch,
// and the numeric/string type split.
package eval

import "altair8k/internal/mbf"

// ErrKind is the evaluator's two-letter error taxonomy, surfaced to
// statement dispatch.
type ErrKind int

const (
	None ErrKind = iota
	SN           // syntax error
	OV           // overflow
	DZ           // division by zero
	TM           // type mismatch
	FC           // illegal function call
	OM           // out of memory
)

func (k ErrKind) String() string {
	switch k {
	case None:
		return ""
	case SN:
		return "SN"
	case OV:
		return "OV"
	case DZ:
		return "DZ"
	case TM:
		return "TM"
	case FC:
		return "FC"
	case OM:
		return "OM"
	}
	return "??"
}

// Error pairs an ErrKind with the evaluator position it was raised at,
// implementing the standard error interface for convenience at call sites
// that just want a message.
type Error struct {
	Kind ErrKind
	Pos  int
}

func (e *Error) Error() string { return "?" + e.Kind.String() + " ERROR" }

func newErr(kind ErrKind, pos int) *Error { return &Error{Kind: kind, Pos: pos} }

// fromMBFError translates an mbf.ErrorKind raised by an arithmetic
// operation into the evaluator's error taxonomy.
func fromMBFError(k mbf.ErrorKind) ErrKind {
	switch k {
	case mbf.Overflow, mbf.Underflow:
		return OV
	case mbf.DivZero:
		return DZ
	case mbf.Domain:
		return FC
	}
	return None
}

// Value is either a numeric (MBF) or string result. Mixing the two
// without an explicit conversion function is a type mismatch.
type Value struct {
	IsString bool
	Num      mbf.Float
	Str      string
}

func numVal(f mbf.Float) Value  { return Value{Num: f} }
func strVal(s string) Value     { return Value{IsString: true, Str: s} }
func boolVal(b bool) Value {
	if b {
		return numVal(mbf.FromInt16(-1))
	}
	return numVal(mbf.Zero)
}
