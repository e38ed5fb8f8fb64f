/*
 * Altair8K - Expression evaluator entry points.
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

package eval

import (
	"strings"

	"altair8k/internal/mbf"
	"altair8k/internal/token"
)

// Evaluator parses and evaluates one expression directly from a
// tokenized byte stream, stopping as soon as the expression is complete;
// trailing bytes (a statement separator, the rest of a statement) are
// left unconsumed for the caller.
type Evaluator struct {
	src []byte
	pos int
	env Environment
}

// New returns an Evaluator over src starting at offset 0, using env to
// resolve variables, arrays, PEEK, RND, and the terminal column.
func New(src []byte, env Environment) *Evaluator {
	return &Evaluator{src: src, env: env}
}

// EvalExpression parses and evaluates a numeric expression starting at
// the evaluator's current position. It follows the eval_expression
// contract: (value, consumed, error).
func (e *Evaluator) EvalExpression() (mbf.Float, int, ErrKind) {
	v, err := e.parseOr()
	if err != nil {
		return mbf.Zero, e.pos, err.Kind
	}
	if v.IsString {
		return mbf.Zero, e.pos, TM
	}
	return v.Num, e.pos, None
}

// EvalStringExpression is the eval_string_expression contract.
func (e *Evaluator) EvalStringExpression() (string, int, ErrKind) {
	v, err := e.parseOr()
	if err != nil {
		return "", e.pos, err.Kind
	}
	if !v.IsString {
		return "", e.pos, TM
	}
	return v.Str, e.pos, None
}

func (e *Evaluator) peek() byte {
	if e.pos >= len(e.src) {
		return 0
	}
	return e.src[e.pos]
}

func (e *Evaluator) peekAt(off int) byte {
	if e.pos+off >= len(e.src) {
		return 0
	}
	return e.src[e.pos+off]
}

func (e *Evaluator) skipSpaces() {
	for e.peek() == ' ' {
		e.pos++
	}
}

// or-expr := and-expr ( OR and-expr )*
func (e *Evaluator) parseOr() (Value, *Error) {
	lhs, err := e.parseAnd()
	if err != nil {
		return Value{}, err
	}
	for {
		e.skipSpaces()
		if e.peek() != token.TokOr {
			return lhs, nil
		}
		e.pos++
		rhs, err := e.parseAnd()
		if err != nil {
			return Value{}, err
		}
		lhs, err = bitwiseOp(lhs, rhs, e.pos, func(a, b int16) int16 { return a | b })
		if err != nil {
			return Value{}, err
		}
	}
}

// and-expr := not-expr ( AND not-expr )*
func (e *Evaluator) parseAnd() (Value, *Error) {
	lhs, err := e.parseNot()
	if err != nil {
		return Value{}, err
	}
	for {
		e.skipSpaces()
		if e.peek() != token.TokAnd {
			return lhs, nil
		}
		e.pos++
		rhs, err := e.parseNot()
		if err != nil {
			return Value{}, err
		}
		lhs, err = bitwiseOp(lhs, rhs, e.pos, func(a, b int16) int16 { return a & b })
		if err != nil {
			return Value{}, err
		}
	}
}

// not-expr := NOT not-expr | relational
func (e *Evaluator) parseNot() (Value, *Error) {
	e.skipSpaces()
	if e.peek() == token.TokNot {
		e.pos++
		v, err := e.parseNot()
		if err != nil {
			return Value{}, err
		}
		if v.IsString {
			return Value{}, newErr(TM, e.pos)
		}
		return numVal(mbf.FromInt16(^v.Num.ToInt16())), nil
	}
	return e.parseRelational()
}

// relational := additive ( ( = | < | > | <= | >= | <> ) additive )?
func (e *Evaluator) parseRelational() (Value, *Error) {
	lhs, err := e.parseAdditive()
	if err != nil {
		return Value{}, err
	}
	e.skipSpaces()
	op1 := e.peek()
	if op1 != token.TokEq && op1 != token.TokLt && op1 != token.TokGt {
		return lhs, nil
	}
	e.pos++
	op2 := e.peek()
	kind := relKind(op1)
	switch {
	case op1 == token.TokLt && op2 == token.TokEq:
		e.pos++
		kind = relLE
	case op1 == token.TokGt && op2 == token.TokEq:
		e.pos++
		kind = relGE
	case op1 == token.TokLt && op2 == token.TokGt:
		e.pos++
		kind = relNE
	}
	rhs, err := e.parseAdditive()
	if err != nil {
		return Value{}, err
	}
	return compareValues(lhs, rhs, kind, e.pos)
}

type relOp int

const (
	relEQ relOp = iota
	relLT
	relGT
	relLE
	relGE
	relNE
)

func relKind(b byte) relOp {
	switch b {
	case token.TokLt:
		return relLT
	case token.TokGt:
		return relGT
	default:
		return relEQ
	}
}

func compareValues(a, b Value, op relOp, pos int) (Value, *Error) {
	if a.IsString != b.IsString {
		return Value{}, newErr(TM, pos)
	}
	var cmp int
	if a.IsString {
		cmp = strings.Compare(a.Str, b.Str)
	} else {
		cmp = mbf.Cmp(a.Num, b.Num)
	}
	var result bool
	switch op {
	case relEQ:
		result = cmp == 0
	case relLT:
		result = cmp < 0
	case relGT:
		result = cmp > 0
	case relLE:
		result = cmp <= 0
	case relGE:
		result = cmp >= 0
	case relNE:
		result = cmp != 0
	}
	return boolVal(result), nil
}

// additive := mul-expr ( (+|-) mul-expr )*
func (e *Evaluator) parseAdditive() (Value, *Error) {
	lhs, err := e.parseMul()
	if err != nil {
		return Value{}, err
	}
	for {
		e.skipSpaces()
		c := e.peek()
		if c != token.TokPlus && c != token.TokMinus {
			return lhs, nil
		}
		e.pos++
		rhs, err := e.parseMul()
		if err != nil {
			return Value{}, err
		}
		if c == token.TokPlus {
			lhs, err = addValues(lhs, rhs, e.pos)
		} else {
			lhs, err = subValues(lhs, rhs, e.pos)
		}
		if err != nil {
			return Value{}, err
		}
	}
}

func addValues(a, b Value, pos int) (Value, *Error) {
	if a.IsString && b.IsString {
		return strVal(a.Str + b.Str), nil
	}
	if a.IsString || b.IsString {
		return Value{}, newErr(TM, pos)
	}
	sum, k := mbf.Add(a.Num, b.Num)
	if k != mbf.OK {
		return Value{}, newErr(fromMBFError(k), pos)
	}
	return numVal(sum), nil
}

func subValues(a, b Value, pos int) (Value, *Error) {
	if a.IsString || b.IsString {
		return Value{}, newErr(TM, pos)
	}
	diff, k := mbf.Sub(a.Num, b.Num)
	if k != mbf.OK {
		return Value{}, newErr(fromMBFError(k), pos)
	}
	return numVal(diff), nil
}

// mul-expr := pow-expr ( (*|/) pow-expr )*
func (e *Evaluator) parseMul() (Value, *Error) {
	lhs, err := e.parsePow()
	if err != nil {
		return Value{}, err
	}
	for {
		e.skipSpaces()
		c := e.peek()
		if c != token.TokStar && c != token.TokSlash {
			return lhs, nil
		}
		e.pos++
		rhs, err := e.parsePow()
		if err != nil {
			return Value{}, err
		}
		if lhs.IsString || rhs.IsString {
			return Value{}, newErr(TM, e.pos)
		}
		var result mbf.Float
		var k mbf.ErrorKind
		if c == token.TokStar {
			result, k = mbf.Mul(lhs.Num, rhs.Num)
		} else {
			result, k = mbf.Div(lhs.Num, rhs.Num)
		}
		if k != mbf.OK {
			return Value{}, newErr(fromMBFError(k), e.pos)
		}
		lhs = numVal(result)
	}
}

// pow-expr := unary ( ^ unary )*, right-associative.
func (e *Evaluator) parsePow() (Value, *Error) {
	base, err := e.parseUnary()
	if err != nil {
		return Value{}, err
	}
	e.skipSpaces()
	if e.peek() != token.TokCaret {
		return base, nil
	}
	e.pos++
	exp, err := e.parsePow() // right-recursion: right-associative
	if err != nil {
		return Value{}, err
	}
	if base.IsString || exp.IsString {
		return Value{}, newErr(TM, e.pos)
	}
	result, k := power(base.Num, exp.Num)
	if k != mbf.OK {
		return Value{}, newErr(fromMBFError(k), e.pos)
	}
	return numVal(result), nil
}

// power computes base^exp. Integer exponents use repeated
// multiplication/division for exactness; other exponents go through
// exp(y*ln(x)), which is a domain error for a non-positive base.
func power(base, exp mbf.Float) (mbf.Float, mbf.ErrorKind) {
	if exp.IsZero() {
		return mbf.One, mbf.OK
	}
	if n := exp.ToInt32(); mbf.FromInt32(n) == exp {
		neg := n < 0
		if neg {
			n = -n
		}
		result := mbf.One
		var k mbf.ErrorKind
		for i := int32(0); i < n; i++ {
			result, k = mbf.Mul(result, base)
			if k != mbf.OK {
				return mbf.Zero, k
			}
		}
		if neg {
			return mbf.Div(mbf.One, result)
		}
		return result, mbf.OK
	}
	logBase, k := mbf.Log(base)
	if k != mbf.OK {
		return mbf.Zero, k
	}
	prod, k := mbf.Mul(exp, logBase)
	if k != mbf.OK {
		return mbf.Zero, k
	}
	return mbf.Exp(prod)
}

// unary := ( + | - ) unary | primary
func (e *Evaluator) parseUnary() (Value, *Error) {
	e.skipSpaces()
	switch e.peek() {
	case token.TokPlus:
		e.pos++
		return e.parseUnary()
	case token.TokMinus:
		e.pos++
		v, err := e.parseUnary()
		if err != nil {
			return Value{}, err
		}
		if v.IsString {
			return Value{}, newErr(TM, e.pos)
		}
		return numVal(v.Num.Neg()), nil
	}
	return e.parsePrimary()
}

func bitwiseOp(a, b Value, pos int, op func(int16, int16) int16) (Value, *Error) {
	if a.IsString || b.IsString {
		return Value{}, newErr(TM, pos)
	}
	return numVal(mbf.FromInt16(op(a.Num.ToInt16(), b.Num.ToInt16()))), nil
}
