/*
 * Altair8K - Expression evaluator primary/operator grammar.
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
	"errors"

	"altair8k/internal/mbf"
	"altair8k/internal/token"
	"altair8k/internal/vars"
)

// primary := number | variable | function '(' args ')' | '(' expr ')'
func (e *Evaluator) parsePrimary() (Value, *Error) {
	e.skipSpaces()
	c := e.peek()
	switch {
	case c == '(':
		e.pos++
		v, err := e.parseOr()
		if err != nil {
			return Value{}, err
		}
		e.skipSpaces()
		if e.peek() != ')' {
			return Value{}, newErr(SN, e.pos)
		}
		e.pos++
		return v, nil
	case c == '"':
		return e.parseStringLiteral()
	case token.IsFunction(c):
		return e.parseFunctionCall(c)
	case isDigitByte(c) || c == '.':
		return e.parseNumber()
	case isLetterByte(c):
		return e.parseVariable()
	}
	return Value{}, newErr(SN, e.pos)
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }
func isLetterByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
func isAlnumByte(c byte) bool { return isDigitByte(c) || isLetterByte(c) }
func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func (e *Evaluator) parseNumber() (Value, *Error) {
	v, n := mbf.FromString(string(e.src[e.pos:]))
	if n == 0 {
		return Value{}, newErr(SN, e.pos)
	}
	e.pos += n
	return numVal(v), nil
}

func (e *Evaluator) parseStringLiteral() (Value, *Error) {
	e.pos++ // opening quote
	start := e.pos
	for e.pos < len(e.src) && e.src[e.pos] != '"' {
		e.pos++
	}
	s := string(e.src[start:e.pos])
	if e.pos < len(e.src) {
		e.pos++ // closing quote
	}
	return strVal(s), nil
}

// consumeIdentifier reads a variable name: up to two alphanumerics are
// kept for identity, but every alphanumeric character present is
// consumed; a trailing '$' marks a string variable.
func (e *Evaluator) consumeIdentifier() (name string, isString bool) {
	var buf [2]byte
	count := 0
	for isAlnumByte(e.peek()) {
		if count < 2 {
			buf[count] = upperByte(e.peek())
			count++
		}
		e.pos++
	}
	if e.peek() == '$' {
		isString = true
		e.pos++
	}
	name = string(buf[:count])
	if isString {
		name += "$"
	}
	return name, isString
}

func (e *Evaluator) parseVariable() (Value, *Error) {
	name, isStr := e.consumeIdentifier()
	e.skipSpaces()
	if e.peek() == '(' {
		e.pos++
		subs, err := e.parseSubscripts()
		if err != nil {
			return Value{}, err
		}
		e.skipSpaces()
		if e.peek() != ')' {
			return Value{}, newErr(SN, e.pos)
		}
		e.pos++
		if isStr {
			s, ferr := e.env.GetArrayString(name, subs)
			if ferr != nil {
				return Value{}, subscriptErr(ferr, e.pos)
			}
			return strVal(s), nil
		}
		v, ferr := e.env.GetArrayNumeric(name, subs)
		if ferr != nil {
			return Value{}, subscriptErr(ferr, e.pos)
		}
		var f mbf.Float
		copy(f[:], v[:])
		return numVal(f), nil
	}
	if isStr {
		return strVal(e.env.GetStringVar(name)), nil
	}
	return numVal(e.env.GetNumericVar(name)), nil
}

func (e *Evaluator) parseSubscripts() ([]int, *Error) {
	var subs []int
	for {
		e.skipSpaces()
		v, err := e.parseOr()
		if err != nil {
			return nil, err
		}
		if v.IsString {
			return nil, newErr(TM, e.pos)
		}
		subs = append(subs, int(v.Num.ToInt32()))
		e.skipSpaces()
		if e.peek() != ',' {
			break
		}
		e.pos++
	}
	return subs, nil
}

// subscriptErr translates a vars-package subscript/out-of-memory error
// into the evaluator's error taxonomy.
func subscriptErr(err error, pos int) *Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, vars.ErrOutOfMemory) {
		return newErr(OM, pos)
	}
	return newErr(FC, pos)
}
