/*
 * Altair8K - Expression evaluator built-in functions.
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

// parseFunctionCall dispatches one of the 24 built-in functions. Every
// function requires an explicit parenthesized argument list.
func (e *Evaluator) parseFunctionCall(tok byte) (Value, *Error) {
	e.pos++ // consume function token
	e.skipSpaces()
	if e.peek() != '(' {
		return Value{}, newErr(SN, e.pos)
	}
	e.pos++

	args, err := e.parseArgList()
	if err != nil {
		return Value{}, err
	}
	e.skipSpaces()
	if e.peek() != ')' {
		return Value{}, newErr(SN, e.pos)
	}
	e.pos++

	return e.dispatch(tok, args)
}

func (e *Evaluator) parseArgList() ([]Value, *Error) {
	var args []Value
	e.skipSpaces()
	if e.peek() == ')' {
		return args, nil
	}
	for {
		v, err := e.parseOr()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		e.skipSpaces()
		if e.peek() != ',' {
			break
		}
		e.pos++
	}
	return args, nil
}

func (e *Evaluator) numArg(args []Value, i int) (mbf.Float, *Error) {
	if i >= len(args) {
		return mbf.Zero, newErr(SN, e.pos)
	}
	if args[i].IsString {
		return mbf.Zero, newErr(TM, e.pos)
	}
	return args[i].Num, nil
}

func (e *Evaluator) strArg(args []Value, i int) (string, *Error) {
	if i >= len(args) {
		return "", newErr(SN, e.pos)
	}
	if !args[i].IsString {
		return "", newErr(TM, e.pos)
	}
	return args[i].Str, nil
}

func (e *Evaluator) dispatch(tok byte, args []Value) (Value, *Error) {
	switch tok {
	case token.TokSgn:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		return numVal(mbf.FromInt16(int16(n.Sign()))), nil

	case token.TokInt:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		return numVal(n.Int()), nil

	case token.TokAbs:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		return numVal(n.Abs()), nil

	case token.TokUsr, token.TokInp:
		// Unsupported peripherals: both return zero. No warning is
		// emitted.
		return numVal(mbf.Zero), nil

	case token.TokFre:
		return numVal(mbf.FromInt32(int32(e.env.FreeMemory()))), nil

	case token.TokPos:
		return numVal(mbf.FromInt16(int16(e.env.Column()))), nil

	case token.TokSqr:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		v, k := mbf.Sqr(n)
		return wrapMBF(v, k, e.pos)

	case token.TokRnd:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		return numVal(e.env.RND(n)), nil

	case token.TokLog:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		v, k := mbf.Log(n)
		return wrapMBF(v, k, e.pos)

	case token.TokExp:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		v, k := mbf.Exp(n)
		return wrapMBF(v, k, e.pos)

	case token.TokCos:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		v, k := mbf.Cos(n)
		return wrapMBF(v, k, e.pos)

	case token.TokSin:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		v, k := mbf.Sin(n)
		return wrapMBF(v, k, e.pos)

	case token.TokTan:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		v, k := mbf.Tan(n)
		return wrapMBF(v, k, e.pos)

	case token.TokAtn:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		v, k := mbf.Atn(n)
		return wrapMBF(v, k, e.pos)

	case token.TokPeek:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		return numVal(mbf.FromInt16(int16(e.env.Peek(int(n.ToInt32()))))), nil

	case token.TokLen:
		s, err := e.strArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		return numVal(mbf.FromInt16(int16(len(s)))), nil

	case token.TokStrS:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		return strVal(n.ToString()), nil

	case token.TokVal:
		s, err := e.strArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		v, _ := mbf.FromString(strings.TrimLeft(s, " "))
		return numVal(v), nil

	case token.TokAsc:
		s, err := e.strArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		if len(s) == 0 {
			return Value{}, newErr(FC, e.pos)
		}
		return numVal(mbf.FromInt16(int16(s[0]))), nil

	case token.TokChrS:
		n, err := e.numArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		return strVal(string([]byte{byte(n.ToInt16())})), nil

	case token.TokLeftS:
		s, err := e.strArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		n, err := e.numArg(args, 1)
		if err != nil {
			return Value{}, err
		}
		ln := int(n.ToInt16())
		if ln < 0 {
			return Value{}, newErr(FC, e.pos)
		}
		if ln > len(s) {
			ln = len(s)
		}
		return strVal(s[:ln]), nil

	case token.TokRightS:
		s, err := e.strArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		n, err := e.numArg(args, 1)
		if err != nil {
			return Value{}, err
		}
		ln := int(n.ToInt16())
		if ln < 0 {
			return Value{}, newErr(FC, e.pos)
		}
		if ln > len(s) {
			ln = len(s)
		}
		return strVal(s[len(s)-ln:]), nil

	case token.TokMidS:
		s, err := e.strArg(args, 0)
		if err != nil {
			return Value{}, err
		}
		startN, err := e.numArg(args, 1)
		if err != nil {
			return Value{}, err
		}
		start := int(startN.ToInt16())
		if start < 1 {
			return Value{}, newErr(FC, e.pos)
		}
		length := len(s) - (start - 1)
		if len(args) >= 3 {
			ln, err := e.numArg(args, 2)
			if err != nil {
				return Value{}, err
			}
			length = int(ln.ToInt16())
		}
		if start-1 >= len(s) || length < 0 {
			return strVal(""), nil
		}
		end := start - 1 + length
		if end > len(s) {
			end = len(s)
		}
		return strVal(s[start-1 : end]), nil
	}
	return Value{}, newErr(SN, e.pos)
}

func wrapMBF(v mbf.Float, k mbf.ErrorKind, pos int) (Value, *Error) {
	if k != mbf.OK {
		return Value{}, newErr(fromMBFError(k), pos)
	}
	return numVal(v), nil
}
