/*
 * Altair8K - Program line tokenizer.
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

package token

import "strings"

// Tokenize converts one line of 7-bit ASCII BASIC source into its token
// byte stream, terminated by 0x00. It stops at '\n', '\r', or NUL in src.
// nil is returned if the output would exceed cap bytes (buffer
// overflow); cap <= 0 means unbounded.
func Tokenize(src string, cap int) []byte {
	out := make([]byte, 0, len(src)+1)
	appendByte := func(b byte) bool {
		if cap > 0 && len(out)+1 > cap {
			return false
		}
		out = append(out, b)
		return true
	}

	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		if c == '\n' || c == '\r' || c == 0 {
			break
		}
		i++
	}
	line := src[:i]

	inString := false
	afterREM := false
	afterDATA := false

	i = 0
	n = len(line)
	for i < n {
		c := line[i]

		if inString {
			if !appendByte(c) {
				return nil
			}
			i++
			if c == '"' {
				inString = false
			}
			continue
		}

		if afterREM {
			if !appendByte(c) {
				return nil
			}
			i++
			continue
		}

		if afterDATA {
			if c == ':' {
				if !appendByte(c) {
					return nil
				}
				i++
				afterDATA = false
				continue
			}
			if !appendByte(c) {
				return nil
			}
			i++
			continue
		}

		switch {
		case c == '"':
			inString = true
			if !appendByte(c) {
				return nil
			}
			i++

		case isLetter(c):
			tok, length := matchKeyword(line[i:])
			if tok != 0 {
				if !appendByte(tok) {
					return nil
				}
				i += length
				if tok == TokRem {
					afterREM = true
				} else if tok == TokData {
					afterDATA = true
				}
				continue
			}
			// Not a keyword: copy the identifier byte-for-byte,
			// upper-casing letters, until a non-identifier character.
			for i < n && isIdentChar(line[i]) {
				if !appendByte(upper(line[i])) {
					return nil
				}
				i++
			}

		case isOperatorByte(c):
			if !appendByte(operatorToken(c)) {
				return nil
			}
			i++

		case c == ' ':
			// Collapse runs of spaces outside strings to nothing.
			for i < n && line[i] == ' ' {
				i++
			}

		default:
			if !appendByte(c) {
				return nil
			}
			i++
		}
	}

	if !appendByte(0) {
		return nil
	}
	return out
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '$'
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isOperatorByte(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '^', '>', '=', '<':
		return true
	}
	return false
}

func operatorToken(c byte) Token {
	switch c {
	case '+':
		return TokPlus
	case '-':
		return TokMinus
	case '*':
		return TokStar
	case '/':
		return TokSlash
	case '^':
		return TokCaret
	case '>':
		return TokGt
	case '=':
		return TokEq
	case '<':
		return TokLt
	}
	return 0
}

// matchKeyword finds the longest case-insensitive keyword-table prefix
// match of s ("FORI=1TO10" tokenizes as "FOR I = 1 TO 10" — no
// non-identifier follow character is required).
// Returns the token byte (0 if no match) and the length of the matched
// keyword text.
func matchKeyword(s string) (Token, int) {
	best := Token(0)
	bestLen := 0
	upperS := strings.ToUpper(s)
	for idx, kw := range keywords {
		if len(kw) > len(upperS) {
			continue
		}
		if upperS[:len(kw)] != kw {
			continue
		}
		if len(kw) > bestLen {
			best = FirstToken + Token(idx)
			bestLen = len(kw)
		}
	}
	return best, bestLen
}
