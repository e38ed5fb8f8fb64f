/*
 * Altair8K - Program line detokenizer.
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

// Detokenize converts a tokenized byte stream (without its trailing 0x00,
// or with one — either is accepted) back into ASCII source text. Token
// bytes expand to their keyword spelling; string-region and other bytes
// pass through verbatim. Used by both LIST and any program-to-source
// dumper.
func Detokenize(stream []byte) string {
	var b strings.Builder
	inString := false
	for i, c := range stream {
		if c == 0 {
			break
		}
		if inString {
			b.WriteByte(c)
			if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c >= FirstToken && c <= LastToken {
			text := Text(c)
			b.WriteString(text)
			// REM and DATA are followed by their literal payload bytes,
			// which already carry whatever spacing the user typed (the
			// tokenizer copies that region verbatim); adding another space
			// here would double it up. Nothing is added at the end of the
			// line, where no text follows.
			more := i+1 < len(stream) && stream[i+1] != 0
			if more && isAlphaKeyword(text) && c != TokRem && c != TokData {
				b.WriteByte(' ')
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// isAlphaKeyword reports whether a keyword's spelling is letters (statement
// and clause keywords, plus the alphabetic operators AND/OR/NOT). These get
// a trailing space on detokenization so they don't run into the text that
// follows; the single-character symbol operators (+-*/^><=) do not, since
// the tokenizer already collapsed any space around them and reinserting one
// would diverge from the historical LIST output ("PRINT 1+2", not
// "PRINT 1 + 2").
func isAlphaKeyword(text string) bool {
	if text == "" {
		return false
	}
	c := text[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
