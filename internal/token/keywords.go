/*
 * Altair8K - Tokenizer keyword table.
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

// Package token implements the fixed 70-entry keyword table and the
// tokenizer/detokenizer that convert between ASCII BASIC source and the
// compact byte stream the program store keeps.
package token

// Token is a single byte in the tokenized stream. Values 0x81..0xC6 are
// reserved keyword tokens; all other values carry their literal ASCII
// meaning.
type Token = byte

const (
	FirstToken Token = 0x81
	LastToken  Token = 0x81 + 69 // 70 entries
)

// keywords is the canonical table in fixed order: 29 statements, 7 clause
// keywords, 10 operators, 24 functions. Token value = 0x81 + index. Order
// matters for the token-value contract; do not alphabetize or reorder.
var keywords = [...]string{
	// Statements (29)
	"END", "FOR", "NEXT", "DATA", "INPUT", "DIM", "READ", "LET", "GOTO",
	"RUN", "IF", "RESTORE", "GOSUB", "RETURN", "REM", "STOP", "OUT", "ON",
	"NULL", "WAIT", "DEF", "POKE", "PRINT", "CONT", "LIST", "CLEAR",
	"CLOAD", "CSAVE", "NEW",
	// Clause keywords (7)
	"TAB(", "TO", "FN", "SPC(", "THEN", "NOT", "STEP",
	// Operators (10)
	"+", "-", "*", "/", "^", "AND", "OR", ">", "=", "<",
	// Functions (24)
	"SGN", "INT", "ABS", "USR", "FRE", "INP", "POS", "SQR", "RND", "LOG",
	"EXP", "COS", "SIN", "TAN", "ATN", "PEEK", "LEN", "STR$", "VAL", "ASC",
	"CHR$", "LEFT$", "RIGHT$", "MID$",
}

// Keyword token constants for the functions/statements the evaluator and
// program store need to recognize by name rather than by scanning the
// table at runtime.
const (
	TokEnd Token = FirstToken + iota
	TokFor
	TokNext
	TokData
	TokInput
	TokDim
	TokRead
	TokLet
	TokGoto
	TokRun
	TokIf
	TokRestore
	TokGosub
	TokReturn
	TokRem
	TokStop
	TokOut
	TokOn
	TokNull
	TokWait
	TokDef
	TokPoke
	TokPrint
	TokCont
	TokList
	TokClear
	TokCload
	TokCsave
	TokNew

	TokTabParen
	TokTo
	TokFn
	TokSpcParen
	TokThen
	TokNot
	TokStep

	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokCaret
	TokAnd
	TokOr
	TokGt
	TokEq
	TokLt

	TokSgn
	TokInt
	TokAbs
	TokUsr
	TokFre
	TokInp
	TokPos
	TokSqr
	TokRnd
	TokLog
	TokExp
	TokCos
	TokSin
	TokTan
	TokAtn
	TokPeek
	TokLen
	TokStrS
	TokVal
	TokAsc
	TokChrS
	TokLeftS
	TokRightS
	TokMidS
)

// Text returns a token's keyword spelling, or "" if tok is not a reserved
// token.
func Text(tok Token) string {
	if tok < FirstToken || tok > LastToken {
		return ""
	}
	return keywords[tok-FirstToken]
}

// IsFunction reports whether tok is one of the 24 function tokens.
func IsFunction(tok Token) bool {
	return tok >= TokSgn && tok <= TokMidS
}

// IsOperator reports whether tok is one of the 10 operator tokens.
func IsOperator(tok Token) bool {
	return tok >= TokPlus && tok <= TokLt
}
