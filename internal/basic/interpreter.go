/*
 * Altair8K - Interpreter: wires image, program, vars, and eval.
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

// Package basic wires the tokenizer, program store, variable/array/string
// area, and expression evaluator together behind a single
// external-interface contract. It owns no statement dispatch (PRINT,
// IF, GOTO, FOR, ...): that belongs to an external harness this package
// never imports.
package basic

import (
	"altair8k/internal/eval"
	"altair8k/internal/image"
	"altair8k/internal/mbf"
	"altair8k/internal/program"
	"altair8k/internal/rnd"
	"altair8k/internal/token"
	"altair8k/internal/vars"
)

// DefaultImageSize is the byte size of a freshly created image when no
// explicit size is configured.
const DefaultImageSize = 8192

// Interpreter is the core's single owned piece of state: one image buffer
// and the four components addressing regions within it. No two
// Interpreters may share an Image (each one exclusively owns its own).
type Interpreter struct {
	img     *image.Image
	program *program.Store
	vars    *vars.Area
	rnd     *rnd.State

	column  int
	breakRq bool
}

// New allocates a fresh image of the given size and wires the four
// components over it.
func New(imageSize int) *Interpreter {
	img := image.New(imageSize)
	return &Interpreter{
		img:     img,
		program: program.New(img),
		vars:    vars.New(img),
		rnd:     rnd.New(),
	}
}

// Image exposes the underlying buffer for save/load and PEEK/POKE
// plumbing the external harness needs direct access to.
func (in *Interpreter) Image() *image.Image { return in.img }

// --- eval.Environment ---

func (in *Interpreter) GetNumericVar(name string) mbf.Float { return in.vars.GetNumeric(name) }
func (in *Interpreter) SetNumericVar(name string, v mbf.Float) error {
	return in.vars.SetNumeric(name, v)
}
func (in *Interpreter) GetStringVar(name string) string { return in.vars.GetString(name) }
func (in *Interpreter) SetStringVar(name string, v string) error {
	return in.vars.SetString(name, v)
}

func (in *Interpreter) GetArrayNumeric(name string, subs []int) ([4]byte, error) {
	return in.vars.GetArrayNumeric(name, subs)
}
func (in *Interpreter) SetArrayNumeric(name string, subs []int, v [4]byte) error {
	return in.vars.SetArrayNumeric(name, subs, v)
}
func (in *Interpreter) GetArrayString(name string, subs []int) (string, error) {
	return in.vars.GetArrayString(name, subs)
}
func (in *Interpreter) SetArrayString(name string, subs []int, v string) error {
	return in.vars.SetArrayString(name, subs, v)
}

func (in *Interpreter) Peek(addr int) byte { return in.img.Byte(addr) }

// Poke writes a raw image byte; exposed alongside Peek since POKE/PEEK
// are named as a matched pair in the keyword table even though POKE
// itself is a statement (out of core scope) rather than a function.
func (in *Interpreter) Poke(addr int, v byte) { in.img.SetByte(addr, v) }

// FreeMemory implements the FRE() contract: bytes available between the
// top of the array area and the bottom of the live string pool.
func (in *Interpreter) FreeMemory() int { return in.img.FreeSpace() }

// RND implements the evaluator's narrow view of the RND() generator:
// x > 0 advances, x == 0 replays, x < 0 reseeds.
func (in *Interpreter) RND(x mbf.Float) mbf.Float {
	switch x.Sign() {
	case 0:
		return in.rnd.Current()
	default:
		if x.Sign() < 0 {
			in.rnd.Seed(x)
		}
		return in.rnd.Next()
	}
}

// Column is the terminal_x cursor column contract POS() reads.
func (in *Interpreter) Column() int { return in.column }

// SetColumn lets the external harness publish its current cursor column
// after each character it emits.
func (in *Interpreter) SetColumn(c int) { in.column = c }

// BreakRequested is the cooperative abort flag statement-level code polls
// between statements and FOR iterations; the evaluator itself never
// calls this mid-expression.
func (in *Interpreter) BreakRequested() bool { return in.breakRq }

// RequestBreak sets the abort flag; ClearBreak resets it once the
// external harness has observed and handled it.
func (in *Interpreter) RequestBreak() { in.breakRq = true }
func (in *Interpreter) ClearBreak()   { in.breakRq = false }

var _ eval.Environment = (*Interpreter)(nil)

// --- evaluator contract ---

// EvalExpression evaluates a tokenized numeric expression starting at
// offset 0 of src, returning the value, bytes consumed, and error kind.
func (in *Interpreter) EvalExpression(src []byte) (mbf.Float, int, eval.ErrKind) {
	return eval.New(src, in).EvalExpression()
}

// EvalStringExpression is the eval_string_expression contract.
func (in *Interpreter) EvalStringExpression(src []byte) (string, int, eval.ErrKind) {
	return eval.New(src, in).EvalStringExpression()
}

// --- program-store contract ---

// TokenizeLine is the tokenize_line contract: ASCII source in, tokenized
// bytes out.
func (in *Interpreter) TokenizeLine(src string) []byte {
	return token.Tokenize(src, 0)
}

// ProgramInsertLine is the program_insert_line contract: insert, replace,
// or (on an empty tokenized body) delete the line numbered lineNo.
func (in *Interpreter) ProgramInsertLine(lineNo uint16, tokenized []byte) (existed bool, err error) {
	return in.program.Upsert(lineNo, tokenized)
}

// ProgramGetLine is the program_get_line contract: the detokenized text
// of one line, or "" if it does not exist.
func (in *Interpreter) ProgramGetLine(lineNo uint16) (string, bool) {
	return in.program.GetLine(lineNo)
}

// ListProgram is the list_program contract over an inclusive line range.
func (in *Interpreter) ListProgram(start, end uint16) []string {
	return in.program.List(start, end)
}

// ProgramClear is the program_clear contract: NEW's program-area reset.
func (in *Interpreter) ProgramClear() { in.program.Clear() }

// ClearAll additionally resets the variable/array/string area, matching
// CLEAR's broader scope.
func (in *Interpreter) ClearAll() { in.vars.Clear() }

// Dump/Load expose the image save/load round trip.
func (in *Interpreter) Dump() []byte           { return in.img.Dump() }
func (in *Interpreter) Load(data []byte) error { return in.img.Load(data) }
