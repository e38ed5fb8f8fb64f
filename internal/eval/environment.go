/*
 * Altair8K - Expression evaluator environment interface.
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

import "altair8k/internal/mbf"

// Environment is the narrow seam between the evaluator and everything it
// needs from the rest of the interpreter: variable storage, the image
// (for PEEK/FRE), and the RND generator. It intentionally does not
// expose program-store or statement-dispatch operations — those belong
// to the external harness, keeping the evaluator's dependency surface
// small and independently
// testable.
type Environment interface {
	GetNumericVar(name string) mbf.Float
	SetNumericVar(name string, v mbf.Float) error
	GetStringVar(name string) string
	SetStringVar(name string, v string) error

	GetArrayNumeric(name string, subs []int) ([4]byte, error)
	SetArrayNumeric(name string, subs []int, v [4]byte) error
	GetArrayString(name string, subs []int) (string, error)
	SetArrayString(name string, subs []int, v string) error

	Peek(addr int) byte
	FreeMemory() int

	RND(x mbf.Float) mbf.Float

	// Column reports the terminal cursor column the external I/O
	// collaborator currently publishes; POS(x) reads it.
	Column() int

	// BreakRequested reports a cooperative abort flag. The evaluator
	// itself never polls it mid-expression; it is part of this interface
	// only so statement dispatch can observe the
	// same narrow view of the outside world the evaluator uses, instead
	// of a second ad-hoc collaborator type.
	BreakRequested() bool
}
