/*
 * Altair8K - Interpreter wiring test cases.
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

package basic

import (
	"reflect"
	"testing"

	"altair8k/internal/mbf"
)

func newTestInterpreter() *Interpreter {
	return New(4096)
}

// insertLine tokenizes a statement body (without its leading line number,
// which program_insert_line takes as a separate argument) and inserts it
// at lineNo.
func insertLine(t *testing.T, in *Interpreter, body string, lineNo uint16) {
	t.Helper()
	toks := in.TokenizeLine(body)
	if _, err := in.ProgramInsertLine(lineNo, toks); err != nil {
		t.Fatalf("insert %q: %v", body, err)
	}
}

// TestInsertThenList covers a plain insert followed by a list.
func TestInsertThenList(t *testing.T) {
	in := newTestInterpreter()
	insertLine(t, in, `PRINT "HI"`, 20)
	insertLine(t, in, `PRINT 1+2`, 10)
	insertLine(t, in, `REM MID`, 15)

	got := in.ListProgram(0, 65535)
	want := []string{
		`10 PRINT 1+2`,
		`15 REM MID`,
		`20 PRINT "HI"`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

// TestReplaceShrinks is scenario 2.
func TestReplaceShrinks(t *testing.T) {
	in := newTestInterpreter()
	insertLine(t, in, `PRINT "HI"`, 20)
	insertLine(t, in, `PRINT 1+2`, 10)
	insertLine(t, in, `REM MID`, 15)

	before := in.img.ProgramEnd
	insertLine(t, in, `END`, 10)
	after := in.img.ProgramEnd

	if after >= before {
		t.Errorf("program area did not shrink: before=%d after=%d", before, after)
	}
	got := in.ListProgram(0, 65535)
	if got[0] != "10 END" {
		t.Errorf("first line = %q, want %q", got[0], "10 END")
	}
}

// TestDeleteOmitsLine is scenario 3.
func TestDeleteOmitsLine(t *testing.T) {
	in := newTestInterpreter()
	insertLine(t, in, `PRINT "HI"`, 20)
	insertLine(t, in, `PRINT 1+2`, 10)
	insertLine(t, in, `REM MID`, 15)

	if _, err := in.ProgramInsertLine(15, nil); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got := in.ListProgram(0, 65535)
	want := []string{`10 PRINT 1+2`, `20 PRINT "HI"`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestEvalExpressionContract(t *testing.T) {
	in := newTestInterpreter()
	src := in.TokenizeLine("2+3*4")
	v, _, kind := in.EvalExpression(src)
	if kind != 0 {
		t.Fatalf("eval error kind %v", kind)
	}
	if v.ToInt32() != 14 {
		t.Errorf("2+3*4 = %d, want 14", v.ToInt32())
	}
}

func TestVariableAccessorsRoundTrip(t *testing.T) {
	in := newTestInterpreter()
	if err := in.SetNumericVar("X", mbf.FromInt16(5)); err != nil {
		t.Fatal(err)
	}
	if got := in.GetNumericVar("X"); got.ToInt32() != 5 {
		t.Errorf("X = %d, want 5", got.ToInt32())
	}
	if err := in.SetStringVar("A$", "HELLO"); err != nil {
		t.Fatal(err)
	}
	if got := in.GetStringVar("A$"); got != "HELLO" {
		t.Errorf("A$ = %q, want HELLO", got)
	}
}

func TestFreeMemoryAndRND(t *testing.T) {
	in := newTestInterpreter()
	if in.FreeMemory() <= 0 {
		t.Errorf("FreeMemory() = %d, want > 0", in.FreeMemory())
	}
	in.RND(mbf.FromInt16(-5))
	first := in.RND(mbf.FromInt16(1))
	second := in.RND(mbf.FromInt16(0))
	if first != second {
		t.Errorf("RND(0) should replay the last RND(1) value")
	}
}

func TestProgramClearAndDumpLoad(t *testing.T) {
	in := newTestInterpreter()
	insertLine(t, in, "END", 10)
	dump := in.Dump()
	if len(dump) == 0 {
		t.Fatal("Dump() returned empty")
	}

	in.ProgramClear()
	if got := in.ListProgram(0, 65535); len(got) != 0 {
		t.Errorf("after Clear, ListProgram = %v, want empty", got)
	}

	if err := in.Load(dump); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := in.ListProgram(0, 65535)
	if len(got) != 1 || got[0] != "10 END" {
		t.Errorf("after Load, ListProgram = %v, want [10 END]", got)
	}
}

// TestOutOfMemoryGuardPreservesImage is scenario 6.
func TestOutOfMemoryGuardPreservesImage(t *testing.T) {
	in := New(32)
	insertLine(t, in, "END", 10)
	before := make([]byte, len(in.img.Dump()))
	copy(before, in.img.Dump())

	toks := in.TokenizeLine(`PRINT "THIS LINE IS FAR TOO LONG TO FIT"`)
	if _, err := in.ProgramInsertLine(20, toks); err == nil {
		t.Fatal("expected out-of-memory error")
	}
	after := in.img.Dump()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("image mutated on failed insert")
	}
}
