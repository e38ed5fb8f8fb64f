/*
 * Altair8K - Variable area test cases.
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

package vars

import (
	"testing"

	"altair8k/internal/image"
	"altair8k/internal/mbf"
)

func newArea(size int) (*Area, *image.Image) {
	img := image.New(size)
	return New(img), img
}

func TestEncodeNameTruncatesAndFlags(t *testing.T) {
	n0, n1, isStr := EncodeName("ABC")
	if n0 != 'A' || n1 != 'B' {
		t.Errorf("EncodeName(ABC) = %c%c want AB", n0, n1)
	}
	if isStr {
		t.Error("ABC should not be a string name")
	}

	n0, n1, isStr = EncodeName("AB$")
	if n0 != 'A' || n1&0x7F != 'B' || n1&0x80 == 0 {
		t.Errorf("EncodeName(AB$) = %c%c(%#x) want string-flagged AB", n0, n1&0x7F, n1)
	}
	if !isStr {
		t.Error("AB$ should be a string name")
	}
}

func TestSimpleNumericSetGet(t *testing.T) {
	a, _ := newArea(4096)
	v := mbf.FromInt16(42)
	if err := a.SetNumeric("X", v); err != nil {
		t.Fatal(err)
	}
	got := a.GetNumeric("X")
	if got != v {
		t.Errorf("GetNumeric(X) = %v want %v", got, v)
	}
	if got := a.GetNumeric("UNSET"); got != mbf.Zero {
		t.Errorf("GetNumeric(UNSET) = %v want Zero", got)
	}
}

func TestSimpleStringSetGet(t *testing.T) {
	a, _ := newArea(4096)
	if err := a.SetString("A$", "HELLO"); err != nil {
		t.Fatal(err)
	}
	if got := a.GetString("A$"); got != "HELLO" {
		t.Errorf("GetString(A$) = %q want HELLO", got)
	}
}

func TestVariableCreationShiftsArrays(t *testing.T) {
	a, img := newArea(4096)
	if err := a.Dim("B", []int{5}); err != nil {
		t.Fatal(err)
	}
	arrayStartBefore := img.ArrayStart

	if err := a.SetNumeric("X", mbf.FromInt16(1)); err != nil {
		t.Fatal(err)
	}
	if img.ArrayStart != arrayStartBefore.Add(recordSize) {
		t.Errorf("ArrayStart after new var = %d want %d", img.ArrayStart, arrayStartBefore.Add(recordSize))
	}

	// Array contents must have moved intact, not been clobbered.
	v, err := a.GetArrayNumeric("B", []int{3})
	if err != nil {
		t.Fatal(err)
	}
	if v != ([4]byte{}) {
		t.Errorf("array element after shift = %v want zero", v)
	}
}

func TestArrayDimAndElementAccess(t *testing.T) {
	a, _ := newArea(4096)
	if err := a.Dim("A", []int{3, 3}); err != nil {
		t.Fatal(err)
	}
	v := mbf.FromInt16(99)
	if err := a.SetArrayNumeric("A", []int{2, 1}, v); err != nil {
		t.Fatal(err)
	}
	got, err := a.GetArrayNumeric("A", []int{2, 1})
	if err != nil {
		t.Fatal(err)
	}
	if got != v {
		t.Errorf("GetArrayNumeric(A,2,1) = %v want %v", got, v)
	}
	if _, err := a.GetArrayNumeric("A", []int{4, 0}); err != ErrBadSubscript {
		t.Errorf("expected ErrBadSubscript for out-of-range index, got %v", err)
	}
}

func TestRedimFails(t *testing.T) {
	a, _ := newArea(4096)
	if err := a.Dim("A", []int{3}); err != nil {
		t.Fatal(err)
	}
	if err := a.Dim("A", []int{5}); err != ErrRedimensioned {
		t.Errorf("expected ErrRedimensioned, got %v", err)
	}
}

func TestClearResetsAllRegions(t *testing.T) {
	a, img := newArea(4096)
	a.SetNumeric("X", mbf.FromInt16(1))
	a.SetString("S$", "HI")
	a.Clear()
	if img.VarCount != 0 {
		t.Errorf("VarCount after Clear = %d want 0", img.VarCount)
	}
	if img.VarStart != img.ProgramEnd || img.ArrayStart != img.VarStart {
		t.Error("Clear did not reset var/array cursors to program_end")
	}
	if img.StringStart != img.ImageEnd {
		t.Error("Clear did not reset string pool")
	}
	if got := a.GetNumeric("X"); got != mbf.Zero {
		t.Errorf("X survived Clear: %v", got)
	}
}

func TestCompactReclaimsDeadStrings(t *testing.T) {
	a, img := newArea(64)
	// Each assignment to A$ allocates a fresh body and abandons the
	// previous one; only the latest is live.
	for i := 0; i < 20; i++ {
		if err := a.SetString("A$", "XXXXX"); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
	}
	if got := a.GetString("A$"); got != "XXXXX" {
		t.Errorf("GetString(A$) after repeated assignment+compaction = %q", got)
	}
	_ = img
}

func TestCompactPreservesRetainedRoot(t *testing.T) {
	a, _ := newArea(48)
	a.SetString("A$", "KEEPME")
	off, _, _ := a.Lookup("A$")
	_ = off

	held := Descriptor{Length: 5, Ptr: mustAlloc(t, a, "TEMP1")}
	a.Retain(&held)
	defer a.Release(&held)

	// Force compaction pressure: each iteration's allocation abandons the
	// previous one, so without reclamation this loop would run out of
	// string-pool space well before 10 iterations in a 48-byte image.
	for i := 0; i < 10; i++ {
		if err := a.SetString("B$", "FILLER"); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
	}

	body := a.img.Slice(held.Ptr, held.Ptr.Add(int(held.Length)))
	if string(body) != "TEMP1" {
		t.Errorf("retained temporary corrupted after compaction: got %q", string(body))
	}
}

func mustAlloc(t *testing.T, a *Area, s string) image.Offset {
	t.Helper()
	d, err := a.allocString([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return d.Ptr
}
