/*
 * Altair8K - Memory image test cases.
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

package image

import "testing"

func TestNewLayout(t *testing.T) {
	img := New(1024)
	if img.ProgramStart != 0 || img.ProgramEnd != 0 {
		t.Errorf("program area not empty: start=%d end=%d", img.ProgramStart, img.ProgramEnd)
	}
	if img.VarStart != img.ProgramEnd || img.ArrayStart != img.VarStart {
		t.Errorf("var/array area not collapsed at program_end")
	}
	if img.StringStart != img.ImageEnd {
		t.Errorf("string pool not empty: start=%d end=%d", img.StringStart, img.ImageEnd)
	}
	if img.FreeSpace() != 1024 {
		t.Errorf("FreeSpace() = %d want 1024", img.FreeSpace())
	}
}

func TestByteWraparound(t *testing.T) {
	img := New(16)
	img.SetByte(20, 0xAB) // 20 mod 16 == 4
	if got := img.Byte(4); got != 0xAB {
		t.Errorf("Byte(4) = %#x want 0xab", got)
	}
	if got := img.Byte(20); got != 0xAB {
		t.Errorf("Byte(20) (wrapped) = %#x want 0xab", got)
	}
	img.SetByte(-1, 0x11) // wraps to the last byte
	if got := img.Byte(15); got != 0x11 {
		t.Errorf("Byte(15) = %#x want 0x11", got)
	}
}

func TestReadWriteU16(t *testing.T) {
	img := New(16)
	img.WriteU16(2, 0x1234)
	if got := img.ReadU16(2); got != 0x1234 {
		t.Errorf("ReadU16(2) = %#x want 0x1234", got)
	}
	if lo, hi := img.ReadByte(2), img.ReadByte(3); lo != 0x34 || hi != 0x12 {
		t.Errorf("expected little-endian bytes 0x34,0x12 got %#x,%#x", lo, hi)
	}
}

func TestCopyWithinOverlapping(t *testing.T) {
	img := New(16)
	for i := 0; i < 8; i++ {
		img.WriteByte(Offset(i), byte(i+1))
	}
	// Shift [0,8) up to [4,12): an overlapping forward copy, as insert does.
	img.CopyWithin(4, 0, 8)
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	got := img.Slice(4, 12)
	for i, b := range want {
		if got[i] != b {
			t.Fatalf("CopyWithin mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestDumpLoadRoundTrip(t *testing.T) {
	img := New(64)
	program := []byte{0, 0, 10, 0, 'A', 0}
	img.Write(img.ProgramStart, program)
	img.ProgramEnd = img.ProgramStart.Add(len(program))
	img.VarStart = img.ProgramEnd
	img.ArrayStart = img.VarStart

	dump := img.Dump()
	if len(dump) != len(program) {
		t.Fatalf("Dump() length = %d want %d", len(dump), len(program))
	}

	fresh := New(64)
	if err := fresh.Load(dump); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fresh.ProgramEnd != Offset(len(program)) {
		t.Errorf("ProgramEnd after Load = %d want %d", fresh.ProgramEnd, len(program))
	}
	if fresh.VarStart != fresh.ProgramEnd || fresh.ArrayStart != fresh.VarStart {
		t.Errorf("Load did not reset var/array cursors to program_end")
	}
	if fresh.StringStart != fresh.ImageEnd {
		t.Errorf("Load did not reset string pool")
	}
	got := fresh.Slice(fresh.ProgramStart, fresh.ProgramEnd)
	for i, b := range program {
		if got[i] != b {
			t.Fatalf("Load round trip mismatch at %d: got %v want %v", i, got, program)
		}
	}
}

func TestLoadTooLargeFails(t *testing.T) {
	img := New(8)
	if err := img.Load(make([]byte, 9)); err == nil {
		t.Error("expected Load to fail when data exceeds image size")
	}
}
