/*
 * Altair8K - Flat memory image.
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

// Package image implements the flat byte buffer the interpreter keeps all
// of its state in: program lines, simple variables, arrays, and the
// downward-growing string pool, addressed by offsets into one owned slice.
package image

import "fmt"

// Offset is a byte index into an Image. Using a distinct type instead of a
// bare int keeps arithmetic on image addresses separate from arithmetic on
// ordinary Go slice indices and documents intent at call sites.
type Offset uint16

// Resolve returns the absolute byte index this offset names.
func (o Offset) Resolve() int { return int(o) }

// Add returns o shifted by delta bytes. delta may be negative.
func (o Offset) Add(delta int) Offset { return Offset(int(o) + delta) }

// Image is the single contiguous buffer backing program store, variable
// area, array area, and string pool. Region boundaries are cursors held
// alongside the buffer rather than sentinels inside it.
type Image struct {
	buf []byte

	ProgramStart Offset
	ProgramEnd   Offset
	VarStart     Offset
	ArrayStart   Offset
	StringStart  Offset
	ImageEnd     Offset

	VarCount int
}

// New allocates an empty image of the given size. All regions start empty:
// the program area is zero-length, variables and arrays are zero-length,
// and the string pool occupies nothing (string_start == image_end).
func New(size int) *Image {
	img := &Image{
		buf:          make([]byte, size),
		ProgramStart: 0,
		ImageEnd:     Offset(size),
	}
	img.ProgramEnd = img.ProgramStart
	img.VarStart = img.ProgramEnd
	img.ArrayStart = img.VarStart
	img.StringStart = img.ImageEnd
	return img
}

// Size reports the total capacity of the image in bytes.
func (img *Image) Size() int { return len(img.buf) }

// FreeSpace is the unallocated gap between the array area and the string
// pool; FRE(x) reports this value and program/variable/array growth is
// bounded by it.
func (img *Image) FreeSpace() int {
	return int(img.StringStart) - int(img.ArrayStart)
}

func (img *Image) checkRange(start, end int) {
	if start < 0 || end > len(img.buf) || start > end {
		panic(fmt.Sprintf("image: range [%d:%d) out of bounds (size %d)", start, end, len(img.buf)))
	}
}

// Byte reads a single byte at the given offset, wrapping modulo the image
// size per PEEK's "image[a mod image_size]" contract.
func (img *Image) Byte(a int) byte {
	size := len(img.buf)
	idx := ((a % size) + size) % size
	return img.buf[idx]
}

// SetByte writes a single byte at the given offset, wrapping modulo the
// image size per POKE's contract.
func (img *Image) SetByte(a int, v byte) {
	size := len(img.buf)
	idx := ((a % size) + size) % size
	img.buf[idx] = v
}

// ReadByte reads one byte at offset o without wraparound.
func (img *Image) ReadByte(o Offset) byte {
	img.checkRange(int(o), int(o)+1)
	return img.buf[o]
}

// WriteByte writes one byte at offset o without wraparound.
func (img *Image) WriteByte(o Offset, v byte) {
	img.checkRange(int(o), int(o)+1)
	img.buf[o] = v
}

// ReadU16 reads a little-endian word at offset o.
func (img *Image) ReadU16(o Offset) uint16 {
	img.checkRange(int(o), int(o)+2)
	return uint16(img.buf[o]) | uint16(img.buf[o+1])<<8
}

// WriteU16 writes a little-endian word at offset o.
func (img *Image) WriteU16(o Offset, v uint16) {
	img.checkRange(int(o), int(o)+2)
	img.buf[o] = byte(v)
	img.buf[o+1] = byte(v >> 8)
}

// Slice returns a view of the bytes in [start, end). The returned slice
// aliases the image's backing array; callers must not retain it across a
// mutation that may move the region it came from.
func (img *Image) Slice(start, end Offset) []byte {
	img.checkRange(int(start), int(end))
	return img.buf[start:end]
}

// Write copies data into the image starting at offset o.
func (img *Image) Write(o Offset, data []byte) {
	img.checkRange(int(o), int(o)+len(data))
	copy(img.buf[o:], data)
}

// CopyWithin block-moves the region [src, src+n) to dst. Source and
// destination may overlap; Go's copy handles that correctly regardless of
// direction. Every program-store and variable-area shift is expressed in
// terms of this one primitive so there is a single place that does raw
// memmove within the owning buffer.
func (img *Image) CopyWithin(dst, src Offset, n int) {
	img.checkRange(int(src), int(src)+n)
	img.checkRange(int(dst), int(dst)+n)
	copy(img.buf[dst:int(dst)+n], img.buf[src:int(src)+n])
}

// Dump returns the saved-program byte range [program_start, program_end),
// written verbatim.
func (img *Image) Dump() []byte {
	out := make([]byte, int(img.ProgramEnd)-int(img.ProgramStart))
	copy(out, img.buf[img.ProgramStart:img.ProgramEnd])
	return out
}

// Load replaces the program area with data, as produced by Dump, and resets
// the variable/array/string regions the way program_insert_line step 6
// does after any edit. It does not validate program-store link invariants:
// data whose links are inconsistent is loaded as is.
func (img *Image) Load(data []byte) error {
	if len(data) > int(img.ImageEnd)-int(img.ProgramStart) {
		return fmt.Errorf("image: program of %d bytes does not fit", len(data))
	}
	copy(img.buf[img.ProgramStart:], data)
	img.ProgramEnd = img.ProgramStart.Add(len(data))
	img.VarStart = img.ProgramEnd
	img.ArrayStart = img.VarStart
	img.StringStart = img.ImageEnd
	img.VarCount = 0
	return nil
}
