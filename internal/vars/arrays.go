/*
 * Altair8K - Array variable area.
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
	"fmt"

	"altair8k/internal/image"
)

func off0(n int) image.Offset { return image.Offset(n) }

// Array record layout (a design choice; arrays belong in the image but
// their internal format is not fixed beyond "the
// array area"):
//
//	byte 0    name[0]
//	byte 1    name[1] (bit 7 = string element type, as for simple vars)
//	byte 2    dimension count d
//	byte 3    reserved
//	bytes 4.. d * u16 LE upper bounds (each dimension is 0..bound inclusive)
//	then      product(bound_i+1) elements, 4 bytes each (raw MBF, or a
//	          string descriptor — the same 4-byte shapes used by simple
//	          variables, so one stride serves both element kinds)
const arrayHeaderFixedLen = 4

// ErrBadSubscript is returned when a subscript falls outside an array's
// declared bounds.
var ErrBadSubscript = fmt.Errorf("BAD SUBSCRIPT")

// ErrRedimensioned is returned when Dim is called twice for the same name
// without an intervening Clear.
var ErrRedimensioned = fmt.Errorf("REDIMENSIONED ARRAY")

type arrayInfo struct {
	headerOffset int // relative to array area start
	dims         []int
	isString     bool
}

// findArray scans the array region for name, returning its layout.
func (a *Area) findArray(name string) (arrayInfo, bool) {
	n0, n1, isStr := EncodeName(name)
	base := int(a.img.VarStart) + a.img.VarCount*recordSize
	end := int(a.img.ArrayStart)
	off := base
	for off < end {
		h0 := a.img.ReadByte(off0(off))
		h1 := a.img.ReadByte(off0(off + 1))
		numDims := int(a.img.ReadByte(off0(off + 2)))
		dims := make([]int, numDims)
		for i := 0; i < numDims; i++ {
			dims[i] = int(a.img.ReadU16(off0(off + arrayHeaderFixedLen + i*2)))
		}
		size := arrayHeaderFixedLen + numDims*2 + elementCount(dims)*4
		if h0 == n0 && h1 == n1 {
			return arrayInfo{headerOffset: off, dims: dims, isString: isStr}, true
		}
		off += size
	}
	return arrayInfo{}, false
}

func elementCount(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d + 1
	}
	return n
}

// Dim creates an array with the given upper bounds (inclusive; a BASIC
// "DIM A(10)" array has 11 elements, indices 0..10).
func (a *Area) Dim(name string, bounds []int) error {
	if _, found := a.findArray(name); found {
		return ErrRedimensioned
	}
	n0, n1, _ := EncodeName(name)
	size := arrayHeaderFixedLen + len(bounds)*2 + elementCount(bounds)*4
	if size > a.FreeSpace() {
		return ErrOutOfMemory
	}

	headerOffset := int(a.img.ArrayStart)
	a.img.WriteByte(off0(headerOffset), n0)
	a.img.WriteByte(off0(headerOffset+1), n1)
	a.img.WriteByte(off0(headerOffset+2), byte(len(bounds)))
	a.img.WriteByte(off0(headerOffset+3), 0)
	for i, b := range bounds {
		a.img.WriteU16(off0(headerOffset+arrayHeaderFixedLen+i*2), uint16(b))
	}
	dataStart := headerOffset + arrayHeaderFixedLen + len(bounds)*2
	for i := 0; i < elementCount(bounds)*4; i++ {
		a.img.WriteByte(off0(dataStart+i), 0)
	}

	a.img.ArrayStart = a.img.ArrayStart.Add(size)
	return nil
}

func (a *Area) elementOffset(info arrayInfo, subs []int) (int, error) {
	if len(subs) != len(info.dims) {
		return 0, ErrBadSubscript
	}
	idx := 0
	for i, s := range subs {
		if s < 0 || s > info.dims[i] {
			return 0, ErrBadSubscript
		}
		idx = idx*(info.dims[i]+1) + s
	}
	dataStart := info.headerOffset + arrayHeaderFixedLen + len(info.dims)*2
	return dataStart + idx*4, nil
}

// GetArrayNumeric reads a numeric array element, auto-DIMensioning a
// default 11-element-per-subscript array on first use if it does not yet
// exist (the classic implicit-DIM behavior).
func (a *Area) GetArrayNumeric(name string, subs []int) ([4]byte, error) {
	info, found := a.findArray(name)
	if !found {
		if err := a.Dim(name, defaultBounds(len(subs))); err != nil {
			return [4]byte{}, err
		}
		info, _ = a.findArray(name)
	}
	off, err := a.elementOffset(info, subs)
	if err != nil {
		return [4]byte{}, err
	}
	var v [4]byte
	copy(v[:], a.img.Slice(off0(off), off0(off+4)))
	return v, nil
}

// SetArrayNumeric writes a numeric array element, auto-DIMensioning as
// GetArrayNumeric does.
func (a *Area) SetArrayNumeric(name string, subs []int, v [4]byte) error {
	info, found := a.findArray(name)
	if !found {
		if err := a.Dim(name, defaultBounds(len(subs))); err != nil {
			return err
		}
		info, _ = a.findArray(name)
	}
	off, err := a.elementOffset(info, subs)
	if err != nil {
		return err
	}
	a.img.Write(off0(off), v[:])
	return nil
}

// GetArrayString reads a string array element.
func (a *Area) GetArrayString(name string, subs []int) (string, error) {
	info, found := a.findArray(name)
	if !found {
		if err := a.Dim(name, defaultBounds(len(subs))); err != nil {
			return "", err
		}
		info, _ = a.findArray(name)
	}
	off, err := a.elementOffset(info, subs)
	if err != nil {
		return "", err
	}
	desc := decodeDescriptor(a.img.Slice(off0(off), off0(off+4)))
	if desc.Length == 0 {
		return "", nil
	}
	return string(a.img.Slice(desc.Ptr, desc.Ptr.Add(int(desc.Length)))), nil
}

// SetArrayString writes a string array element, allocating its body in
// the string pool.
func (a *Area) SetArrayString(name string, subs []int, value string) error {
	desc, err := a.allocString([]byte(value))
	if err != nil {
		return err
	}
	info, found := a.findArray(name)
	if !found {
		if err := a.Dim(name, defaultBounds(len(subs))); err != nil {
			return err
		}
		info, _ = a.findArray(name)
	}
	off, err := a.elementOffset(info, subs)
	if err != nil {
		return err
	}
	enc := encodeDescriptor(desc)
	a.img.Write(off0(off), enc[:])
	return nil
}

func defaultBounds(numSubs int) []int {
	bounds := make([]int, numSubs)
	for i := range bounds {
		bounds[i] = 10
	}
	return bounds
}
