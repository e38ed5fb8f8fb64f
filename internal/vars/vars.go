/*
 * Altair8K - Simple variable area.
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

// Package vars implements the simple-variable, array, and string-pool
// area of the image: 6-byte variable records, string descriptors, a
// downward-growing string pool, and pool compaction.
package vars

import (
	"fmt"

	"altair8k/internal/image"
	"altair8k/internal/mbf"
)

const recordSize = 6

// ErrOutOfMemory is returned when the variable, array, or string region
// cannot grow into the free space between array_start and string_start.
var ErrOutOfMemory = fmt.Errorf("OUT OF MEMORY")

// Descriptor is a string value's location in the pool: { length,
// reserved, ptr }.
type Descriptor struct {
	Length byte
	Ptr    image.Offset
}

func encodeDescriptor(d Descriptor) [4]byte {
	return [4]byte{d.Length, 0, byte(d.Ptr), byte(d.Ptr >> 8)}
}

func decodeDescriptor(b []byte) Descriptor {
	return Descriptor{Length: b[0], Ptr: image.Offset(uint16(b[2]) | uint16(b[3])<<8)}
}

// Area wraps an *image.Image and manages the variable, array, and string
// regions. It does not own the program area; program.Store shares the
// same image.
type Area struct {
	img *image.Image

	// roots holds pointers to descriptors the evaluator is holding as
	// live temporaries (values mid-expression, not yet stored into a
	// variable or consumed). Compact must rewrite these in place too, so
	// callers register a temporary before it can trigger an allocation
	// that might compact, and unregister it once it is stored or
	// discarded.
	roots []*Descriptor
}

// New returns an Area operating on img's variable/array/string regions.
func New(img *image.Image) *Area {
	return &Area{img: img}
}

// Retain registers d as a live root for the next compaction. Callers must
// Release it once it is no longer needed.
func (a *Area) Retain(d *Descriptor) {
	a.roots = append(a.roots, d)
}

// Release unregisters a previously retained root.
func (a *Area) Release(d *Descriptor) {
	for i, r := range a.roots {
		if r == d {
			a.roots = append(a.roots[:i], a.roots[i+1:]...)
			return
		}
	}
}

// EncodeName uppercases name, truncates it to its first two alphanumeric
// characters for identity (longer names collide — documented behavior),
// and reports whether the trailing '$' marks it a string variable.
func EncodeName(name string) (n0, n1 byte, isString bool) {
	var letters [2]byte
	count := 0
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '$' {
			isString = true
			break
		}
		if count < 2 {
			letters[count] = upper(c)
			count++
		}
	}
	n0 = letters[0]
	n1 = letters[1]
	if isString {
		n1 |= 0x80
	}
	return n0, n1, isString
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Lookup scans [var_start, var_start+6*var_count) for name, returning the
// record's offset.
func (a *Area) Lookup(name string) (offset image.Offset, isString bool, found bool) {
	n0, n1, isStr := EncodeName(name)
	base := a.img.VarStart
	for i := 0; i < a.img.VarCount; i++ {
		off := base.Add(i * recordSize)
		if a.img.ReadByte(off) == n0 && a.img.ReadByte(off.Add(1)) == n1 {
			return off, isStr, true
		}
	}
	return 0, isStr, false
}

// lookupOrCreate finds name's record, creating a zero-valued one if it
// does not exist. Creating a variable may need to shift the array area up
// by 6 bytes first.
func (a *Area) lookupOrCreate(name string) (image.Offset, bool, error) {
	if off, isStr, found := a.Lookup(name); found {
		return off, isStr, nil
	}
	n0, n1, isStr := EncodeName(name)

	if int(a.img.ArrayStart)+recordSize > int(a.img.StringStart) {
		return 0, isStr, ErrOutOfMemory
	}

	newOffset := a.img.VarStart.Add(a.img.VarCount * recordSize)
	arrayLen := int(a.img.ArrayStart) - int(newOffset)
	if arrayLen > 0 {
		a.img.CopyWithin(newOffset.Add(recordSize), newOffset, arrayLen)
	}
	a.img.WriteByte(newOffset, n0)
	a.img.WriteByte(newOffset.Add(1), n1)
	a.img.WriteU16(newOffset.Add(2), 0)
	a.img.WriteU16(newOffset.Add(4), 0)

	a.img.VarCount++
	a.img.ArrayStart = a.img.ArrayStart.Add(recordSize)

	return newOffset, isStr, nil
}

// GetNumeric returns the value of a numeric simple variable, or Zero if
// it has never been assigned.
func (a *Area) GetNumeric(name string) mbf.Float {
	off, isStr, found := a.Lookup(name)
	if !found || isStr {
		return mbf.Zero
	}
	var f mbf.Float
	copy(f[:], a.img.Slice(off.Add(2), off.Add(6)))
	return f
}

// SetNumeric assigns a numeric simple variable, creating it if necessary.
func (a *Area) SetNumeric(name string, v mbf.Float) error {
	off, isStr, err := a.lookupOrCreate(name)
	if err != nil {
		return err
	}
	if isStr {
		return fmt.Errorf("vars: %s is a string variable", name)
	}
	a.img.Write(off.Add(2), v[:])
	return nil
}

// GetString returns the value of a string simple variable, or "" if it
// has never been assigned.
func (a *Area) GetString(name string) string {
	off, isStr, found := a.Lookup(name)
	if !found || !isStr {
		return ""
	}
	desc := decodeDescriptor(a.img.Slice(off.Add(2), off.Add(6)))
	return string(a.img.Slice(desc.Ptr, desc.Ptr.Add(int(desc.Length))))
}

// SetString assigns a string simple variable, creating it if necessary.
// The string body is copied into the pool immediately; string bodies are
// never mutated in place.
func (a *Area) SetString(name, value string) error {
	desc, err := a.allocString([]byte(value))
	if err != nil {
		return err
	}
	off, isStr, err := a.lookupOrCreate(name)
	if err != nil {
		return err
	}
	if !isStr {
		return fmt.Errorf("vars: %s is a numeric variable", name)
	}
	enc := encodeDescriptor(desc)
	a.img.Write(off.Add(2), enc[:])
	return nil
}

// allocString places data at string_start-len(data), moving string_start
// down by that amount, compacting the pool first if there isn't room.
func (a *Area) allocString(data []byte) (Descriptor, error) {
	if len(data) > 255 {
		data = data[:255]
	}
	need := len(data)
	if int(a.img.StringStart)-need < int(a.img.ArrayStart) {
		a.Compact()
	}
	if int(a.img.StringStart)-need < int(a.img.ArrayStart) {
		return Descriptor{}, ErrOutOfMemory
	}
	a.img.StringStart = a.img.StringStart.Add(-need)
	a.img.Write(a.img.StringStart, data)
	return Descriptor{Length: byte(need), Ptr: a.img.StringStart}, nil
}

// Clear resets the variable, array, and string regions to empty, matching
// CLEAR's semantics. The program area is untouched.
func (a *Area) Clear() {
	a.img.VarCount = 0
	a.img.VarStart = a.img.ProgramEnd
	a.img.ArrayStart = a.img.VarStart
	a.img.StringStart = a.img.ImageEnd
	a.roots = nil
}

// FreeSpace is the amount of unallocated room between the array area and
// the string pool; FRE(x) reports this directly.
func (a *Area) FreeSpace() int {
	return a.img.FreeSpace()
}
