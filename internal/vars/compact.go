/*
 * Altair8K - Variable/array area compaction.
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

import "altair8k/internal/image"

// liveRef names one live descriptor's current body location and how to
// rewrite its owner once the body has been relocated.
type liveRef struct {
	length byte
	ptr    image.Offset
	write  func(newPtr image.Offset)
}

// Compact is the string-pool garbage collector: it discovers every live
// descriptor (string simple variables, string array elements, and any
// evaluator temporaries registered via Retain), copies each one's body
// into a fresh down-growing region, and rewrites every discoverable
// pointer — the only moment the store invalidates prior descriptor Ptr
// values.
func (a *Area) Compact() {
	var refs []liveRef

	base := a.img.VarStart
	for i := 0; i < a.img.VarCount; i++ {
		off := base.Add(i * recordSize)
		if a.img.ReadByte(off.Add(1))&0x80 == 0 {
			continue
		}
		valOff := off.Add(2)
		desc := decodeDescriptor(a.img.Slice(valOff, valOff.Add(4)))
		refs = append(refs, liveRef{
			length: desc.Length,
			ptr:    desc.Ptr,
			write: func(np image.Offset) {
				enc := encodeDescriptor(Descriptor{Length: desc.Length, Ptr: np})
				a.img.Write(valOff, enc[:])
			},
		})
	}

	arrEnd := int(a.img.ArrayStart)
	off := int(a.img.VarStart) + a.img.VarCount*recordSize
	for off < arrEnd {
		h1 := a.img.ReadByte(off0(off + 1))
		numDims := int(a.img.ReadByte(off0(off + 2)))
		dims := make([]int, numDims)
		for i := 0; i < numDims; i++ {
			dims[i] = int(a.img.ReadU16(off0(off + arrayHeaderFixedLen + i*2)))
		}
		dataStart := off + arrayHeaderFixedLen + numDims*2
		count := elementCount(dims)
		size := arrayHeaderFixedLen + numDims*2 + count*4

		if h1&0x80 != 0 {
			for e := 0; e < count; e++ {
				elOff := dataStart + e*4
				desc := decodeDescriptor(a.img.Slice(off0(elOff), off0(elOff+4)))
				write := elOff
				refs = append(refs, liveRef{
					length: desc.Length,
					ptr:    desc.Ptr,
					write: func(np image.Offset) {
						enc := encodeDescriptor(Descriptor{Length: desc.Length, Ptr: np})
						a.img.Write(off0(write), enc[:])
					},
				})
			}
		}
		off += size
	}

	for _, r := range a.roots {
		r := r
		refs = append(refs, liveRef{
			length: r.Length,
			ptr:    r.Ptr,
			write:  func(np image.Offset) { r.Ptr = np },
		})
	}

	// Read every live body out before writing any of them back: new
	// destinations are chosen by shrinking from image_end, and since
	// refs are visited in discovery order rather than address order, an
	// early write could otherwise clobber a later ref's still-unread
	// source bytes.
	bodies := make([][]byte, len(refs))
	for i, ref := range refs {
		body := make([]byte, ref.length)
		copy(body, a.img.Slice(ref.ptr, ref.ptr.Add(int(ref.length))))
		bodies[i] = body
	}

	newTop := a.img.ImageEnd
	for i, ref := range refs {
		newTop = newTop.Add(-int(ref.length))
		a.img.Write(newTop, bodies[i])
		ref.write(newTop)
	}
	a.img.StringStart = newTop
}
