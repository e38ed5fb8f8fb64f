/*
 * Altair8K - Program line store.
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

// Package program implements the program-line store: a linked list of
// tokenized BASIC lines threaded through the image's program area, keyed
// by ascending line number, with in-place insert/replace/delete and
// link fixup.
package program

import (
	"fmt"

	"altair8k/internal/image"
	"altair8k/internal/token"
)

// Store wraps an *image.Image and operates only on its program region
// [ProgramStart, ProgramEnd). It does not own the image; callers also use
// the same image for the variable/array/string area.
type Store struct {
	img *image.Image
}

// New returns a Store operating on img's program area.
func New(img *image.Image) *Store {
	return &Store{img: img}
}

const (
	linkFieldLen    = 2
	lineNoFieldLen  = 2
	recordHeaderLen = linkFieldLen + lineNoFieldLen
)

// record describes one line's location and size within the program area.
type record struct {
	offset  image.Offset
	link    uint16
	lineNo  uint16
	textLen int // length of tokenized text, excluding header and terminator
}

func (r record) size() int { return recordHeaderLen + r.textLen + 1 }

// readRecord reads the record header and text length (scanning for the
// 0x00 terminator) at offset o.
func (s *Store) readRecord(o image.Offset) record {
	link := s.img.ReadU16(o)
	lineNo := s.img.ReadU16(o.Add(linkFieldLen))
	textStart := o.Add(recordHeaderLen)
	n := 0
	for s.img.ReadByte(textStart.Add(n)) != 0 {
		n++
	}
	return record{offset: o, link: link, lineNo: lineNo, textLen: n}
}

// ErrOutOfMemory is returned when an insert/replace would grow the
// program area beyond the free space available before the array area.
var ErrOutOfMemory = fmt.Errorf("OUT OF MEMORY")

// Lookup returns the record for lineNo and its predecessor's offset (0 if
// lineNo is the first line), or ok == false if no such line exists.
func (s *Store) Lookup(lineNo uint16) (rec record, predOffset image.Offset, havePred bool, ok bool) {
	cur := s.img.ProgramStart
	var pred image.Offset
	havePred = false
	for cur != s.img.ProgramEnd {
		r := s.readRecord(cur)
		if r.lineNo == lineNo {
			return r, pred, havePred, true
		}
		if r.lineNo > lineNo {
			return record{}, 0, false, false
		}
		pred = cur
		havePred = true
		cur = cur.Add(r.size())
	}
	return record{}, 0, false, false
}

// FirstLine returns the offset of the first record, or false if the
// program area is empty.
func (s *Store) FirstLine() (image.Offset, bool) {
	if s.img.ProgramStart == s.img.ProgramEnd {
		return 0, false
	}
	return s.img.ProgramStart, true
}

// NextLineAfter returns the offset of the record following the one at o,
// or false if o's record is the last.
func (s *Store) NextLineAfter(o image.Offset) (image.Offset, bool) {
	r := s.readRecord(o)
	if r.link == 0 {
		return 0, false
	}
	return image.Offset(r.link), true
}

// LineNoAt returns the line number stored at record offset o.
func (s *Store) LineNoAt(o image.Offset) uint16 {
	return s.readRecord(o).lineNo
}

// TextAt returns the tokenized text (without header or terminator) stored
// at record offset o.
func (s *Store) TextAt(o image.Offset) []byte {
	r := s.readRecord(o)
	start := o.Add(recordHeaderLen)
	return s.img.Slice(start, start.Add(r.textLen))
}

// fixLinksAfterDelete subtracts deletedSize from every link field greater
// than deletedOffset, since the bytes above deletedOffset moved down by
// deletedSize.
func (s *Store) fixLinksAfterDelete(deletedOffset image.Offset, deletedSize int) {
	cur := s.img.ProgramStart
	for cur != s.img.ProgramEnd {
		r := s.readRecord(cur)
		if r.link != 0 && image.Offset(r.link) > deletedOffset {
			s.img.WriteU16(cur, r.link-uint16(deletedSize))
		}
		cur = cur.Add(r.size())
	}
}

// fixLinksAfterInsert adds insertedSize to every link whose target is at
// or above insertionOffset, in records on both sides of the insertion
// point, since the bytes at or above insertionOffset move up by
// insertedSize. It must run before the tail is moved and the new record is
// written, while link fields still describe the pre-insert layout.
func (s *Store) fixLinksAfterInsert(insertionOffset image.Offset, insertedSize int) {
	cur := s.img.ProgramStart
	for cur != s.img.ProgramEnd {
		r := s.readRecord(cur)
		if r.link != 0 && image.Offset(r.link) >= insertionOffset {
			s.img.WriteU16(cur, r.link+uint16(insertedSize))
		}
		cur = cur.Add(r.size())
	}
}

// Upsert inserts, replaces, or deletes the line lineNo.
// text == nil (or len(text) == 0 with delete semantics) deletes the line.
// On success it returns true if the line previously existed.
func (s *Store) Upsert(lineNo uint16, text []byte) (existed bool, err error) {
	// token.Tokenize's own output already ends with a 0x00 terminator;
	// the record format's trailing terminator and that byte are the same
	// byte, so strip it here and let insertRecord write exactly one.
	if n := len(text); n > 0 && text[n-1] == 0 {
		text = text[:n-1]
	}

	oldRec, predOffset, havePred, found := s.Lookup(lineNo)

	newSize := 0
	if len(text) > 0 {
		newSize = recordHeaderLen + len(text) + 1
	}
	oldSize := 0
	if found {
		oldSize = oldRec.size()
	}

	delta := newSize - oldSize
	if delta > 0 && delta > s.img.FreeSpace() {
		return found, ErrOutOfMemory
	}

	if found {
		s.deleteRecord(oldRec, predOffset, havePred)
	}

	if newSize > 0 {
		insertionOffset := s.findInsertionPoint(lineNo)
		s.insertRecord(insertionOffset, lineNo, text)
	}

	s.img.VarStart = s.img.ProgramEnd
	s.img.ArrayStart = s.img.VarStart
	s.img.VarCount = 0

	return found, nil
}

// deleteRecord removes rec from the program area: the tail above it is
// block-moved down by rec's size, program_end shrinks, and every link
// greater than rec's offset is adjusted. The predecessor (if any) is
// pointed at rec's former successor.
func (s *Store) deleteRecord(rec record, predOffset image.Offset, havePred bool) {
	size := rec.size()
	tailStart := rec.offset.Add(size)
	tailLen := int(s.img.ProgramEnd) - tailStart.Resolve()

	if havePred {
		s.img.WriteU16(predOffset, rec.link)
	}

	if tailLen > 0 {
		s.img.CopyWithin(rec.offset, tailStart, tailLen)
	}
	s.img.ProgramEnd = s.img.ProgramEnd.Add(-size)

	s.fixLinksAfterDelete(rec.offset, size)
}

// findInsertionPoint scans for the first record with a greater line
// number, returning its offset, or program_end if lineNo sorts last.
func (s *Store) findInsertionPoint(lineNo uint16) image.Offset {
	cur := s.img.ProgramStart
	for cur != s.img.ProgramEnd {
		r := s.readRecord(cur)
		if r.lineNo > lineNo {
			return cur
		}
		cur = cur.Add(r.size())
	}
	return s.img.ProgramEnd
}

// insertRecord block-moves the tail at insertionOffset up by the new
// record's size, fixes every link at or above insertionOffset, writes the
// new record, and points its predecessor (if any) at it.
func (s *Store) insertRecord(insertionOffset image.Offset, lineNo uint16, text []byte) {
	size := recordHeaderLen + len(text) + 1
	tailLen := int(s.img.ProgramEnd) - insertionOffset.Resolve()

	s.fixLinksAfterInsert(insertionOffset, size)

	if tailLen > 0 {
		s.img.CopyWithin(insertionOffset.Add(size), insertionOffset, tailLen)
	}
	s.img.ProgramEnd = s.img.ProgramEnd.Add(size)

	linkToNext := uint16(0)
	if tailLen > 0 {
		linkToNext = uint16(insertionOffset.Add(size))
	}

	s.img.WriteU16(insertionOffset, linkToNext)
	s.img.WriteU16(insertionOffset.Add(linkFieldLen), lineNo)
	s.img.Write(insertionOffset.Add(recordHeaderLen), text)
	s.img.WriteByte(insertionOffset.Add(recordHeaderLen+len(text)), 0)

	if insertionOffset != s.img.ProgramStart {
		pred, _, havePred, _ := s.findPredecessor(insertionOffset)
		if havePred {
			s.img.WriteU16(pred, uint16(insertionOffset))
		}
	}
}

// findPredecessor returns the offset of the record immediately preceding
// target, scanning from program_start.
func (s *Store) findPredecessor(target image.Offset) (image.Offset, record, bool, bool) {
	cur := s.img.ProgramStart
	var prev image.Offset
	havePrev := false
	for cur != s.img.ProgramEnd {
		if cur == target {
			return prev, record{}, havePrev, havePrev
		}
		prev = cur
		havePrev = true
		cur = cur.Add(s.readRecord(cur).size())
	}
	return prev, record{}, havePrev, havePrev
}

// List detokenizes every line with lineNo in [start, end], one per
// element, each without a trailing newline (callers add formatting).
func (s *Store) List(start, end uint16) []string {
	var out []string
	cur, ok := s.FirstLine()
	for ok {
		lineNo := s.LineNoAt(cur)
		if lineNo >= start && lineNo <= end {
			text := token.Detokenize(s.TextAt(cur))
			out = append(out, fmt.Sprintf("%d %s", lineNo, text))
		}
		cur, ok = s.NextLineAfter(cur)
	}
	return out
}

// GetLine returns the detokenized text of lineNo, or ok == false if no
// such line exists. This is the program_get_line contract.
func (s *Store) GetLine(lineNo uint16) (text string, ok bool) {
	rec, _, _, found := s.Lookup(lineNo)
	if !found {
		return "", false
	}
	return string(token.Detokenize(s.TextAt(rec.offset))), true
}

// Clear empties the program area entirely (NEW).
func (s *Store) Clear() {
	s.img.ProgramEnd = s.img.ProgramStart
	s.img.VarStart = s.img.ProgramEnd
	s.img.ArrayStart = s.img.VarStart
	s.img.VarCount = 0
}
