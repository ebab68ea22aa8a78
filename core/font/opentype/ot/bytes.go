package ot

import (
	"errors"
)

// Reading bytes from a font's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binarySegm is a segment of byte data.
// We use it throughout this module to navigate the font's binary data.
type binarySegm []byte

// Size returns the number of bytes of the segment.
func (b binarySegm) Size() int {
	return len(b)
}

// U16 returns the uint16 at byte index i, or 0 if out of bounds.
func (b binarySegm) U16(i int) uint16 {
	n, err := b.u16(i)
	if err != nil {
		return 0
	}
	return n
}

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n <= 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// from returns the tail of b starting at offset.
func (b binarySegm) from(offset int) (binarySegm, error) {
	if offset < 0 || offset >= len(b) {
		return nil, errBufferBounds
	}
	return b[offset:], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// --- Ranges of glyphs ------------------------------------------------------

// GlyphRange is a type frequently used by sub-tables of layout tables.
// If an input glyph g is contained in the range, and index and true is returned,
// false otherwise.
type GlyphRange interface {
	Match(g GlyphIndex) (int, bool) // is glyph ID g in range?
	Len() int                       // number of glyphs in range
	ByteSize() int
}

type glyphRangeArray struct {
	count int // number of glyph keys
	data  binarySegm
}

// glyphRangeArrays have entries stored as a block of consecutive keys.
// glyphRangeArrays return the index of the key in the range table.
// 0 is a valid return value.
func (r *glyphRangeArray) Match(g GlyphIndex) (int, bool) {
	for i := 0; i < r.count; i++ {
		k, err := r.data.u16(i * 2)
		if err != nil {
			return 0, false
		} else if GlyphIndex(k) == g {
			return i, true
		}
	}
	return 0, false
}

func (r *glyphRangeArray) Len() int {
	return r.count
}

func (r *glyphRangeArray) ByteSize() int {
	return 4 + 2*r.count // header is 4, entries are 2 bytes
}

type rangeRecord struct {
	from, to GlyphIndex
	index    uint16
}

func (r *glyphRangeRecords) record(i int) (rangeRecord, error) {
	b, err := r.data.view(i*6, 6)
	if err != nil {
		return rangeRecord{}, err
	}
	return rangeRecord{
		from:  GlyphIndex(u16(b)),
		to:    GlyphIndex(u16(b[2:])),
		index: u16(b[4:]),
	}, nil
}

type glyphRangeRecords struct {
	count int // number of range records
	data  binarySegm
}

// glyphRangeRecords have entries stored as range records.
// glyphRangeRecords return the index of the key in the range table.
// 0 is a valid return value.
func (r *glyphRangeRecords) Match(g GlyphIndex) (int, bool) {
	for i := 0; i < r.count; i++ {
		record, err := r.record(i)
		if err != nil {
			return 0, false
		}
		if record.from <= g && g <= record.to {
			return int(record.index) + int(g-record.from), true
		}
	}
	return 0, false
}

func (r *glyphRangeRecords) Len() int {
	n := 0
	for i := 0; i < r.count; i++ {
		if record, err := r.record(i); err == nil && record.to >= record.from {
			n += int(record.to-record.from) + 1
		}
	}
	return n
}

func (r *glyphRangeRecords) ByteSize() int {
	return 4 + 6*r.count // header is 4, records are 6 bytes
}
