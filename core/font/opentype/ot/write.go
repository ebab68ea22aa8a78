package ot

import (
	"encoding/binary"
	"fmt"
)

// Binary compiles every table of the font and assembles them to an SFNT
// font file: offset table, table records sorted by tag, and table data padded
// to 4-byte boundaries.
//
// Table checksums are calculated and, if the font contains a 'head' table,
// its checkSumAdjustment field is updated for the whole font.
func (otf *Font) Binary() ([]byte, error) {
	tags := otf.TableTags()
	n := len(tags)
	if n == 0 {
		return nil, errFontFormat("font contains no tables")
	}
	if n > 0xffff {
		return nil, errFontFormat("too many tables")
	}
	fontType := uint32(0x00010000)
	if otf.Header != nil && otf.Header.FontType != 0 {
		fontType = otf.Header.FontType
	}
	searchRange, entrySelector := 1, 0
	for searchRange*2 <= n {
		searchRange *= 2
		entrySelector++
	}
	headerSize := 12 + 16*n
	out := make([]byte, headerSize, headerSize+1024)
	binary.BigEndian.PutUint32(out[0:], fontType)
	binary.BigEndian.PutUint16(out[4:], uint16(n))
	binary.BigEndian.PutUint16(out[6:], uint16(searchRange*16))
	binary.BigEndian.PutUint16(out[8:], uint16(entrySelector))
	binary.BigEndian.PutUint16(out[10:], uint16(n*16-searchRange*16))
	headOffset := -1
	for i, tag := range tags {
		data, err := otf.tables[tag].Compile(otf)
		if err != nil {
			return nil, fmt.Errorf("compiling table %s: %w", tag, err)
		}
		if tag == T("head") {
			if len(data) < 12 {
				return nil, errFontFormat("head table too short")
			}
			data = append([]byte(nil), data...)
			binary.BigEndian.PutUint32(data[8:], 0) // checkSumAdjustment
			headOffset = len(out)
		}
		rec := out[12+16*i:]
		binary.BigEndian.PutUint32(rec[0:], uint32(tag))
		binary.BigEndian.PutUint32(rec[4:], checksum(data))
		binary.BigEndian.PutUint32(rec[8:], uint32(len(out)))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(data)))
		out = append(out, data...)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
		tracer().Debugf("wrote table %s with %d bytes", tag, len(data))
	}
	if headOffset >= 0 {
		adjustment := 0xB1B0AFBA - checksum(out)
		binary.BigEndian.PutUint32(out[headOffset+8:], adjustment)
	}
	return out, nil
}

// checksum is the OpenType table checksum: the sum of all uint32 words of
// the data, with the data zero-padded to a multiple of 4 bytes.
func checksum(b []byte) uint32 {
	var sum uint32
	for i := 0; i < len(b); i += 4 {
		var word [4]byte
		copy(word[:], b[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}
