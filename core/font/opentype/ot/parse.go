package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// Code comment often will cite passage from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Parse parses an OpenType font from a byte slice.
// Every table of the font is kept as a RawTable, which is a view into font.
// Its elements are assumed immutable while the ot.Font remains in use.
//
// The glyph order is taken from the font's glyph names. Glyphs without a name
// are named after their glyph index, e.g. "glyph00042".
func Parse(font []byte) (*Font, error) {
	otf, err := parseTableDirectory(font)
	if err != nil {
		return nil, err
	}
	sf, err := sfnt.Parse(font)
	if err != nil {
		return nil, errFontFormat(err.Error())
	}
	if otf.glyphOrder, err = glyphNames(sf); err != nil {
		return nil, err
	}
	tracer().Debugf("font has %d tables and %d glyphs", len(otf.tables), len(otf.glyphOrder))
	return otf, nil
}

func parseTableDirectory(font []byte) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, errFontFormat("font header")
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())
	if !(h.FontType == 0x4f54544f || // OTTO
		h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // true
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.FontType))
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table)}
	src := binarySegm(font)
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	buf, err := src.view(12, 16*int(h.TableCount))
	if err != nil {
		return nil, errFontFormat("table record entries")
	}
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		if tag < prevTag {
			return nil, errFontFormat("table order")
		}
		prevTag = tag
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			return nil, errFontFormat("invalid table offset")
		}
		if uint64(off)+uint64(size) > uint64(len(font)) {
			return nil, errFontFormat("table " + tag.String() + " exceeds font data")
		}
		otf.tables[tag] = newTable(tag, src[off:off+size], off, size)
	}
	return otf, nil
}

// glyphNames collects the glyph order of a font. Duplicate names are made
// unique by appending "#n".
func glyphNames(sf *sfnt.Font) ([]string, error) {
	n := sf.NumGlyphs()
	names := make([]string, n)
	seen := make(map[string]int, n)
	var buf sfnt.Buffer
	for i := 0; i < n; i++ {
		name, err := sf.GlyphName(&buf, sfnt.GlyphIndex(i))
		if err != nil {
			return nil, errFontFormat(fmt.Sprintf("glyph name of glyph %d: %v", i, err))
		}
		if name == "" {
			if i == 0 {
				name = ".notdef"
			} else {
				name = fmt.Sprintf("glyph%05d", i)
			}
		}
		if k, dup := seen[name]; dup {
			seen[name] = k + 1
			name = fmt.Sprintf("%s#%d", name, k+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names, nil
}
