package ot

import (
	"sort"
)

// Font represents an OpenType font as a set of tables plus a glyph order.
//
// A Font is not safe for concurrent modification. Clients building tables
// for a font should own it exclusively for the duration of the build.
type Font struct {
	Header     *FontHeader
	glyphOrder []string
	tables     map[Tag]Table
}

// FontHeader is a directory of the top-level tables in a font. If the font file
// contains only one font, the table directory will begin at byte 0 of the file.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the FontType. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// NewFont creates an empty font with a given glyph order. The glyph order
// maps glyph indices (position in the slice) to glyph names.
func NewFont(glyphOrder []string) *Font {
	order := make([]string, len(glyphOrder))
	copy(order, glyphOrder)
	return &Font{
		Header:     &FontHeader{FontType: 0x00010000},
		glyphOrder: order,
		tables:     make(map[Tag]Table),
	}
}

// GlyphOrder returns the glyph names of the font, indexed by glyph index.
// Clients should treat the slice as read-only.
func (otf *Font) GlyphOrder() []string {
	return otf.glyphOrder
}

// NumGlyphs returns the number of glyphs in the font's glyph order.
func (otf *Font) NumGlyphs() int {
	return len(otf.glyphOrder)
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
//
// Table tag names are case-sensitive, following the names in the OpenType specification.
func (otf *Font) Table(tag Tag) Table {
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// HasTable returns true if the font contains a table for tag.
func (otf *Font) HasTable(tag Tag) bool {
	_, ok := otf.tables[tag]
	return ok
}

// SetTable installs a table, replacing any table with the same tag.
func (otf *Font) SetTable(t Table) {
	if t == nil {
		return
	}
	tracer().Debugf("installing table %s", t.NameTag())
	otf.tables[t.NameTag()] = t
}

// DeleteTable removes the table for tag. It returns true if a table has been removed.
func (otf *Font) DeleteTable(tag Tag) bool {
	if _, ok := otf.tables[tag]; !ok {
		return false
	}
	tracer().Debugf("removing table %s", tag)
	delete(otf.tables, tag)
	return true
}

// TableTags returns a list of tags, one for each table contained in the font,
// in ascending order.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the various OpenType font tables.
//
// Tables read from a font file are kept in binary form and returned unchanged
// by Compile. Tables built by clients compile themselves; they may need the
// font to resolve glyph names to glyph indices.
type Table interface {
	NameTag() Tag                     // 4-letter name of the table
	Compile(otf *Font) ([]byte, error) // binary form of the table
}

// RawTable is a table kept as a segment of binary font data.
type RawTable struct {
	name   Tag        // 4-byte name as an integer
	data   binarySegm // a table is a slice of font data
	offset uint32     // from offset
	length uint32     // to offset + length
}

// NewRawTable creates a table from binary data.
func NewRawTable(tag Tag, b []byte) *RawTable {
	return newTable(tag, b, 0, uint32(len(b)))
}

func newTable(tag Tag, b binarySegm, offset, size uint32) *RawTable {
	return &RawTable{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
}

// NameTag returns the 4-letter name of a table.
func (t *RawTable) NameTag() Tag {
	return t.name
}

// Extent returns offset and byte size of this table within the OpenType font
// it has been read from.
func (t *RawTable) Extent() (uint32, uint32) {
	return t.offset, t.length
}

// Binary returns the bytes of this table. Should be treatet as read-only by
// clients, as it is a view into the original data.
func (t *RawTable) Binary() []byte {
	return t.data
}

// Compile returns the bytes of this table unchanged.
func (t *RawTable) Compile(*Font) ([]byte, error) {
	return t.data, nil
}

var _ Table = &RawTable{}
