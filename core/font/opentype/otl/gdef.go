package otl

import (
	"encoding/binary"

	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
)

// GDEF table versions.
const (
	GDefVersionBase     uint32 = 0x00010000 // version 1.0
	GDefVersionExtended uint32 = 0x00010002 // version 1.2, adds MarkGlyphSetsDef
)

// GDefTable is a Glyph Definition table under construction. Sub-tables are
// optional; nil denotes an absent sub-table.
type GDefTable struct {
	Version            uint32
	GlyphClassDef      *ClassDef
	AttachList         *AttachList
	LigCaretList       *LigCaretList
	MarkAttachClassDef *ClassDef
	MarkGlyphSetsDef   *MarkGlyphSetsDef
}

// IsEmpty returns true if no sub-table is present.
func (t *GDefTable) IsEmpty() bool {
	return t.GlyphClassDef == nil && t.AttachList == nil && t.LigCaretList == nil &&
		t.MarkAttachClassDef == nil && t.MarkGlyphSetsDef == nil
}

// NameTag returns 'GDEF'.
func (t *GDefTable) NameTag() ot.Tag {
	return ot.T("GDEF")
}

// Compile encodes the table in binary form. Class definitions are resolved
// against the glyph order of otf.
//
// The header of version 1.0 has 12 bytes, version 1.2 adds an offset to the
// mark glyph sets. Sub-tables follow the header in the order of the header
// offsets.
func (t *GDefTable) Compile(otf *ot.Font) ([]byte, error) {
	glyphs := NewGlyphMap(otf.GlyphOrder())
	headerSize := 12
	if t.Version >= GDefVersionExtended {
		headerSize = 14
	} else if t.MarkGlyphSetsDef != nil {
		return nil, errValue("GDEF version 0x%08x cannot hold mark glyph sets", t.Version)
	}
	b := make([]byte, headerSize)
	binary.BigEndian.PutUint32(b, t.Version)
	sections := []struct {
		name    string
		at      int
		present bool
		compile func() ([]byte, error)
	}{
		{ot.GDefGlyphClassDefSection, 4, t.GlyphClassDef != nil, func() ([]byte, error) {
			return t.GlyphClassDef.compile(glyphs)
		}},
		{ot.GDefAttachListSection, 6, t.AttachList != nil, func() ([]byte, error) {
			return t.AttachList.compile()
		}},
		{ot.GDefLigCaretListSection, 8, t.LigCaretList != nil, func() ([]byte, error) {
			return t.LigCaretList.compile()
		}},
		{ot.GDefMarkAttachClassSection, 10, t.MarkAttachClassDef != nil, func() ([]byte, error) {
			return t.MarkAttachClassDef.compile(glyphs)
		}},
		{ot.GDefMarkGlyphSetsDefSection, 12, t.MarkGlyphSetsDef != nil, func() ([]byte, error) {
			return t.MarkGlyphSetsDef.compile()
		}},
	}
	for _, sect := range sections {
		if !sect.present {
			continue
		}
		data, err := sect.compile()
		if err != nil {
			return nil, err
		}
		if err := putOffset16(b, sect.at, len(b), sect.name); err != nil {
			return nil, err
		}
		b = append(b, data...)
		tracer().Debugf("GDEF section %s has %d bytes", sect.name, len(data))
	}
	return b, nil
}

var _ ot.Table = &GDefTable{}
