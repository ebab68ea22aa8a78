package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// --- GDEF table ------------------------------------------------------------

// GDefTable, the Glyph Definition (GDEF) table, provides various glyph properties
// used in OpenType Layout processing.
//
// Sub-tables which are not present in the binary data are left empty:
// class lookups return 0, point lookups return nil.
//
// See also
// https://docs.microsoft.com/en-us/typography/opentype/spec/gdef
type GDefTable struct {
	header                 GDefHeader
	GlyphClassDef          ClassDefinitions
	AttachmentPointList    AttachmentPointList
	LigatureCaretList      LigatureCaretList
	MarkAttachmentClassDef ClassDefinitions
	MarkGlyphSets          []GlyphRange
}

// Header returns the Glyph Definition header for t.
func (t *GDefTable) Header() GDefHeader {
	return t.header
}

// GDefHeader contains general information for a Glyph Definition table (GDEF).
type GDefHeader struct {
	gDefHeader
}

// Version returns major and minor version numbers for this GDef table.
func (h GDefHeader) Version() (int, int) {
	return int(h.Major), int(h.Minor)
}

// versionHeader is the beginning of on-disk format of some format headers.
// Fields are public for reflection-access.
type versionHeader struct {
	Major uint16
	Minor uint16
}

// gDefHeader starts with a version number. Three versions are defined:
// 1.0, 1.2 and 1.3.
type gDefHeader struct {
	gDefHeaderV1_0
	MarkGlyphSetsDefOffset uint16
	ItemVarStoreOffset     uint32
	headerSize             uint8 // header size in bytes
}

type gDefHeaderV1_0 struct {
	versionHeader
	GlyphClassDefOffset      uint16
	AttachListOffset         uint16
	LigCaretListOffset       uint16
	MarkAttachClassDefOffset uint16
}

// Sections of a GDEF table.
const (
	GDefGlyphClassDefSection    = "GlyphClassDef"
	GDefAttachListSection       = "AttachList"
	GDefLigCaretListSection     = "LigCaretList"
	GDefMarkAttachClassSection  = "MarkAttachClassDef"
	GDefMarkGlyphSetsDefSection = "MarkGlyphSetsDef"
	GDefItemVarStoreSection     = "ItemVarStore"
)

// offsetFor returns an offset for a table section within the GDEF table.
// A GDEF table contains six sections:
// ▪︎ glyph class definitions,
// ▪︎ attachment list definitions,
// ▪︎ ligature carets lists,
// ▪︎ mark attachment class definitions,
// ▪︎ mark glyph sets definitions,
// ▪︎ item variant section.
// An offset of 0 denotes an absent section.
func (h GDefHeader) offsetFor(which string) int {
	switch which {
	case GDefGlyphClassDefSection:
		return int(h.GlyphClassDefOffset)
	case GDefAttachListSection:
		return int(h.AttachListOffset)
	case GDefLigCaretListSection:
		return int(h.LigCaretListOffset)
	case GDefMarkAttachClassSection:
		return int(h.MarkAttachClassDefOffset)
	case GDefMarkGlyphSetsDefSection:
		return int(h.MarkGlyphSetsDefOffset)
	case GDefItemVarStoreSection:
		return int(h.ItemVarStoreOffset)
	}
	tracer().Errorf("illegal section offset type into GDEF table: %s", which)
	return 0 // illegal call, nothing sensible to return
}

// ParseGDef reads a binary GDEF table.
func ParseGDef(data []byte) (*GDefTable, error) {
	var err error
	b := binarySegm(data)
	gdef := &GDefTable{}
	err = parseGDefHeader(gdef, b, err)
	err = parseGlyphClassDefinitions(gdef, b, err)
	err = parseAttachmentPointList(gdef, b, err)
	err = parseLigatureCaretList(gdef, b, err)
	err = parseMarkAttachmentClassDef(gdef, b, err)
	err = parseMarkGlyphSets(gdef, b, err)
	if err != nil {
		tracer().Errorf("error parsing GDEF table: %v", err)
		return gdef, err
	}
	mj, mn := gdef.Header().Version()
	tracer().Debugf("GDEF table has version %d.%d", mj, mn)
	return gdef, nil
}

// The GDEF table begins with a header that starts with a version number. Three
// versions are defined. Version 1.0 contains an offset to a Glyph Class Definition
// table (GlyphClassDef), an offset to an Attachment List table (AttachList), an offset
// to a Ligature Caret List table (LigCaretList), and an offset to a Mark Attachment
// Class Definition table (MarkAttachClassDef). Version 1.2 also includes an offset to
// a Mark Glyph Sets Definition table (MarkGlyphSetsDef). Version 1.3 also includes an
// offset to an Item Variation Store table.
func parseGDefHeader(gdef *GDefTable, b binarySegm, err error) error {
	if err != nil {
		return err
	}
	h := GDefHeader{}
	r := bytes.NewReader(b)
	if err = binary.Read(r, binary.BigEndian, &h.gDefHeaderV1_0); err != nil {
		return errFontFormat("GDEF header too short")
	}
	if h.Major != 1 {
		return errFontFormat(fmt.Sprintf("unsupported GDEF version %d.%d", h.Major, h.Minor))
	}
	headerlen := 12
	if h.versionHeader.Minor >= 2 {
		if h.MarkGlyphSetsDefOffset, err = b.u16(headerlen); err != nil {
			return errFontFormat("GDEF header too short")
		}
		headerlen += 2
	}
	if h.versionHeader.Minor >= 3 {
		if h.ItemVarStoreOffset, err = b.u32(headerlen); err != nil {
			return errFontFormat("GDEF header too short")
		}
		headerlen += 4
	}
	gdef.header = h
	gdef.header.headerSize = uint8(headerlen)
	return nil
}

// section returns the bytes of a GDEF section, or nil if the section is absent.
func (t *GDefTable) section(b binarySegm, which string) (binarySegm, error) {
	offset := t.Header().offsetFor(which)
	if offset == 0 {
		return nil, nil
	}
	sect, err := b.from(offset)
	if err != nil {
		return nil, errFontFormat(which + " offset out of bounds")
	}
	return sect, nil
}

// This table uses the same format as the Class Definition table (defined in the
// OpenType Layout Common Table Formats chapter).
func parseGlyphClassDefinitions(gdef *GDefTable, b binarySegm, err error) error {
	if err != nil {
		return err
	}
	sect, err := gdef.section(b, GDefGlyphClassDefSection)
	if err != nil || sect == nil {
		return err
	}
	gdef.GlyphClassDef, err = parseClassDefinitions(sect)
	return err
}

/*
AttachList:
Type      Name                            Description
---------+-------------------------------+-----------------------
Offset16  coverageOffset                  Offset to Coverage table - from beginning of AttachList table
uint16    glyphCount                      Number of glyphs with attachment points
Offset16  attachPointOffsets[glyphCount]  Array of offsets to AttachPoint tables-from beginning of

	AttachList table-in Coverage Index order
*/
func parseAttachmentPointList(gdef *GDefTable, b binarySegm, err error) error {
	if err != nil {
		return err
	}
	sect, err := gdef.section(b, GDefAttachListSection)
	if err != nil || sect == nil {
		return err
	}
	count, err := sect.u16(2)
	if err != nil {
		return errFontFormat("GDEF has corrupt attachment point list")
	}
	if count == 0 {
		return nil // no entries
	}
	coverage, err := parseCoverageAt(sect, int(sect.U16(0)))
	if err != nil {
		return errFontFormat("GDEF attachment point coverage table unreadable")
	}
	gdef.AttachmentPointList = AttachmentPointList{
		Count:    int(count),
		Coverage: coverage.GlyphRange,
		base:     sect,
	}
	return nil
}

// LigCaretList has the same structure as AttachList, with offsets leading to
// LigGlyph tables. Each LigGlyph table holds offsets to CaretValue tables.
func parseLigatureCaretList(gdef *GDefTable, b binarySegm, err error) error {
	if err != nil {
		return err
	}
	sect, err := gdef.section(b, GDefLigCaretListSection)
	if err != nil || sect == nil {
		return err
	}
	count, err := sect.u16(2)
	if err != nil {
		return errFontFormat("GDEF has corrupt ligature caret list")
	}
	if count == 0 {
		return nil
	}
	coverage, err := parseCoverageAt(sect, int(sect.U16(0)))
	if err != nil {
		return errFontFormat("GDEF ligature caret coverage table unreadable")
	}
	gdef.LigatureCaretList = LigatureCaretList{
		Count:    int(count),
		Coverage: coverage.GlyphRange,
		base:     sect,
	}
	return nil
}

// A Mark Attachment Class Definition Table defines the class to which a mark glyph may
// belong. This table uses the same format as the Class Definition table.
func parseMarkAttachmentClassDef(gdef *GDefTable, b binarySegm, err error) error {
	if err != nil {
		return err
	}
	sect, err := gdef.section(b, GDefMarkAttachClassSection)
	if err != nil || sect == nil {
		return err
	}
	gdef.MarkAttachmentClassDef, err = parseClassDefinitions(sect)
	return err
}

// Mark glyph sets are defined in a MarkGlyphSets table, which contains offsets to
// individual sets each represented by a standard Coverage table.
//
//	uint16    format                               Format identifier == 1
//	uint16    markGlyphSetCount                    Number of mark glyph sets defined
//	Offset32  coverageOffsets[markGlyphSetCount]   from beginning of MarkGlyphSets table
func parseMarkGlyphSets(gdef *GDefTable, b binarySegm, err error) error {
	if err != nil {
		return err
	}
	sect, err := gdef.section(b, GDefMarkGlyphSetsDefSection)
	if err != nil || sect == nil {
		return err
	}
	if format := sect.U16(0); format != 1 {
		return errFontFormat(fmt.Sprintf("unknown MarkGlyphSets format %d", format))
	}
	count := sect.U16(2)
	for i := 0; i < int(count); i++ {
		covOffset, err := sect.u32(4 + i*4)
		if err != nil {
			return errFontFormat("GDEF mark glyph sets table truncated")
		}
		coverage, err := parseCoverageAt(sect, int(covOffset))
		if err != nil {
			return errFontFormat("GDEF mark glyph set coverage table unreadable")
		}
		gdef.MarkGlyphSets = append(gdef.MarkGlyphSets, coverage.GlyphRange)
	}
	return nil
}

// --- Attachment points and carets ------------------------------------------

// AttachmentPointList contains a list of glyphs with attachment points
// (contour point indices), indexed by coverage.
type AttachmentPointList struct {
	Count    int
	Coverage GlyphRange
	base     binarySegm
}

// AttachPoints returns the contour point indices for glyph g, or nil.
func (l AttachmentPointList) AttachPoints(g GlyphIndex) []uint16 {
	inx, ok := coverageIndex(l.Coverage, l.Count, g)
	if !ok {
		return nil
	}
	off, err := l.base.u16(4 + inx*2)
	if err != nil {
		return nil
	}
	n, err := l.base.u16(int(off))
	if err != nil {
		return nil
	}
	points := make([]uint16, 0, n)
	for i := 0; i < int(n); i++ {
		p, err := l.base.u16(int(off) + 2 + i*2)
		if err != nil {
			return nil
		}
		points = append(points, p)
	}
	return points
}

func coverageIndex(cov GlyphRange, count int, g GlyphIndex) (int, bool) {
	if cov == nil {
		return 0, false
	}
	inx, ok := cov.Match(g)
	if !ok || inx >= count {
		return 0, false
	}
	return inx, true
}

// CaretValue is a ligature caret, either as a coordinate (format 1 and 3)
// or as a contour point index (format 2).
type CaretValue struct {
	Format     uint16
	Coordinate int16
	PointIndex uint16
}

// LigatureCaretList contains ligature glyphs with carets, indexed by coverage.
type LigatureCaretList struct {
	Count    int
	Coverage GlyphRange
	base     binarySegm
}

// Carets returns the caret values for ligature glyph g, or nil.
func (l LigatureCaretList) Carets(g GlyphIndex) []CaretValue {
	inx, ok := coverageIndex(l.Coverage, l.Count, g)
	if !ok {
		return nil
	}
	ligOff, err := l.base.u16(4 + inx*2)
	if err != nil {
		return nil
	}
	lig, err := l.base.from(int(ligOff))
	if err != nil {
		return nil
	}
	n := lig.U16(0)
	carets := make([]CaretValue, 0, n)
	for i := 0; i < int(n); i++ {
		cvOff, err := lig.u16(2 + i*2)
		if err != nil {
			return nil
		}
		cv, err := lig.view(int(cvOff), 4)
		if err != nil {
			return nil
		}
		caret := CaretValue{Format: u16(cv)}
		switch caret.Format {
		case 1, 3:
			caret.Coordinate = int16(u16(cv[2:]))
		case 2:
			caret.PointIndex = u16(cv[2:])
		default:
			tracer().Errorf("unknown caret value format %d", caret.Format)
			return nil
		}
		carets = append(carets, caret)
	}
	return carets
}

// --- Coverage table module -------------------------------------------------

// Coverage denotes an indexed set of glyphs.
// The GSUB, GPOS, and GDEF tables rely on this notion of coverage.
type Coverage struct {
	coverageHeader
	GlyphRange GlyphRange
}

type coverageHeader struct {
	CoverageFormat uint16
	Count          uint16
}

// parseCoverageAt reads a coverage table-module, which comes in two formats (1 and 2),
// at a given offset of b.
// A Coverage table defines a unique index value, the Coverage Index, for each
// covered glyph.
func parseCoverageAt(b binarySegm, offset int) (Coverage, error) {
	b, err := b.from(offset)
	if err != nil {
		return Coverage{}, err
	}
	if len(b) < 4 {
		return Coverage{}, errBufferBounds
	}
	h := coverageHeader{CoverageFormat: b.U16(0), Count: b.U16(2)}
	tracer().Debugf("coverage header format %d has count = %d ", h.CoverageFormat, h.Count)
	switch h.CoverageFormat {
	case 1:
		if _, err := b.view(4, 2*int(h.Count)); err != nil && h.Count > 0 {
			return Coverage{}, err
		}
		return Coverage{
			coverageHeader: h,
			GlyphRange:     &glyphRangeArray{count: int(h.Count), data: b[4:]},
		}, nil
	case 2:
		if _, err := b.view(4, 6*int(h.Count)); err != nil && h.Count > 0 {
			return Coverage{}, err
		}
		return Coverage{
			coverageHeader: h,
			GlyphRange:     &glyphRangeRecords{count: int(h.Count), data: b[4:]},
		}, nil
	}
	return Coverage{}, errFontFormat(fmt.Sprintf("unknown coverage format %d", h.CoverageFormat))
}

// --- Class definition tables -----------------------------------------------

// GlyphClassDefEnum lists the glyph classes for ClassDefinitions
// ('GlyphClassDef'-table).
type GlyphClassDefEnum uint16

const (
	BaseGlyph      GlyphClassDefEnum = iota + 1 //single character, spacing glyph
	LigatureGlyph                               //multiple character, spacing glyph
	MarkGlyph                                   //non-spacing combining glyph
	ComponentGlyph                              //part of single character, spacing glyph
)

// ClassDefinitions groups glyphs into classes, denoted as integer values.
//
// From the spec:
// For efficiency and ease of representation, a font developer can group glyph indices
// to form glyph classes. Class assignments vary in meaning from one lookup subtable
// to another. For example, in the GSUB and GPOS tables, classes are used to describe
// glyph contexts. GDEF tables also use the idea of glyph classes.
// (see https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#class-definition-table)
type ClassDefinitions struct {
	format  uint16          // format version 1 or 2
	records classDefVariant // either format 1 or 2
}

type classDefVariant interface {
	Lookup(GlyphIndex) int
}

type classDefinitionsFormat1 struct {
	count      int        // number of entries
	start      GlyphIndex // glyph ID of the first entry in a format-1 table
	valueArray binarySegm // array of Class Values, one per glyph ID
}

func (cdf *classDefinitionsFormat1) Lookup(glyph GlyphIndex) int {
	if glyph < cdf.start || int(glyph) >= int(cdf.start)+cdf.count {
		return 0
	}
	return int(cdf.valueArray.U16(int(glyph-cdf.start) * 2))
}

type classDefinitionsFormat2 struct {
	count       int        // number of records
	classRanges binarySegm // array of ClassRangeRecords, ordered by startGlyphID
}

func (cdf *classDefinitionsFormat2) Lookup(glyph GlyphIndex) int {
	for i := 0; i < cdf.count; i++ {
		rec := cdf.classRanges[i*6:]
		if glyph < GlyphIndex(u16(rec)) {
			return 0
		}
		if glyph <= GlyphIndex(u16(rec[2:])) {
			return int(u16(rec[4:]))
		}
	}
	return 0
}

// Format returns the binary format of the class definitions, 1 or 2, or 0 if empty.
func (cdef ClassDefinitions) Format() int {
	return int(cdef.format)
}

// Lookup returns the class defined for a glyph, or 0 (= default class).
func (cdef ClassDefinitions) Lookup(glyph GlyphIndex) int {
	if cdef.records == nil {
		return 0
	}
	return cdef.records.Lookup(glyph)
}

// --- parse class def table -------------------------------------------------

// The ClassDef table can have either of two formats: one that assigns a range of
// consecutive glyph indices to different classes, or one that puts groups of consecutive
// glyph indices into the same class.
func parseClassDefinitions(b binarySegm) (ClassDefinitions, error) {
	cdef := ClassDefinitions{}
	var err error
	if cdef.format, err = b.u16(0); err != nil {
		return cdef, errFontFormat("ClassDef truncated")
	}
	switch cdef.format {
	case 1:
		tracer().Debugf("parsing a ClassDef of format 1")
		g := b.U16(2) // start glyph ID
		n := b.U16(4) // number of glyph IDs in table
		values, err := b.view(6, 2*int(n))
		if err != nil && n > 0 {
			return cdef, errFontFormat("ClassDef format 1 truncated")
		}
		cdef.records = &classDefinitionsFormat1{count: int(n), start: GlyphIndex(g), valueArray: values}
	case 2:
		tracer().Debugf("parsing a ClassDef of format 2")
		n := b.U16(2) // number of glyph ID ranges in table
		ranges, err := b.view(4, 6*int(n))
		if err != nil && n > 0 {
			return cdef, errFontFormat("ClassDef format 2 truncated")
		}
		cdef.records = &classDefinitionsFormat2{count: int(n), classRanges: ranges}
	default:
		return cdef, errFontFormat(fmt.Sprintf("unknown ClassDef format %d", cdef.format))
	}
	return cdef, nil
}
