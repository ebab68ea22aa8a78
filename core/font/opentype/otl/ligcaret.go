package otl

import (
	"encoding/binary"
	"sort"

	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
)

// Caret value formats.
const (
	CaretFormatCoordinate uint16 = 1 // design units only
	CaretFormatPoint      uint16 = 2 // contour point
)

// CaretValue denotes a caret position in a ligature glyph, either as a coordinate
// or as a contour point index.
type CaretValue struct {
	Format     uint16
	Coordinate int16
	PointIndex uint16
}

// LigGlyph holds the carets of a ligature glyph.
type LigGlyph struct {
	Carets []CaretValue
}

// LigCaretList holds carets for ligature glyphs. LigGlyphs[i] belongs to
// glyph Coverage[i].
type LigCaretList struct {
	Coverage  Coverage
	LigGlyphs []LigGlyph
}

// BuildLigCaretList creates a ligature caret list from carets given as coordinates
// and carets given as contour points. A glyph may occur in both mappings; it then
// receives its coordinate carets first, followed by its point carets, each in
// ascending order. If both mappings are empty, nil is returned.
func BuildLigCaretList(coords, points map[string][]int, glyphs GlyphLookup) (*LigCaretList, error) {
	if len(coords) == 0 && len(points) == 0 {
		return nil, nil
	}
	carets := make(map[ot.GlyphIndex][]CaretValue)
	gids := make([]ot.GlyphIndex, 0, len(coords)+len(points))
	for name, cs := range coords {
		gid, err := glyphs.GlyphIndex(name)
		if err != nil {
			return nil, err
		}
		sorted := make([]int, len(cs))
		copy(sorted, cs)
		sort.Ints(sorted)
		for i, c := range sorted {
			if c < -0x8000 || c > 0x7fff {
				return nil, errValue("caret coordinate %d of glyph %q out of range", c, name)
			}
			if i > 0 && sorted[i-1] == c {
				continue
			}
			carets[gid] = append(carets[gid], CaretValue{Format: CaretFormatCoordinate, Coordinate: int16(c)})
		}
		gids = append(gids, gid)
	}
	for name, ps := range points {
		gid, err := glyphs.GlyphIndex(name)
		if err != nil {
			return nil, err
		}
		pts, err := pointIndices(ps, name)
		if err != nil {
			return nil, err
		}
		for _, p := range pts {
			carets[gid] = append(carets[gid], CaretValue{Format: CaretFormatPoint, PointIndex: p})
		}
		gids = append(gids, gid)
	}
	lcl := &LigCaretList{Coverage: newCoverage(gids)}
	for _, gid := range lcl.Coverage {
		lcl.LigGlyphs = append(lcl.LigGlyphs, LigGlyph{Carets: carets[gid]})
	}
	tracer().Debugf("built LigCaretList for %d glyphs", len(lcl.Coverage))
	return lcl, nil
}

// Carets returns the carets of ligature glyph g, or nil.
func (lcl *LigCaretList) Carets(g ot.GlyphIndex) []CaretValue {
	if lcl == nil {
		return nil
	}
	if inx, ok := lcl.Coverage.Contains(g); ok {
		return lcl.LigGlyphs[inx].Carets
	}
	return nil
}

/*
LigCaretList:

	Offset16  coverageOffset                  from beginning of LigCaretList table
	uint16    ligGlyphCount
	Offset16  ligGlyphOffsets[ligGlyphCount]  from beginning of LigCaretList table

LigGlyph:

	uint16    caretCount
	Offset16  caretValueOffsets[caretCount]   from beginning of LigGlyph table

CaretValue format 1 and 2:

	uint16    caretValueFormat
	int16     coordinate | uint16 caretValuePointIndex
*/
func (lcl *LigCaretList) compile() ([]byte, error) {
	n := len(lcl.Coverage)
	b := make([]byte, 4+2*n)
	binary.BigEndian.PutUint16(b[2:], uint16(n))
	if err := putOffset16(b, 0, len(b), "LigCaretList coverage"); err != nil {
		return nil, err
	}
	b = append(b, lcl.Coverage.compile()...)
	for i, lig := range lcl.LigGlyphs {
		if err := putOffset16(b, 4+2*i, len(b), "LigCaretList"); err != nil {
			return nil, err
		}
		b = append(b, lig.compile()...)
	}
	return b, nil
}

func (lig LigGlyph) compile() []byte {
	n := len(lig.Carets)
	b := make([]byte, 2+2*n, 2+6*n)
	binary.BigEndian.PutUint16(b, uint16(n))
	for i, cv := range lig.Carets {
		binary.BigEndian.PutUint16(b[2+2*i:], uint16(len(b)))
		b = binary.BigEndian.AppendUint16(b, cv.Format)
		if cv.Format == CaretFormatPoint {
			b = binary.BigEndian.AppendUint16(b, cv.PointIndex)
		} else {
			b = binary.BigEndian.AppendUint16(b, uint16(cv.Coordinate))
		}
	}
	return b
}
