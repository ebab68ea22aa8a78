package otl

import (
	"encoding/binary"
	"sort"

	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
)

// AttachList lists attachment points (contour point indices) for glyphs.
// AttachPoints[i] are the points of glyph Coverage[i], in ascending order.
type AttachList struct {
	Coverage     Coverage
	AttachPoints [][]uint16
}

// BuildAttachList creates an attachment point list from a glyph → points mapping.
// If points is empty, nil is returned.
func BuildAttachList(points map[string][]int, glyphs GlyphLookup) (*AttachList, error) {
	if len(points) == 0 {
		return nil, nil
	}
	byGlyph := make(map[ot.GlyphIndex][]uint16, len(points))
	gids := make([]ot.GlyphIndex, 0, len(points))
	for name, pts := range points {
		gid, err := glyphs.GlyphIndex(name)
		if err != nil {
			return nil, err
		}
		ps, err := pointIndices(pts, name)
		if err != nil {
			return nil, err
		}
		byGlyph[gid] = ps
		gids = append(gids, gid)
	}
	al := &AttachList{Coverage: newCoverage(gids)}
	for _, gid := range al.Coverage {
		al.AttachPoints = append(al.AttachPoints, byGlyph[gid])
	}
	tracer().Debugf("built AttachList for %d glyphs", len(al.Coverage))
	return al, nil
}

// Points returns the attachment points of glyph g, or nil.
func (al *AttachList) Points(g ot.GlyphIndex) []uint16 {
	if al == nil {
		return nil
	}
	if inx, ok := al.Coverage.Contains(g); ok {
		return al.AttachPoints[inx]
	}
	return nil
}

// pointIndices sorts contour point indices and removes duplicates.
func pointIndices(pts []int, glyph string) ([]uint16, error) {
	sorted := make([]int, len(pts))
	copy(sorted, pts)
	sort.Ints(sorted)
	ps := make([]uint16, 0, len(sorted))
	for i, p := range sorted {
		if p < 0 || p > 0xffff {
			return nil, errValue("point index %d of glyph %q out of range", p, glyph)
		}
		if i > 0 && sorted[i-1] == p {
			continue
		}
		ps = append(ps, uint16(p))
	}
	return ps, nil
}

/*
AttachList:

	Offset16  coverageOffset                  from beginning of AttachList table
	uint16    glyphCount
	Offset16  attachPointOffsets[glyphCount]  from beginning of AttachList table

AttachPoint:

	uint16    pointCount
	uint16    pointIndices[pointCount]
*/
func (al *AttachList) compile() ([]byte, error) {
	n := len(al.Coverage)
	b := make([]byte, 4+2*n)
	binary.BigEndian.PutUint16(b[2:], uint16(n))
	if err := putOffset16(b, 0, len(b), "AttachList coverage"); err != nil {
		return nil, err
	}
	b = append(b, al.Coverage.compile()...)
	for i, pts := range al.AttachPoints {
		if err := putOffset16(b, 4+2*i, len(b), "AttachList"); err != nil {
			return nil, err
		}
		b = binary.BigEndian.AppendUint16(b, uint16(len(pts)))
		for _, p := range pts {
			b = binary.BigEndian.AppendUint16(b, p)
		}
	}
	return b, nil
}
