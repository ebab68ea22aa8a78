package otl

import (
	"encoding/binary"
)

// MarkGlyphSetsDef holds mark glyph sets, used by lookups with mark filtering.
// The position of a set is its mark filtering set index.
type MarkGlyphSetsDef struct {
	Coverages []Coverage
}

// BuildMarkGlyphSetsDef creates mark glyph sets from a sequence of glyph sets.
// The sequence order determines the set indices. If sets is empty, nil is returned.
func BuildMarkGlyphSetsDef(sets [][]string, glyphs GlyphLookup) (*MarkGlyphSetsDef, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	mgs := &MarkGlyphSetsDef{Coverages: make([]Coverage, 0, len(sets))}
	for _, set := range sets {
		gids, err := resolveGlyphs(set, glyphs)
		if err != nil {
			return nil, err
		}
		mgs.Coverages = append(mgs.Coverages, newCoverage(gids))
	}
	tracer().Debugf("built MarkGlyphSetsDef with %d sets", len(mgs.Coverages))
	return mgs, nil
}

// Len returns the number of mark glyph sets.
func (mgs *MarkGlyphSetsDef) Len() int {
	if mgs == nil {
		return 0
	}
	return len(mgs.Coverages)
}

/*
MarkGlyphSets:

	uint16    format                                 == 1
	uint16    markGlyphSetCount
	Offset32  coverageOffsets[markGlyphSetCount]     from beginning of MarkGlyphSets table
*/
func (mgs *MarkGlyphSetsDef) compile() ([]byte, error) {
	n := len(mgs.Coverages)
	if n > 0xffff {
		return nil, errValue("too many mark glyph sets: %d", n)
	}
	b := make([]byte, 4+4*n)
	binary.BigEndian.PutUint16(b[0:], 1)
	binary.BigEndian.PutUint16(b[2:], uint16(n))
	for i, cov := range mgs.Coverages {
		binary.BigEndian.PutUint32(b[4+4*i:], uint32(len(b)))
		b = append(b, cov.compile()...)
	}
	return b, nil
}
