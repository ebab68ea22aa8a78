package otl

import (
	"encoding/binary"
	"sort"

	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
)

// Coverage is an ordered set of glyphs. The position of a glyph within the
// coverage is its coverage index.
type Coverage []ot.GlyphIndex

// newCoverage sorts glyphs and removes duplicates.
func newCoverage(glyphs []ot.GlyphIndex) Coverage {
	cov := make(Coverage, len(glyphs))
	copy(cov, glyphs)
	sort.Slice(cov, func(i, j int) bool { return cov[i] < cov[j] })
	n := 0
	for i, g := range cov {
		if i > 0 && g == cov[n-1] {
			continue
		}
		cov[n] = g
		n++
	}
	return cov[:n]
}

// Contains returns the coverage index of g and true, or false if g is not covered.
func (cov Coverage) Contains(g ot.GlyphIndex) (int, bool) {
	i := sort.Search(len(cov), func(i int) bool { return cov[i] >= g })
	if i < len(cov) && cov[i] == g {
		return i, true
	}
	return 0, false
}

type glyphRun struct {
	from, to ot.GlyphIndex
	start    int // coverage index of from
}

func (cov Coverage) runs() []glyphRun {
	var runs []glyphRun
	for i, g := range cov {
		if len(runs) > 0 && runs[len(runs)-1].to+1 == g {
			runs[len(runs)-1].to = g
			continue
		}
		runs = append(runs, glyphRun{from: g, to: g, start: i})
	}
	return runs
}

// compile encodes the coverage as format 1 (glyph array) or format 2 (range
// records), whichever is smaller.
func (cov Coverage) compile() []byte {
	runs := cov.runs()
	if 6*len(runs) < 2*len(cov) {
		b := make([]byte, 0, 4+6*len(runs))
		b = binary.BigEndian.AppendUint16(b, 2)
		b = binary.BigEndian.AppendUint16(b, uint16(len(runs)))
		for _, r := range runs {
			b = binary.BigEndian.AppendUint16(b, uint16(r.from))
			b = binary.BigEndian.AppendUint16(b, uint16(r.to))
			b = binary.BigEndian.AppendUint16(b, uint16(r.start))
		}
		return b
	}
	b := make([]byte, 0, 4+2*len(cov))
	b = binary.BigEndian.AppendUint16(b, 1)
	b = binary.BigEndian.AppendUint16(b, uint16(len(cov)))
	for _, g := range cov {
		b = binary.BigEndian.AppendUint16(b, uint16(g))
	}
	return b
}

// resolveGlyphs looks up glyph indices for a list of glyph names.
func resolveGlyphs(names []string, glyphs GlyphLookup) ([]ot.GlyphIndex, error) {
	gids := make([]ot.GlyphIndex, 0, len(names))
	for _, name := range names {
		gid, err := glyphs.GlyphIndex(name)
		if err != nil {
			return nil, err
		}
		gids = append(gids, gid)
	}
	return gids, nil
}

// putOffset16 writes an Offset16 at position at of b. Offsets not fitting
// into 16 bits are reported as errors.
func putOffset16(b []byte, at int, offset int, what string) error {
	if offset > 0xffff {
		return errValue("offset overflow in %s: %d", what, offset)
	}
	binary.BigEndian.PutUint16(b[at:], uint16(offset))
	return nil
}
