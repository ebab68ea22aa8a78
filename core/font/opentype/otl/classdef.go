package otl

import (
	"encoding/binary"
	"sort"

	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
)

// ClassDef assigns glyphs to classes. Glyphs not contained in a ClassDef are
// of class 0.
//
// Classes are recorded by glyph name and resolved to glyph indices when the
// table containing the ClassDef is compiled.
type ClassDef struct {
	Classes map[string]int
}

// NewClassDef creates a class definition table from a glyph → class mapping.
// If classes is empty, nil is returned.
func NewClassDef(classes map[string]int) *ClassDef {
	if len(classes) == 0 {
		return nil
	}
	cdef := &ClassDef{Classes: make(map[string]int, len(classes))}
	for g, c := range classes {
		cdef.Classes[g] = c
	}
	return cdef
}

// Class returns the class of a glyph, or 0.
func (cdef *ClassDef) Class(glyph string) int {
	if cdef == nil {
		return 0
	}
	return cdef.Classes[glyph]
}

// Len returns the number of glyphs with a class assignment.
func (cdef *ClassDef) Len() int {
	if cdef == nil {
		return 0
	}
	return len(cdef.Classes)
}

type classRecord struct {
	gid   ot.GlyphIndex
	class uint16
}

// records resolves the glyph names and returns records ordered by glyph index.
// Glyphs of class 0 are left out, as 0 is the default class.
func (cdef *ClassDef) records(glyphs GlyphLookup) ([]classRecord, error) {
	recs := make([]classRecord, 0, len(cdef.Classes))
	for name, class := range cdef.Classes {
		if class < 0 || class > 0xffff {
			return nil, errValue("class %d of glyph %q out of range", class, name)
		}
		gid, err := glyphs.GlyphIndex(name)
		if err != nil {
			return nil, err
		}
		if class == 0 {
			continue
		}
		recs = append(recs, classRecord{gid: gid, class: uint16(class)})
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].gid < recs[j].gid })
	return recs, nil
}

// compile encodes the class definitions as format 1 (class array) or format 2
// (class ranges), whichever is smaller.
func (cdef *ClassDef) compile(glyphs GlyphLookup) ([]byte, error) {
	recs, err := cdef.records(glyphs)
	if err != nil {
		return nil, err
	}
	type classRange struct {
		from, to ot.GlyphIndex
		class    uint16
	}
	var ranges []classRange
	for _, r := range recs {
		if l := len(ranges) - 1; l >= 0 && ranges[l].to+1 == r.gid && ranges[l].class == r.class {
			ranges[l].to = r.gid
			continue
		}
		ranges = append(ranges, classRange{from: r.gid, to: r.gid, class: r.class})
	}
	size2 := 4 + 6*len(ranges)
	size1 := size2 + 1
	if len(recs) > 0 {
		size1 = 6 + 2*(int(recs[len(recs)-1].gid-recs[0].gid)+1)
	}
	if size1 < size2 {
		start := recs[0].gid
		count := int(recs[len(recs)-1].gid-start) + 1
		b := make([]byte, 6+2*count)
		binary.BigEndian.PutUint16(b[0:], 1)
		binary.BigEndian.PutUint16(b[2:], uint16(start))
		binary.BigEndian.PutUint16(b[4:], uint16(count))
		for _, r := range recs {
			binary.BigEndian.PutUint16(b[6+2*int(r.gid-start):], r.class)
		}
		return b, nil
	}
	b := make([]byte, 0, size2)
	b = binary.BigEndian.AppendUint16(b, 2)
	b = binary.BigEndian.AppendUint16(b, uint16(len(ranges)))
	for _, r := range ranges {
		b = binary.BigEndian.AppendUint16(b, uint16(r.from))
		b = binary.BigEndian.AppendUint16(b, uint16(r.to))
		b = binary.BigEndian.AppendUint16(b, r.class)
	}
	return b, nil
}
