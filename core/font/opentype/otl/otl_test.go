package otl

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var glyphOrder = []string{".notdef", "a", "a.sc", "a.alt", "b", "acute", "grave", "f_i", "f_f_i"}

func TestGlyphMap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.fonts")
	defer teardown()
	//
	gm := NewGlyphMap(append(glyphOrder, "a"))
	gid, err := gm.GlyphIndex("a.alt")
	require.NoError(t, err)
	assert.Equal(t, ot.GlyphIndex(3), gid)
	gid, err = gm.GlyphIndex("a")
	require.NoError(t, err)
	assert.Equal(t, ot.GlyphIndex(1), gid, "expected first occurence of duplicate name to win")
	assert.Equal(t, "grave", gm.GlyphName(6))
	assert.Equal(t, "", gm.GlyphName(99))
	//
	_, err = gm.GlyphIndex("a.smcp")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownGlyph))
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Contains(t, err.Error(), `"a.smcp"`)
	assert.Contains(t, err.Error(), "a.alt")
	sugg := gm.Suggest("a.smcp")
	assert.LessOrEqual(t, len(sugg), 3)
	assert.Contains(t, sugg, "a.alt")
	assert.Empty(t, gm.Suggest("zz"))
}

func TestCoverage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.fonts")
	defer teardown()
	//
	cov := newCoverage([]ot.GlyphIndex{9, 3, 4, 3, 5})
	assert.Equal(t, Coverage{3, 4, 5, 9}, cov)
	inx, ok := cov.Contains(9)
	assert.True(t, ok)
	assert.Equal(t, 3, inx)
	_, ok = cov.Contains(6)
	assert.False(t, ok)
	// 4 glyphs: format 1 has 12 bytes, format 2 (2 ranges) has 16 bytes
	assert.Equal(t, []byte{0, 1, 0, 4, 0, 3, 0, 4, 0, 5, 0, 9}, cov.compile())
	// one long range favours format 2
	long := newCoverage([]ot.GlyphIndex{10, 11, 12, 13, 14})
	assert.Equal(t, []byte{0, 2, 0, 1, 0, 10, 0, 14, 0, 0}, long.compile())
}

func TestClassDefFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.fonts")
	defer teardown()
	//
	gm := NewGlyphMap(glyphOrder)
	assert.Nil(t, NewClassDef(nil))
	cdef := NewClassDef(map[string]int{"a": 1, "b": 1, "acute": 3, "grave": 3})
	b, err := cdef.compile(gm)
	require.NoError(t, err)
	// glyphs 1, 4, 5, 6: format 1 spans 6 glyphs (18 bytes), format 2 needs 3 ranges (22 bytes)
	assert.Equal(t, []byte{0, 1, 0, 1, 0, 6, 0, 1, 0, 0, 0, 0, 0, 1, 0, 3, 0, 3}, b)
	//
	cdef = NewClassDef(map[string]int{"a": 2, "f_f_i": 2, ".notdef": 0})
	b, err = cdef.compile(gm)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 2, 0, 2, 0, 1, 0, 1, 0, 2, 0, 8, 0, 8, 0, 2}, b)
	//
	_, err = NewClassDef(map[string]int{"c": 1}).compile(gm)
	assert.True(t, errors.Is(err, ErrUnknownGlyph))
	_, err = NewClassDef(map[string]int{"a": 70000}).compile(gm)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestAttachList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.fonts")
	defer teardown()
	//
	gm := NewGlyphMap(glyphOrder)
	al, err := BuildAttachList(nil, gm)
	require.NoError(t, err)
	assert.Nil(t, al)
	al, err = BuildAttachList(map[string][]int{"b": {7, 3, 7}, "a": {1}}, gm)
	require.NoError(t, err)
	assert.Equal(t, Coverage{1, 4}, al.Coverage)
	assert.Equal(t, [][]uint16{{1}, {3, 7}}, al.AttachPoints)
	assert.Nil(t, al.Points(2))
	//
	_, err = BuildAttachList(map[string][]int{"zz": {1}}, gm)
	assert.True(t, errors.Is(err, ErrUnknownGlyph))
	_, err = BuildAttachList(map[string][]int{"a": {-1}}, gm)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestLigCaretList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.fonts")
	defer teardown()
	//
	gm := NewGlyphMap(glyphOrder)
	lcl, err := BuildLigCaretList(nil, map[string][]int{}, gm)
	require.NoError(t, err)
	assert.Nil(t, lcl)
	lcl, err = BuildLigCaretList(
		map[string][]int{"f_f_i": {600, 300}},
		map[string][]int{"f_f_i": {12}, "f_i": {4}}, gm)
	require.NoError(t, err)
	assert.Equal(t, Coverage{7, 8}, lcl.Coverage)
	assert.Equal(t, []CaretValue{{Format: CaretFormatPoint, PointIndex: 4}}, lcl.Carets(7))
	assert.Equal(t, []CaretValue{
		{Format: CaretFormatCoordinate, Coordinate: 300},
		{Format: CaretFormatCoordinate, Coordinate: 600},
		{Format: CaretFormatPoint, PointIndex: 12},
	}, lcl.Carets(8))
	_, err = BuildLigCaretList(map[string][]int{"f_i": {40000}}, nil, gm)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestMarkGlyphSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.fonts")
	defer teardown()
	//
	gm := NewGlyphMap(glyphOrder)
	mgs, err := BuildMarkGlyphSetsDef(nil, gm)
	require.NoError(t, err)
	assert.Nil(t, mgs)
	assert.Equal(t, 0, mgs.Len())
	mgs, err = BuildMarkGlyphSetsDef([][]string{{"grave", "acute"}, {"acute"}}, gm)
	require.NoError(t, err)
	require.Equal(t, 2, mgs.Len())
	assert.Equal(t, Coverage{5, 6}, mgs.Coverages[0])
	assert.Equal(t, Coverage{5}, mgs.Coverages[1])
	b, err := mgs.compile()
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0, 1, 0, 2, // format 1, 2 sets
		0, 0, 0, 12, 0, 0, 0, 20, // Offset32 coverages
		0, 1, 0, 2, 0, 5, 0, 6, // coverage {5,6}
		0, 1, 0, 1, 0, 5, // coverage {5}
	}, b)
}

func TestGDefCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.fonts")
	defer teardown()
	//
	otf := ot.NewFont(glyphOrder)
	gm := NewGlyphMap(glyphOrder)
	al, err := BuildAttachList(map[string][]int{"a": {3, 7}}, gm)
	require.NoError(t, err)
	lcl, err := BuildLigCaretList(map[string][]int{"f_i": {250}}, map[string][]int{"f_i": {9}}, gm)
	require.NoError(t, err)
	mgs, err := BuildMarkGlyphSetsDef([][]string{{"acute", "grave"}}, gm)
	require.NoError(t, err)
	gdef := &GDefTable{
		Version:            GDefVersionExtended,
		GlyphClassDef:      NewClassDef(map[string]int{"a": 1, "f_i": 2, "acute": 3}),
		AttachList:         al,
		LigCaretList:       lcl,
		MarkAttachClassDef: NewClassDef(map[string]int{"acute": 1, "grave": 2}),
		MarkGlyphSetsDef:   mgs,
	}
	assert.Equal(t, ot.T("GDEF"), gdef.NameTag())
	data, err := gdef.Compile(otf)
	require.NoError(t, err)
	parsed, err := ot.ParseGDef(data)
	require.NoError(t, err)
	major, minor := parsed.Header().Version()
	assert.Equal(t, "1.2", fmt.Sprintf("%d.%d", major, minor))
	for g, c := range map[ot.GlyphIndex]int{1: 1, 7: 2, 5: 3, 6: 0} {
		assert.Equal(t, c, parsed.GlyphClassDef.Lookup(g), "glyph class of glyph %d", g)
	}
	assert.Equal(t, []uint16{3, 7}, parsed.AttachmentPointList.AttachPoints(1))
	assert.Equal(t, []ot.CaretValue{
		{Format: 1, Coordinate: 250},
		{Format: 2, PointIndex: 9},
	}, parsed.LigatureCaretList.Carets(7))
	assert.Equal(t, 2, parsed.MarkAttachmentClassDef.Lookup(6))
	require.Len(t, parsed.MarkGlyphSets, 1)
	inx, ok := parsed.MarkGlyphSets[0].Match(6)
	assert.True(t, ok)
	assert.Equal(t, 1, inx)
	//
	gdef.Version = GDefVersionBase
	_, err = gdef.Compile(otf)
	assert.Error(t, err, "expected version 1.0 not to hold mark glyph sets")
	gdef.MarkGlyphSetsDef = nil
	data, err = gdef.Compile(otf)
	require.NoError(t, err)
	parsed, err = ot.ParseGDef(data)
	require.NoError(t, err)
	_, minor = parsed.Header().Version()
	assert.Equal(t, 0, minor)
	assert.Equal(t, []uint16{3, 7}, parsed.AttachmentPointList.AttachPoints(1))
	assert.True(t, (&GDefTable{}).IsEmpty())
}
