package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/fontvolt/volt"
	"github.com/npillmayer/fontvolt/volt/ast"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

const testProject = `DEF_GLYPH ".notdef" ID 0 TYPE BASE END_GLYPH
DEF_GLYPH "A" ID 1 UNICODE 65 TYPE BASE END_GLYPH
DEF_GLYPH "Agrave" ID 2 UNICODEVALUES "U+00C0,U+0041" TYPE BASE END_GLYPH
DEF_GLYPH "f_f_i" ID 3 TYPE LIGATURE COMPONENTS 3 END_GLYPH
DEF_GLYPH "acute" ID 4 TYPE MARK END_GLYPH
DEF_GROUP "marks" ENUM GLYPH "acute" GROUP "more" END_ENUM END_GROUP
DEF_ATTACH "A" POINTS 3 7 END_ATTACH
DEF_LIGCARET "f_f_i" COORDS -20 300 POINTS 5 END_LIGCARET
DEF_MARK_ATTACH_CLASS 1 GROUP "marks" END_MARK_ATTACH_CLASS
DEF_MARK_GLYPH_SET 0 ENUM GLYPH "acute" END_ENUM END_MARK_GLYPH_SET
END
`

func TestParseProject(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.volt")
	defer teardown()
	//
	f, err := ParseString(testProject, "test.vtp")
	require.NoError(t, err)
	require.Len(t, f.Statements, 10)
	assert.Equal(t, "test.vtp", f.Name)
	//
	g, ok := f.Statements[1].(*ast.GlyphDefinition)
	require.True(t, ok, "expected glyph definition, got %T", f.Statements[1])
	assert.Equal(t, "A", g.Name)
	assert.Equal(t, 1, g.ID)
	assert.Equal(t, []rune{'A'}, g.Unicode)
	assert.Equal(t, ast.BaseType, g.Type)
	assert.Equal(t, volt.Location{File: "test.vtp", Line: 2, Column: 1}, g.Location)
	//
	g = f.Statements[2].(*ast.GlyphDefinition)
	assert.Equal(t, []rune{0xC0, 0x41}, g.Unicode)
	g = f.Statements[3].(*ast.GlyphDefinition)
	assert.Equal(t, ast.LigatureType, g.Type)
	assert.Equal(t, 3, g.Components)
	assert.Equal(t, 2, g.Type.Class())
	//
	grp := f.Statements[5].(*ast.GroupDefinition)
	assert.Equal(t, "marks", grp.Name)
	require.Len(t, grp.Enum.Items, 2)
	assert.IsType(t, &ast.GroupName{}, grp.Enum.Items[1])
	//
	att := f.Statements[6].(*ast.AttachDefinition)
	assert.Equal(t, []int{3, 7}, att.Points)
	lig := f.Statements[7].(*ast.LigCaretDefinition)
	assert.Equal(t, []int{-20, 300}, lig.Coords)
	assert.Equal(t, []int{5}, lig.Points)
	mac := f.Statements[8].(*ast.MarkAttachClassDefinition)
	assert.Equal(t, 1, mac.Class)
	mgs := f.Statements[9].(*ast.MarkGlyphSetDefinition)
	assert.Equal(t, 0, mgs.ID)
	require.Len(t, mgs.Glyphs, 1)
	assert.IsType(t, &ast.Enum{}, mgs.Glyphs[0])
}

func TestParseUTF16(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.volt")
	defer teardown()
	//
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	src, err := enc.String(`DEF_GLYPH "é" ID 1 TYPE MARK END_GLYPH`)
	require.NoError(t, err)
	f, err := Parse(strings.NewReader(src), "utf16.vtp")
	require.NoError(t, err)
	require.Len(t, f.Statements, 1)
	assert.Equal(t, "é", f.Statements[0].(*ast.GlyphDefinition).Name)
	//
	f, err = Parse(strings.NewReader("\ufeffDEF_ATTACH \"A\" POINTS 1 END_ATTACH"), "bom.vtp")
	require.NoError(t, err)
	require.Len(t, f.Statements, 1)
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.volt")
	defer teardown()
	//
	tests := []struct {
		source string
		loc    string
		msg    string
	}{
		{`DEF_GLYPH "A" ID 1 TYPE FOO END_GLYPH`, "t.vtp:1:25", "unknown glyph type"},
		{`DEF_GLYPH "A" ID END_GLYPH`, "t.vtp:1:18", "expected integer"},
		{"DEF_ATTACH \"A\"\n  POINTS -1 END_ATTACH", "t.vtp:2:10", "non-negative"},
		{`DEF_LIGCARET "fi" END_LIGCARET`, "t.vtp:1:19", "needs COORDS or POINTS"},
		{`DEF_MARK_ATTACH_CLASS 0 GLYPH "a" END_MARK_ATTACH_CLASS`, "t.vtp:1:23", "positive"},
		{`DEF_MARK_GLYPH_SET 0 GLYPH "a"`, "t.vtp:1:31", "expected GLYPH, GROUP or ENUM"},
		{`DEF_GLYPH "A`, "t.vtp:1:11", "unterminated string"},
		{`DEF_SCRIPT NAME "Latin" END_SCRIPT`, "t.vtp:1:1", "unknown statement"},
		{"END\nDEF_GLYPH \"A\" ID 1 END_GLYPH", "t.vtp:2:1", "after END"},
		{`DEF_ATTACH "A" POINTS 1x END_ATTACH`, "t.vtp:1:23", "malformed integer"},
		{`DEF_GLYPH "A" ID 1 UNICODEVALUES "0041" END_GLYPH`, "t.vtp:1:34", "malformed Unicode value"},
	}
	for i, test := range tests {
		_, err := ParseString(test.source, "t.vtp")
		var serr *volt.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("test %d: expected syntax error, got %v", i, err)
			continue
		}
		if serr.Location.String() != test.loc {
			t.Errorf("test %d: expected error at %s, got %s", i, test.loc, serr.Location)
		}
		if !strings.Contains(serr.Msg, test.msg) {
			t.Errorf("test %d: expected message to contain %q, is %q", i, test.msg, serr.Msg)
		}
	}
}
