package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseEmptyGDef(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.fonts")
	defer teardown()
	//
	gdef, err := ParseGDef([]byte{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if mj, mn := gdef.Header().Version(); mj != 1 || mn != 0 {
		t.Errorf("expected GDEF version 1.0, is %d.%d", mj, mn)
	}
	if gdef.GlyphClassDef.Format() != 0 || gdef.GlyphClassDef.Lookup(1) != 0 {
		t.Errorf("expected absent glyph class definitions")
	}
	if gdef.AttachmentPointList.AttachPoints(1) != nil {
		t.Errorf("expected absent attachment point list")
	}
	if gdef.LigatureCaretList.Carets(1) != nil {
		t.Errorf("expected absent ligature caret list")
	}
	if len(gdef.MarkGlyphSets) != 0 {
		t.Errorf("expected no mark glyph sets")
	}
}

func TestParseGDefErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.fonts")
	defer teardown()
	//
	if _, err := ParseGDef([]byte{0, 1, 0}); err == nil {
		t.Errorf("expected short header to be rejected")
	}
	if _, err := ParseGDef([]byte{0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}); err == nil {
		t.Errorf("expected GDEF version 2 to be rejected")
	}
	if _, err := ParseGDef([]byte{0, 1, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0}); err == nil {
		t.Errorf("expected version 1.2 header without mark glyph sets offset to be rejected")
	}
	if _, err := ParseGDef([]byte{0, 1, 0, 0, 0, 99, 0, 0, 0, 0, 0, 0}); err == nil {
		t.Errorf("expected out of bounds offset to be rejected")
	}
}

func TestParseGDefClassRanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.fonts")
	defer teardown()
	//
	data := []byte{
		0, 1, 0, 0, // version 1.0
		0, 12, // glyph class def
		0, 0, 0, 0, 0, 0,
		0, 2, 0, 2, // ClassDef format 2, 2 ranges
		0, 5, 0, 7, 0, 3, // glyphs 5…7 → class 3
		0, 9, 0, 9, 0, 1, // glyph 9 → class 1
	}
	gdef, err := ParseGDef(data)
	if err != nil {
		t.Fatal(err)
	}
	expected := map[GlyphIndex]int{4: 0, 5: 3, 7: 3, 8: 0, 9: 1, 10: 0}
	for g, c := range expected {
		if clz := gdef.GlyphClassDef.Lookup(g); clz != c {
			t.Errorf("expected glyph %d to have class %d, has %d", g, c, clz)
		}
	}
	if gdef.GlyphClassDef.Format() != 2 {
		t.Errorf("expected ClassDef format 2, is %d", gdef.GlyphClassDef.Format())
	}
}
