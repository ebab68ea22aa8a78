package ast

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/fontvolt/volt"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type recorder struct {
	calls []string
}

func (r *recorder) SetGlyphClass(loc volt.Location, glyph string, class int) error {
	r.calls = append(r.calls, fmt.Sprintf("class %s=%d @%d", glyph, class, loc.Line))
	return nil
}

func (r *recorder) AddAttachPoints(glyph string, points []int) {
	r.calls = append(r.calls, fmt.Sprintf("attach %s %v", glyph, points))
}

func (r *recorder) AddLigatureCaretCoords(glyph string, coords []int) {
	r.calls = append(r.calls, fmt.Sprintf("coords %s %v", glyph, coords))
}

func (r *recorder) AddLigatureCaretPoints(glyph string, points []int) {
	r.calls = append(r.calls, fmt.Sprintf("points %s %v", glyph, points))
}

func (r *recorder) SetMarkAttachClass(loc volt.Location, glyph string, class int) error {
	r.calls = append(r.calls, fmt.Sprintf("markclass %s=%d", glyph, class))
	return nil
}

func (r *recorder) SetMarkFilterSet(loc volt.Location, glyphs []string, id int) error {
	r.calls = append(r.calls, fmt.Sprintf("set %d %v", id, glyphs))
	return nil
}

func at(line int) volt.Location {
	return volt.Location{File: "t.vtp", Line: line, Column: 1}
}

func glyphs(names ...string) []Selector {
	sels := make([]Selector, len(names))
	for i, n := range names {
		sels[i] = &GlyphName{Name: n}
	}
	return sels
}

func TestBuildReportsFactsInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.volt")
	defer teardown()
	//
	f := &File{Name: "t.vtp", Statements: []Statement{
		&GlyphDefinition{Location: at(1), Name: "A", ID: 1, Type: BaseType},
		&GlyphDefinition{Location: at(2), Name: "B", ID: 2},
		&AttachDefinition{Location: at(3), Glyph: "A", Points: []int{3, 7}},
		&LigCaretDefinition{Location: at(4), Glyph: "fi", Coords: []int{300}},
		&MarkAttachClassDefinition{Location: at(5), Class: 2, Glyphs: []Selector{
			&GroupName{Name: "marks"},
			&GlyphName{Name: "acute"},
		}},
		&GroupDefinition{Location: at(6), Name: "marks", Enum: &Enum{Items: glyphs("grave", "acute")}},
		&MarkGlyphSetDefinition{Location: at(7), ID: 4, Glyphs: []Selector{
			&Enum{Items: []Selector{&GroupName{Name: "marks"}, &GlyphName{Name: "cedilla"}}},
		}},
	}}
	r := &recorder{}
	if err := f.Build(r); err != nil {
		t.Fatal(err)
	}
	expected := []string{
		"class A=1 @1",
		"attach A [3 7]",
		"coords fi [300]",
		"markclass grave=2",
		"markclass acute=2",
		"set 4 [grave acute cedilla]",
	}
	if len(r.calls) != len(expected) {
		t.Fatalf("expected %d calls, got %d: %v", len(expected), len(r.calls), r.calls)
	}
	for i, c := range expected {
		if r.calls[i] != c {
			t.Errorf("expected call %d to be %q, is %q", i, c, r.calls[i])
		}
	}
}

func TestGroupErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.volt")
	defer teardown()
	//
	recursive := &File{Statements: []Statement{
		&GroupDefinition{Location: at(1), Name: "a", Enum: &Enum{Items: []Selector{&GroupName{Location: at(1), Name: "b"}}}},
		&GroupDefinition{Location: at(2), Name: "b", Enum: &Enum{Items: []Selector{&GroupName{Location: at(2), Name: "a"}}}},
		&MarkGlyphSetDefinition{Location: at(3), Glyphs: []Selector{&GroupName{Location: at(3), Name: "a"}}},
	}}
	undefined := &File{Statements: []Statement{
		&MarkAttachClassDefinition{Location: at(1), Class: 1, Glyphs: []Selector{&GroupName{Location: at(1), Name: "x"}}},
	}}
	duplicate := &File{Statements: []Statement{
		&GroupDefinition{Location: at(1), Name: "a", Enum: &Enum{}},
		&GroupDefinition{Location: at(2), Name: "a", Enum: &Enum{}},
	}}
	for name, f := range map[string]*File{"recursive": recursive, "undefined": undefined, "duplicate": duplicate} {
		err := f.Build(&recorder{})
		var verr *volt.Error
		if !errors.As(err, &verr) {
			t.Errorf("%s group: expected semantic error, got %v", name, err)
			continue
		}
		if verr.Code != core.EINVALID {
			t.Errorf("%s group: expected error code EINVALID, is %d", name, verr.Code)
		}
	}
}

func TestExpandDeduplicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontvolt.volt")
	defer teardown()
	//
	f := &File{Statements: []Statement{
		&GroupDefinition{Name: "g", Enum: &Enum{Items: glyphs("b", "a")}},
	}}
	names, err := f.Expand([]Selector{&GlyphName{Name: "a"}, &GroupName{Name: "g"}, &GroupName{Name: "g"}})
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(names) != "[a b]" {
		t.Errorf("expected glyphs [a b], got %v", names)
	}
	if len(f.Groups()) != 1 {
		t.Errorf("expected 1 group, have %d", len(f.Groups()))
	}
}
