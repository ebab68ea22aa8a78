/*
Package ast is the rule tree of a VOLT source, as produced by package
`volt/parser`.

The tree knows how to build itself: File.Build walks the statements and
reports every glyph definition fact to a Target. The set of statement kinds
is closed; it covers glyph definitions, glyph groups, attachment points,
ligature carets, mark attachment classes and mark glyph sets.
*/
package ast

import (
	"github.com/npillmayer/fontvolt/volt"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontvolt.volt'
func tracer() tracing.Trace {
	return tracing.Select("fontvolt.volt")
}

// Target receives the facts of a rule tree during File.Build.
type Target interface {
	SetGlyphClass(loc volt.Location, glyph string, class int) error
	AddAttachPoints(glyph string, points []int)
	AddLigatureCaretCoords(glyph string, coords []int)
	AddLigatureCaretPoints(glyph string, points []int)
	SetMarkAttachClass(loc volt.Location, glyph string, class int) error
	SetMarkFilterSet(loc volt.Location, glyphs []string, id int) error
}

// File is the root of a rule tree.
type File struct {
	Name       string
	Statements []Statement
}

// Statement is one of the statement kinds of this package.
type Statement interface {
	Loc() volt.Location
	statement()
}

// GlyphType is the VOLT type of a glyph.
type GlyphType int

// Glyph types. Unclassified glyphs have no TYPE in their definition.
const (
	Unclassified GlyphType = iota
	BaseType
	LigatureType
	MarkType
	ComponentType
)

// GDEF glyph classes for glyph types.
var glyphClasses = map[GlyphType]int{
	BaseType:      1,
	LigatureType:  2,
	MarkType:      3,
	ComponentType: 4,
}

// Class returns the GDEF glyph class of a glyph type, or 0 for unclassified glyphs.
func (gt GlyphType) Class() int {
	return glyphClasses[gt]
}

func (gt GlyphType) String() string {
	switch gt {
	case BaseType:
		return "BASE"
	case LigatureType:
		return "LIGATURE"
	case MarkType:
		return "MARK"
	case ComponentType:
		return "COMPONENT"
	}
	return "UNCLASSIFIED"
}

// GlyphDefinition is a DEF_GLYPH statement.
type GlyphDefinition struct {
	Location   volt.Location
	Name       string
	ID         int
	Unicode    []rune
	Type       GlyphType
	Components int
}

// GroupDefinition is a DEF_GROUP statement. Groups may be used before they are defined.
type GroupDefinition struct {
	Location volt.Location
	Name     string
	Enum     *Enum
}

// AttachDefinition is a DEF_ATTACH statement.
type AttachDefinition struct {
	Location volt.Location
	Glyph    string
	Points   []int
}

// LigCaretDefinition is a DEF_LIGCARET statement. At least one of Coords and
// Points is non-empty.
type LigCaretDefinition struct {
	Location volt.Location
	Glyph    string
	Coords   []int
	Points   []int
}

// MarkAttachClassDefinition is a DEF_MARK_ATTACH_CLASS statement.
type MarkAttachClassDefinition struct {
	Location volt.Location
	Class    int
	Glyphs   []Selector
}

// MarkGlyphSetDefinition is a DEF_MARK_GLYPH_SET statement.
type MarkGlyphSetDefinition struct {
	Location volt.Location
	ID       int
	Glyphs   []Selector
}

func (s *GlyphDefinition) Loc() volt.Location           { return s.Location }
func (s *GroupDefinition) Loc() volt.Location           { return s.Location }
func (s *AttachDefinition) Loc() volt.Location          { return s.Location }
func (s *LigCaretDefinition) Loc() volt.Location        { return s.Location }
func (s *MarkAttachClassDefinition) Loc() volt.Location { return s.Location }
func (s *MarkGlyphSetDefinition) Loc() volt.Location    { return s.Location }

func (*GlyphDefinition) statement()           {}
func (*GroupDefinition) statement()           {}
func (*AttachDefinition) statement()          {}
func (*LigCaretDefinition) statement()        {}
func (*MarkAttachClassDefinition) statement() {}
func (*MarkGlyphSetDefinition) statement()    {}

// --- Glyph selectors -------------------------------------------------------

// Selector denotes a list of glyphs: a single glyph, a group, or an enumeration.
type Selector interface {
	Loc() volt.Location
	selector()
}

// GlyphName selects a single glyph (GLYPH "a").
type GlyphName struct {
	Location volt.Location
	Name     string
}

// GroupName selects the glyphs of a group (GROUP "marks").
type GroupName struct {
	Location volt.Location
	Name     string
}

// Enum selects the glyphs of its items (ENUM … END_ENUM).
type Enum struct {
	Location volt.Location
	Items    []Selector
}

func (s *GlyphName) Loc() volt.Location { return s.Location }
func (s *GroupName) Loc() volt.Location { return s.Location }
func (s *Enum) Loc() volt.Location      { return s.Location }

func (*GlyphName) selector() {}
func (*GroupName) selector() {}
func (*Enum) selector()      {}
