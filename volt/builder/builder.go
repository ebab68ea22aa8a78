/*
Package builder creates the GDEF table of a font from a VOLT project.

A build parses the VOLT source, lets the rule tree report its glyph
definition facts, and synthesizes a GDEF table from them. The build is
authoritative for GDEF: a previous GDEF table of the font is replaced, or
removed if the project holds no glyph definition facts. If a build fails,
the font is left untouched.

	otf, _ := ot.Parse(fontBytes)
	err := builder.AddVOLT(otf, vtpFile, "MyFont.vtp")

Builders are not safe for concurrent use. Each build needs its own Builder.
*/
package builder

import (
	"io"
	"strings"

	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
	"github.com/npillmayer/fontvolt/core/font/opentype/otl"
	"github.com/npillmayer/fontvolt/volt"
	"github.com/npillmayer/fontvolt/volt/ast"
	"github.com/npillmayer/fontvolt/volt/parser"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontvolt.volt'
func tracer() tracing.Trace {
	return tracing.Select("fontvolt.volt")
}

// GDEF is the tag of the table created by a Builder.
var GDEF = ot.T("GDEF")

// Builder builds the GDEF table of a font from a VOLT rule tree.
type Builder struct {
	font         *ot.Font
	file         *ast.File
	glyphClasses *ClassAssigner
	facts        *FactAccumulator
	// Inferrer, if set, is asked for glyph classes when the rule tree
	// does not classify any glyph.
	Inferrer ClassInferrer
}

// NewBuilder creates a builder for font and a parsed VOLT project.
func NewBuilder(font *ot.Font, file *ast.File) *Builder {
	return &Builder{font: font, file: file}
}

// AddVOLT parses a VOLT project from r and builds the GDEF table of font.
func AddVOLT(font *ot.Font, r io.Reader, filename string) error {
	file, err := parser.Parse(r, filename)
	if err != nil {
		return err
	}
	return NewBuilder(font, file).Build()
}

// AddVOLTFromString is AddVOLT for a VOLT project held in a string.
func AddVOLTFromString(font *ot.Font, text string) error {
	return AddVOLT(font, strings.NewReader(text), "")
}

// Build runs the rule tree and installs the synthesized GDEF table in the
// font. If there are no glyph definition facts, an existing GDEF table
// is removed.
func (b *Builder) Build() error {
	if b.font == nil || b.file == nil {
		return core.Error(core.EINTERNAL, "builder needs a font and a VOLT project")
	}
	b.glyphClasses = NewClassAssigner(volt.GlyphClassNamespace)
	b.facts = NewFactAccumulator()
	if err := b.file.Build(b); err != nil {
		tracer().Errorf("VOLT build failed: %v", err)
		return err
	}
	if b.glyphClasses.Len() == 0 && b.Inferrer != nil {
		if err := b.Inferrer.InferGlyphClasses(b.glyphClasses); err != nil {
			return err
		}
	}
	gdef, err := synthesize(b.glyphClasses, b.facts, otl.NewGlyphMap(b.font.GlyphOrder()))
	if err != nil {
		tracer().Errorf("GDEF synthesis failed: %v", err)
		return err
	}
	if gdef == nil {
		if b.font.DeleteTable(GDEF) {
			tracer().Infof("removed GDEF table from font")
		}
		return nil
	}
	b.font.SetTable(gdef)
	tracer().Infof("installed GDEF table version 0x%08x", gdef.Version)
	return nil
}

// GlyphClasses returns the glyph classes of the last build.
func (b *Builder) GlyphClasses() *ClassAssigner {
	return b.glyphClasses
}

// Facts returns the glyph definition facts of the last build.
func (b *Builder) Facts() *FactAccumulator {
	return b.facts
}

// --- ast.Target ------------------------------------------------------------

// SetGlyphClass assigns a GDEF glyph class to glyph.
func (b *Builder) SetGlyphClass(loc volt.Location, glyph string, class int) error {
	return b.glyphClasses.Assign(loc, glyph, class)
}

// AddAttachPoints records attachment points of glyph.
func (b *Builder) AddAttachPoints(glyph string, points []int) {
	b.facts.AddAttachPoints(glyph, points)
}

// AddLigatureCaretCoords records caret coordinates of ligature glyph.
func (b *Builder) AddLigatureCaretCoords(glyph string, coords []int) {
	b.facts.AddLigatureCaretCoords(glyph, coords)
}

// AddLigatureCaretPoints records caret points of ligature glyph.
func (b *Builder) AddLigatureCaretPoints(glyph string, points []int) {
	b.facts.AddLigatureCaretPoints(glyph, points)
}

// SetMarkAttachClass assigns a mark attachment class to glyph.
func (b *Builder) SetMarkAttachClass(loc volt.Location, glyph string, class int) error {
	return b.facts.SetMarkAttachClass(loc, glyph, class)
}

// SetMarkFilterSet records a mark filtering set.
func (b *Builder) SetMarkFilterSet(loc volt.Location, glyphs []string, id int) error {
	return b.facts.SetMarkFilterSet(loc, glyphs, id)
}

var _ ast.Target = &Builder{}
