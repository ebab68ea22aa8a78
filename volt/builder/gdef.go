package builder

import (
	"github.com/npillmayer/fontvolt/core/font/opentype/otl"
)

// ClassInferrer contributes glyph classes from sources other than the glyph
// definitions of a VOLT project, e.g. from layout lookups. Candidates are
// recorded through the conflict-checked ClassAssigner.
type ClassInferrer interface {
	InferGlyphClasses(classes *ClassAssigner) error
}

// synthesize assembles a GDEF table from the facts of a finished build.
// It returns nil if there are no facts for any of the sub-tables.
// Glyph names are resolved by the sub-table encoders.
func synthesize(classes *ClassAssigner, facts *FactAccumulator, glyphs otl.GlyphLookup) (*otl.GDefTable, error) {
	gdef := &otl.GDefTable{}
	gdef.GlyphClassDef = otl.NewClassDef(classes.Classes())
	var err error
	if gdef.AttachList, err = otl.BuildAttachList(facts.AttachPoints(), glyphs); err != nil {
		return nil, err
	}
	gdef.LigCaretList, err = otl.BuildLigCaretList(facts.LigatureCaretCoords(),
		facts.LigatureCaretPoints(), glyphs)
	if err != nil {
		return nil, err
	}
	gdef.MarkAttachClassDef = otl.NewClassDef(facts.MarkAttachClasses())
	ids, sets := facts.MarkFilterSets()
	if gdef.MarkGlyphSetsDef, err = otl.BuildMarkGlyphSetsDef(sets, glyphs); err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		tracer().Debugf("mark glyph sets have ids %v", ids)
	}
	if gdef.MarkGlyphSetsDef != nil {
		gdef.Version = otl.GDefVersionExtended
	} else {
		gdef.Version = otl.GDefVersionBase
	}
	if gdef.IsEmpty() {
		tracer().Infof("no glyph definitions, GDEF table omitted")
		return nil, nil
	}
	return gdef, nil
}
