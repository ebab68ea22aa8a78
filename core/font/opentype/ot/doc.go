/*
Package ot provides a minimal container for OpenType fonts and read access to
the layout table this module cares about, the Glyph Definition table (GDEF).

Package `ot` does not interpret most tables of a font. A font read with `Parse`
keeps every table as an opaque binary segment, together with the font's
glyph order (glyph names, as found in the 'post' table). Clients may replace
or remove tables, and finally write the font back to its binary form:

	otf, err := ot.Parse(fontdata)
	…
	otf.SetTable(mytable)                // replaces a table with the same tag
	otf.DeleteTable(ot.T("GDEF"))        // removes a table, if present
	data, err := otf.Binary()            // compiles every table and writes an SFNT

Tables are anything implementing interface `Table`, i.e. anything able to
compile itself to bytes. Building tables is the job of sister packages.

For verification purposes, package `ot` is able to read GDEF tables:

	gdef, err := ot.ParseGDef(gdefdata)
	clz := gdef.GlyphClassDef.Lookup(glyph)

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/schuko/tracing"
)

// Valuable resource:
// https://docs.microsoft.com/en-us/typography/opentype/spec/gdef

// tracer writes to trace with key 'fontvolt.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontvolt.fonts")
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(x string) error {
	return core.Error(core.EINVALID, "OpenType font format: %s", x)
}
