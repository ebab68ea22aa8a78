/*
Package otl builds OpenType layout tables from glyph-name based data.

The functions of this package receive mappings keyed by glyph names, resolve
the names with the help of a glyph order, and produce sub-table structures
in glyph index space:

	glyphs := otl.NewGlyphMap(otf.GlyphOrder())
	attach, err := otl.BuildAttachList(map[string][]int{"A": {3, 7}}, glyphs)

Sub-table builders return nil for empty input, as OpenType represents absent
sub-tables with NULL offsets. All sub-tables are assembled into a GDefTable,
which implements ot.Table and compiles to the binary GDEF format.

Glyphs in builder results are always ordered by ascending glyph index, as is
required by the coverage tables of the binary format.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otl

import (
	"errors"

	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontvolt.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontvolt.fonts")
}

// ErrUnknownGlyph is wrapped by errors reporting glyph names which are not
// part of the glyph order.
var ErrUnknownGlyph = errors.New("unknown glyph")

// errValue produces user level errors for values not representable in OpenType.
func errValue(format string, v ...interface{}) error {
	return core.Error(core.EINVALID, format, v...)
}
