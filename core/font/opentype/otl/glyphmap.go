package otl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/fontvolt/core/font/opentype/ot"
)

// GlyphLookup resolves glyph names to glyph indices.
// Implementations return an error wrapping ErrUnknownGlyph for names not known.
type GlyphLookup interface {
	GlyphIndex(name string) (ot.GlyphIndex, error)
}

// GlyphMap is a GlyphLookup for a font's glyph order.
// Names are kept in a trie, which lets GlyphMap propose similar names for
// unknown glyphs.
type GlyphMap struct {
	names *trie.Trie
	order []string
}

const maxSuggestions = 3

// NewGlyphMap creates a glyph lookup from a glyph order, i.e. a slice of glyph
// names indexed by glyph index. If a name occurs more than once, the first
// occurence wins.
func NewGlyphMap(glyphOrder []string) *GlyphMap {
	gm := &GlyphMap{names: trie.New(), order: glyphOrder}
	for i, name := range glyphOrder {
		if i > 0xffff {
			tracer().Errorf("glyph order exceeds 65536 glyphs, ignoring rest")
			break
		}
		if name == "" {
			continue
		}
		if _, exists := gm.names.Find(name); exists {
			tracer().Infof("duplicate glyph name %q at index %d", name, i)
			continue
		}
		gm.names.Add(name, ot.GlyphIndex(i))
	}
	return gm
}

// GlyphIndex returns the glyph index for a glyph name.
func (gm *GlyphMap) GlyphIndex(name string) (ot.GlyphIndex, error) {
	if node, ok := gm.names.Find(name); ok {
		if gid, ok := node.Meta().(ot.GlyphIndex); ok {
			return gid, nil
		}
	}
	hint := ""
	if sugg := gm.Suggest(name); len(sugg) > 0 {
		hint = fmt.Sprintf(" (did you mean %s?)", strings.Join(sugg, ", "))
	}
	return 0, core.WrapError(ErrUnknownGlyph, core.EMISSING,
		"glyph %q not found in glyph order%s", name, hint)
}

// GlyphName returns the name of a glyph, or "" if gid is out of range.
func (gm *GlyphMap) GlyphName(gid ot.GlyphIndex) string {
	if int(gid) >= len(gm.order) {
		return ""
	}
	return gm.order[gid]
}

// Len returns the number of glyphs in the glyph order.
func (gm *GlyphMap) Len() int {
	return len(gm.order)
}

// Suggest returns up to three glyph names sharing the base name of name,
// i.e. the part before the first '.' (glyph names like "a.sc" or "a.alt1").
func (gm *GlyphMap) Suggest(name string) []string {
	base := name
	if i := strings.IndexByte(name, '.'); i > 0 {
		base = name[:i]
	}
	if base == "" {
		return nil
	}
	sugg := gm.names.PrefixSearch(base)
	sort.Strings(sugg)
	if len(sugg) > maxSuggestions {
		sugg = sugg[:maxSuggestions]
	}
	return sugg
}

var _ GlyphLookup = &GlyphMap{}
