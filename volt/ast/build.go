package ast

import (
	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/fontvolt/volt"
)

// Build reports the facts of all statements of f to target, in source order.
// Groups are resolved on use, so a group may be referenced before its
// definition. The first error stops the build.
func (f *File) Build(target Target) error {
	res, err := newResolver(f)
	if err != nil {
		return err
	}
	for _, stmt := range f.Statements {
		switch s := stmt.(type) {
		case *GlyphDefinition:
			if s.Type == Unclassified {
				continue
			}
			if err := target.SetGlyphClass(s.Location, s.Name, s.Type.Class()); err != nil {
				return err
			}
		case *GroupDefinition:
			// resolved on use
		case *AttachDefinition:
			target.AddAttachPoints(s.Glyph, s.Points)
		case *LigCaretDefinition:
			if len(s.Coords) > 0 {
				target.AddLigatureCaretCoords(s.Glyph, s.Coords)
			}
			if len(s.Points) > 0 {
				target.AddLigatureCaretPoints(s.Glyph, s.Points)
			}
		case *MarkAttachClassDefinition:
			glyphs, err := res.expand(s.Glyphs)
			if err != nil {
				return err
			}
			for _, g := range glyphs {
				if err := target.SetMarkAttachClass(s.Location, g, s.Class); err != nil {
					return err
				}
			}
		case *MarkGlyphSetDefinition:
			glyphs, err := res.expand(s.Glyphs)
			if err != nil {
				return err
			}
			if err := target.SetMarkFilterSet(s.Location, glyphs, s.ID); err != nil {
				return err
			}
		default:
			return volt.Errorf(stmt.Loc(), core.EINTERNAL, "unknown statement type %T", stmt)
		}
	}
	tracer().Debugf("built %d VOLT statements of %s", len(f.Statements), f.Name)
	return nil
}

// Groups returns the group definitions of f by name.
func (f *File) Groups() map[string]*GroupDefinition {
	groups := make(map[string]*GroupDefinition)
	for _, stmt := range f.Statements {
		if g, ok := stmt.(*GroupDefinition); ok {
			if _, dup := groups[g.Name]; !dup {
				groups[g.Name] = g
			}
		}
	}
	return groups
}

// Expand resolves glyph selectors to glyph names, using the groups of f.
// Glyph names are returned in order of first occurrence, without duplicates.
func (f *File) Expand(selectors []Selector) ([]string, error) {
	res, err := newResolver(f)
	if err != nil {
		return nil, err
	}
	return res.expand(selectors)
}

// --- Group resolution ------------------------------------------------------

type resolver struct {
	groups   map[string]*GroupDefinition
	visiting map[string]bool
	cache    map[string][]string
}

func newResolver(f *File) (*resolver, error) {
	res := &resolver{
		groups:   make(map[string]*GroupDefinition),
		visiting: make(map[string]bool),
		cache:    make(map[string][]string),
	}
	for _, stmt := range f.Statements {
		g, ok := stmt.(*GroupDefinition)
		if !ok {
			continue
		}
		if prev, dup := res.groups[g.Name]; dup {
			return nil, volt.Errorf(g.Location, core.EINVALID,
				"group %q already defined at %s", g.Name, prev.Location)
		}
		res.groups[g.Name] = g
	}
	return res, nil
}

func (res *resolver) expand(selectors []Selector) ([]string, error) {
	var glyphs []string
	seen := make(map[string]bool)
	add := func(names ...string) {
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				glyphs = append(glyphs, n)
			}
		}
	}
	for _, sel := range selectors {
		names, err := res.resolve(sel)
		if err != nil {
			return nil, err
		}
		add(names...)
	}
	return glyphs, nil
}

func (res *resolver) resolve(sel Selector) ([]string, error) {
	switch s := sel.(type) {
	case *GlyphName:
		return []string{s.Name}, nil
	case *Enum:
		return res.expand(s.Items)
	case *GroupName:
		if names, ok := res.cache[s.Name]; ok {
			return names, nil
		}
		g, ok := res.groups[s.Name]
		if !ok {
			return nil, volt.Errorf(s.Location, core.EINVALID, "undefined group %q", s.Name)
		}
		if res.visiting[s.Name] {
			return nil, volt.Errorf(s.Location, core.EINVALID, "group %q contains itself", s.Name)
		}
		res.visiting[s.Name] = true
		var names []string
		var err error
		if g.Enum != nil {
			names, err = res.expand(g.Enum.Items)
		}
		delete(res.visiting, s.Name)
		if err != nil {
			return nil, err
		}
		res.cache[s.Name] = names
		return names, nil
	}
	return nil, volt.Errorf(sel.Loc(), core.EINTERNAL, "unknown selector type %T", sel)
}
