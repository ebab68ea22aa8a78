package builder

import (
	"github.com/npillmayer/fontvolt/volt"
)

type classAssignment struct {
	class int
	loc   volt.Location
}

// ClassAssigner records glyph classes of one namespace. The first assignment
// to a glyph wins; a later assignment of a different class is an error,
// repeating the same class is a no-op.
type ClassAssigner struct {
	namespace string
	assigned  map[string]classAssignment
}

// NewClassAssigner creates an empty assigner for a class namespace, i.e.
// volt.GlyphClassNamespace or volt.MarkAttachClassNamespace.
func NewClassAssigner(namespace string) *ClassAssigner {
	return &ClassAssigner{
		namespace: namespace,
		assigned:  make(map[string]classAssignment),
	}
}

// Assign records class for glyph. If glyph already has a different class,
// a *volt.ConflictingClassError is returned and the stored class is kept.
func (ca *ClassAssigner) Assign(loc volt.Location, glyph string, class int) error {
	if prev, ok := ca.assigned[glyph]; ok {
		if prev.class == class {
			return nil
		}
		tracer().Debugf("%s conflict for glyph %q: %d vs %d", ca.namespace, glyph, prev.class, class)
		return &volt.ConflictingClassError{
			Namespace:    ca.namespace,
			Glyph:        glyph,
			Class:        class,
			Location:     loc,
			PrevClass:    prev.class,
			PrevLocation: prev.loc,
		}
	}
	ca.assigned[glyph] = classAssignment{class: class, loc: loc}
	return nil
}

// Class returns the class of glyph and where it has been assigned.
func (ca *ClassAssigner) Class(glyph string) (int, volt.Location, bool) {
	a, ok := ca.assigned[glyph]
	return a.class, a.loc, ok
}

// Len returns the number of classified glyphs.
func (ca *ClassAssigner) Len() int {
	return len(ca.assigned)
}

// Classes returns a copy of the glyph to class mapping.
func (ca *ClassAssigner) Classes() map[string]int {
	classes := make(map[string]int, len(ca.assigned))
	for g, a := range ca.assigned {
		classes[g] = a.class
	}
	return classes
}
