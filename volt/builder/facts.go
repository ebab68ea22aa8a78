package builder

import (
	"sort"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/fontvolt/core"
	"github.com/npillmayer/fontvolt/volt"
)

// FactAccumulator collects glyph definition facts while a rule tree is built.
// Point and coordinate facts for a glyph are merged with set semantics.
// Mark attachment classes follow the conflict policy of ClassAssigner.
//
// A FactAccumulator belongs to a single build and must not be shared.
type FactAccumulator struct {
	attachPoints map[string]*treeset.Set
	caretCoords  map[string]*treeset.Set
	caretPoints  map[string]*treeset.Set
	markAttach   *ClassAssigner
	filterSets   *treemap.Map   // id → *markFilterSet
	filterSetIDs map[string]int // set key → id
}

type markFilterSet struct {
	glyphs []string // sorted
	loc    volt.Location
}

// NewFactAccumulator creates an empty accumulator.
func NewFactAccumulator() *FactAccumulator {
	return &FactAccumulator{
		attachPoints: make(map[string]*treeset.Set),
		caretCoords:  make(map[string]*treeset.Set),
		caretPoints:  make(map[string]*treeset.Set),
		markAttach:   NewClassAssigner(volt.MarkAttachClassNamespace),
		filterSets:   treemap.NewWithIntComparator(),
		filterSetIDs: make(map[string]int),
	}
}

// AddAttachPoints adds contour points to the attachment points of glyph.
func (fa *FactAccumulator) AddAttachPoints(glyph string, points []int) {
	addInts(fa.attachPoints, glyph, points)
}

// AddLigatureCaretCoords adds caret coordinates for ligature glyph.
func (fa *FactAccumulator) AddLigatureCaretCoords(glyph string, coords []int) {
	addInts(fa.caretCoords, glyph, coords)
}

// AddLigatureCaretPoints adds caret contour points for ligature glyph.
func (fa *FactAccumulator) AddLigatureCaretPoints(glyph string, points []int) {
	addInts(fa.caretPoints, glyph, points)
}

// SetMarkAttachClass assigns a mark attachment class to glyph.
func (fa *FactAccumulator) SetMarkAttachClass(loc volt.Location, glyph string, class int) error {
	return fa.markAttach.Assign(loc, glyph, class)
}

// SetMarkFilterSet records a set of glyphs as mark filtering set id.
// Recording the same set with the same id again is a no-op. A set may not
// carry two ids and an id may not denote two different sets.
func (fa *FactAccumulator) SetMarkFilterSet(loc volt.Location, glyphs []string, id int) error {
	set := frozenSet(glyphs)
	key := strings.Join(set, "\x00")
	if prevID, ok := fa.filterSetIDs[key]; ok {
		if prevID == id {
			return nil
		}
		prev, _ := fa.filterSets.Get(prevID)
		return volt.Errorf(loc, core.EINVALID, "mark glyph set %d repeats set %d from %s",
			id, prevID, prev.(*markFilterSet).loc)
	}
	if prev, found := fa.filterSets.Get(id); found {
		return volt.Errorf(loc, core.EINVALID, "mark glyph set %d already defined at %s",
			id, prev.(*markFilterSet).loc)
	}
	fa.filterSets.Put(id, &markFilterSet{glyphs: set, loc: loc})
	fa.filterSetIDs[key] = id
	return nil
}

// IsEmpty returns true if no fact has been recorded.
func (fa *FactAccumulator) IsEmpty() bool {
	return len(fa.attachPoints) == 0 && len(fa.caretCoords) == 0 && len(fa.caretPoints) == 0 &&
		fa.markAttach.Len() == 0 && fa.filterSets.Empty()
}

// AttachPoints returns the attachment points per glyph, ascending.
func (fa *FactAccumulator) AttachPoints() map[string][]int {
	return snapshot(fa.attachPoints)
}

// LigatureCaretCoords returns the caret coordinates per ligature glyph, ascending.
func (fa *FactAccumulator) LigatureCaretCoords() map[string][]int {
	return snapshot(fa.caretCoords)
}

// LigatureCaretPoints returns the caret points per ligature glyph, ascending.
func (fa *FactAccumulator) LigatureCaretPoints() map[string][]int {
	return snapshot(fa.caretPoints)
}

// MarkAttachClass returns the mark attachment class of glyph and where it
// has been assigned.
func (fa *FactAccumulator) MarkAttachClass(glyph string) (int, volt.Location, bool) {
	return fa.markAttach.Class(glyph)
}

// MarkAttachClasses returns the mark attachment class per glyph.
func (fa *FactAccumulator) MarkAttachClasses() map[string]int {
	return fa.markAttach.Classes()
}

// MarkFilterSets returns the recorded mark filtering sets in ascending order
// of their ids. Ids need not be consecutive.
func (fa *FactAccumulator) MarkFilterSets() (ids []int, sets [][]string) {
	it := fa.filterSets.Iterator()
	for it.Next() {
		ids = append(ids, it.Key().(int))
		sets = append(sets, it.Value().(*markFilterSet).glyphs)
	}
	return ids, sets
}

// --- Helpers ---------------------------------------------------------------

func addInts(m map[string]*treeset.Set, glyph string, values []int) {
	set, ok := m[glyph]
	if !ok {
		set = treeset.NewWithIntComparator()
		m[glyph] = set
	}
	for _, v := range values {
		set.Add(v)
	}
}

func snapshot(m map[string]*treeset.Set) map[string][]int {
	if len(m) == 0 {
		return nil
	}
	result := make(map[string][]int, len(m))
	for glyph, set := range m {
		values := make([]int, 0, set.Size())
		for _, v := range set.Values() {
			values = append(values, v.(int))
		}
		result[glyph] = values
	}
	return result
}

func frozenSet(glyphs []string) []string {
	set := make([]string, 0, len(glyphs))
	seen := make(map[string]bool, len(glyphs))
	for _, g := range glyphs {
		if !seen[g] {
			seen[g] = true
			set = append(set, g)
		}
	}
	sort.Strings(set)
	return set
}
