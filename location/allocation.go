package location

import (
	"github.com/gogpu/uniforms/ir"
)

// Location is an opaque handle to one element of a default-block uniform.
type Location int32

// Invalid is returned by lookups that do not resolve to a uniform.
const Invalid Location = -1

// entry records the owner of one location.
type entry struct {
	decl    int32 // leaf index, -1 if the location is free
	element uint32
}

// Allocation is the immutable location map of a linked program.
// Every reserved location maps to exactly one (leaf declaration, element)
// pair.
type Allocation struct {
	uniforms []ir.Declaration // merged top-level declarations
	leaves   []ir.Declaration // flattened declarations, one per span
	base     []Location       // first location of each leaf
	table    []entry          // indexed by location
	byName   map[string]int
}

// LocationOf returns the location of a uniform name, or Invalid.
//
// The name is either a leaf name ("uniF", "uS.f", "uArr[1].m") or a leaf
// array name followed by an element index ("uColor[2]"). For arrays,
// LocationOf(name) and LocationOf(name+"[0]") are identical.
func (a *Allocation) LocationOf(name string) Location {
	if i, ok := a.byName[name]; ok {
		return a.base[i]
	}

	base, index, ok := splitArrayIndex(name)
	if !ok {
		return Invalid
	}
	i, ok := a.byName[base]
	if !ok {
		return Invalid
	}
	leaf := a.leaves[i]
	if !leaf.IsArray() || index >= leaf.Elements() {
		return Invalid
	}
	return a.base[i] + Location(index) //nolint:gosec // G115: index < ArraySize
}

// DeclarationAt returns the leaf declaration owning loc and the element
// index of loc within it.
func (a *Allocation) DeclarationAt(loc Location) (decl ir.Declaration, element uint32, ok bool) {
	i, element, ok := a.Owner(loc)
	if !ok {
		return ir.Declaration{}, 0, false
	}
	return a.leaves[i], element, true
}

// Owner returns the leaf index owning loc and the element index of loc.
func (a *Allocation) Owner(loc Location) (index int, element uint32, ok bool) {
	if loc < 0 || int(loc) >= len(a.table) {
		return 0, 0, false
	}
	e := a.table[loc]
	if e.decl < 0 {
		return 0, 0, false
	}
	return int(e.decl), e.element, true
}

// Remaining returns the number of elements from loc to the end of the
// owning array, including loc itself. It is 0 for unowned locations.
func (a *Allocation) Remaining(loc Location) int {
	i, element, ok := a.Owner(loc)
	if !ok {
		return 0
	}
	return a.leaves[i].Elements() - int(element)
}

// Base returns the first location of leaf i.
func (a *Allocation) Base(i int) Location {
	return a.base[i]
}

// Declarations returns the flattened leaf declarations in allocation order.
// Leaf i starts at Base(i).
func (a *Allocation) Declarations() []ir.Declaration {
	return a.leaves
}

// Uniforms returns the merged top-level declarations, before struct
// flattening.
func (a *Allocation) Uniforms() []ir.Declaration {
	return a.uniforms
}

// Len returns one past the highest reserved location.
func (a *Allocation) Len() int {
	return len(a.table)
}

// Reserved returns the number of reserved locations.
func (a *Allocation) Reserved() int {
	n := 0
	for _, e := range a.table {
		if e.decl >= 0 {
			n++
		}
	}
	return n
}
