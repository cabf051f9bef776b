package location

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/bits-and-blooms/bitset"

	"github.com/gogpu/uniforms/ir"
)

// DefaultMaxLocations is the minimum MAX_UNIFORM_LOCATIONS an
// implementation must expose.
const DefaultMaxLocations = 1024

// Options configures location allocation.
type Options struct {
	// MaxLocations bounds the location space [0, MaxLocations).
	// Defaults to DefaultMaxLocations if zero.
	MaxLocations uint32
}

// DefaultOptions returns the default allocation options.
func DefaultOptions() Options {
	return Options{MaxLocations: DefaultMaxLocations}
}

// Allocator assigns locations to the default uniform block of a program.
type Allocator struct {
	opts Options

	leaves   []ir.Declaration
	base     []Location
	occupied *bitset.BitSet
	owners   []int32 // leaf index per reserved location, -1 if free
}

// NewAllocator creates an allocator with the given options.
func NewAllocator(opts Options) *Allocator {
	if opts.MaxLocations == 0 {
		opts.MaxLocations = DefaultMaxLocations
	}
	return &Allocator{opts: opts}
}

// Allocate assigns locations with default options.
func Allocate(decls []ir.Declaration) (*Allocation, error) {
	return NewAllocator(DefaultOptions()).Allocate(decls)
}

// Allocate merges, validates and flattens decls, then assigns locations.
//
// Explicit locations are reserved first, in declaration order; any overlap
// between two spans fails the link whether or not the uniforms are used.
// The remaining leaves take the lowest free contiguous range, also in
// declaration order, so identical input always yields identical locations.
// On error no allocation is returned.
func (a *Allocator) Allocate(decls []ir.Declaration) (*Allocation, error) {
	registry := ir.NewDeclarationRegistry()
	for _, d := range decls {
		if err := registry.Add(d); err != nil {
			return nil, err
		}
	}
	merged := registry.Declarations()

	if errs := ir.Validate(merged); len(errs) > 0 {
		le := ir.NewLinkError(ir.ErrInvalidDeclaration, errs[0].Message, errs[0].Uniform)
		if len(errs) > 1 {
			le.Message = fmt.Sprintf("%s (and %d more errors)", errs[0].Message, len(errs)-1)
		}
		return nil, le
	}

	for _, d := range merged {
		if err := a.checkSpan(d); err != nil {
			return nil, err
		}
	}

	a.leaves = a.leaves[:0]
	for _, d := range merged {
		a.leaves = append(a.leaves, ir.Flatten(d)...)
	}
	a.base = make([]Location, len(a.leaves))
	a.occupied = bitset.New(uint(a.opts.MaxLocations))
	a.owners = a.owners[:0]

	for i, leaf := range a.leaves {
		if leaf.Location == nil {
			continue
		}
		if err := a.reserveExplicit(i, *leaf.Location); err != nil {
			return nil, err
		}
	}
	for i, leaf := range a.leaves {
		if leaf.Location != nil {
			continue
		}
		if err := a.reserveAuto(i); err != nil {
			return nil, err
		}
	}

	return a.freeze(merged), nil
}

// checkSpan rejects a declaration that cannot fit the location space, before
// it is flattened.
func (a *Allocator) checkSpan(d ir.Declaration) error {
	span := ir.LocationSpan(d)
	limit := uint64(a.opts.MaxLocations)
	if span <= limit {
		return nil
	}
	if d.Location != nil {
		return ir.NewLinkError(ir.ErrLocationOutOfRange,
			fmt.Sprintf("span of %d locations exceeds %d locations", span, limit),
			d.Name)
	}
	return ir.NewLinkError(ir.ErrTooManyLocations,
		fmt.Sprintf("needs %d locations, only %d exist", span, limit),
		d.Name)
}

// reserveExplicit claims [loc, loc+span) for leaf i.
func (a *Allocator) reserveExplicit(i int, loc int32) error {
	leaf := a.leaves[i]
	span := leaf.Elements()
	end := int64(loc) + int64(span)
	if end > int64(a.opts.MaxLocations) {
		return ir.NewLinkError(ir.ErrLocationOutOfRange,
			fmt.Sprintf("span [%d, %d) exceeds %d locations", loc, end, a.opts.MaxLocations),
			leaf.Name)
	}

	start := uint(loc) //nolint:gosec // G115: validated non-negative
	for l := start; l < start+uint(span); l++ {
		if a.occupied.Test(l) {
			other := a.leaves[a.owners[l]]
			return ir.NewLinkError(ir.ErrConflictingLocation,
				fmt.Sprintf("location %d is claimed by both", l),
				other.Name, leaf.Name)
		}
	}
	a.claim(i, start, span)
	return nil
}

// reserveAuto claims the lowest free range large enough for leaf i.
func (a *Allocator) reserveAuto(i int) error {
	leaf := a.leaves[i]
	span := uint(leaf.Elements())
	limit := uint(a.opts.MaxLocations)

	start := uint(0)
	for {
		free, ok := a.occupied.NextClear(start)
		if !ok || free+span > limit {
			return ir.NewLinkError(ir.ErrTooManyLocations,
				fmt.Sprintf("no %d consecutive free locations below %d", span, limit),
				leaf.Name)
		}
		used, found := a.occupied.NextSet(free)
		if !found || used >= free+span {
			a.claim(i, free, int(span))
			return nil
		}
		start = used + 1
	}
}

func (a *Allocator) claim(i int, start uint, span int) {
	end := int(start) + span
	for len(a.owners) < end {
		a.owners = append(a.owners, -1)
	}
	for l := int(start); l < end; l++ {
		a.occupied.Set(uint(l))
		a.owners[l] = safecast.MustConv[int32](i)
	}
	a.base[i] = Location(safecast.MustConv[int32](start))
}

// freeze builds the immutable allocation table.
func (a *Allocator) freeze(merged []ir.Declaration) *Allocation {
	leaves := make([]ir.Declaration, len(a.leaves))
	copy(leaves, a.leaves)
	uniforms := make([]ir.Declaration, len(merged))
	copy(uniforms, merged)

	table := make([]entry, len(a.owners))
	for l, owner := range a.owners {
		if owner < 0 {
			table[l] = entry{decl: -1}
			continue
		}
		table[l] = entry{
			decl:    owner,
			element: uint32(l - int(a.base[owner])), //nolint:gosec // G115: l >= base
		}
	}

	byName := make(map[string]int, len(leaves))
	for i, leaf := range leaves {
		byName[leaf.Name] = i
	}

	return &Allocation{
		uniforms: uniforms,
		leaves:   leaves,
		base:     append([]Location(nil), a.base...),
		table:    table,
		byName:   byName,
	}
}
