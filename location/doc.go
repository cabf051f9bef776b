// Package location assigns default-block uniform locations at link time.
//
// Allocate merges per-stage declarations, flattens structures and hands out
// one location per array element (a matrix element occupies a single
// location; its columns are sub-locations addressed by the value store).
// Explicit location qualifiers are honoured first, the remaining uniforms
// fill the lowest free ranges.
//
//	alloc, err := location.Allocate(decls)
//	if err != nil {
//	    // *ir.LinkError: ConflictingLocation, TypeMismatchAcrossStages, ...
//	}
//	loc := alloc.LocationOf("uColor[2]")
//
// An Allocation never changes once returned.
package location
