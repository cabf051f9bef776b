package ir

import (
	"math"
	"math/bits"
	"strconv"
)

// Declaration is one default-block uniform as emitted by the linker.
type Declaration struct {
	// Name is the declared name. After Flatten it is a dotted/bracketed
	// path such as "uS.f" or "uArr[1].m".
	Name string

	Type Type

	// ArraySize is the number of array elements; 0 and 1 both mean
	// "not an array".
	ArraySize uint32

	// Location is the explicit location qualifier, or nil.
	Location *int32

	// Stages is the set of shader stages declaring the uniform.
	Stages ShaderStages
}

// Loc returns a pointer to an explicit location, for use in Declaration
// literals.
func Loc(location int32) *int32 {
	return &location
}

// Elements returns the number of array elements, at least 1.
func (d Declaration) Elements() int {
	if d.ArraySize <= 1 {
		return 1
	}
	return int(d.ArraySize)
}

// IsArray reports whether the declaration is an array.
func (d Declaration) IsArray() bool {
	return d.ArraySize > 1
}

// HasLocation reports whether the declaration carries an explicit location.
func (d Declaration) HasLocation() bool {
	return d.Location != nil
}

// Flatten expands a structure declaration into its leaf declarations.
//
// Leaves are named with the member path ("uS.f", "uS[1].f") and keep the
// member's own array size. When the structure has an explicit location the
// leaves receive consecutive explicit locations, each one starting where
// the previous leaf's span ends. Non-struct declarations are returned as is.
func Flatten(decl Declaration) []Declaration {
	st, ok := decl.Type.(StructType)
	if !ok {
		return []Declaration{decl}
	}

	var next *int32
	if decl.Location != nil {
		next = Loc(*decl.Location)
	}

	var out []Declaration
	for e := 0; e < decl.Elements(); e++ {
		prefix := decl.Name
		if decl.IsArray() {
			prefix += "[" + strconv.Itoa(e) + "]"
		}
		for _, m := range st.Members {
			child := Declaration{
				Name:      prefix + "." + m.Name,
				Type:      m.Type,
				ArraySize: m.ArraySize,
				Stages:    decl.Stages,
			}
			if next != nil {
				child.Location = Loc(*next)
			}
			leaves := Flatten(child)
			if next != nil {
				for _, leaf := range leaves {
					*next += int32(leaf.Elements()) //nolint:gosec // G115: bounded by validated array sizes
				}
			}
			out = append(out, leaves...)
		}
	}
	return out
}

// LocationSpan returns the number of locations a declaration reserves once
// flattened. The count saturates at math.MaxUint64, so it can be compared
// against a location budget before flattening.
func LocationSpan(decl Declaration) uint64 {
	elements := uint64(decl.Elements()) //nolint:gosec // G115: Elements is at least 1
	st, ok := decl.Type.(StructType)
	if !ok {
		return elements
	}
	var n uint64
	for _, m := range st.Members {
		sum, carry := bits.Add64(n, LocationSpan(Declaration{Type: m.Type, ArraySize: m.ArraySize}), 0)
		if carry != 0 {
			return math.MaxUint64
		}
		n = sum
	}
	hi, lo := bits.Mul64(n, elements)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
