package ir

import (
	"fmt"
	"strconv"
)

// DeclarationRegistry merges the per-stage declarations of a program.
// A uniform declared identically in several stages collapses to a single
// declaration whose Stages is the union of all of them.
type DeclarationRegistry struct {
	decls  []Declaration
	byName map[string]int
	keys   []string
	keyBuf []byte // reusable buffer for building type keys
}

// NewDeclarationRegistry creates an empty registry.
func NewDeclarationRegistry() *DeclarationRegistry {
	return &DeclarationRegistry{
		decls:  make([]Declaration, 0, 16),
		byName: make(map[string]int, 16),
		keyBuf: make([]byte, 0, 64),
	}
}

// Add merges decl into the registry.
//
// A redeclaration must agree on type and array size, otherwise a
// TypeMismatchAcrossStages error is returned. An explicit location given in
// only one stage applies to the merged declaration; two different explicit
// locations are a ConflictingLocation error.
func (r *DeclarationRegistry) Add(decl Declaration) error {
	key := r.declKey(decl)

	idx, exists := r.byName[decl.Name]
	if !exists {
		if decl.Location != nil {
			decl.Location = Loc(*decl.Location)
		}
		r.byName[decl.Name] = len(r.decls)
		r.decls = append(r.decls, decl)
		r.keys = append(r.keys, key)
		return nil
	}

	merged := &r.decls[idx]
	if r.keys[idx] != key {
		return NewLinkError(ErrTypeMismatchAcrossStages,
			fmt.Sprintf("declared as %s in %s and as %s in %s", r.keys[idx], merged.Stages, key, decl.Stages),
			decl.Name)
	}

	switch {
	case decl.Location == nil:
	case merged.Location == nil:
		merged.Location = Loc(*decl.Location)
	case *merged.Location != *decl.Location:
		return NewLinkError(ErrConflictingLocation,
			fmt.Sprintf("explicit locations %d and %d disagree", *merged.Location, *decl.Location),
			decl.Name)
	}
	merged.Stages |= decl.Stages
	return nil
}

// Declarations returns the merged declarations in first-seen order.
func (r *DeclarationRegistry) Declarations() []Declaration {
	return r.decls
}

// declKey combines the type key with the array size.
func (r *DeclarationRegistry) declKey(decl Declaration) string {
	key := r.normalizeType(decl.Type)
	if decl.IsArray() {
		key += "[" + strconv.FormatUint(uint64(decl.ArraySize), 10) + "]"
	}
	return key
}

// normalizeType creates a unique key for a type based on its structure.
// Two structurally identical types will produce the same key.
// Uses a reusable byte buffer to avoid fmt.Sprintf allocations for common types.
func (r *DeclarationRegistry) normalizeType(t Type) string {
	b := r.keyBuf[:0]

	switch t := t.(type) {
	case ScalarType:
		b = append(b, t.Kind.String()...)
		r.keyBuf = b
		return string(b)

	case VectorType:
		b = append(b, t.Scalar.Kind.String()...)
		b = append(b, "vec"...)
		b = strconv.AppendUint(b, uint64(t.Size), 10)
		r.keyBuf = b
		return string(b)

	case MatrixType:
		b = append(b, t.Scalar.Kind.String()...)
		b = append(b, "mat"...)
		b = strconv.AppendUint(b, uint64(t.Columns), 10)
		b = append(b, 'x')
		b = strconv.AppendUint(b, uint64(t.Rows), 10)
		r.keyBuf = b
		return string(b)

	case SamplerType:
		return fmt.Sprintf("sampler:%d:%v:%v:%s", t.Dim, t.Arrayed, t.Shadow, t.Sampled)

	case StructType:
		// Recursive calls clobber keyBuf, so build with string concat.
		key := "struct " + t.Name + "{"
		for _, m := range t.Members {
			key += m.Name + ":" + r.normalizeType(m.Type)
			if m.ArraySize > 1 {
				key += "[" + strconv.FormatUint(uint64(m.ArraySize), 10) + "]"
			}
			key += ";"
		}
		return key + "}"

	default:
		return fmt.Sprintf("unknown:%T", t)
	}
}
