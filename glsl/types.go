// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/uniforms/ir"
)

const (
	glslTypeFloat   = "float"
	glslTypeInt     = "int"
	glslTypeUint    = "uint"
	glslTypeBool    = "bool"
	glslTypeSampler = "sampler"
)

// TypeName returns the GLSL name of an IR type. Structures use their
// declared name.
func TypeName(typ ir.Type) string {
	switch t := typ.(type) {
	case ir.ScalarType:
		return scalarToGLSL(t)
	case ir.VectorType:
		return vectorToGLSL(t)
	case ir.MatrixType:
		return matrixToGLSL(t)
	case ir.SamplerType:
		return samplerToGLSL(t)
	case ir.StructType:
		return t.Name
	default:
		return "unknown_type"
	}
}

// scalarToGLSL returns the GLSL name for a scalar type.
func scalarToGLSL(t ir.ScalarType) string {
	switch t.Kind {
	case ir.ScalarBool:
		return glslTypeBool
	case ir.ScalarSint:
		return glslTypeInt
	case ir.ScalarUint:
		return glslTypeUint
	case ir.ScalarFloat:
		return glslTypeFloat
	default:
		return glslTypeInt
	}
}

// vectorPrefix returns the vector/sampler prefix of a scalar kind.
func vectorPrefix(kind ir.ScalarKind) string {
	switch kind {
	case ir.ScalarBool:
		return "b"
	case ir.ScalarSint:
		return "i"
	case ir.ScalarUint:
		return "u"
	default:
		return ""
	}
}

// vectorToGLSL returns the GLSL name for a vector type.
func vectorToGLSL(t ir.VectorType) string {
	size := t.Size
	if size < 2 || size > 4 {
		size = 4 // Clamp to valid range
	}
	return fmt.Sprintf("%svec%d", vectorPrefix(t.Scalar.Kind), size)
}

// matrixToGLSL returns the GLSL name for a matrix type.
func matrixToGLSL(t ir.MatrixType) string {
	cols := t.Columns
	rows := t.Rows

	if cols < 2 || cols > 4 {
		cols = 4
	}
	if rows < 2 || rows > 4 {
		rows = 4
	}

	if cols == rows {
		return fmt.Sprintf("mat%d", cols)
	}
	return fmt.Sprintf("mat%dx%d", cols, rows)
}

// samplerToGLSL returns the GLSL name for a combined sampler type.
func samplerToGLSL(t ir.SamplerType) string {
	var b strings.Builder
	if t.Sampled != ir.ScalarBool {
		b.WriteString(vectorPrefix(t.Sampled))
	}
	b.WriteString(glslTypeSampler)
	switch t.Dim {
	case ir.Dim3D:
		b.WriteString("3D")
	case ir.DimCube:
		b.WriteString("Cube")
	default:
		b.WriteString("2D")
	}
	if t.Arrayed {
		b.WriteString("Array")
	}
	if t.Shadow {
		b.WriteString("Shadow")
	}
	return b.String()
}

// hasDefaultPrecision reports whether a GLSL ES sampler type has a
// predeclared precision in every shader stage.
func hasDefaultPrecision(name string) bool {
	switch name {
	case "sampler2D", "samplerCube":
		return true
	default:
		return false
	}
}

// ParseType parses a GLSL type name. Names not naming a built-in type are
// looked up in structs.
func ParseType(name string, structs map[string]ir.StructType) (ir.Type, error) {
	switch name {
	case glslTypeFloat:
		return ir.ScalarType{Kind: ir.ScalarFloat}, nil
	case glslTypeInt:
		return ir.ScalarType{Kind: ir.ScalarSint}, nil
	case glslTypeUint:
		return ir.ScalarType{Kind: ir.ScalarUint}, nil
	case glslTypeBool:
		return ir.ScalarType{Kind: ir.ScalarBool}, nil
	}

	if t, ok := parseVector(name); ok {
		return t, nil
	}
	if t, ok := parseMatrix(name); ok {
		return t, nil
	}
	if t, ok := parseSampler(name); ok {
		return t, nil
	}
	if st, ok := structs[name]; ok {
		return st, nil
	}
	return nil, fmt.Errorf("glsl: unknown type %q", name)
}

func parseSize(s string) (ir.VectorSize, bool) {
	switch s {
	case "2":
		return ir.Vec2, true
	case "3":
		return ir.Vec3, true
	case "4":
		return ir.Vec4, true
	default:
		return 0, false
	}
}

func parseVector(name string) (ir.Type, bool) {
	kind := ir.ScalarFloat
	rest := name
	switch {
	case strings.HasPrefix(name, "bvec"):
		kind, rest = ir.ScalarBool, name[1:]
	case strings.HasPrefix(name, "ivec"):
		kind, rest = ir.ScalarSint, name[1:]
	case strings.HasPrefix(name, "uvec"):
		kind, rest = ir.ScalarUint, name[1:]
	}
	size, ok := strings.CutPrefix(rest, "vec")
	if !ok {
		return nil, false
	}
	n, ok := parseSize(size)
	if !ok {
		return nil, false
	}
	return ir.VectorType{Size: n, Scalar: ir.ScalarType{Kind: kind}}, true
}

func parseMatrix(name string) (ir.Type, bool) {
	dims, ok := strings.CutPrefix(name, "mat")
	if !ok {
		return nil, false
	}
	float := ir.ScalarType{Kind: ir.ScalarFloat}

	if c, r, found := strings.Cut(dims, "x"); found {
		cols, ok1 := parseSize(c)
		rows, ok2 := parseSize(r)
		if !ok1 || !ok2 {
			return nil, false
		}
		return ir.MatrixType{Columns: cols, Rows: rows, Scalar: float}, true
	}
	n, ok := parseSize(dims)
	if !ok {
		return nil, false
	}
	return ir.MatrixType{Columns: n, Rows: n, Scalar: float}, true
}

func parseSampler(name string) (ir.Type, bool) {
	t := ir.SamplerType{Sampled: ir.ScalarFloat}
	rest := name
	switch {
	case strings.HasPrefix(rest, "isampler"):
		t.Sampled, rest = ir.ScalarSint, rest[1:]
	case strings.HasPrefix(rest, "usampler"):
		t.Sampled, rest = ir.ScalarUint, rest[1:]
	}
	rest, ok := strings.CutPrefix(rest, glslTypeSampler)
	if !ok {
		return nil, false
	}

	switch {
	case strings.HasPrefix(rest, "2D"):
		t.Dim, rest = ir.Dim2D, rest[2:]
	case strings.HasPrefix(rest, "3D"):
		t.Dim, rest = ir.Dim3D, rest[2:]
	case strings.HasPrefix(rest, "Cube"):
		t.Dim, rest = ir.DimCube, rest[4:]
	default:
		return nil, false
	}
	rest, t.Arrayed = strings.CutPrefix(rest, "Array")
	rest, t.Shadow = strings.CutPrefix(rest, "Shadow")
	if rest != "" {
		return nil, false
	}
	if t.Shadow && t.Sampled != ir.ScalarFloat {
		return nil, false
	}
	if t.Dim == ir.Dim3D && (t.Arrayed || t.Shadow) {
		return nil, false
	}
	return t, true
}
