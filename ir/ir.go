package ir

import (
	"math"

	"github.com/gogpu/gputypes"
)

// ShaderStages is the set of stages a declaration appears in.
type ShaderStages = gputypes.ShaderStages

// Type is a closed variant describing the type of a uniform.
//
// The implementations are ScalarType, VectorType, MatrixType, SamplerType
// and StructType.
type Type interface {
	typeInner()
}

// ScalarType represents scalar types.
type ScalarType struct {
	Kind ScalarKind
}

func (ScalarType) typeInner() {}

// ScalarKind represents scalar type kinds.
type ScalarKind uint8

const (
	ScalarSint  ScalarKind = iota // Signed integer
	ScalarUint                    // Unsigned integer
	ScalarFloat                   // Floating point
	ScalarBool                    // Boolean
)

// String returns the scalar kind name.
func (k ScalarKind) String() string {
	switch k {
	case ScalarSint:
		return "int"
	case ScalarUint:
		return "uint"
	case ScalarFloat:
		return "float"
	case ScalarBool:
		return "bool"
	default:
		return "unknown"
	}
}

// VectorType represents vector types.
type VectorType struct {
	Size   VectorSize
	Scalar ScalarType
}

func (VectorType) typeInner() {}

// VectorSize represents vector sizes.
type VectorSize uint8

const (
	Vec2 VectorSize = 2
	Vec3 VectorSize = 3
	Vec4 VectorSize = 4
)

// MatrixType represents matrix types.
// A matCxR has C columns of R components each.
type MatrixType struct {
	Columns VectorSize
	Rows    VectorSize
	Scalar  ScalarType
}

func (MatrixType) typeInner() {}

// SamplerType represents opaque sampler types (sampler2D, isamplerCube, ...).
type SamplerType struct {
	Dim     ImageDimension
	Arrayed bool
	Shadow  bool
	// Sampled is the kind returned by texture lookups.
	Sampled ScalarKind
}

func (SamplerType) typeInner() {}

// ImageDimension represents image dimensions.
type ImageDimension uint8

const (
	Dim2D ImageDimension = iota
	Dim3D
	DimCube
)

// StructType represents a structure type.
type StructType struct {
	Name    string
	Members []StructMember
}

func (StructType) typeInner() {}

// StructMember represents a struct member.
type StructMember struct {
	Name      string
	Type      Type
	ArraySize uint32 // 0 or 1: not an array
}

// Shape describes how one element of a non-struct type is laid out.
type Shape struct {
	Kind ScalarKind
	// Components is the number of components per column.
	Components int
	// Columns is 1 for everything except matrices.
	Columns int
}

// Len returns the number of scalar components in one element.
func (s Shape) Len() int {
	return s.Components * s.Columns
}

// IsMatrix reports whether the shape has more than one column.
func (s Shape) IsMatrix() bool {
	return s.Columns > 1
}

// ShapeOf returns the shape of a non-struct type.
// Samplers store their texture unit as a signed integer.
// ok is false for structures and nil types.
func ShapeOf(t Type) (shape Shape, ok bool) {
	switch t := t.(type) {
	case ScalarType:
		return Shape{Kind: t.Kind, Components: 1, Columns: 1}, true
	case VectorType:
		return Shape{Kind: t.Scalar.Kind, Components: int(t.Size), Columns: 1}, true
	case MatrixType:
		return Shape{Kind: t.Scalar.Kind, Components: int(t.Rows), Columns: int(t.Columns)}, true
	case SamplerType:
		return Shape{Kind: ScalarSint, Components: 1, Columns: 1}, true
	case StructType:
		return Shape{}, false
	default:
		return Shape{}, false
	}
}

// IsSampler reports whether t is an opaque sampler type.
func IsSampler(t Type) bool {
	_, ok := t.(SamplerType)
	return ok
}

// ScalarValue is a single scalar tagged with its kind.
// Bits holds the IEEE-754 pattern for floats and the integer
// representation otherwise.
type ScalarValue struct {
	Bits uint64 // Bit representation
	Kind ScalarKind
}

// Float returns a float ScalarValue.
func Float(f float32) ScalarValue {
	return ScalarValue{Bits: uint64(math.Float32bits(f)), Kind: ScalarFloat}
}

// Sint returns a signed integer ScalarValue.
func Sint(i int32) ScalarValue {
	return ScalarValue{Bits: uint64(uint32(i)), Kind: ScalarSint}
}

// Uint returns an unsigned integer ScalarValue.
func Uint(u uint32) ScalarValue {
	return ScalarValue{Bits: uint64(u), Kind: ScalarUint}
}

// Bool returns a boolean ScalarValue.
func Bool(b bool) ScalarValue {
	if b {
		return ScalarValue{Bits: 1, Kind: ScalarBool}
	}
	return ScalarValue{Kind: ScalarBool}
}

// Float32 reinterprets the bits as a float32.
func (v ScalarValue) Float32() float32 {
	return math.Float32frombits(uint32(v.Bits))
}

// Int32 reinterprets the bits as an int32.
func (v ScalarValue) Int32() int32 {
	return int32(uint32(v.Bits))
}

// Uint32 reinterprets the bits as a uint32.
func (v ScalarValue) Uint32() uint32 {
	return uint32(v.Bits)
}
