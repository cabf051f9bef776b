// Package ir defines the linker-facing representation of a program's
// default uniform block.
//
// The IR is the boundary between an external shader linker and the
// location allocator:
//   - Types: a closed variant over scalars, vectors, matrices, samplers
//     and structures
//   - Declarations: one per default-block variable per shader stage
//   - DeclarationRegistry: merges identical declarations across stages
//   - Flatten: expands structure declarations into addressable leaves
//   - Validate: rejects malformed declarations before allocation
//
// # Structure
//
// A linker hands the allocator an ordered list of declarations such as
//
//	uniform float uniF;                    // Declaration{Name: "uniF", Type: ScalarType{Kind: ScalarFloat}}
//	uniform mat3x2 uniMat3x2[5];           // Declaration{Name: "uniMat3x2", Type: MatrixType{...}, ArraySize: 5}
//	layout(location=12) uniform S uS;      // Declaration{Name: "uS", Type: StructType{...}, Location: Loc(12)}
//
// Structure declarations never reach the allocator directly. Flatten turns
// uS into uS.f and uS.f2, each of which owns its own span of locations.
//
// # Scalar kinds
//
// Every non-struct type reduces to a Shape: a ScalarKind, a component count
// per column and a column count. Value conversion switches over ScalarKind
// exhaustively.
package ir
