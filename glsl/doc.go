// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl writes the default uniform block of a linked program as
// GLSL declarations.
//
// The output carries the locations chosen by the location package, so a
// GL implementation compiling it reproduces the same allocation:
//
//   - GLSL ES 3.00 / GLSL 3.30: plain uniform declarations
//   - GLSL ES 3.10+ / GLSL 4.30+: layout(location = N) qualifiers
//
// # Basic Usage
//
//	alloc, _ := location.Allocate(decls)
//	source, err := glsl.WriteUniforms(alloc, glsl.Options{
//	    LangVersion: glsl.VersionES310,
//	})
//
// # Type Names
//
// TypeName and ParseType convert between IR types and GLSL type names
// (vec3, mat3x2, isampler2DArray, ...).
//
// # Reserved Words
//
// Uniform, structure and member names that are GLSL reserved words are
// rejected rather than renamed, since renaming would change the names
// callers look locations up by.
package glsl
