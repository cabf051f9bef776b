// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import "fmt"

// glslKeywords contains the GLSL words a uniform or structure may not be
// named after: keywords, type names and words reserved for future use.
// Based on GLSL 4.60 and GLSL ES 3.20.
var glslKeywords = map[string]struct{}{
	// Basic types
	"void": {}, "bool": {}, "int": {}, "uint": {}, "float": {}, "double": {},

	// Vector and matrix types
	"vec2": {}, "vec3": {}, "vec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"uvec2": {}, "uvec3": {}, "uvec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},
	"dvec2": {}, "dvec3": {}, "dvec4": {},
	"mat2": {}, "mat3": {}, "mat4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},

	// Opaque types
	"sampler": {}, "sampler2D": {}, "sampler3D": {}, "samplerCube": {},
	"sampler2DShadow": {}, "samplerCubeShadow": {},
	"sampler2DArray": {}, "sampler2DArrayShadow": {},
	"samplerCubeArray": {}, "samplerCubeArrayShadow": {},
	"isampler2D": {}, "isampler3D": {}, "isamplerCube": {}, "isampler2DArray": {}, "isamplerCubeArray": {},
	"usampler2D": {}, "usampler3D": {}, "usamplerCube": {}, "usampler2DArray": {}, "usamplerCubeArray": {},
	"atomic_uint": {},

	// Keywords
	"attribute": {}, "const": {}, "uniform": {}, "varying": {},
	"buffer": {}, "shared": {}, "coherent": {}, "volatile": {}, "restrict": {}, "readonly": {}, "writeonly": {},
	"layout": {}, "centroid": {}, "flat": {}, "smooth": {}, "noperspective": {},
	"patch": {}, "sample": {}, "subroutine": {},
	"break": {}, "continue": {}, "do": {}, "for": {}, "while": {}, "switch": {}, "case": {}, "default": {},
	"if": {}, "else": {},
	"in": {}, "out": {}, "inout": {},
	"true": {}, "false": {},
	"invariant": {}, "precise": {},
	"discard": {}, "return": {},
	"struct": {},

	// Precision qualifiers
	"lowp": {}, "mediump": {}, "highp": {}, "precision": {},

	// Reserved for future use
	"common": {}, "partition": {}, "active": {},
	"asm": {}, "class": {}, "union": {}, "enum": {}, "typedef": {}, "template": {}, "this": {},
	"resource": {}, "goto": {},
	"inline": {}, "noinline": {}, "public": {}, "static": {}, "extern": {}, "external": {}, "interface": {},
	"long": {}, "short": {}, "half": {}, "fixed": {}, "unsigned": {}, "superp": {},
	"input": {}, "output": {},
	"hvec2": {}, "hvec3": {}, "hvec4": {}, "fvec2": {}, "fvec3": {}, "fvec4": {},
	"filter": {}, "sizeof": {}, "cast": {}, "namespace": {}, "using": {},

	// Entry point
	"main": {},
}

// isKeyword checks if a name is a GLSL keyword or reserved word.
func isKeyword(name string) bool {
	_, ok := glslKeywords[name]
	return ok
}

// checkIdentifier rejects names GLSL reserves.
func checkIdentifier(name string) error {
	if isKeyword(name) {
		return fmt.Errorf("identifier %q is a reserved word", name)
	}
	return nil
}
