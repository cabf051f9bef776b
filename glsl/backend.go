// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/uniforms/location"
)

// Version represents a GLSL version.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool // true for GLSL ES (OpenGL ES / WebGL)
}

// Common GLSL versions.
var (
	// Desktop OpenGL versions
	Version330 = Version{Major: 3, Minor: 30, ES: false} // OpenGL 3.3 Core
	Version410 = Version{Major: 4, Minor: 10, ES: false} // OpenGL 4.1
	Version430 = Version{Major: 4, Minor: 30, ES: false} // OpenGL 4.3 (explicit uniform locations)
	Version450 = Version{Major: 4, Minor: 50, ES: false} // OpenGL 4.5
	Version460 = Version{Major: 4, Minor: 60, ES: false} // OpenGL 4.6

	// OpenGL ES / WebGL versions
	VersionES300 = Version{Major: 3, Minor: 0, ES: true}  // ES 3.0 / WebGL 2.0
	VersionES310 = Version{Major: 3, Minor: 10, ES: true} // ES 3.1
	VersionES320 = Version{Major: 3, Minor: 20, ES: true} // ES 3.2
)

// String returns the version as a GLSL version directive value.
func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("%d%02d es", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d%02d core", v.Major, v.Minor)
}

// VersionNumber returns just the numeric version (e.g., "330", "300").
func (v Version) VersionNumber() string {
	return fmt.Sprintf("%d%02d", v.Major, v.Minor)
}

// versionLessThan reports whether Major*100+Minor is below number.
func (v Version) versionLessThan(number int) bool {
	return int(v.Major)*100+int(v.Minor) < number
}

// SupportsExplicitUniformLocation reports whether uniforms may carry a
// layout(location = N) qualifier: ES 3.10 and GL 4.30 onwards.
func (v Version) SupportsExplicitUniformLocation() bool {
	if v.ES {
		return !v.versionLessThan(310)
	}
	return !v.versionLessThan(430)
}

// Options configures GLSL declaration output.
type Options struct {
	// LangVersion is the target GLSL version.
	// Defaults to VersionES310 if zero.
	LangVersion Version

	// ForceHighPrecision selects highp instead of mediump in the ES
	// precision statements.
	ForceHighPrecision bool
}

// DefaultOptions returns sensible default options for GLSL generation.
func DefaultOptions() Options {
	return Options{
		LangVersion:        VersionES310,
		ForceHighPrecision: true,
	}
}

// WriteUniforms returns the GLSL declarations of the default uniform block
// described by alloc: the version directive, precision statements for ES,
// the structure definitions and one uniform declaration per top-level
// uniform.
//
// When the version supports explicit uniform locations every non-struct
// uniform is written with its assigned location, so a GL implementation
// compiling the output reproduces the allocation. Structures keep a
// location qualifier only when they were declared with one.
func WriteUniforms(alloc *location.Allocation, options Options) (string, error) {
	if options.LangVersion.Major == 0 {
		options.LangVersion = VersionES310
	}

	w := newWriter(alloc, &options)
	if err := w.writeModule(); err != nil {
		return "", fmt.Errorf("glsl: %w", err)
	}
	return w.String(), nil
}
