// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/uniforms/ir"
	"github.com/gogpu/uniforms/location"
)

// Writer generates GLSL uniform declarations from a location allocation.
type Writer struct {
	alloc   *location.Allocation
	options *Options

	// Output buffer
	out strings.Builder

	// Current indentation level
	indent int

	// Structure definitions in dependency order
	structs   []ir.StructType
	structIdx map[string]int

	// ES sampler types that need a precision statement
	samplers    []string
	samplerSeen map[string]struct{}
}

// newWriter creates a new GLSL writer.
func newWriter(alloc *location.Allocation, options *Options) *Writer {
	return &Writer{
		alloc:       alloc,
		options:     options,
		structIdx:   make(map[string]int),
		samplerSeen: make(map[string]struct{}),
	}
}

// String returns the generated GLSL source code.
func (w *Writer) String() string {
	return w.out.String()
}

// writeModule generates the declarations of the whole default block.
func (w *Writer) writeModule() error {
	// 1. Collect structure and sampler types, checking names
	if err := w.registerTypes(); err != nil {
		return err
	}

	// 2. Write version directive
	w.writeVersionDirective()

	// 3. Write precision qualifiers (ES only)
	w.writePrecisionQualifiers()

	// 4. Write structure definitions
	w.writeTypes()

	// 5. Write uniforms
	return w.writeUniforms()
}

// writeVersionDirective writes the #version directive.
func (w *Writer) writeVersionDirective() {
	w.writeLine("#version %s", w.options.LangVersion.String())
	w.writeLine("")
}

// writePrecisionQualifiers writes precision qualifiers for ES.
func (w *Writer) writePrecisionQualifiers() {
	if !w.options.LangVersion.ES {
		return
	}

	precision := "mediump"
	if w.options.ForceHighPrecision {
		precision = "highp"
	}
	w.writeLine("precision %s float;", precision)
	w.writeLine("precision %s int;", precision)
	for _, name := range w.samplers {
		w.writeLine("precision %s %s;", precision, name)
	}
	w.writeLine("")
}

// registerTypes collects the structure definitions and sampler types the
// uniforms use.
func (w *Writer) registerTypes() error {
	for _, decl := range w.alloc.Uniforms() {
		if err := checkIdentifier(decl.Name); err != nil {
			return err
		}
		if err := w.registerType(decl.Type); err != nil {
			return fmt.Errorf("uniform %s: %w", decl.Name, err)
		}
	}
	return nil
}

func (w *Writer) registerType(typ ir.Type) error {
	switch t := typ.(type) {
	case ir.SamplerType:
		name := samplerToGLSL(t)
		if _, seen := w.samplerSeen[name]; !seen && !hasDefaultPrecision(name) {
			w.samplerSeen[name] = struct{}{}
			w.samplers = append(w.samplers, name)
		}
	case ir.StructType:
		if i, ok := w.structIdx[t.Name]; ok {
			if !structsEqual(w.structs[i], t) {
				return fmt.Errorf("structure %s has conflicting definitions", t.Name)
			}
			return nil
		}
		if err := checkIdentifier(t.Name); err != nil {
			return err
		}
		for _, m := range t.Members {
			if err := checkIdentifier(m.Name); err != nil {
				return err
			}
			if err := w.registerType(m.Type); err != nil {
				return err
			}
		}
		w.structIdx[t.Name] = len(w.structs)
		w.structs = append(w.structs, t)
	}
	return nil
}

// writeTypes writes struct type definitions.
func (w *Writer) writeTypes() {
	for _, st := range w.structs {
		w.writeLine("struct %s {", st.Name)
		w.pushIndent()
		for _, member := range st.Members {
			w.writeLine("%s %s%s;", TypeName(member.Type), member.Name, arraySuffix(member.ArraySize))
		}
		w.popIndent()
		w.writeLine("};")
		w.writeLine("")
	}
}

// writeUniforms writes one declaration per top-level uniform.
func (w *Writer) writeUniforms() error {
	for _, decl := range w.alloc.Uniforms() {
		if err := w.writeUniformVariable(decl); err != nil {
			return err
		}
	}
	return nil
}

// writeUniformVariable writes a uniform declaration.
func (w *Writer) writeUniformVariable(decl ir.Declaration) error {
	typeName := TypeName(decl.Type)
	suffix := arraySuffix(decl.ArraySize)

	loc, ok := w.uniformLocation(decl)
	switch {
	case !ok:
		w.writeLine("uniform %s %s%s;", typeName, decl.Name, suffix)
	case w.options.LangVersion.SupportsExplicitUniformLocation():
		w.writeLine("layout(location = %d) uniform %s %s%s;", loc, typeName, decl.Name, suffix)
	case decl.HasLocation():
		return fmt.Errorf("uniform %s: explicit locations need GLSL ES 3.10 or GLSL 4.30, have %s",
			decl.Name, w.options.LangVersion)
	default:
		w.writeLine("uniform %s %s%s;", typeName, decl.Name, suffix)
	}
	return nil
}

// uniformLocation returns the location to qualify decl with. Structures
// are only qualified when declared with a location; their members then
// follow consecutively.
func (w *Writer) uniformLocation(decl ir.Declaration) (location.Location, bool) {
	if _, isStruct := decl.Type.(ir.StructType); isStruct {
		if !decl.HasLocation() {
			return location.Invalid, false
		}
		return location.Location(*decl.Location), true
	}
	loc := w.alloc.LocationOf(decl.Name)
	return loc, loc != location.Invalid
}

// structsEqual compares two struct types member by member.
func structsEqual(a, b ir.StructType) bool {
	if a.Name != b.Name || len(a.Members) != len(b.Members) {
		return false
	}
	for i := range a.Members {
		ma, mb := a.Members[i], b.Members[i]
		if ma.Name != mb.Name || ma.ArraySize != mb.ArraySize {
			return false
		}
		sa, aIsStruct := ma.Type.(ir.StructType)
		sb, bIsStruct := mb.Type.(ir.StructType)
		if aIsStruct || bIsStruct {
			if !aIsStruct || !bIsStruct || !structsEqual(sa, sb) {
				return false
			}
			continue
		}
		if ma.Type != mb.Type {
			return false
		}
	}
	return true
}

// arraySuffix returns "[N]" for arrays and "" otherwise.
func arraySuffix(size uint32) string {
	if size <= 1 {
		return ""
	}
	return fmt.Sprintf("[%d]", size)
}

// Output helpers

// writeLine writes a line with indentation and newline.
//
//nolint:goprintffuncname
func (w *Writer) writeLine(format string, args ...any) {
	w.writeIndent()
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("    ")
	}
}

// pushIndent increases indentation.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases indentation.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}
