package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/gputypes"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/uniforms"
	"github.com/gogpu/uniforms/glsl"
	"github.com/gogpu/uniforms/ir"
)

// Manifest describes a program's default uniform block and the values to
// load into it.
//
// Example:
//
//	structs:
//	  - name: S
//	    members:
//	      - {name: f, type: float}
//	      - {name: m, type: mat3x2}
//	shaders:
//	  - stage: vertex
//	    uniforms:
//	      - {name: uMVP, type: mat4}
//	  - stage: fragment
//	    uniforms:
//	      - {name: tex2D, type: sampler2D, location: 12}
//	      - {name: uS, type: S}
//	set:
//	  - {name: tex2D, int: [3]}
//	  - {name: uS.f, float: [0.6]}
type Manifest struct {
	Structs []StructDecl `yaml:"structs"`
	Shaders []ShaderDecl `yaml:"shaders"`
	Set     []SetEntry   `yaml:"set"`
}

// StructDecl declares a structure type.
type StructDecl struct {
	Name    string       `yaml:"name"`
	Members []MemberDecl `yaml:"members"`
}

// MemberDecl declares a structure member.
type MemberDecl struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Array uint32 `yaml:"array"`
}

// ShaderDecl lists the uniforms declared by one stage.
type ShaderDecl struct {
	Stage    string        `yaml:"stage"`
	Uniforms []UniformDecl `yaml:"uniforms"`
}

// UniformDecl declares one uniform.
type UniformDecl struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Array    uint32 `yaml:"array"`
	Location *int32 `yaml:"location"`
}

// SetEntry writes values to a uniform after linking. Exactly one of Float,
// Int, Uint and Matrix is given; the element shape defaults to the shape of
// the uniform.
type SetEntry struct {
	Name       string    `yaml:"name"`
	Float      []float32 `yaml:"float"`
	Int        []int32   `yaml:"int"`
	Uint       []uint32  `yaml:"uint"`
	Matrix     []float32 `yaml:"matrix"`
	Components int       `yaml:"components"`
	Columns    int       `yaml:"columns"`
	Rows       int       `yaml:"rows"`
	Transpose  bool      `yaml:"transpose"`
}

// loadManifest reads a manifest from path, or from r when path is "-".
func loadManifest(path string, r io.Reader) (*Manifest, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return parseManifest(data)
}

// parseManifest decodes a manifest, rejecting unknown fields.
func parseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if len(m.Shaders) == 0 {
		return nil, errors.New("manifest declares no shaders")
	}
	return &m, nil
}

// structTypes resolves the declared structures. A structure may use the
// structures declared before it.
func (m *Manifest) structTypes() (map[string]ir.StructType, error) {
	structs := make(map[string]ir.StructType, len(m.Structs))
	for _, s := range m.Structs {
		if _, dup := structs[s.Name]; dup {
			return nil, fmt.Errorf("struct %s declared twice", s.Name)
		}
		st := ir.StructType{Name: s.Name}
		for _, mem := range s.Members {
			typ, err := glsl.ParseType(mem.Type, structs)
			if err != nil {
				return nil, fmt.Errorf("struct %s, member %s: %w", s.Name, mem.Name, err)
			}
			st.Members = append(st.Members, ir.StructMember{Name: mem.Name, Type: typ, ArraySize: mem.Array})
		}
		structs[s.Name] = st
	}
	return structs, nil
}

// shaders converts the manifest into link input.
func (m *Manifest) shaders() ([]uniforms.Shader, error) {
	structs, err := m.structTypes()
	if err != nil {
		return nil, err
	}

	out := make([]uniforms.Shader, 0, len(m.Shaders))
	for _, s := range m.Shaders {
		stage, err := parseStage(s.Stage)
		if err != nil {
			return nil, err
		}
		sh := uniforms.Shader{Stage: stage}
		for _, u := range s.Uniforms {
			typ, err := glsl.ParseType(u.Type, structs)
			if err != nil {
				return nil, fmt.Errorf("%s uniform %s: %w", s.Stage, u.Name, err)
			}
			sh.Uniforms = append(sh.Uniforms, ir.Declaration{
				Name:      u.Name,
				Type:      typ,
				ArraySize: u.Array,
				Location:  u.Location,
			})
		}
		out = append(out, sh)
	}
	return out, nil
}

func parseStage(s string) (gputypes.ShaderStage, error) {
	switch strings.ToLower(s) {
	case "vertex", "vert":
		return gputypes.ShaderStageVertex, nil
	case "fragment", "frag":
		return gputypes.ShaderStageFragment, nil
	case "compute", "comp":
		return gputypes.ShaderStageCompute, nil
	default:
		return gputypes.ShaderStageNone, fmt.Errorf("unknown shader stage %q", s)
	}
}

// apply performs one set entry against program id.
func (s SetEntry) apply(ctx *uniforms.Context, id uniforms.ProgramID) error {
	loc := ctx.GetUniformLocation(id, s.Name)
	if loc < 0 {
		return fmt.Errorf("set %s: no such uniform", s.Name)
	}
	prog, _ := ctx.Program(id)
	decl, _, _ := prog.Allocation().DeclarationAt(loc)
	shape, _ := ir.ShapeOf(decl.Type)

	given := 0
	for _, n := range []int{len(s.Float), len(s.Int), len(s.Uint), len(s.Matrix)} {
		if n > 0 {
			given++
		}
	}
	if given != 1 {
		return fmt.Errorf("set %s: give exactly one of float, int, uint and matrix", s.Name)
	}

	var err error
	switch {
	case len(s.Matrix) > 0:
		cols, rows := orDefault(s.Columns, shape.Columns), orDefault(s.Rows, shape.Components)
		err = ctx.ProgramUniformMatrixfv(id, loc, cols, rows, count(len(s.Matrix), cols*rows), s.Transpose, s.Matrix)
	case len(s.Float) > 0:
		c := orDefault(s.Components, shape.Components)
		err = ctx.ProgramUniformfv(id, loc, c, count(len(s.Float), c), s.Float)
	case len(s.Int) > 0:
		c := orDefault(s.Components, shape.Components)
		err = ctx.ProgramUniformiv(id, loc, c, count(len(s.Int), c), s.Int)
	default:
		c := orDefault(s.Components, shape.Components)
		err = ctx.ProgramUniformuiv(id, loc, c, count(len(s.Uint), c), s.Uint)
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", s.Name, err)
	}
	return nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// count returns the number of whole elements in n values.
func count(n, per int) int {
	if per <= 0 {
		return 0
	}
	return n / per
}
