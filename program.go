package uniforms

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/uniforms/ir"
	"github.com/gogpu/uniforms/location"
	"github.com/gogpu/uniforms/store"
)

// ProgramID names a linked program. Zero is never a valid program.
type ProgramID uint32

// Shader is the default-block interface of one shader stage.
type Shader struct {
	Stage    gputypes.ShaderStage
	Uniforms []ir.Declaration
}

// ActiveUniform describes one entry of a program's active-uniform list.
type ActiveUniform struct {
	// Name is the leaf name; arrays carry a "[0]" suffix.
	Name string

	Type ir.Type

	// Size is the number of array elements, 1 for non-arrays.
	Size int

	Location location.Location

	// Stages is the set of stages declaring the uniform.
	Stages gputypes.ShaderStages
}

// Program is a successfully linked program. It exclusively owns its
// location map and value storage.
type Program struct {
	id     ProgramID
	alloc  *location.Allocation
	values *store.Store
	active []ActiveUniform
}

func newProgram(id ProgramID, alloc *location.Allocation, opts store.Options) *Program {
	p := &Program{
		id:     id,
		alloc:  alloc,
		values: store.New(alloc, opts),
	}

	leaves := alloc.Declarations()
	p.active = make([]ActiveUniform, len(leaves))
	for i, leaf := range leaves {
		name := leaf.Name
		if leaf.IsArray() {
			name += "[0]"
		}
		p.active[i] = ActiveUniform{
			Name:     name,
			Type:     leaf.Type,
			Size:     leaf.Elements(),
			Location: alloc.Base(i),
			Stages:   leaf.Stages,
		}
	}
	return p
}

// ID returns the program's handle.
func (p *Program) ID() ProgramID {
	return p.id
}

// Allocation returns the program's location map.
func (p *Program) Allocation() *location.Allocation {
	return p.alloc
}

// Store returns the program's uniform values.
func (p *Program) Store() *store.Store {
	return p.values
}

// ActiveUniforms returns the active-uniform list. A uniform declared in
// several stages is listed once.
func (p *Program) ActiveUniforms() []ActiveUniform {
	return p.active
}
