package uniforms

import (
	"github.com/gogpu/uniforms/ir"
	"github.com/gogpu/uniforms/location"
	"github.com/gogpu/uniforms/store"
)

// Context owns a set of linked programs and tracks the current one.
//
// A Context is not safe for concurrent use; callers serialise access to it
// the way a graphics API serialises access to one context.
type Context struct {
	opts     Options
	programs map[ProgramID]*Program
	next     ProgramID
	current  ProgramID
	pending  error
}

// NewContext creates an empty context.
func NewContext(opts Options) *Context {
	if opts.MaxUniformLocations == 0 {
		opts.MaxUniformLocations = location.DefaultMaxLocations
	}
	return &Context{
		opts:     opts,
		programs: make(map[ProgramID]*Program),
	}
}

// LinkProgram assigns locations to the uniforms of shaders and creates the
// program's value storage.
//
// The declarations of each shader are tagged with its stage before the
// stages are merged. On failure LinkProgram returns 0 and an *ir.LinkError;
// nothing is retained.
func (c *Context) LinkProgram(shaders ...Shader) (ProgramID, error) {
	var decls []ir.Declaration
	for _, sh := range shaders {
		for _, d := range sh.Uniforms {
			d.Stages |= sh.Stage
			decls = append(decls, d)
		}
	}

	alloc, err := location.NewAllocator(c.opts.allocatorOptions()).Allocate(decls)
	if err != nil {
		Logger().Warn("uniforms: link failed", "err", err)
		return 0, err
	}

	c.next++
	p := newProgram(c.next, alloc, c.opts.storeOptions())
	c.programs[p.id] = p

	Logger().Debug("uniforms: program linked",
		"program", p.id,
		"uniforms", len(alloc.Uniforms()),
		"locations", alloc.Reserved())
	return p.id, nil
}

// DeleteProgram releases a program and all of its uniform state.
// Deleting the current program leaves no program current. Deleting program
// 0 does nothing.
func (c *Context) DeleteProgram(id ProgramID) error {
	if id == 0 {
		return nil
	}
	if _, ok := c.programs[id]; !ok {
		return c.record(invalidProgram(id))
	}
	delete(c.programs, id)
	if c.current == id {
		c.current = 0
	}
	Logger().Debug("uniforms: program deleted", "program", id)
	return nil
}

// UseProgram makes id the current program. Zero clears it.
func (c *Context) UseProgram(id ProgramID) error {
	if id != 0 {
		if _, ok := c.programs[id]; !ok {
			return c.record(invalidProgram(id))
		}
	}
	c.current = id
	return nil
}

// CurrentProgram returns the current program, or 0.
func (c *Context) CurrentProgram() ProgramID {
	return c.current
}

// Program returns a linked program.
func (c *Context) Program(id ProgramID) (*Program, bool) {
	p, ok := c.programs[id]
	return p, ok
}

// GetUniformLocation returns the location of name in program id, or
// location.Invalid if the program or the name is unknown.
func (c *Context) GetUniformLocation(id ProgramID, name string) location.Location {
	p, ok := c.programs[id]
	if !ok {
		return location.Invalid
	}
	return p.alloc.LocationOf(name)
}

// ActiveUniforms returns the active-uniform list of program id, or nil.
func (c *Context) ActiveUniforms(id ProgramID) []ActiveUniform {
	p, ok := c.programs[id]
	if !ok {
		return nil
	}
	return p.ActiveUniforms()
}

// ActiveUniform returns entry index of the active-uniform list.
func (c *Context) ActiveUniform(id ProgramID, index int) (ActiveUniform, bool) {
	active := c.ActiveUniforms(id)
	if index < 0 || index >= len(active) {
		return ActiveUniform{}, false
	}
	return active[index], true
}

// currentStore returns the values of the current program.
func (c *Context) currentStore(loc location.Location) (*store.Store, error) {
	p, ok := c.programs[c.current]
	if !ok {
		return nil, c.record(invalidOperation(loc, "no current program"))
	}
	return p.values, nil
}

// programStore returns the values of program id.
func (c *Context) programStore(id ProgramID) (*store.Store, error) {
	p, ok := c.programs[id]
	if !ok {
		return nil, c.record(invalidProgram(id))
	}
	return p.values, nil
}

// Uniform1f writes a float to loc in the current program.
func (c *Context) Uniform1f(loc location.Location, v float32) error {
	return c.Uniformfv(loc, 1, 1, []float32{v})
}

// Uniform1i writes an int to loc in the current program.
func (c *Context) Uniform1i(loc location.Location, v int32) error {
	return c.Uniformiv(loc, 1, 1, []int32{v})
}

// Uniform1ui writes a uint to loc in the current program.
func (c *Context) Uniform1ui(loc location.Location, v uint32) error {
	return c.Uniformuiv(loc, 1, 1, []uint32{v})
}

// Uniformfv writes count elements of components floats to loc in the
// current program.
func (c *Context) Uniformfv(loc location.Location, components, count int, v []float32) error {
	s, err := c.currentStore(loc)
	if err != nil {
		return err
	}
	return c.record(s.SetFloat(loc, components, count, v))
}

// Uniformiv writes count elements of components ints to loc in the current
// program.
func (c *Context) Uniformiv(loc location.Location, components, count int, v []int32) error {
	s, err := c.currentStore(loc)
	if err != nil {
		return err
	}
	return c.record(s.SetInt(loc, components, count, v))
}

// Uniformuiv writes count elements of components uints to loc in the
// current program.
func (c *Context) Uniformuiv(loc location.Location, components, count int, v []uint32) error {
	s, err := c.currentStore(loc)
	if err != nil {
		return err
	}
	return c.record(s.SetUint(loc, components, count, v))
}

// UniformMatrixfv writes count columns x rows matrices to loc in the
// current program.
func (c *Context) UniformMatrixfv(loc location.Location, columns, rows, count int, transpose bool, v []float32) error {
	s, err := c.currentStore(loc)
	if err != nil {
		return err
	}
	return c.record(s.SetMatrix(loc, columns, rows, count, transpose, v))
}

// ProgramUniformfv writes floats to loc in program id, current or not.
func (c *Context) ProgramUniformfv(id ProgramID, loc location.Location, components, count int, v []float32) error {
	s, err := c.programStore(id)
	if err != nil {
		return err
	}
	return c.record(s.SetFloat(loc, components, count, v))
}

// ProgramUniformiv writes ints to loc in program id.
func (c *Context) ProgramUniformiv(id ProgramID, loc location.Location, components, count int, v []int32) error {
	s, err := c.programStore(id)
	if err != nil {
		return err
	}
	return c.record(s.SetInt(loc, components, count, v))
}

// ProgramUniformuiv writes uints to loc in program id.
func (c *Context) ProgramUniformuiv(id ProgramID, loc location.Location, components, count int, v []uint32) error {
	s, err := c.programStore(id)
	if err != nil {
		return err
	}
	return c.record(s.SetUint(loc, components, count, v))
}

// ProgramUniformMatrixfv writes matrices to loc in program id.
func (c *Context) ProgramUniformMatrixfv(id ProgramID, loc location.Location, columns, rows, count int, transpose bool, v []float32) error {
	s, err := c.programStore(id)
	if err != nil {
		return err
	}
	return c.record(s.SetMatrix(loc, columns, rows, count, transpose, v))
}

// GetUniformfv reads the element at loc of program id as floats.
func (c *Context) GetUniformfv(id ProgramID, loc location.Location, dst []float32) (int, error) {
	s, err := c.programStore(id)
	if err != nil {
		return 0, err
	}
	n, err := s.GetFloat(loc, dst)
	return n, c.record(err)
}

// GetUniformiv reads the element at loc of program id as ints.
func (c *Context) GetUniformiv(id ProgramID, loc location.Location, dst []int32) (int, error) {
	s, err := c.programStore(id)
	if err != nil {
		return 0, err
	}
	n, err := s.GetInt(loc, dst)
	return n, c.record(err)
}

// GetUniformuiv reads the element at loc of program id as uints.
func (c *Context) GetUniformuiv(id ProgramID, loc location.Location, dst []uint32) (int, error) {
	s, err := c.programStore(id)
	if err != nil {
		return 0, err
	}
	n, err := s.GetUint(loc, dst)
	return n, c.record(err)
}
