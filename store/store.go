package store

import (
	"github.com/gogpu/uniforms/ir"
	"github.com/gogpu/uniforms/location"
)

// DefaultMaxCombinedTextureUnits is the texture unit limit used when
// Options leaves it unset: 16 units per stage for two stages.
const DefaultMaxCombinedTextureUnits = 32

// Options configures a Store.
type Options struct {
	// MaxCombinedTextureUnits bounds the values a sampler accepts.
	// Defaults to DefaultMaxCombinedTextureUnits if zero.
	MaxCombinedTextureUnits uint32
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{MaxCombinedTextureUnits: DefaultMaxCombinedTextureUnits}
}

// cell holds one column of one element, in the canonical representation
// of the uniform's scalar kind.
type cell [4]uint32

// Store holds the values of every uniform of one linked program.
type Store struct {
	alloc *location.Allocation
	opts  Options

	shapes   []ir.Shape // per leaf
	samplers []bool     // per leaf
	first    []int      // first cell of each leaf
	cells    []cell
}

// New creates a zero-initialised store for alloc.
func New(alloc *location.Allocation, opts Options) *Store {
	if opts.MaxCombinedTextureUnits == 0 {
		opts.MaxCombinedTextureUnits = DefaultMaxCombinedTextureUnits
	}

	leaves := alloc.Declarations()
	s := &Store{
		alloc:    alloc,
		opts:     opts,
		shapes:   make([]ir.Shape, len(leaves)),
		samplers: make([]bool, len(leaves)),
		first:    make([]int, len(leaves)),
	}

	n := 0
	for i, leaf := range leaves {
		shape, ok := ir.ShapeOf(leaf.Type)
		if !ok {
			// Allocations only hold flattened leaves.
			panic("store: structure leaf " + leaf.Name)
		}
		s.shapes[i] = shape
		s.samplers[i] = ir.IsSampler(leaf.Type)
		s.first[i] = n
		n += leaf.Elements() * shape.Columns
	}
	s.cells = make([]cell, n)
	return s
}

// Allocation returns the location map the store was built for.
func (s *Store) Allocation() *location.Allocation {
	return s.alloc
}

// setter describes the shape of a write call.
type setter struct {
	kind       ir.ScalarKind // kind of the supplied values
	components int           // components per column
	columns    int           // 1 unless matrix
	matrix     bool
	transpose  bool
}

func (op setter) len() int {
	return op.components * op.columns
}

// SetFloat writes count elements of components floats starting at loc.
func (s *Store) SetFloat(loc location.Location, components, count int, values []float32) error {
	if err := checkComponents(loc, components); err != nil {
		return err
	}
	op := setter{kind: ir.ScalarFloat, components: components, columns: 1}
	return write(s, loc, op, count, values, ir.Float)
}

// SetInt writes count elements of components signed integers starting at
// loc. It is the only setter accepted by samplers.
func (s *Store) SetInt(loc location.Location, components, count int, values []int32) error {
	if err := checkComponents(loc, components); err != nil {
		return err
	}
	op := setter{kind: ir.ScalarSint, components: components, columns: 1}
	return write(s, loc, op, count, values, ir.Sint)
}

// SetUint writes count elements of components unsigned integers starting
// at loc.
func (s *Store) SetUint(loc location.Location, components, count int, values []uint32) error {
	if err := checkComponents(loc, components); err != nil {
		return err
	}
	op := setter{kind: ir.ScalarUint, components: components, columns: 1}
	return write(s, loc, op, count, values, ir.Uint)
}

// SetMatrix writes count columns x rows matrices starting at loc.
// Values are read column by column, or row by row when transpose is set.
func (s *Store) SetMatrix(loc location.Location, columns, rows, count int, transpose bool, values []float32) error {
	if columns < 2 || columns > 4 || rows < 2 || rows > 4 {
		return newError(ErrInvalidValue, loc, "invalid matrix dimensions %dx%d", columns, rows)
	}
	op := setter{
		kind:       ir.ScalarFloat,
		components: rows,
		columns:    columns,
		matrix:     true,
		transpose:  transpose,
	}
	return write(s, loc, op, count, values, ir.Float)
}

func checkComponents(loc location.Location, components int) error {
	if components < 1 || components > 4 {
		return newError(ErrInvalidValue, loc, "invalid component count %d", components)
	}
	return nil
}

// write stores up to count elements starting at loc. Elements past the end
// of the owning array are dropped. Writes to unowned locations are ignored.
func write[T float32 | int32 | uint32](s *Store, loc location.Location, op setter, count int, values []T, scalar func(T) ir.ScalarValue) error {
	if count < 0 {
		return newError(ErrInvalidValue, loc, "negative count %d", count)
	}
	leaf, element, ok := s.alloc.Owner(loc)
	if !ok {
		return nil
	}
	if err := s.checkShape(loc, leaf, op); err != nil {
		return err
	}

	n := min(count, s.alloc.Remaining(loc))
	per := op.len()
	if len(values) < n*per {
		return newError(ErrInvalidValue, loc, "%d values supplied for %d elements of %d components",
			len(values), n, per)
	}

	if s.samplers[leaf] {
		for _, v := range values[:n] {
			unit := toInt(scalar(v))
			if unit < 0 || uint32(unit) >= s.opts.MaxCombinedTextureUnits {
				return newError(ErrInvalidValue, loc, "texture unit %d out of range [0, %d)",
					unit, s.opts.MaxCombinedTextureUnits)
			}
		}
	}

	shape := s.shapes[leaf]
	base := s.first[leaf] + int(element)*shape.Columns
	for e := 0; e < n; e++ {
		src := values[e*per : (e+1)*per]
		for c := 0; c < op.columns; c++ {
			dst := &s.cells[base+e*shape.Columns+c]
			for r := 0; r < op.components; r++ {
				i := c*op.components + r
				if op.transpose {
					i = r*op.columns + c
				}
				dst[r] = encode(shape.Kind, scalar(src[i]))
			}
		}
	}
	return nil
}

// checkShape rejects setters whose shape does not fit leaf.
func (s *Store) checkShape(loc location.Location, leaf int, op setter) error {
	if s.samplers[leaf] {
		if op.matrix || op.kind != ir.ScalarSint {
			return newError(ErrInvalidOperation, loc, "samplers accept only integer writes")
		}
		if op.components != 1 {
			return newError(ErrInvalidOperation, loc, "samplers accept only single-component writes, got %d", op.components)
		}
		return nil
	}

	shape := s.shapes[leaf]
	switch {
	case op.matrix && !shape.IsMatrix():
		return newError(ErrInvalidOperation, loc, "matrix write to a non-matrix uniform")
	case !op.matrix && shape.IsMatrix():
		return newError(ErrInvalidOperation, loc, "non-matrix write to a mat%dx%d uniform", shape.Columns, shape.Components)
	case op.columns != shape.Columns || op.components != shape.Components:
		if op.matrix {
			return newError(ErrInvalidOperation, loc, "mat%dx%d write to a mat%dx%d uniform",
				op.columns, op.components, shape.Columns, shape.Components)
		}
		return newError(ErrInvalidOperation, loc, "%d-component write to a %d-component uniform",
			op.components, shape.Components)
	}
	return nil
}

// GetFloat reads the element at loc into dst as floats and returns the
// number of components written. Matrices are written column by column.
func (s *Store) GetFloat(loc location.Location, dst []float32) (int, error) {
	return read(s, loc, dst, toFloat)
}

// GetInt reads the element at loc into dst as signed integers.
func (s *Store) GetInt(loc location.Location, dst []int32) (int, error) {
	return read(s, loc, dst, toInt)
}

// GetUint reads the element at loc into dst as unsigned integers.
func (s *Store) GetUint(loc location.Location, dst []uint32) (int, error) {
	return read(s, loc, dst, toUint)
}

// read copies exactly one element into dst. dst past the element is left
// untouched, and so is all of dst on error.
func read[T float32 | int32 | uint32](s *Store, loc location.Location, dst []T, conv func(ir.ScalarValue) T) (int, error) {
	leaf, element, ok := s.alloc.Owner(loc)
	if !ok {
		return 0, newError(ErrInvalidLocation, loc, "no uniform at this location")
	}
	shape := s.shapes[leaf]
	if len(dst) < shape.Len() {
		return 0, newError(ErrInvalidOperation, loc, "destination holds %d of %d components",
			len(dst), shape.Len())
	}

	base := s.first[leaf] + int(element)*shape.Columns
	for c := 0; c < shape.Columns; c++ {
		src := &s.cells[base+c]
		for r := 0; r < shape.Components; r++ {
			dst[c*shape.Components+r] = conv(decode(shape.Kind, src[r]))
		}
	}
	return shape.Len(), nil
}
