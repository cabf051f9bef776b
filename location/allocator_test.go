package location

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/uniforms/ir"
)

var (
	floatT   = ir.ScalarType{Kind: ir.ScalarFloat}
	intT     = ir.ScalarType{Kind: ir.ScalarSint}
	boolT    = ir.ScalarType{Kind: ir.ScalarBool}
	vec4T    = ir.VectorType{Size: ir.Vec4, Scalar: floatT}
	mat3x2T  = ir.MatrixType{Columns: ir.Vec3, Rows: ir.Vec2, Scalar: floatT}
	sampler  = ir.SamplerType{Dim: ir.Dim2D, Sampled: ir.ScalarFloat}
	vertex   = gputypes.ShaderStageVertex
	fragment = gputypes.ShaderStageFragment
)

func TestAllocate_ArrayLocations(t *testing.T) {
	alloc, err := Allocate([]ir.Declaration{
		{Name: "uPosition", Type: floatT, ArraySize: 4, Stages: vertex},
		{Name: "uColor", Type: floatT, ArraySize: 4, Stages: fragment},
	})
	require.NoError(t, err)

	for _, name := range []string{"uPosition", "uColor"} {
		base := alloc.LocationOf(name)
		require.NotEqual(t, Invalid, base, name)
		assert.Equal(t, base, alloc.LocationOf(name+"[0]"), "array index zero aliases %s", name)

		seen := map[Location]bool{}
		for _, idx := range []string{"[0]", "[1]", "[2]", "[3]"} {
			loc := alloc.LocationOf(name + idx)
			require.NotEqual(t, Invalid, loc, name+idx)
			assert.False(t, seen[loc], "duplicate location for %s%s", name, idx)
			seen[loc] = true
		}
	}
}

func TestAllocate_LookupMisses(t *testing.T) {
	alloc, err := Allocate([]ir.Declaration{
		{Name: "uniF", Type: floatT},
		{Name: "uArr", Type: vec4T, ArraySize: 3},
	})
	require.NoError(t, err)

	for _, name := range []string{
		"missing", "uniF[0]", "uArr[3]", "uArr[-1]", "uArr[01]", "uArr[]", "uArr[x]", "[0]", "uArr[1", "",
	} {
		assert.Equal(t, Invalid, alloc.LocationOf(name), "name %q", name)
	}
}

func TestAllocate_StructLocationLayoutQualifier(t *testing.T) {
	s := ir.StructType{Name: "S", Members: []ir.StructMember{
		{Name: "f", Type: floatT},
		{Name: "f2", Type: floatT},
	}}
	alloc, err := Allocate([]ir.Declaration{
		{Name: "uS", Type: s, Location: ir.Loc(12), Stages: fragment},
	})
	require.NoError(t, err)

	assert.Equal(t, Location(12), alloc.LocationOf("uS.f"))
	assert.Equal(t, Location(13), alloc.LocationOf("uS.f2"))
	assert.Equal(t, Invalid, alloc.LocationOf("uS"))
}

func TestAllocate_LocationInOneStage(t *testing.T) {
	alloc, err := Allocate([]ir.Declaration{
		{Name: "tex2D", Type: sampler, Stages: vertex},
		{Name: "tex2D", Type: sampler, Location: ir.Loc(12), Stages: fragment},
	})
	require.NoError(t, err)

	assert.Equal(t, Location(12), alloc.LocationOf("tex2D"))
	require.Len(t, alloc.Declarations(), 1)
	assert.Equal(t, gputypes.ShaderStagesVertexFragment, alloc.Declarations()[0].Stages)
}

func TestAllocate_ConflictingLocations(t *testing.T) {
	tests := []struct {
		name  string
		decls []ir.Declaration
	}{
		{
			name: "unused samplers",
			decls: []ir.Declaration{
				{Name: "texA", Type: sampler, Location: ir.Loc(12), Stages: vertex},
				{Name: "texB", Type: sampler, Location: ir.Loc(12), Stages: fragment},
			},
		},
		{
			name: "array overlaps scalar",
			decls: []ir.Declaration{
				{Name: "uA", Type: vec4T, ArraySize: 2, Location: ir.Loc(11), Stages: vertex},
				{Name: "uB", Type: vec4T, Location: ir.Loc(12), Stages: fragment},
			},
		},
		{
			name: "same stage",
			decls: []ir.Declaration{
				{Name: "uA", Type: floatT, ArraySize: 4, Location: ir.Loc(0), Stages: fragment},
				{Name: "uB", Type: mat3x2T, ArraySize: 2, Location: ir.Loc(3), Stages: fragment},
			},
		},
		{
			name: "struct member overlaps",
			decls: []ir.Declaration{
				{Name: "uS", Type: ir.StructType{Name: "S", Members: []ir.StructMember{
					{Name: "a", Type: floatT}, {Name: "b", Type: floatT},
				}}, Location: ir.Loc(5), Stages: fragment},
				{Name: "uX", Type: intT, Location: ir.Loc(6), Stages: vertex},
			},
		},
		{
			name: "stages disagree",
			decls: []ir.Declaration{
				{Name: "u", Type: floatT, Location: ir.Loc(1), Stages: vertex},
				{Name: "u", Type: floatT, Location: ir.Loc(2), Stages: fragment},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc, err := Allocate(tt.decls)
			assert.Nil(t, alloc)
			assert.True(t, ir.IsLinkError(err, ir.ErrConflictingLocation), "got %v", err)
		})
	}
}

func TestAllocate_AdjacentExplicitSpans(t *testing.T) {
	alloc, err := Allocate([]ir.Declaration{
		{Name: "uA", Type: vec4T, ArraySize: 2, Location: ir.Loc(10)},
		{Name: "uB", Type: vec4T, Location: ir.Loc(12)},
	})
	require.NoError(t, err)
	assert.Equal(t, Location(11), alloc.LocationOf("uA[1]"))
	assert.Equal(t, Location(12), alloc.LocationOf("uB"))
}

func TestAllocate_TypeMismatchAcrossStages(t *testing.T) {
	_, err := Allocate([]ir.Declaration{
		{Name: "u", Type: floatT, Stages: vertex},
		{Name: "u", Type: intT, Stages: fragment},
	})
	assert.True(t, ir.IsLinkError(err, ir.ErrTypeMismatchAcrossStages), "got %v", err)
}

func TestAllocate_InvalidDeclaration(t *testing.T) {
	_, err := Allocate([]ir.Declaration{{Name: "gl_Bad", Type: floatT}})
	assert.True(t, ir.IsLinkError(err, ir.ErrInvalidDeclaration), "got %v", err)
}

func TestAllocate_AutoFillsGaps(t *testing.T) {
	alloc, err := Allocate([]ir.Declaration{
		{Name: "a", Type: floatT},               // auto: 0
		{Name: "b", Type: floatT, ArraySize: 3}, // auto: needs 3, gap at 1 too small
		{Name: "c", Type: floatT, Location: ir.Loc(2)},
		{Name: "d", Type: floatT}, // auto: 1
	})
	require.NoError(t, err)

	assert.Equal(t, Location(0), alloc.LocationOf("a"))
	assert.Equal(t, Location(3), alloc.LocationOf("b"))
	assert.Equal(t, Location(2), alloc.LocationOf("c"))
	assert.Equal(t, Location(1), alloc.LocationOf("d"))
	assert.Equal(t, 6, alloc.Len())
	assert.Equal(t, 6, alloc.Reserved())
}

func TestAllocate_MatrixArrayOneLocationPerElement(t *testing.T) {
	alloc, err := Allocate([]ir.Declaration{
		{Name: "uniF", Type: floatT, ArraySize: 5},
		{Name: "uniMat3x2", Type: mat3x2T, ArraySize: 5},
	})
	require.NoError(t, err)

	base := alloc.LocationOf("uniMat3x2")
	for k := 0; k < 5; k++ {
		loc := base + Location(k)
		decl, element, ok := alloc.DeclarationAt(loc)
		require.True(t, ok)
		assert.Equal(t, "uniMat3x2", decl.Name)
		assert.Equal(t, uint32(k), element)
		assert.Equal(t, 5-k, alloc.Remaining(loc))
	}
	assert.Equal(t, 10, alloc.Reserved())
}

func TestAllocate_Deterministic(t *testing.T) {
	decls := []ir.Declaration{
		{Name: "uniF", Type: floatT},
		{Name: "uniI", Type: intT},
		{Name: "uniB", Type: boolT},
		{Name: "uniBArr", Type: boolT, ArraySize: 4},
		{Name: "tex", Type: sampler, Location: ir.Loc(3)},
	}
	first, err := Allocate(decls)
	require.NoError(t, err)
	second, err := Allocate(decls)
	require.NoError(t, err)

	for _, d := range first.Declarations() {
		assert.Equal(t, first.LocationOf(d.Name), second.LocationOf(d.Name), d.Name)
	}
}

func TestAllocate_Limits(t *testing.T) {
	a := NewAllocator(Options{MaxLocations: 8})

	_, err := a.Allocate([]ir.Declaration{{Name: "u", Type: floatT, ArraySize: 4, Location: ir.Loc(6)}})
	assert.True(t, ir.IsLinkError(err, ir.ErrLocationOutOfRange), "got %v", err)

	_, err = a.Allocate([]ir.Declaration{
		{Name: "u", Type: floatT, ArraySize: 6},
		{Name: "v", Type: floatT, ArraySize: 3},
	})
	assert.True(t, ir.IsLinkError(err, ir.ErrTooManyLocations), "got %v", err)

	alloc, err := a.Allocate([]ir.Declaration{{Name: "u", Type: floatT, ArraySize: 8}})
	require.NoError(t, err)
	assert.Equal(t, Location(7), alloc.LocationOf("u[7]"))
}

func TestAllocate_OversizedStructArray(t *testing.T) {
	s := ir.StructType{Name: "S", Members: []ir.StructMember{{Name: "f", Type: floatT}}}

	_, err := Allocate([]ir.Declaration{{Name: "uS", Type: s, ArraySize: 1 << 22}})
	require.Error(t, err)
	assert.True(t, ir.IsLinkError(err, ir.ErrTooManyLocations), "got %v", err)

	_, err = Allocate([]ir.Declaration{{Name: "uS", Type: s, ArraySize: 1 << 22, Location: ir.Loc(0)}})
	assert.True(t, ir.IsLinkError(err, ir.ErrLocationOutOfRange), "got %v", err)

	// Rejected before flattening: the cost does not grow with ArraySize.
	allocs := testing.AllocsPerRun(5, func() {
		_, _ = Allocate([]ir.Declaration{{Name: "uS", Type: s, ArraySize: 1 << 22}})
	})
	assert.Less(t, allocs, float64(100))

	alloc, err := Allocate([]ir.Declaration{{Name: "uS", Type: s, ArraySize: DefaultMaxLocations}})
	require.NoError(t, err)
	assert.Equal(t, Location(DefaultMaxLocations-1), alloc.LocationOf("uS[1023].f"))
}

func TestAllocation_UnownedLocations(t *testing.T) {
	alloc, err := Allocate([]ir.Declaration{{Name: "u", Type: floatT, Location: ir.Loc(4)}})
	require.NoError(t, err)

	for _, loc := range []Location{Invalid, 0, 3, 5, 1000} {
		_, _, ok := alloc.DeclarationAt(loc)
		assert.False(t, ok, "location %d", loc)
		assert.Zero(t, alloc.Remaining(loc))
	}
}

func TestSplitArrayIndex(t *testing.T) {
	tests := []struct {
		in    string
		base  string
		index int
		ok    bool
	}{
		{"a[0]", "a", 0, true},
		{"a[12]", "a", 12, true},
		{"s[1].v[3]", "s[1].v", 3, true},
		{"a", "", 0, false},
		{"a[007]", "", 0, false},
		{"a[+1]", "", 0, false},
		{"[1]", "", 0, false},
	}
	for _, tt := range tests {
		base, index, ok := splitArrayIndex(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.base, base, tt.in)
			assert.Equal(t, tt.index, index, tt.in)
		}
	}
}
