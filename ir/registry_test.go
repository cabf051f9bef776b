package ir

import (
	"testing"

	"github.com/gogpu/gputypes"
)

var (
	floatType   = ScalarType{Kind: ScalarFloat}
	intType     = ScalarType{Kind: ScalarSint}
	sampler2D   = SamplerType{Dim: Dim2D, Sampled: ScalarFloat}
	vec4Type    = VectorType{Size: Vec4, Scalar: floatType}
	mat3x2Type  = MatrixType{Columns: Vec3, Rows: Vec2, Scalar: floatType}
	twoFloatsSt = StructType{Name: "S", Members: []StructMember{
		{Name: "f", Type: floatType},
		{Name: "f2", Type: floatType},
	}}
)

func TestDeclarationRegistry_SamplerDeduplication(t *testing.T) {
	registry := NewDeclarationRegistry()

	// Register tex2D in both stages
	if err := registry.Add(Declaration{Name: "tex2D", Type: sampler2D, Stages: gputypes.ShaderStageVertex}); err != nil {
		t.Fatalf("Add vertex: %v", err)
	}
	if err := registry.Add(Declaration{Name: "tex2D", Type: sampler2D, Stages: gputypes.ShaderStageFragment}); err != nil {
		t.Fatalf("Add fragment: %v", err)
	}

	decls := registry.Declarations()
	if len(decls) != 1 {
		t.Fatalf("Expected 1 declaration, got %d", len(decls))
	}
	decl := decls[0]
	if decl.Stages != gputypes.ShaderStagesVertexFragment {
		t.Errorf("Expected stages %v, got %v", gputypes.ShaderStagesVertexFragment, decl.Stages)
	}
}

func TestDeclarationRegistry_LocationFromOneStage(t *testing.T) {
	registry := NewDeclarationRegistry()

	_ = registry.Add(Declaration{Name: "tex2D", Type: sampler2D, Stages: gputypes.ShaderStageVertex})
	if err := registry.Add(Declaration{Name: "tex2D", Type: sampler2D, Location: Loc(12), Stages: gputypes.ShaderStageFragment}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	decl := registry.Declarations()[0]
	if decl.Location == nil || *decl.Location != 12 {
		t.Errorf("Expected merged location 12, got %v", decl.Location)
	}
}

func TestDeclarationRegistry_DisagreeingLocations(t *testing.T) {
	registry := NewDeclarationRegistry()

	_ = registry.Add(Declaration{Name: "u", Type: floatType, Location: Loc(3), Stages: gputypes.ShaderStageVertex})
	err := registry.Add(Declaration{Name: "u", Type: floatType, Location: Loc(4), Stages: gputypes.ShaderStageFragment})
	if !IsLinkError(err, ErrConflictingLocation) {
		t.Errorf("Expected ConflictingLocation, got %v", err)
	}
}

func TestDeclarationRegistry_TypeMismatch(t *testing.T) {
	tests := []struct {
		name   string
		first  Declaration
		second Declaration
	}{
		{
			name:   "scalar kind",
			first:  Declaration{Name: "u", Type: floatType},
			second: Declaration{Name: "u", Type: intType},
		},
		{
			name:   "array size",
			first:  Declaration{Name: "u", Type: vec4Type, ArraySize: 2},
			second: Declaration{Name: "u", Type: vec4Type, ArraySize: 3},
		},
		{
			name:   "array vs scalar",
			first:  Declaration{Name: "u", Type: floatType, ArraySize: 4},
			second: Declaration{Name: "u", Type: floatType},
		},
		{
			name:   "struct members",
			first:  Declaration{Name: "uS", Type: twoFloatsSt},
			second: Declaration{Name: "uS", Type: StructType{Name: "S", Members: []StructMember{{Name: "f", Type: floatType}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewDeclarationRegistry()
			if err := registry.Add(tt.first); err != nil {
				t.Fatalf("first Add: %v", err)
			}
			err := registry.Add(tt.second)
			if !IsLinkError(err, ErrTypeMismatchAcrossStages) {
				t.Errorf("Expected TypeMismatchAcrossStages, got %v", err)
			}
		})
	}
}

func TestDeclarationRegistry_ArraySizeOneIsScalar(t *testing.T) {
	registry := NewDeclarationRegistry()

	_ = registry.Add(Declaration{Name: "u", Type: floatType, ArraySize: 1})
	if err := registry.Add(Declaration{Name: "u", Type: floatType}); err != nil {
		t.Errorf("ArraySize 1 and 0 should merge, got %v", err)
	}
}

func TestDeclarationRegistry_KeepsFirstSeenOrder(t *testing.T) {
	registry := NewDeclarationRegistry()

	names := []string{"c", "a", "b", "a", "c"}
	for _, n := range names {
		if err := registry.Add(Declaration{Name: n, Type: floatType}); err != nil {
			t.Fatalf("Add %s: %v", n, err)
		}
	}

	got := registry.Declarations()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d declarations, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("declaration %d: expected %s, got %s", i, want[i], got[i].Name)
		}
	}
}

func TestDeclarationRegistry_DoesNotAliasLocation(t *testing.T) {
	registry := NewDeclarationRegistry()

	loc := Loc(5)
	_ = registry.Add(Declaration{Name: "u", Type: floatType, Location: loc})
	*loc = 9

	decl := registry.Declarations()[0]
	if *decl.Location != 5 {
		t.Errorf("Expected location 5, got %d", *decl.Location)
	}
}
