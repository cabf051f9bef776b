package uniforms

import (
	"runtime"
	"strconv"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/uniforms/ir"
	"github.com/gogpu/uniforms/location"
)

// ---------------------------------------------------------------------------
// Test programs: default blocks of different sizes
// ---------------------------------------------------------------------------

var (
	benchFloat = ir.ScalarType{Kind: ir.ScalarFloat}
	benchVec4  = ir.VectorType{Size: ir.Vec4, Scalar: benchFloat}
	benchMat4  = ir.MatrixType{Columns: ir.Vec4, Rows: ir.Vec4, Scalar: benchFloat}
	benchTex   = ir.SamplerType{Dim: ir.Dim2D, Sampled: ir.ScalarFloat}
)

// programSmall is a textured quad: one matrix and one sampler.
func programSmall() []Shader {
	return []Shader{
		{Stage: gputypes.ShaderStageVertex, Uniforms: []ir.Declaration{
			{Name: "uMVP", Type: benchMat4},
		}},
		{Stage: gputypes.ShaderStageFragment, Uniforms: []ir.Declaration{
			{Name: "uTex", Type: benchTex},
		}},
	}
}

// programSkinned has a bone palette, lights and explicit sampler locations.
func programSkinned() []Shader {
	light := ir.StructType{Name: "Light", Members: []ir.StructMember{
		{Name: "position", Type: benchVec4},
		{Name: "color", Type: benchVec4},
		{Name: "radius", Type: benchFloat},
	}}
	return []Shader{
		{Stage: gputypes.ShaderStageVertex, Uniforms: []ir.Declaration{
			{Name: "uMVP", Type: benchMat4},
			{Name: "uBones", Type: benchMat4, ArraySize: 64},
		}},
		{Stage: gputypes.ShaderStageFragment, Uniforms: []ir.Declaration{
			{Name: "uLights", Type: light, ArraySize: 8},
			{Name: "uAlbedo", Type: benchTex, Location: ir.Loc(200)},
			{Name: "uNormal", Type: benchTex, Location: ir.Loc(201)},
		}},
	}
}

// programWide declares many independent scalars.
func programWide() []Shader {
	decls := make([]ir.Declaration, 256)
	for i := range decls {
		decls[i] = ir.Declaration{Name: "u" + strconv.Itoa(i), Type: benchFloat}
	}
	return []Shader{{Stage: gputypes.ShaderStageFragment, Uniforms: decls}}
}

type programCase struct {
	name    string
	shaders []Shader
}

var programsBySize = []programCase{
	{"small", programSmall()},
	{"skinned", programSkinned()},
	{"wide", programWide()},
}

// ---------------------------------------------------------------------------
// Link benchmarks
// ---------------------------------------------------------------------------

// BenchmarkLinkProgram benchmarks location assignment plus storage
// allocation, grouped by program size.
func BenchmarkLinkProgram(b *testing.B) {
	for _, pc := range programsBySize {
		b.Run(pc.name, func(b *testing.B) {
			b.ReportAllocs()
			ctx := NewContext(DefaultOptions())
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				id, err := ctx.LinkProgram(pc.shaders...)
				if err != nil {
					b.Fatalf("link failed: %v", err)
				}
				_ = ctx.DeleteProgram(id)
			}
		})
	}
}

// BenchmarkGetUniformLocation benchmarks name lookup, including indexed
// array names.
func BenchmarkGetUniformLocation(b *testing.B) {
	ctx := NewContext(DefaultOptions())
	id, err := ctx.LinkProgram(programSkinned()...)
	if err != nil {
		b.Fatalf("link failed: %v", err)
	}

	names := []string{"uMVP", "uBones[37]", "uLights[5].color", "uNormal"}

	b.ReportAllocs()
	b.ResetTimer()

	var loc location.Location
	for i := 0; i < b.N; i++ {
		loc = ctx.GetUniformLocation(id, names[i%len(names)])
	}
	runtime.KeepAlive(loc)
}

// ---------------------------------------------------------------------------
// Value benchmarks
// ---------------------------------------------------------------------------

// BenchmarkUniformMatrixfv benchmarks uploading the whole bone palette.
func BenchmarkUniformMatrixfv(b *testing.B) {
	ctx := NewContext(DefaultOptions())
	id, err := ctx.LinkProgram(programSkinned()...)
	if err != nil {
		b.Fatalf("link failed: %v", err)
	}
	if err := ctx.UseProgram(id); err != nil {
		b.Fatalf("use failed: %v", err)
	}
	loc := ctx.GetUniformLocation(id, "uBones")
	bones := make([]float32, 64*16)

	b.ReportAllocs()
	b.SetBytes(int64(len(bones) * 4))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := ctx.UniformMatrixfv(loc, 4, 4, 64, false, bones); err != nil {
			b.Fatalf("upload failed: %v", err)
		}
	}
}

// BenchmarkFloatToIntRoundTrip benchmarks the float write plus integer read
// path, which clamps and rounds.
func BenchmarkFloatToIntRoundTrip(b *testing.B) {
	ctx := NewContext(DefaultOptions())
	id, err := ctx.LinkProgram(programWide()...)
	if err != nil {
		b.Fatalf("link failed: %v", err)
	}
	loc := ctx.GetUniformLocation(id, "u17")

	b.ReportAllocs()
	b.ResetTimer()

	var dst [1]int32
	for i := 0; i < b.N; i++ {
		if err := ctx.ProgramUniformfv(id, loc, 1, 1, []float32{float32(i) + 0.6}); err != nil {
			b.Fatalf("write failed: %v", err)
		}
		if _, err := ctx.GetUniformiv(id, loc, dst[:]); err != nil {
			b.Fatalf("read failed: %v", err)
		}
	}
	runtime.KeepAlive(dst)
}
