// Package uniforms implements the default uniform block of linked shader
// programs: location assignment at link time and typed value storage.
//
// A Context owns programs. LinkProgram merges the uniforms declared by each
// shader stage, assigns their locations and allocates zeroed storage; the
// returned ProgramID is then used to look up locations and to read and
// write values, in the style of the OpenGL uniform API.
//
// Example usage:
//
//	ctx := uniforms.NewContext(uniforms.DefaultOptions())
//	prog, err := ctx.LinkProgram(
//	    uniforms.Shader{Stage: gputypes.ShaderStageVertex, Uniforms: []ir.Declaration{
//	        {Name: "uMVP", Type: ir.MatrixType{Columns: ir.Vec4, Rows: ir.Vec4, Scalar: ir.ScalarType{Kind: ir.ScalarFloat}}},
//	    }},
//	    uniforms.Shader{Stage: gputypes.ShaderStageFragment, Uniforms: []ir.Declaration{
//	        {Name: "tex", Type: ir.SamplerType{Dim: ir.Dim2D, Sampled: ir.ScalarFloat}},
//	    }},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = ctx.UseProgram(prog)
//	_ = ctx.Uniform1i(ctx.GetUniformLocation(prog, "tex"), 3)
//
// Lower-level access is available through the location and store packages,
// and GLSL declarations for a linked program through the glsl package.
package uniforms

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/uniforms/location"
	"github.com/gogpu/uniforms/store"
)

// Options configures a Context.
type Options struct {
	// Limits supplies the texture unit limit for samplers.
	Limits gputypes.Limits

	// MaxUniformLocations bounds the location space of each program.
	MaxUniformLocations uint32
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Limits:              gputypes.DefaultLimits(),
		MaxUniformLocations: location.DefaultMaxLocations,
	}
}

// MaxCombinedTextureUnits returns the number of texture units a sampler
// may name: the per-stage limit for the vertex and fragment stages
// together.
func (o Options) MaxCombinedTextureUnits() uint32 {
	return o.Limits.MaxSampledTexturesPerShaderStage * 2
}

func (o Options) allocatorOptions() location.Options {
	return location.Options{MaxLocations: o.MaxUniformLocations}
}

func (o Options) storeOptions() store.Options {
	return store.Options{MaxCombinedTextureUnits: o.MaxCombinedTextureUnits()}
}
