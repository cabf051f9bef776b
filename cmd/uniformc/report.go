package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gogpu/uniforms"
	"github.com/gogpu/uniforms/glsl"
	"github.com/gogpu/uniforms/ir"
	"github.com/gogpu/uniforms/location"
)

// writeReport prints one row per location owned by the program, with the
// value currently stored there.
func writeReport(w io.Writer, ctx *uniforms.Context, id uniforms.ProgramID) error {
	prog, ok := ctx.Program(id)
	if !ok {
		return fmt.Errorf("unknown program %d", id)
	}
	alloc := prog.Allocation()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LOCATION\tNAME\tTYPE\tSIZE\tSTAGES\tVALUES")

	for i, decl := range alloc.Declarations() {
		base := alloc.Base(i)
		for e := 0; e < decl.Elements(); e++ {
			loc := base + location.Location(e) //nolint:gosec // G115: e < ArraySize
			name := decl.Name
			if decl.IsArray() {
				name += "[" + strconv.Itoa(e) + "]"
			}
			values, err := readValues(ctx, id, loc, decl.Type)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
				loc, name, glsl.TypeName(decl.Type), decl.Elements(), decl.Stages, values)
		}
	}
	return tw.Flush()
}

// readValues reads one element back in the uniform's own scalar kind.
func readValues(ctx *uniforms.Context, id uniforms.ProgramID, loc location.Location, typ ir.Type) (string, error) {
	shape, ok := ir.ShapeOf(typ)
	if !ok {
		return "", fmt.Errorf("type %s has no value", glsl.TypeName(typ))
	}

	parts := make([]string, 0, shape.Len())
	switch shape.Kind {
	case ir.ScalarSint:
		dst := make([]int32, shape.Len())
		n, err := ctx.GetUniformiv(id, loc, dst)
		if err != nil {
			return "", err
		}
		for _, v := range dst[:n] {
			parts = append(parts, strconv.FormatInt(int64(v), 10))
		}
	case ir.ScalarUint:
		dst := make([]uint32, shape.Len())
		n, err := ctx.GetUniformuiv(id, loc, dst)
		if err != nil {
			return "", err
		}
		for _, v := range dst[:n] {
			parts = append(parts, strconv.FormatUint(uint64(v), 10))
		}
	case ir.ScalarBool:
		dst := make([]int32, shape.Len())
		n, err := ctx.GetUniformiv(id, loc, dst)
		if err != nil {
			return "", err
		}
		for _, v := range dst[:n] {
			parts = append(parts, strconv.FormatBool(v != 0))
		}
	default:
		dst := make([]float32, shape.Len())
		n, err := ctx.GetUniformfv(id, loc, dst)
		if err != nil {
			return "", err
		}
		for _, v := range dst[:n] {
			parts = append(parts, strconv.FormatFloat(float64(v), 'g', -1, 32))
		}
	}
	return strings.Join(parts, " "), nil
}
