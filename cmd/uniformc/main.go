// Command uniformc links a uniform manifest and reports the result.
//
// Usage:
//
//	uniformc [options] <manifest.yaml>
//
// Examples:
//
//	uniformc program.yaml                 # Print the location table
//	uniformc -glsl program.yaml           # Print GLSL declarations
//	uniformc -glsl -lang 330 program.yaml # Target GLSL 3.30
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/uniforms"
	"github.com/gogpu/uniforms/glsl"
)

var (
	output   = flag.String("o", "", "output file (default: stdout)")
	emitGLSL = flag.Bool("glsl", false, "print GLSL declarations instead of the location table")
	lang     = flag.String("lang", "310es", "GLSL version for -glsl (330, 410, 430, 450, 460, 300es, 310es, 320es)")
	verbose  = flag.Bool("v", false, "log link and program events to stderr")
	version  = flag.Bool("version", false, "print version")
)

const uniformcVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("uniformc version %s\n", uniformcVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no manifest specified")
		usage()
		os.Exit(1)
	}

	if *verbose {
		uniforms.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	langVersion, err := parseVersion(*lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m, err := loadManifest(args[0], os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading manifest: %v\n", err)
		os.Exit(1)
	}

	var out strings.Builder
	if err := run(&out, m, *emitGLSL, glsl.Options{LangVersion: langVersion, ForceHighPrecision: true}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(out.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if _, err := io.WriteString(os.Stdout, out.String()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

// run links the manifest, applies its set entries and writes either the
// location table or the GLSL declarations to w.
func run(w io.Writer, m *Manifest, emitGLSL bool, opts glsl.Options) error {
	shaders, err := m.shaders()
	if err != nil {
		return err
	}

	ctx := uniforms.NewContext(uniforms.DefaultOptions())
	id, err := ctx.LinkProgram(shaders...)
	if err != nil {
		return err
	}
	defer ctx.DeleteProgram(id) //nolint:errcheck // id is live

	if emitGLSL {
		prog, _ := ctx.Program(id)
		source, err := glsl.WriteUniforms(prog.Allocation(), opts)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, source)
		return err
	}

	for _, s := range m.Set {
		if err := s.apply(ctx, id); err != nil {
			return err
		}
	}
	return writeReport(w, ctx, id)
}

// parseVersion maps a -lang value to a GLSL version.
func parseVersion(s string) (glsl.Version, error) {
	switch strings.ToLower(strings.ReplaceAll(s, " ", "")) {
	case "330":
		return glsl.Version330, nil
	case "410":
		return glsl.Version410, nil
	case "430":
		return glsl.Version430, nil
	case "450":
		return glsl.Version450, nil
	case "460":
		return glsl.Version460, nil
	case "300es":
		return glsl.VersionES300, nil
	case "310es":
		return glsl.VersionES310, nil
	case "320es":
		return glsl.VersionES320, nil
	default:
		return glsl.Version{}, fmt.Errorf("unknown GLSL version %q", s)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: uniformc [options] <manifest.yaml>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  uniformc program.yaml                  Print the location table\n")
	fmt.Fprintf(os.Stderr, "  uniformc -glsl program.yaml            Print GLSL declarations\n")
	fmt.Fprintf(os.Stderr, "  uniformc -glsl -lang 330 program.yaml  Target GLSL 3.30\n")
	fmt.Fprintf(os.Stderr, "  uniformc - < program.yaml              Read the manifest from stdin\n")
}
