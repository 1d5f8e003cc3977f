// Package shadergraph compiles material node graphs to GLSL shader source.
//
// A material is a directed acyclic graph of value nodes. Graphs are built
// two ways: directly through the graph package API, or by compiling source
// text in a small shading DSL. Both front ends converge on the same IR,
// which a static validator can check and the glsl backend compiles.
//
// Example usage (DSL):
//
//	shader, err := shadergraph.Compile(`
//	    var base: vec3 = vec3(1.0, 0.5, 0.2);
//	    var glow: float = 0.5;
//	    base * glow
//	`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(shader.Source)
//
// Example usage (API):
//
//	g := graph.New()
//	color := g.Add(graph.Uniform{Name: "u_color", Type: graph.Vec3})
//	shader, err := shadergraph.CompileGraph(g, color, shadergraph.DefaultOptions())
//
// For lower-level control, use the sgsl, graph, and glsl packages directly.
package shadergraph

import (
	"fmt"

	"github.com/gogpu/shadergraph/glsl"
	"github.com/gogpu/shadergraph/graph"
	"github.com/gogpu/shadergraph/sgsl"
)

// CompileOptions configures shader compilation.
type CompileOptions struct {
	// Stage is the shader stage to compile (default: fragment).
	Stage glsl.Stage

	// LangVersion is the target GLSL version (default: 330 core).
	LangVersion glsl.Version

	// Context binds ambient host values to uniform names.
	Context glsl.ContextBindings

	// Symbols declares uniforms visible to DSL source by name.
	Symbols map[string]graph.Type

	// Validate runs the static validator before code generation;
	// error-severity diagnostics block compilation.
	Validate bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		Stage:       glsl.StageFragment,
		LangVersion: glsl.Version330,
		Context:     glsl.DefaultContextBindings(),
		Validate:    true,
	}
}

// Shader is the result of a compile: the generated source, the resource
// tables the backend binds before draw, and any validator diagnostics
// (warnings included even on success).
type Shader struct {
	Source      string
	Info        glsl.ShaderInfo
	Diagnostics []graph.Diagnostic
}

// Compile compiles DSL source text to GLSL using default options.
//
// This is the simplest entry point. For more control, use
// CompileSource/CompileGraph or the individual packages.
func Compile(source string) (*Shader, error) {
	return CompileSource(source, DefaultOptions())
}

// CompileSource compiles DSL source text to GLSL.
//
// The pipeline is:
//  1. Tokenize and parse the source to an AST
//  2. Bind the AST into a node graph
//  3. Validate the graph (if enabled)
//  4. Generate GLSL for the requested stage
func CompileSource(source string, opts CompileOptions) (*Shader, error) {
	g, root, err := buildGraph(source, opts)
	if err != nil {
		return nil, err
	}
	return CompileGraph(g, root, opts)
}

// buildGraph runs the front end: tokenize, parse, and bind into a fresh
// graph with the host symbols predefined.
func buildGraph(source string, opts CompileOptions) (*graph.Graph, graph.NodeHandle, error) {
	tokens, err := sgsl.NewLexer(source).Tokenize()
	if err != nil {
		return nil, 0, err
	}
	program, err := sgsl.NewParser(tokens, source).Parse()
	if err != nil {
		return nil, 0, err
	}

	g := graph.New()
	binder := sgsl.NewBinder(g)
	for name, typ := range opts.Symbols {
		binder.Define(name, g.Add(graph.Uniform{Name: name, Type: typ}))
	}

	root, err := binder.Bind(program, source)
	if err != nil {
		return nil, 0, err
	}
	return g, root, nil
}

// CompileGraph compiles the subgraph rooted at root to GLSL.
//
// When validation is enabled and reports error-severity diagnostics, the
// compile stops and the diagnostics are returned on the Shader alongside
// the error; warnings never block.
func CompileGraph(g *graph.Graph, root graph.NodeHandle, opts CompileOptions) (*Shader, error) {
	var diags []graph.Diagnostic
	if opts.Validate {
		diags = graph.Validate(g, root)
		if graph.HasErrors(diags) {
			return &Shader{Diagnostics: diags}, fmt.Errorf("validation failed: %s", firstError(diags))
		}
	}

	source, info, err := glsl.Compile(g, root, glsl.Options{
		Stage:              opts.Stage,
		LangVersion:        opts.LangVersion,
		ForceHighPrecision: true,
		Context:            opts.Context,
	})
	if err != nil {
		return &Shader{Diagnostics: diags}, err
	}

	return &Shader{
		Source:      source,
		Info:        info,
		Diagnostics: diags,
	}, nil
}

// ValidateSource parses and binds DSL source and runs the static validator
// without generating code. Front-end failures (lexing, parsing, binding)
// are returned as the error; graph findings come back as diagnostics.
func ValidateSource(source string, opts CompileOptions) ([]graph.Diagnostic, error) {
	g, root, err := buildGraph(source, opts)
	if err != nil {
		return nil, err
	}
	return graph.Validate(g, root), nil
}

func firstError(diags []graph.Diagnostic) string {
	for _, d := range diags {
		if d.Severity == graph.SeverityError {
			return d.String()
		}
	}
	return "unknown error"
}
