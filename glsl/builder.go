// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadergraph/graph"
)

// Builder drives one compile pass over a graph: setup collects the
// visited-node set and the symbol tables, analyze marks cache candidates,
// generate assembles the final source.
//
// All pass bookkeeping, including the "already built" state, lives here
// keyed by node handle. The graph itself is never written, so independent
// builders may compile the same graph concurrently (for example the vertex
// and fragment pass of one material). A single Builder is not re-entrant.
type Builder struct {
	graph   *graph.Graph
	options *Options

	visited    map[graph.NodeHandle]struct{}
	refs       map[graph.NodeHandle]int
	candidates map[graph.NodeHandle]struct{}
	built      map[graph.NodeHandle]string
	building   map[graph.NodeHandle]struct{}

	// Local declarations emitted while building, in emission order.
	statements []string
	localCount int

	uniforms   map[string]graph.Type
	attributes map[string]graph.Type
	varyings   map[string]VaryingInfo
	outputs    map[string]graph.Type

	varyingAssigns []varyingAssign

	functions []graph.FunctionHandle
	funcSeen  map[graph.FunctionHandle]struct{}
	funcNames map[graph.FunctionHandle]string

	namer *namer

	// argNames is non-nil while a declared function body is being
	// generated; Argument nodes resolve against it. Local promotion is
	// disabled inside function bodies.
	argNames []string

	rootExpr string
}

type varyingAssign struct {
	name  string
	typ   graph.Type
	value graph.NodeHandle
}

// NewBuilder creates a builder for one compile pass.
func NewBuilder(g *graph.Graph, options *Options) *Builder {
	return &Builder{
		graph:      g,
		options:    options,
		visited:    make(map[graph.NodeHandle]struct{}),
		refs:       make(map[graph.NodeHandle]int),
		candidates: make(map[graph.NodeHandle]struct{}),
		built:      make(map[graph.NodeHandle]string),
		building:   make(map[graph.NodeHandle]struct{}),
		uniforms:   make(map[string]graph.Type),
		attributes: make(map[string]graph.Type),
		varyings:   make(map[string]VaryingInfo),
		outputs:    make(map[string]graph.Type),
		funcSeen:   make(map[graph.FunctionHandle]struct{}),
		funcNames:  make(map[graph.FunctionHandle]string),
		namer:      newNamer(),
	}
}

// Setup runs the first phase: a single depth-first traversal from the root
// that visits each distinct node once, registers resources in the symbol
// tables, and verifies stage and context constraints.
func (b *Builder) Setup(root graph.NodeHandle) error {
	return b.setupNode(root)
}

func (b *Builder) setupNode(handle graph.NodeHandle) error {
	if _, seen := b.visited[handle]; seen {
		return nil
	}
	node, ok := b.graph.Node(handle)
	if !ok {
		return newError(ErrInvalidNode, handle, "dangling node handle")
	}
	b.visited[handle] = struct{}{}

	// Resource names are fixed by the graph; reserving them keeps the
	// namer from issuing the same identifier for a local or function.
	switch k := node.Kind.(type) {
	case graph.Uniform:
		name := escapeKeyword(k.Name)
		b.namer.reserve(name)
		b.uniforms[name] = k.Type

	case graph.Attribute:
		if b.options.Stage != StageVertex {
			return newError(ErrInvalidStage, handle,
				"attribute %q read in %s stage", k.Name, b.options.Stage)
		}
		name := escapeKeyword(k.Name)
		b.namer.reserve(name)
		b.attributes[name] = k.Type

	case graph.Varying:
		name := escapeKeyword(k.Name)
		b.namer.reserve(name)
		b.varyings[name] = VaryingInfo{Type: k.Type, Interpolation: k.Interpolation}
		if b.options.Stage == StageVertex {
			b.varyingAssigns = append(b.varyingAssigns, varyingAssign{
				name:  name,
				typ:   k.Type,
				value: k.Value,
			})
		}

	case graph.Builtin:
		if graph.BuiltinStage(k.Builtin) != b.options.Stage.String() {
			return newError(ErrInvalidStage, handle,
				"%s is only available in the %s stage, compiling %s",
				builtinName(k.Builtin), graph.BuiltinStage(k.Builtin), b.options.Stage)
		}

	case graph.Context:
		name, typ, bound := b.options.Context.uniform(k.Value)
		if !bound {
			return newError(ErrMissingContext, handle,
				"no uniform binding configured for %s", k.Value)
		}
		b.namer.reserve(name)
		b.uniforms[name] = typ

	case graph.Call:
		if err := b.setupFunction(k.Function, handle); err != nil {
			return err
		}
	}

	// A fragment pass reads a varying by name; its value subgraph belongs
	// to the vertex pass and is not visited.
	if _, isVarying := node.Kind.(graph.Varying); isVarying && b.options.Stage != StageVertex {
		return nil
	}

	for _, edge := range b.graph.Dependencies(handle) {
		if err := b.setupNode(edge.Node); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) setupFunction(handle graph.FunctionHandle, caller graph.NodeHandle) error {
	if _, seen := b.funcSeen[handle]; seen {
		return nil
	}
	fn, ok := b.graph.Function(handle)
	if !ok {
		return newError(ErrUndefinedFunction, caller,
			"call references undeclared function %d", handle)
	}
	b.funcSeen[handle] = struct{}{}
	b.funcNames[handle] = b.namer.call(fn.Name)
	if err := b.setupNode(fn.Body); err != nil {
		return err
	}
	// Post-order: a callee discovered while walking the body lands in the
	// list first, so its declaration precedes every caller's.
	b.functions = append(b.functions, handle)
	return nil
}

// Analyze runs the second phase: reference counts are computed from
// in-degree over the visited set, and every node referenced more than once
// whose expression is worth caching is marked for promotion to a local.
func (b *Builder) Analyze() {
	for handle := range b.visited {
		for _, edge := range b.graph.Dependencies(handle) {
			if _, ok := b.visited[edge.Node]; !ok {
				continue
			}
			b.refs[edge.Node]++
		}
	}
	for handle, count := range b.refs {
		if count > 1 && !b.trivial(handle) {
			b.candidates[handle] = struct{}{}
		}
	}
}

// trivial reports whether re-emitting the node is cheaper than a local:
// plain names and constants are never promoted.
func (b *Builder) trivial(handle graph.NodeHandle) bool {
	node, ok := b.graph.Node(handle)
	if !ok {
		return true
	}
	switch node.Kind.(type) {
	case graph.Literal, graph.Uniform, graph.Attribute, graph.Varying,
		graph.Builtin, graph.Context, graph.Argument:
		return true
	}
	return false
}

// VisitedCount returns the number of distinct nodes seen during setup.
func (b *Builder) VisitedCount() int {
	return len(b.visited)
}

// CacheCandidate reports whether analyze promoted the node to a local.
func (b *Builder) CacheCandidate(handle graph.NodeHandle) bool {
	_, ok := b.candidates[handle]
	return ok
}

// Build returns the expression text for a node, coerced to the expected
// type. Building the same node twice in one pass yields identical text;
// promoted nodes return their local name after first emission.
func (b *Builder) Build(handle graph.NodeHandle, expected graph.Type) (string, error) {
	expr, err := b.buildNatural(handle)
	if err != nil {
		return "", err
	}
	natural, ok := graph.ResolveType(b.graph, handle)
	if !ok {
		return expr, nil
	}
	return b.coerce(expr, natural, expected, handle)
}

func (b *Builder) buildNatural(handle graph.NodeHandle) (string, error) {
	if expr, ok := b.built[handle]; ok {
		return expr, nil
	}

	// Skipping validation must not turn a cyclic graph into unbounded
	// recursion; re-entering a node mid-build is a hard error.
	if _, inProgress := b.building[handle]; inProgress {
		return "", newError(ErrInvalidNode, handle, "expression depends on itself")
	}
	b.building[handle] = struct{}{}

	expr, err := b.generate(handle)
	delete(b.building, handle)
	if err != nil {
		return "", err
	}

	if _, promote := b.candidates[handle]; promote && b.argNames == nil {
		typ, ok := graph.ResolveType(b.graph, handle)
		if ok {
			name := b.namer.call(fmt.Sprintf("t%d", b.localCount))
			b.localCount++
			b.statements = append(b.statements, fmt.Sprintf("%s %s = %s;", typ, name, expr))
			expr = name
		}
	}

	b.built[handle] = expr
	return expr, nil
}

// Generate runs the final phase: declared functions, varying assignments,
// and the root expression are built, then the writer assembles the source
// in its fixed section order.
func (b *Builder) Generate(root graph.NodeHandle) (string, error) {
	funcDecls := make([]string, 0, len(b.functions))
	for _, handle := range b.functions {
		decl, err := b.generateFunction(handle)
		if err != nil {
			return "", err
		}
		funcDecls = append(funcDecls, decl)
	}

	assigns := make([]string, 0, len(b.varyingAssigns)+1)
	for _, va := range b.varyingAssigns {
		expr, err := b.Build(va.value, va.typ)
		if err != nil {
			return "", err
		}
		assigns = append(assigns, fmt.Sprintf("%s = %s;", va.name, expr))
	}

	rootExpr, err := b.buildNatural(root)
	if err != nil {
		return "", err
	}
	b.rootExpr = rootExpr
	rootType, _ := graph.ResolveType(b.graph, root)

	switch b.options.Stage {
	case StageVertex:
		expr, err := b.coerce(rootExpr, rootType, graph.Vec4, root)
		if err != nil {
			return "", err
		}
		assigns = append(assigns, fmt.Sprintf("gl_Position = %s;", expr))

	case StageFragment:
		b.outputs["fragColor"] = graph.Vec4
		expr, err := b.coerce(rootExpr, rootType, graph.Vec4, root)
		if err != nil {
			return "", err
		}
		assigns = append(assigns, fmt.Sprintf("fragColor = %s;", expr))

	case StageCompute:
		name := b.namer.call("result")
		assigns = append(assigns, fmt.Sprintf("%s %s = %s;", rootType, name, rootExpr))
	}

	return b.assemble(funcDecls, assigns), nil
}

func (b *Builder) generateFunction(handle graph.FunctionHandle) (string, error) {
	fn, ok := b.graph.Function(handle)
	if !ok {
		return "", newError(ErrUndefinedFunction, 0, "undeclared function %d", handle)
	}

	b.argNames = make([]string, len(fn.Params))
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		name := escapeKeyword(p.Name)
		b.argNames[i] = name
		params[i] = fmt.Sprintf("%s %s", p.Type, name)
	}

	body, err := b.Build(fn.Body, fn.Result)
	b.argNames = nil
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s(%s) {\n    return %s;\n}",
		fn.Result, b.funcNames[handle], strings.Join(params, ", "), body), nil
}

// Info returns the resource tables accumulated by the pass.
func (b *Builder) Info() ShaderInfo {
	return ShaderInfo{
		Uniforms:   b.uniforms,
		Attributes: b.attributes,
		Varyings:   b.varyings,
		Outputs:    b.outputs,
		RootExpr:   b.rootExpr,
	}
}
