// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/shadergraph/graph"
)

// namer generates unique identifiers.
type namer struct {
	usedNames map[string]struct{}
	counter   uint32
}

func newNamer() *namer {
	return &namer{
		usedNames: make(map[string]struct{}),
	}
}

// reserve marks a name as taken so call never hands it out.
func (n *namer) reserve(name string) {
	n.usedNames[name] = struct{}{}
}

// call generates a unique name based on the given base.
func (n *namer) call(base string) string {
	escaped := escapeKeyword(base)

	if _, used := n.usedNames[escaped]; !used {
		n.usedNames[escaped] = struct{}{}
		return escaped
	}

	for {
		n.counter++
		candidate := fmt.Sprintf("%s_%d", escaped, n.counter)
		if _, used := n.usedNames[candidate]; !used {
			n.usedNames[candidate] = struct{}{}
			return candidate
		}
	}
}

// sourceWriter accumulates output with indentation.
type sourceWriter struct {
	out    strings.Builder
	indent int
}

func (w *sourceWriter) writeLine(format string, args ...any) {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("    ")
	}
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

func (w *sourceWriter) blank() {
	w.out.WriteByte('\n')
}

// assemble writes the final source in the fixed section order: version and
// precision preamble, uniforms, attributes (vertex), varyings, outputs
// (fragment), declared functions, then main with the accumulated local
// declarations and final assignments.
func (b *Builder) assemble(funcDecls, assigns []string) string {
	w := &sourceWriter{}

	w.writeLine("#version %s", b.options.LangVersion)
	w.blank()

	if b.options.LangVersion.ES {
		precision := "mediump"
		if b.options.ForceHighPrecision {
			precision = "highp"
		}
		w.writeLine("precision %s float;", precision)
		w.writeLine("precision %s int;", precision)
		w.blank()
	}

	if len(b.uniforms) > 0 {
		for _, name := range sortedNames(b.uniforms) {
			w.writeLine("uniform %s %s;", b.uniforms[name], name)
		}
		w.blank()
	}

	if b.options.Stage == StageVertex && len(b.attributes) > 0 {
		for _, name := range sortedNames(b.attributes) {
			w.writeLine("in %s %s;", b.attributes[name], name)
		}
		w.blank()
	}

	if len(b.varyings) > 0 {
		direction := "in"
		if b.options.Stage == StageVertex {
			direction = "out"
		}
		names := make([]string, 0, len(b.varyings))
		for name := range b.varyings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			info := b.varyings[name]
			if info.Interpolation == graph.InterpSmooth {
				w.writeLine("%s %s %s;", direction, info.Type, name)
			} else {
				w.writeLine("%s %s %s %s;", info.Interpolation, direction, info.Type, name)
			}
		}
		w.blank()
	}

	if b.options.Stage == StageFragment && len(b.outputs) > 0 {
		for _, name := range sortedNames(b.outputs) {
			w.writeLine("out %s %s;", b.outputs[name], name)
		}
		w.blank()
	}

	for _, decl := range funcDecls {
		w.writeLine(decl)
		w.blank()
	}

	w.writeLine("void main() {")
	w.indent++
	for _, stmt := range b.statements {
		w.writeLine(stmt)
	}
	for _, stmt := range assigns {
		w.writeLine(stmt)
	}
	w.indent--
	w.writeLine("}")

	return w.out.String()
}

func sortedNames(table map[string]graph.Type) []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
