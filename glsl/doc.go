// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl generates GLSL shader source from a material graph.
//
// Compilation is a three-phase pass driven by a Builder: setup walks the
// graph once and fills the symbol tables, analyze marks shared
// subexpressions for promotion to local variables, and generate assembles
// the source text in a fixed section order along with the uniform,
// attribute, varying, and output tables the rendering backend binds before
// draw.
//
// One Builder serves exactly one compile. The graph is read-only during
// compilation, so the vertex and fragment pass of the same material can be
// compiled concurrently with two builders.
package glsl
