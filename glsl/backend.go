// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/shadergraph/graph"
)

// Stage identifies the shader stage being compiled.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// Version represents a GLSL version.
type Version struct {
	Major uint8
	Minor uint8
	ES    bool // true for GLSL ES (OpenGL ES / WebGL)
}

// Common GLSL versions.
var (
	// Desktop OpenGL versions
	Version330 = Version{Major: 3, Minor: 30, ES: false} // OpenGL 3.3 Core
	Version410 = Version{Major: 4, Minor: 10, ES: false} // OpenGL 4.1
	Version450 = Version{Major: 4, Minor: 50, ES: false} // OpenGL 4.5
	Version460 = Version{Major: 4, Minor: 60, ES: false} // OpenGL 4.6

	// OpenGL ES / WebGL versions
	VersionES300 = Version{Major: 3, Minor: 0, ES: true}  // ES 3.0 / WebGL 2.0
	VersionES310 = Version{Major: 3, Minor: 10, ES: true} // ES 3.1 (compute shaders)
)

// String returns the version as a GLSL version directive value.
func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("%d%02d es", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d%02d core", v.Major, v.Minor)
}

// SupportsCompute returns true if this version supports compute shaders.
func (v Version) SupportsCompute() bool {
	if v.ES {
		return v.Major > 3 || (v.Major == 3 && v.Minor >= 10)
	}
	return v.Major > 4 || (v.Major == 4 && v.Minor >= 30)
}

// ContextBindings names the uniforms that carry ambient host values. An
// empty name means the value is unavailable; building a node that reads it
// fails with MissingContext.
type ContextBindings struct {
	Time             string
	Resolution       string
	ModelMatrix      string
	ViewMatrix       string
	ProjectionMatrix string
	CameraPosition   string
}

// DefaultContextBindings exposes every ambient value under a conventional
// uniform name.
func DefaultContextBindings() ContextBindings {
	return ContextBindings{
		Time:             "u_time",
		Resolution:       "u_resolution",
		ModelMatrix:      "u_model",
		ViewMatrix:       "u_view",
		ProjectionMatrix: "u_projection",
		CameraPosition:   "u_cameraPosition",
	}
}

// uniform returns the bound uniform name and type for an ambient value.
func (c ContextBindings) uniform(v graph.ContextValue) (string, graph.Type, bool) {
	var name string
	switch v {
	case graph.ContextTime:
		name = c.Time
	case graph.ContextResolution:
		name = c.Resolution
	case graph.ContextModelMatrix:
		name = c.ModelMatrix
	case graph.ContextViewMatrix:
		name = c.ViewMatrix
	case graph.ContextProjectionMatrix:
		name = c.ProjectionMatrix
	case graph.ContextCameraPosition:
		name = c.CameraPosition
	}
	if name == "" {
		return "", graph.Type{}, false
	}
	return name, graph.ContextType(v), true
}

// Options configures GLSL code generation.
type Options struct {
	// Stage is the shader stage to compile.
	Stage Stage

	// LangVersion is the target GLSL version.
	// Defaults to Version330 if zero.
	LangVersion Version

	// ForceHighPrecision forces highp precision for all float types (ES only).
	// If false, uses default precision qualifiers.
	ForceHighPrecision bool

	// Context binds ambient host values to uniform names.
	Context ContextBindings
}

// DefaultOptions returns sensible default options for GLSL generation.
func DefaultOptions() Options {
	return Options{
		Stage:              StageFragment,
		LangVersion:        Version330,
		ForceHighPrecision: true,
		Context:            DefaultContextBindings(),
	}
}

// VaryingInfo describes one varying the backend must wire between stages.
type VaryingInfo struct {
	Type          graph.Type
	Interpolation graph.Interpolation
}

// ShaderInfo contains the resource tables the backend binds before draw,
// plus the root expression text for inspection.
type ShaderInfo struct {
	Uniforms   map[string]graph.Type
	Attributes map[string]graph.Type // vertex stage only
	Varyings   map[string]VaryingInfo
	Outputs    map[string]graph.Type // fragment stage only
	RootExpr   string
}

// Compile generates GLSL source for the subgraph rooted at root.
// Returns the GLSL source as a string, the resource tables, or an error.
func Compile(g *graph.Graph, root graph.NodeHandle, options Options) (string, ShaderInfo, error) {
	if options.LangVersion.Major == 0 {
		options.LangVersion = Version330
	}

	b := NewBuilder(g, &options)

	if err := b.Setup(root); err != nil {
		return "", ShaderInfo{}, err
	}
	b.Analyze()

	source, err := b.Generate(root)
	if err != nil {
		return "", ShaderInfo{}, err
	}

	return source, b.Info(), nil
}
