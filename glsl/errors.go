// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/shadergraph/graph"
)

// ErrorKind classifies compile failures. A compile aborts on the first
// error; it is not recoverable mid-pass.
type ErrorKind uint8

const (
	// ErrMissingContext is returned when a node reads an ambient value the
	// compile was not configured with.
	ErrMissingContext ErrorKind = iota

	// ErrInvalidStage is returned when a node is used outside the stage it
	// belongs to.
	ErrInvalidStage

	// ErrUnsupportedConversion is returned when a node's value cannot be
	// coerced to the type its consumer requires.
	ErrUnsupportedConversion

	// ErrUndefinedFunction is returned when a call references a function
	// handle the graph does not declare.
	ErrUndefinedFunction

	// ErrInvalidNode is returned for malformed nodes: dangling handles,
	// empty constructors, unknown kinds.
	ErrInvalidNode
)

// String returns the diagnostic name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrMissingContext:
		return "MissingContext"
	case ErrInvalidStage:
		return "InvalidStage"
	case ErrUnsupportedConversion:
		return "UnsupportedConversion"
	case ErrUndefinedFunction:
		return "UndefinedFunction"
	case ErrInvalidNode:
		return "InvalidNode"
	default:
		return "Unknown"
	}
}

// Error is a compile-time failure tied to a node.
type Error struct {
	Kind    ErrorKind
	Message string
	Node    graph.NodeHandle
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("glsl: %s: %s (node #%d)", e.Kind, e.Message, e.Node)
}

func newError(kind ErrorKind, node graph.NodeHandle, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Node:    node,
	}
}
