package graph

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns "error" or "warning".
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Code identifies the diagnostic category.
type Code uint8

const (
	CodeCircularDependency Code = iota
	CodeTypeMismatch
	CodeMissingInput
	CodeDisconnectedOutput
)

// String returns a stable name for the code.
func (c Code) String() string {
	switch c {
	case CodeCircularDependency:
		return "CircularDependency"
	case CodeTypeMismatch:
		return "TypeMismatch"
	case CodeMissingInput:
		return "MissingInput"
	case CodeDisconnectedOutput:
		return "DisconnectedOutput"
	default:
		return "Unknown"
	}
}

// Diagnostic is one validation finding. Node, Slot, the type pair and Path
// are optional context depending on the code; Suggestion, when non-empty,
// is a human-readable fix.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string

	// Optional context
	Node       *NodeHandle
	Slot       string
	From, To   Type
	HasTypes   bool
	Path       []NodeHandle
	Suggestion string
}

// String renders the diagnostic for logs and CLI output.
func (d Diagnostic) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s", d.Severity, d.Code, d.Message)
	if len(d.Path) > 0 {
		parts := make([]string, len(d.Path))
		for i, h := range d.Path {
			parts[i] = fmt.Sprintf("#%d", h)
		}
		fmt.Fprintf(&sb, " (path %s)", strings.Join(parts, " -> "))
	}
	if d.Suggestion != "" {
		fmt.Fprintf(&sb, "; %s", d.Suggestion)
	}
	return sb.String()
}

// HasErrors reports whether any diagnostic in the list is error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
