package sgsl

import (
	"fmt"
	"strings"
)

// ErrorCode classifies front-end failures. The front end aborts on the
// first error it hits; there is no batching here.
type ErrorCode uint8

const (
	ErrLex ErrorCode = iota
	ErrSyntax
	ErrUndefinedSymbol
	ErrArityMismatch
	ErrTypeMismatch
	ErrUnsupportedTargetType
)

// String returns the diagnostic name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrLex:
		return "LexError"
	case ErrSyntax:
		return "SyntaxError"
	case ErrUndefinedSymbol:
		return "UndefinedSymbol"
	case ErrArityMismatch:
		return "ArityMismatch"
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrUnsupportedTargetType:
		return "UnsupportedTargetType"
	default:
		return "Unknown"
	}
}

// SourceError represents a front-end error with source location information.
type SourceError struct {
	Code    ErrorCode
	Message string
	Span    Span
	Source  string // Original source code (for context display)
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Span.Start.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Span.Start.Line, e.Span.Start.Column, e.Code, e.Message)
}

// FormatWithContext returns the error message with source context.
// Shows the problematic line with a caret pointing to the error location.
func (e *SourceError) FormatWithContext() string {
	if e.Source == "" || e.Span.Start.Line == 0 {
		return e.Error()
	}

	lines := strings.Split(e.Source, "\n")
	lineNum := e.Span.Start.Line
	if lineNum < 1 || lineNum > len(lines) {
		return e.Error()
	}

	line := lines[lineNum-1]
	col := e.Span.Start.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", e.Code, e.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))

	return sb.String()
}

// NewSourceError creates a new SourceError.
func NewSourceError(code ErrorCode, message string, span Span, source string) *SourceError {
	return &SourceError{
		Code:    code,
		Message: message,
		Span:    span,
		Source:  source,
	}
}

// NewSourceErrorf creates a new SourceError with a formatted message.
func NewSourceErrorf(code ErrorCode, span Span, source string, format string, args ...interface{}) *SourceError {
	return &SourceError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
		Source:  source,
	}
}
