package lang

import (
	"fmt"
	"strings"
)

// ParseError is a parse error with source location information. Per §4.2,
// parse errors are recoverable at the top level only — they carry a
// position so a downstream highlighter can mark the offending column.
type ParseError struct {
	Message string
	Span    Span
	Source  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Span.Start.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

// FormatWithContext renders the error with the offending source line and a
// caret under the column, for CLI/editor consumption.
func (e *ParseError) FormatWithContext() string {
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
	fmt.Fprintf(&sb, "error: %s\n", e.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))
	return sb.String()
}

// NewParseErrorf builds a formatted ParseError.
func NewParseErrorf(span Span, source, format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Span: span, Source: source}
}

// ParseErrors is a list of parse errors; only the first is fatal to parsing
// (the parser stops at the first error per §4.2's "null AST and a
// position"), but callers may want to see the rest.
type ParseErrors []*ParseError

func (el ParseErrors) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	if len(el) == 1 {
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
}
