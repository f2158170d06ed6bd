package sound

import (
	"fmt"
	"strings"
)

// ParseError reports malformed markup. No document is produced when it is
// returned; attribute-level problems go into the Report instead.
type ParseError struct {
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return "parse error: " + e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnresolvedReferenceError reports a named envelope or filter that has no
// definition. Kind is "envelope" or "filter".
type UnresolvedReferenceError struct {
	Name string
	Kind string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved %s reference %q", e.Kind, e.Name)
}

// Issue is a single locatable validation finding.
type Issue struct {
	Code    string
	Message string
	Element string
	Attr    string
	Line    int
	Column  int
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", i.Line, i.Column)
	}
	b.WriteString(i.Message)
	if i.Element != "" {
		fmt.Fprintf(&b, " (<%s>", i.Element)
		if i.Attr != "" {
			fmt.Fprintf(&b, " %s", i.Attr)
		}
		b.WriteString(")")
	}
	return b.String()
}

// Report accumulates validation errors and non-fatal warnings. A report
// with no errors means the document is valid; warnings never block use.
type Report struct {
	Errors   []Issue
	Warnings []Issue
}

func (r *Report) Valid() bool { return len(r.Errors) == 0 }

func (r *Report) addError(i Issue)   { r.Errors = append(r.Errors, i) }
func (r *Report) addWarning(i Issue) { r.Warnings = append(r.Warnings, i) }

// Err converts the report into a single error for strict callers, or nil
// when the report carries no errors.
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Report: r}
}

// ValidationError wraps a failed Report for callers that want a single
// error value out of Parse.
type ValidationError struct {
	Report *Report
}

func (e *ValidationError) Error() string {
	n := len(e.Report.Errors)
	first := e.Report.Errors[0].String()
	if n == 1 {
		return "validation failed: " + first
	}
	return fmt.Sprintf("validation failed with %d errors, first: %s", n, first)
}
