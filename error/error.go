// Package error is the shared error-reporting shape used across the CLI
// and pipeline layers: one error per problem found, carrying enough
// position/source context to print a useful line, plus an aggregate type
// so many errors from one run are reported together instead of one at a
// time. Adapted from the teacher's error.SpecError (error/error.go);
// SpecErrors generalizes the aggregate-error pattern the teacher's
// cmd/vartan/compile.go type-asserts against (verr.SpecErrors) into an
// actual named type, since this generator needs to report process
// package's accumulated semantic errors the same way.
package error

import (
	"fmt"
	"strings"
)

// SpecError wraps one error with the source file and row it came from, if
// known. Row is 0 when the underlying error has no associated position
// (most of process.SemanticError, which is purely structural).
type SpecError struct {
	Cause      error
	Row        int
	FilePath   string
	SourceName string
}

func (e *SpecError) Error() string {
	prefix := e.SourceName
	if prefix == "" {
		prefix = e.FilePath
	}
	switch {
	case prefix != "" && e.Row != 0:
		return fmt.Sprintf("%s:%d: error: %v", prefix, e.Row, e.Cause)
	case prefix != "":
		return fmt.Sprintf("%s: error: %v", prefix, e.Cause)
	case e.Row != 0:
		return fmt.Sprintf("%d: error: %v", e.Row, e.Cause)
	default:
		return fmt.Sprintf("error: %v", e.Cause)
	}
}

func (e *SpecError) Unwrap() error { return e.Cause }

// SpecErrors aggregates every error found in one run. Its Error() joins
// them one per line, so a caller can print the whole report with a single
// fmt.Fprintln, the way cmd/hwpg does before exiting non-zero.
type SpecErrors []*SpecError

func (es SpecErrors) Error() string {
	lines := make([]string, len(es))
	for i, e := range es {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// FromErrors wraps a plain []error (as returned by process.Process) into a
// SpecErrors, attaching sourceName to every entry so the report names
// where they came from.
func FromErrors(errs []error, sourceName string) SpecErrors {
	out := make(SpecErrors, len(errs))
	for i, err := range errs {
		out[i] = &SpecError{Cause: err, SourceName: sourceName}
	}
	return out
}
