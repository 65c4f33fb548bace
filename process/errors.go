package process

import "errors"

// Sentinel causes for SemanticError, grounded on the teacher's
// grammar/semantic_error.go sentinel-error list. Compare against these with
// errors.Is, not string matching.
var (
	ErrUnresolvedLiteral = errors.New("literal does not have corresponding token rule")
	ErrTopLevelBinding   = errors.New("top level binding is not allowed")
)

// SemanticError is one accumulated grammar-level error. Msg is the fully
// rendered, human-readable message (spec.md §8's scenarios match on this
// text); Cause is one of the sentinels above for programmatic dispatch.
type SemanticError struct {
	Cause error
	Msg   string
}

func (e *SemanticError) Error() string { return "ERROR: " + e.Msg }
func (e *SemanticError) Unwrap() error { return e.Cause }
