package codegen

import "fmt"

// StructurallyUnknownNodeError is always fatal: it means the generator
// walked into a node shape the processor should have eliminated (a
// TokenLit that survived processing) or a node kind the walker has no case
// for. Neither can arise from a grammar that passed the processor, so
// callers can treat this as an internal invariant violation (spec.md §7).
type StructurallyUnknownNodeError struct {
	NodeKind string
}

func (e *StructurallyUnknownNodeError) Error() string {
	return fmt.Sprintf("internal error: structurally unknown node while generating code: %s", e.NodeKind)
}
