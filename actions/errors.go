package actions

import (
	"errors"
	"fmt"
)

// ErrMissingAction is returned when a generated function needs a user
// action snippet (MakeParseTree is false) and neither a ParserActions value
// was supplied nor does it expose a matching method (spec.md §7).
var ErrMissingAction = errors.New("missing parser action")

// MissingActionError names which function had no action to bind to.
type MissingActionError struct {
	FuncName string
}

func (e *MissingActionError) Error() string {
	return fmt.Sprintf("%s: %v", e.FuncName, ErrMissingAction)
}

func (e *MissingActionError) Unwrap() error { return ErrMissingAction }
