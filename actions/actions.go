// Package actions implements the generation-time hook a user supplies to
// fill in what each generated parser function should actually build and
// return, in place of the structural parse-tree the generator can build on
// its own. It is grounded on the original source's reflective dispatch
// (hwpg/runtime/python/parser_codegen.py's _strip_func_prefix plus
// getattr(self._func_actions, attr_name)): there the hook is a Python
// attribute lookup against a user object; here it's reflect.Value.
// MethodByName against a user-supplied ParserActions value.
package actions

import (
	"fmt"
	"reflect"
	"strings"
)

// ParserActions is the user-supplied value gosink looks methods up against.
// Any Go value works; it carries no required interface because the method
// set it needs to expose depends entirely on the grammar being compiled.
type ParserActions interface{}

// StripFuncPrefix removes the "parse_" or "_parse_" prefix a generated
// function name always carries, leaving the bare name an action method is
// looked up under.
func StripFuncPrefix(funcName string) string {
	switch {
	case strings.HasPrefix(funcName, "_parse_"):
		return strings.TrimPrefix(funcName, "_parse_")
	case strings.HasPrefix(funcName, "parse_"):
		return strings.TrimPrefix(funcName, "parse_")
	default:
		return funcName
	}
}

// methodName turns a stripped function name into the exported Go method
// name reflection needs: a leading capital, rest untouched (underscores
// are legal in a Go identifier, just unconventional, which matches this
// being a generated-from, not handwritten, name).
func methodName(stripped string) string {
	if stripped == "" {
		return stripped
	}
	return strings.ToUpper(stripped[:1]) + stripped[1:]
}

// Action is what an action method must return: the Go source snippet the
// generated function should evaluate as its return expression, and the
// return type the generated function signature should declare.
type Action struct {
	Snippet    string
	ReturnType string
}

// Lookup finds the action bound to funcName on actionsObj and invokes it.
// actionsObj may be nil, in which case every lookup fails with
// *MissingActionError; callers decide whether that's acceptable (it is,
// when Config.MakeParseTree is true and no action is needed at all).
func Lookup(actionsObj ParserActions, funcName string) (Action, error) {
	if actionsObj == nil {
		return Action{}, &MissingActionError{FuncName: funcName}
	}

	name := methodName(StripFuncPrefix(funcName))
	rv := reflect.ValueOf(actionsObj)
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return Action{}, &MissingActionError{FuncName: funcName}
	}

	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 2 {
		return Action{}, fmt.Errorf("action method %s has signature %s, want func() (string, string)", name, mt)
	}
	out := m.Call(nil)
	snippet, ok := out[0].Interface().(string)
	if !ok {
		return Action{}, fmt.Errorf("action method %s's first return value is not a string", name)
	}
	returnType, ok := out[1].Interface().(string)
	if !ok {
		return Action{}, fmt.Errorf("action method %s's second return value is not a string", name)
	}
	return Action{Snippet: snippet, ReturnType: returnType}, nil
}
