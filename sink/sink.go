// Package sink defines the narrow, language-agnostic contract the parser-
// function generator (package codegen) drives: a channel that turns
// generator directives into target-language source text. It is an
// interface, not a base class hierarchy — implementations differ in their
// string templates and fresh-variable allocation, and the walker treats
// them as opaque (spec.md §4.5, §9).
package sink

// FuncCtx is the opaque per-function state a Sink hands back from
// StartFunction; the generator passes it to every Emit* call and to
// EndFunction for that function, and never inspects it.
type FuncCtx interface{}

// NameParts identifies which of the three function-naming forms in
// spec.md §4.4 applies:
//   - {Rule: r}                 -> "parse_<r>"               (top-level)
//   - {Rule: r, Binding: b}     -> "_parse_<r>_<b>"           (bound sub-node)
//   - {Rule: r, InnerIndex: n}  -> "_parse_<r>_inner<n>"      (anonymous sub-node, n >= 1)
//
// Binding and InnerIndex are mutually exclusive; InnerIndex == 0 with an
// empty Binding means the top-level form.
type NameParts struct {
	Rule       string
	Binding    string
	InnerIndex int
}

// Sink is the emission contract a target language implements. Methods are
// named after spec.md §4.5: one start/end pair bracketing a function, and
// eight Emit methods — one per (Match mode, terminal kind) combination.
type Sink interface {
	// StartFunction begins a new function named name. earlyRet is true
	// unless the node that seeded this function is a MultipartBody: it
	// hints that the sink may emit a one-shot "return on first match"
	// pattern instead of sequential accumulation.
	StartFunction(name string, earlyRet bool, comment string) FuncCtx
	EndFunction(ctx FuncCtx)

	EmitTokenOnce(ctx FuncCtx, name, comment string)
	EmitTokenZeroOrOnce(ctx FuncCtx, name, comment string)
	EmitTokenZeroOrMore(ctx FuncCtx, name, comment string)
	EmitTokenOnceOrMore(ctx FuncCtx, name, comment string)

	EmitRuleOnce(ctx FuncCtx, name, comment string)
	EmitRuleZeroOrOnce(ctx FuncCtx, name, comment string)
	EmitRuleZeroOrMore(ctx FuncCtx, name, comment string)
	EmitRuleOnceOrMore(ctx FuncCtx, name, comment string)

	// MakeFunctionName implements the naming rule in spec.md §4.4. It is a
	// sink method (not computed by the generator) so a target language can
	// adjust casing or escape characters invalid in its identifiers.
	MakeFunctionName(parts NameParts) string

	// Render returns the final textual concatenation of every function
	// emitted so far, in the order EndFunction was called for each — which
	// is always callees before callers within a rule (spec.md §4.4).
	Render() string

	// Filename names the file the rendered source should be written to.
	Filename() string
}
