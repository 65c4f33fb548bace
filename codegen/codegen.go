// Package codegen is the language-agnostic parser-function generator
// (spec.md §4.4): it walks a validated grammar's IR and drives an
// sink.Sink to decide when to emit a top-level parser function, when to
// introduce a fresh sub-function for a nested construct, how each
// sub-construct maps to a match-once / zero-or-one / zero-or-more /
// one-or-more emission, and in what order sub-functions are emitted so
// that callees precede their callers textually.
//
// This mirrors the original source's ParserGen/_ParserFuncGen design
// (hwpg/parsergen.py): a Match enum threaded through a recursive walk, and
// a per-rule sub-function counter held on the rule's walker so that nested
// sub-functions share one numbering space regardless of depth.
package codegen

import (
	"fmt"

	"github.com/nihei9/hwpg/ir"
	"github.com/nihei9/hwpg/sink"
)

// Match is the repetition mode a node is being matched under, threaded
// through the walk (spec.md §4.4 "Walk discipline").
type Match int

const (
	MatchOnce Match = iota
	MatchZeroOrOnce
	MatchZeroOrMore
	MatchOnceOrMore
)

func (m Match) String() string {
	switch m {
	case MatchOnce:
		return "Once"
	case MatchZeroOrOnce:
		return "ZeroOrOnce"
	case MatchZeroOrMore:
		return "ZeroOrMore"
	case MatchOnceOrMore:
		return "OnceOrMore"
	default:
		return fmt.Sprintf("Match(%d)", int(m))
	}
}

// Generator drives a sink.Sink over an entire grammar, one fresh
// per-rule walker per ir.Rule, in the rules' input order.
type Generator struct {
	s sink.Sink
}

// New returns a Generator that emits into s.
func New(s sink.Sink) *Generator {
	return &Generator{s: s}
}

// Generate walks every rule in g in order and drives s accordingly. It
// returns the first StructurallyUnknownNodeError encountered, if any —
// such an error means the grammar was not fully processed (a TokenLit
// survived, or an unrecognized node made it into the tree) and is always
// fatal, never accumulated.
func (gen *Generator) Generate(g *ir.Grammar) error {
	for _, rule := range g.Rules {
		w := &ruleWalker{ruleName: rule.Name, s: gen.s, nextInner: 1}
		if err := w.emitFunction(rule.Body, gen.s.MakeFunctionName(sink.NameParts{Rule: rule.Name})); err != nil {
			return err
		}
	}
	return nil
}

// ruleWalker generates every function (top-level and nested) needed for
// one ir.Rule. nextInner is the shared "per-rule counter... incremented on
// every new [anonymous] function" from spec.md §4.4.
type ruleWalker struct {
	ruleName  string
	s         sink.Sink
	nextInner int
}

// emitFunction starts a fresh function for node, walks node into it as the
// function's top-level content, and ends the function. Sub-functions
// spawned while walking are started and ended (i.e. fully flushed to the
// sink) before this call returns, which is what gives the output its
// callees-before-callers ordering.
func (w *ruleWalker) emitFunction(node ir.Node, name string) error {
	_, isMultipart := node.(*ir.MultipartBody)
	earlyRet := !isMultipart

	ctx := w.s.StartFunction(name, earlyRet, node.Comment())
	if err := w.genNode(ctx, node, MatchOnce, true); err != nil {
		return err
	}
	w.s.EndFunction(ctx)
	return nil
}

// genNode is the dispatch table from spec.md §4.4's "Walk discipline"
// table, parameterized by whether node is the top of a freshly started
// function (topLevel) and the repetition mode it is being matched under
// (match, meaningful only when topLevel is false).
func (w *ruleWalker) genNode(ctx sink.FuncCtx, node ir.Node, match Match, topLevel bool) error {
	switch v := node.(type) {
	case *ir.Alternatives:
		if topLevel {
			for _, alt := range v.Nodes {
				if err := w.genNode(ctx, alt, MatchZeroOrOnce, false); err != nil {
					return err
				}
			}
			return nil
		}
		return w.genSubFunctionCall(ctx, v, match)

	case *ir.MultipartBody:
		if topLevel {
			for _, part := range v.Nodes {
				if err := w.genNode(ctx, part, MatchOnce, false); err != nil {
					return err
				}
			}
			return nil
		}
		return w.genSubFunctionCall(ctx, v, match)

	case *ir.ZeroOrMore:
		return w.genNode(ctx, v.Node, MatchZeroOrMore, false)

	case *ir.OneOrMore:
		return w.genNode(ctx, v.Node, MatchOnceOrMore, false)

	case *ir.ZeroOrOne:
		return w.genNode(ctx, v.Node, MatchZeroOrOnce, false)

	case *ir.RuleRef:
		calleeName := w.s.MakeFunctionName(sink.NameParts{Rule: v.Name})
		w.emitRuleMatch(ctx, calleeName, match, v.Comment())
		return nil

	case *ir.TokenRef:
		w.emitTokenMatch(ctx, v.Name, match, v.Comment())
		return nil

	case *ir.TokenLit:
		return &StructurallyUnknownNodeError{NodeKind: "TokenLit (literals must be replaced by the processor before code generation)"}

	default:
		return &StructurallyUnknownNodeError{NodeKind: fmt.Sprintf("%T", node)}
	}
}

// genSubFunctionCall spawns a fresh sub-function for a nested Alternatives
// or MultipartBody node (these are never inlined at the call site — doing
// so would break the early-return discipline, per the Sub-function glossary
// entry) and emits a call to it in the current Match mode.
func (w *ruleWalker) genSubFunctionCall(ctx sink.FuncCtx, node ir.Node, match Match) error {
	var parts sink.NameParts
	if b := node.GetBinding(); b != nil {
		parts = sink.NameParts{Rule: w.ruleName, Binding: b.Name}
	} else {
		parts = sink.NameParts{Rule: w.ruleName, InnerIndex: w.nextInner}
		w.nextInner++
	}

	name := w.s.MakeFunctionName(parts)
	if err := w.emitFunction(node, name); err != nil {
		return err
	}
	w.emitRuleMatch(ctx, name, match, node.Comment())
	return nil
}

func (w *ruleWalker) emitRuleMatch(ctx sink.FuncCtx, name string, match Match, comment string) {
	switch match {
	case MatchOnce:
		w.s.EmitRuleOnce(ctx, name, comment)
	case MatchZeroOrOnce:
		w.s.EmitRuleZeroOrOnce(ctx, name, comment)
	case MatchZeroOrMore:
		w.s.EmitRuleZeroOrMore(ctx, name, comment)
	case MatchOnceOrMore:
		w.s.EmitRuleOnceOrMore(ctx, name, comment)
	}
}

func (w *ruleWalker) emitTokenMatch(ctx sink.FuncCtx, name string, match Match, comment string) {
	switch match {
	case MatchOnce:
		w.s.EmitTokenOnce(ctx, name, comment)
	case MatchZeroOrOnce:
		w.s.EmitTokenZeroOrOnce(ctx, name, comment)
	case MatchZeroOrMore:
		w.s.EmitTokenZeroOrMore(ctx, name, comment)
	case MatchOnceOrMore:
		w.s.EmitTokenOnceOrMore(ctx, name, comment)
	}
}
