// Package irbuilder folds a rawtree.Grammar (the external front end's raw
// parse tree) into the ir package's grammar intermediate representation,
// collapsing trivial single-child constructs as it goes.
package irbuilder

import (
	"fmt"
	"strings"

	"github.com/nihei9/hwpg/ir"
	"github.com/nihei9/hwpg/rawtree"
)

// Build folds g into an *ir.Grammar. It performs no validation beyond what
// is needed to fold the tree; semantic validation (literal binding, token
// collection, top-level binding checks) is the processor's job.
func Build(g *rawtree.Grammar) *ir.Grammar {
	rules := make([]*ir.Rule, len(g.Rules))
	for i, r := range g.Rules {
		rules[i] = buildRule(r)
	}

	tokenRules := make([]*ir.TokenRule, len(g.TokenRules))
	for i, tr := range g.TokenRules {
		tokenRules[i] = &ir.TokenRule{Name: tr.Name, Literal: stripQuotes(tr.Literal)}
	}

	return &ir.Grammar{Rules: rules, TokenRules: tokenRules}
}

func buildRule(r *rawtree.Rule) *ir.Rule {
	return &ir.Rule{Name: r.Name, Body: buildBody(r.Body)}
}

// buildBody splits a flat part/pipe sequence into alternatives, collapsing
// an alternative of exactly one part to that part itself, and the whole
// Alternatives to its sole alternative when there is only one.
func buildBody(elems []*rawtree.BodyElem) ir.Node {
	var alts [][]ir.Node
	var current []ir.Node

	for _, e := range elems {
		if e.Pipe {
			alts = append(alts, current)
			current = nil
			continue
		}
		current = append(current, buildPart(e.Part))
	}
	alts = append(alts, current)

	altNodes := make([]ir.Node, len(alts))
	for i, parts := range alts {
		// A multi-part alternative never carries a binding of its own here;
		// if one is needed it is attached on a later pass (there is none in
		// this generator, matching the original source's behavior).
		altNodes[i] = ir.NewMultipartBody(nil, parts)
	}

	return ir.NewAlternatives(nil, altNodes)
}

func buildPart(p *rawtree.Part) ir.Node {
	var binding *ir.Binding
	if p.Binding != nil {
		binding = &ir.Binding{Name: p.Binding.Name}
	}

	if p.Bracket != nil {
		inner := buildBody(p.Bracket)
		return &ir.ZeroOrOne{Binding: binding, Node: inner, Brackets: true}
	}

	if p.Group != nil {
		inner := buildBody(p.Group)
		switch p.Suffix {
		case "*":
			return &ir.ZeroOrMore{Binding: binding, Node: inner}
		case "+":
			return &ir.OneOrMore{Binding: binding, Node: inner}
		case "?":
			return &ir.ZeroOrOne{Binding: binding, Node: inner, Brackets: false}
		case "":
			return withGroupBinding(inner, binding)
		default:
			panic(fmt.Sprintf("irbuilder: unknown suffix %q", p.Suffix))
		}
	}

	switch p.Suffix {
	case "*":
		return &ir.ZeroOrMore{Binding: binding, Node: buildAtom(p.Atom, nil)}
	case "+":
		return &ir.OneOrMore{Binding: binding, Node: buildAtom(p.Atom, nil)}
	case "?":
		return &ir.ZeroOrOne{Binding: binding, Node: buildAtom(p.Atom, nil), Brackets: false}
	case "":
		return buildAtom(p.Atom, binding)
	default:
		panic(fmt.Sprintf("irbuilder: unknown suffix %q", p.Suffix))
	}
}

// withGroupBinding attaches binding to a freshly built node returned from
// buildBody. It is always safe to mutate in place here since the node was
// just constructed and has no other owners yet.
func withGroupBinding(n ir.Node, binding *ir.Binding) ir.Node {
	if binding == nil {
		return n
	}
	switch v := n.(type) {
	case *ir.Alternatives:
		v.Binding = binding
	case *ir.MultipartBody:
		v.Binding = binding
	case *ir.ZeroOrMore:
		v.Binding = binding
	case *ir.OneOrMore:
		v.Binding = binding
	case *ir.ZeroOrOne:
		v.Binding = binding
	case *ir.RuleRef:
		v.Binding = binding
	case *ir.TokenRef:
		v.Binding = binding
	case *ir.TokenLit:
		v.Binding = binding
	default:
		panic(fmt.Sprintf("irbuilder: unknown node type %T", n))
	}
	return n
}

func buildAtom(a *rawtree.Atom, binding *ir.Binding) ir.Node {
	switch a.Kind {
	case rawtree.AtomRuleName:
		return &ir.RuleRef{Binding: binding, Name: a.Value}
	case rawtree.AtomTokenName:
		return &ir.TokenRef{Binding: binding, Name: a.Value}
	case rawtree.AtomTokenLit:
		return &ir.TokenLit{Binding: binding, Literal: stripQuotes(a.Value)}
	default:
		panic(fmt.Sprintf("irbuilder: unknown atom kind %q", a.Kind))
	}
}

// stripQuotes removes a single pair of surrounding ' or " characters, if
// present, matching the "quotes stripped" comparison invariant 1 requires.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}
