// Package process implements the single structural pass that normalizes a
// grammar's IR: it binds TokenLit literals to their TokenRule's TokenRef,
// collects the ordered terminal alphabet, and validates structural
// constraints (spec.md §4.3).
//
// A Processor returns either the node it was given (sentinel/pointer
// equality) or a freshly constructed replacement; a parent container
// rebuilds itself only if at least one child changed. This keeps
// unprocessed subtrees shared and makes the pass idempotent: running it a
// second time over its own output changes nothing.
package process

import (
	"fmt"

	"github.com/nihei9/hwpg/ir"
)

const (
	tokenEOF     = "EOF"
	tokenIllegal = "ILLEGAL"
)

type literalEntry struct {
	tokenName string
	ref       *ir.TokenRef // lazily constructed canonical TokenRef, shared by every occurrence of this literal
}

// Processor runs the pass described in spec.md §4.3 over exactly one
// grammar. Create a fresh Processor per invocation; it is not reusable.
type Processor struct {
	literals   map[string]*literalEntry
	tokenNames []string
	tokenSeen  map[string]bool
	errs       []error
}

// New returns a Processor ready to run over a single grammar.
func New() *Processor {
	return &Processor{
		literals:  map[string]*literalEntry{},
		tokenSeen: map[string]bool{},
	}
}

// Process normalizes g and returns the (possibly identical) rewritten
// grammar, the ordered list of terminal names (always including EOF and
// ILLEGAL), and any accumulated errors. The caller must abort before code
// emission if errs is non-empty; no partial emission is ever produced by
// this package.
func Process(g *ir.Grammar) (newGrammar *ir.Grammar, tokenNames []string, errs []error) {
	p := New()
	return p.Process(g)
}

// Process is the method form of the package-level Process function, for
// callers that want access to intermediate Processor state (none is
// currently exposed, but keeping the method lets tests construct a
// Processor directly without relying on global state).
func (p *Processor) Process(g *ir.Grammar) (*ir.Grammar, []string, []error) {
	for _, tr := range g.TokenRules {
		p.processTokenRule(tr)
	}

	changed := false
	rules := make([]*ir.Rule, len(g.Rules))
	for i, r := range g.Rules {
		rules[i] = p.processRule(r)
		if rules[i] != r {
			changed = true
		}
	}

	p.ensureSpecialToken(tokenEOF)
	p.ensureSpecialToken(tokenIllegal)

	out := g
	if changed {
		out = &ir.Grammar{Rules: rules, TokenRules: g.TokenRules}
	}
	return out, p.tokenNames, p.errs
}

func (p *Processor) addTokenName(name string) {
	if p.tokenSeen[name] {
		return
	}
	p.tokenSeen[name] = true
	p.tokenNames = append(p.tokenNames, name)
}

func (p *Processor) ensureSpecialToken(name string) {
	p.addTokenName(name)
}

func (p *Processor) logError(cause error, msg string) {
	p.errs = append(p.errs, &SemanticError{Cause: cause, Msg: msg})
}

func (p *Processor) processTokenRule(tr *ir.TokenRule) {
	p.literals[tr.Literal] = &literalEntry{tokenName: tr.Name}
	p.addTokenName(tr.Name)
}

func (p *Processor) processRule(r *ir.Rule) *ir.Rule {
	body := p.processNode(r.Body, true)
	if body == r.Body {
		return r
	}
	return &ir.Rule{Name: r.Name, Body: body}
}

// processNode dispatches on the node's dynamic type. atRoot is true only
// for the node passed in as a rule's body; spec.md invariant 3 forbids a
// binding there.
func (p *Processor) processNode(n ir.Node, atRoot bool) ir.Node {
	if atRoot {
		if b := n.GetBinding(); b != nil {
			p.logError(ErrTopLevelBinding, fmt.Sprintf("Top level binding '%s' is not allowed", b.Name))
		}
	}

	switch v := n.(type) {
	case *ir.Alternatives:
		return p.processAlternatives(v)
	case *ir.MultipartBody:
		return p.processMultipartBody(v)
	case *ir.ZeroOrMore:
		node := p.processNode(v.Node, false)
		if node == v.Node {
			return v
		}
		return &ir.ZeroOrMore{Binding: v.Binding, Node: node}
	case *ir.OneOrMore:
		node := p.processNode(v.Node, false)
		if node == v.Node {
			return v
		}
		return &ir.OneOrMore{Binding: v.Binding, Node: node}
	case *ir.ZeroOrOne:
		node := p.processNode(v.Node, false)
		if node == v.Node {
			return v
		}
		return &ir.ZeroOrOne{Binding: v.Binding, Node: node, Brackets: v.Brackets}
	case *ir.RuleRef:
		return v
	case *ir.TokenRef:
		p.addTokenName(v.Name)
		return v
	case *ir.TokenLit:
		return p.processTokenLit(v)
	default:
		panic(fmt.Sprintf("process: unknown node type %T", n))
	}
}

func (p *Processor) processAlternatives(alts *ir.Alternatives) ir.Node {
	changed := false
	newNodes := make([]ir.Node, len(alts.Nodes))
	for i, c := range alts.Nodes {
		nc := p.processNode(c, false)
		if nc != c {
			changed = true
		}
		newNodes[i] = nc
	}
	if !changed {
		return alts
	}
	return &ir.Alternatives{Binding: alts.Binding, Nodes: newNodes}
}

func (p *Processor) processMultipartBody(body *ir.MultipartBody) ir.Node {
	changed := false
	newNodes := make([]ir.Node, len(body.Nodes))
	for i, c := range body.Nodes {
		nc := p.processNode(c, false)
		if nc != c {
			changed = true
		}
		newNodes[i] = nc
	}
	if !changed {
		return body
	}
	return &ir.MultipartBody{Binding: body.Binding, Nodes: newNodes}
}

func (p *Processor) processTokenLit(lit *ir.TokenLit) ir.Node {
	entry, ok := p.literals[lit.Literal]
	if !ok {
		p.logError(ErrUnresolvedLiteral, fmt.Sprintf("Literal %q does not have corresponding token rule", lit.Literal))
		return lit
	}

	if entry.ref == nil {
		entry.ref = &ir.TokenRef{Name: entry.tokenName, ReplacedLit: lit.Literal, HasReplaced: true}
	}
	return entry.ref
}
