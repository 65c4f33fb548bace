// Package ir defines the grammar intermediate representation: a small sum
// type of EBNF constructs that the processor normalizes and the parser
// generator walks.
package ir

import "fmt"

// Binding names the position a node occupies in a handwritten result tree.
// A nil *Binding on a node means the node carries no binding at all, which
// keeps "absent" distinct from "empty name" at the type level.
type Binding struct {
	Name string
}

// Node is the sum type of grammar constructs. Every implementation also
// exposes GetBinding so callers can read a binding without a type switch,
// and Comment for the surface-form projection.
type Node interface {
	Comment() string
	GetBinding() *Binding
}

// Alternatives is a choice tried left to right. Must have at least two
// children post-construction; see NewAlternatives.
type Alternatives struct {
	Binding *Binding
	Nodes   []Node
}

func (n *Alternatives) GetBinding() *Binding { return n.Binding }

func (n *Alternatives) Comment() string {
	parts := make([]string, len(n.Nodes))
	for i, c := range n.Nodes {
		parts[i] = c.Comment()
	}
	return joinComment(parts, " | ")
}

// MultipartBody is a concatenation; all children must match in order. Must
// have at least two children post-construction; see NewMultipartBody.
type MultipartBody struct {
	Binding *Binding
	Nodes   []Node
}

func (n *MultipartBody) GetBinding() *Binding { return n.Binding }

func (n *MultipartBody) Comment() string {
	parts := make([]string, len(n.Nodes))
	for i, c := range n.Nodes {
		if _, ok := c.(*Alternatives); ok {
			parts[i] = "(" + c.Comment() + ")"
		} else {
			parts[i] = c.Comment()
		}
	}
	return joinComment(parts, " ")
}

// ZeroOrMore is a Kleene star.
type ZeroOrMore struct {
	Binding *Binding
	Node    Node
}

func (n *ZeroOrMore) GetBinding() *Binding { return n.Binding }

func (n *ZeroOrMore) Comment() string {
	return wrapSuffix(n.Node, "*")
}

// OneOrMore is a Kleene plus.
type OneOrMore struct {
	Binding *Binding
	Node    Node
}

func (n *OneOrMore) GetBinding() *Binding { return n.Binding }

func (n *OneOrMore) Comment() string {
	return wrapSuffix(n.Node, "+")
}

// ZeroOrOne is an optional. Brackets records whether the surface syntax
// used "[...]" or "...?"; it affects only comment rendering.
type ZeroOrOne struct {
	Binding  *Binding
	Node     Node
	Brackets bool
}

func (n *ZeroOrOne) GetBinding() *Binding { return n.Binding }

func (n *ZeroOrOne) Comment() string {
	if n.Brackets {
		return "[" + n.Node.Comment() + "]"
	}
	return wrapSuffix(n.Node, "?")
}

// RuleRef references another parse rule by name.
type RuleRef struct {
	Binding *Binding
	Name    string
}

func (n *RuleRef) GetBinding() *Binding { return n.Binding }
func (n *RuleRef) Comment() string      { return n.Name }

// TokenRef references a named terminal. ReplacedLit remembers the literal
// (unquoted) that originally bound to this terminal, so comments can show
// it verbatim instead of the terminal's name.
type TokenRef struct {
	Binding     *Binding
	Name        string
	ReplacedLit string
	HasReplaced bool
}

func (n *TokenRef) GetBinding() *Binding { return n.Binding }

func (n *TokenRef) Comment() string {
	if n.HasReplaced {
		return fmt.Sprintf("%q", n.ReplacedLit)
	}
	return n.Name
}

// TokenLit is a bare string literal (unquoted). No TokenLit may survive
// processing; encountering one during code generation is a fatal internal
// error.
type TokenLit struct {
	Binding *Binding
	Literal string
}

func (n *TokenLit) GetBinding() *Binding { return n.Binding }
func (n *TokenLit) Comment() string      { return fmt.Sprintf("%q", n.Literal) }

// isContainer reports whether a node is one of the two container variants
// (Alternatives, MultipartBody), which get parens when nested under a
// repetition suffix; atoms and the other variants don't.
func isContainer(n Node) bool {
	switch n.(type) {
	case *Alternatives, *MultipartBody:
		return true
	default:
		return false
	}
}

func wrapSuffix(child Node, suffix string) string {
	if isContainer(child) {
		return "(" + child.Comment() + ")" + suffix
	}
	return child.Comment() + suffix
}

func joinComment(parts []string, sep string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}

// NewAlternatives enforces invariant 4: an Alternatives node must have at
// least two children. Callers that only have one alternative should use it
// directly instead of wrapping it.
func NewAlternatives(binding *Binding, nodes []Node) Node {
	if len(nodes) == 1 {
		nodes[0] = withBinding(nodes[0], binding)
		return nodes[0]
	}
	return &Alternatives{Binding: binding, Nodes: nodes}
}

// NewMultipartBody enforces invariant 4: a MultipartBody node must have at
// least two children.
func NewMultipartBody(binding *Binding, nodes []Node) Node {
	if len(nodes) == 1 {
		nodes[0] = withBinding(nodes[0], binding)
		return nodes[0]
	}
	return &MultipartBody{Binding: binding, Nodes: nodes}
}

// withBinding returns a copy of n with its binding replaced. Used only when
// hoisting a single-child Alternatives/MultipartBody, so the binding that
// would have lived on the container attaches to the surviving child. A nil
// b returns n unchanged, keeping the child's own binding.
func withBinding(n Node, b *Binding) Node {
	if b == nil {
		return n
	}
	switch v := n.(type) {
	case *Alternatives:
		cp := *v
		cp.Binding = b
		return &cp
	case *MultipartBody:
		cp := *v
		cp.Binding = b
		return &cp
	case *ZeroOrMore:
		cp := *v
		cp.Binding = b
		return &cp
	case *OneOrMore:
		cp := *v
		cp.Binding = b
		return &cp
	case *ZeroOrOne:
		cp := *v
		cp.Binding = b
		return &cp
	case *RuleRef:
		cp := *v
		cp.Binding = b
		return &cp
	case *TokenRef:
		cp := *v
		cp.Binding = b
		return &cp
	case *TokenLit:
		cp := *v
		cp.Binding = b
		return &cp
	default:
		panic(fmt.Sprintf("ir: unknown node type %T", n))
	}
}
