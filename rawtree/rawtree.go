// Package rawtree models the contract of the external front-end: the raw
// parse tree produced by parsing a user's grammar text, handed to the IR
// Builder. Parsing grammar text into this shape is out of scope for this
// module (spec.md §1(a)) — this implementation's CLI instead reads it
// as JSON (see cmd/hwpg) and hands it to package pipeline, mirroring the front-end AST shape the
// teacher's own spec.RootNode/ProductionNode/AlternativeNode/ElementNode
// expose one layer up.
package rawtree

// AtomKind distinguishes the three things a grammar atom can name.
type AtomKind string

const (
	AtomRuleName  AtomKind = "rule_name"
	AtomTokenName AtomKind = "token_name"
	AtomTokenLit  AtomKind = "token_lit"
)

// Atom is one of RULE_NAME, TOKEN_NAME, or TOKEN_LIT. Value is the bare
// identifier for the first two; for AtomTokenLit it is the literal's
// surface text including its surrounding quotes.
type Atom struct {
	Kind  AtomKind `json:"kind"`
	Value string   `json:"value"`
}

// Binding is the surface "name=" prefix on a rule part.
type Binding struct {
	Name string `json:"name"`
}

// BodyElem is one element of a flat rule-body sequence: either a Part or a
// bare pipe separator ("|"). The front end keeps pipes explicit in the
// sequence rather than pre-splitting it, since deciding how a pipe splits
// an alternative list (and collapsing length-1 alternatives) is the IR
// Builder's job (spec.md §4.2).
type BodyElem struct {
	Pipe bool  `json:"pipe,omitempty"`
	Part *Part `json:"part,omitempty"`
}

// Part is `[binding] atom suffix?`, `[binding] "[" body "]"`, or
// `[binding] "(" body ")" suffix?` (a parenthesized group, which a real
// grammar front end supports even though the minimal surface grammar in
// spec.md §6 omits it — needed to express constructs like `("," value)*`).
// Exactly one of Atom, Bracket, or Group is set.
type Part struct {
	Binding *Binding    `json:"binding,omitempty"`
	Atom    *Atom       `json:"atom,omitempty"`
	Bracket []*BodyElem `json:"bracket,omitempty"`
	Group   []*BodyElem `json:"group,omitempty"`
	Suffix  string      `json:"suffix,omitempty"` // "", "*", "+", or "?"
}

// Rule is `RULE_NAME ":" rule_body`.
type Rule struct {
	Name string       `json:"name"`
	Body []*BodyElem `json:"body"`
}

// TokenRule is `TOKEN_NAME ":" TOKEN_LIT`. Literal retains its surface
// quotes, matching Part.Atom.Value for an AtomTokenLit.
type TokenRule struct {
	Name    string `json:"name"`
	Literal string `json:"literal"`
}

// Grammar is the top-level raw tree: `(rule | token_rule)+`, already
// bucketed by the front end into the two ordered lists the rest of the
// pipeline expects (ir.Grammar keeps the same two-list shape).
type Grammar struct {
	Rules      []*Rule      `json:"rules"`
	TokenRules []*TokenRule `json:"token_rules"`
}
