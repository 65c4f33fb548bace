// Package goldentest is a tree-diffing test harness for generated
// parsers: expected output trees are written in a small parenthesized
// notation and diffed against the *hwpgrt.Node a generated parser actually
// produced. Adapted from the teacher's tester package and its
// spec/test.Tree/DiffTree (tester/tester.go, spec/test/parser.go), with
// the teacher's self-hosted "tree.vartan grammar compiled by vartan itself"
// expected-tree parser replaced by a small hand-written one, since using
// this module's own generated output to parse its own test fixtures would
// be circular.
package goldentest

import (
	"bytes"
	"fmt"
)

// Tree is one golden expected-output node: a rule/token name, an optional
// literal (set only on leaves), and child nodes.
type Tree struct {
	Kind     string
	Lexeme   string
	Children []*Tree
	parent   *Tree
	offset   int
}

// NewNode builds an internal (non-terminal) expected node.
func NewNode(kind string, children ...*Tree) *Tree {
	t := &Tree{Kind: kind, Children: children}
	for i, c := range children {
		c.parent = t
		c.offset = i
	}
	return t
}

// NewLeaf builds a terminal expected node carrying a literal.
func NewLeaf(kind, lexeme string) *Tree {
	return &Tree{Kind: kind, Lexeme: lexeme}
}

func (t *Tree) path() string {
	if t == nil {
		return "<nil>"
	}
	if t.parent == nil {
		return t.Kind
	}
	return fmt.Sprintf("%s.[%d]%s", t.parent.path(), t.offset, t.Kind)
}

// Format renders t back into the parenthesized notation ParseTree reads,
// matching the teacher's Tree.format layout.
func (t *Tree) Format() []byte {
	var b bytes.Buffer
	t.format(&b, 0)
	return b.Bytes()
}

func (t *Tree) format(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("    ")
	}
	buf.WriteString("(")
	if t.Kind == "" {
		buf.WriteString("<anonymous>")
	} else {
		buf.WriteString(t.Kind)
	}
	if t.Lexeme != "" {
		fmt.Fprintf(buf, " %q", t.Lexeme)
	}
	for _, c := range t.Children {
		buf.WriteString("\n")
		c.format(buf, depth+1)
	}
	buf.WriteString(")")
}
