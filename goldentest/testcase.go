package goldentest

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// TestCase is one golden fixture: free-form description, the grammar
// source to feed a generated parser, and the tree it must produce.
// Adapted from the teacher's tester.TestCaseWithMetadata plus spec/test.
// TestCase/ParseTestCase, keeping the same three-part "---"-delimited
// file layout.
type TestCase struct {
	Description string
	Source      []byte
	Expected    *Tree
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

// ParseTestCase reads a fixture file: a description, a "---" delimiter,
// the grammar source, another delimiter, then the expected tree in
// parenthesized notation.
func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("goldentest: a fixture has exactly 3 '---'-delimited parts, found %d", len(parts))
	}

	tree, err := ParseTree(parts[2])
	if err != nil {
		return nil, fmt.Errorf("goldentest: parsing expected tree: %w", err)
	}
	return &TestCase{Description: string(parts[0]), Source: parts[1], Expected: tree}, nil
}

func splitIntoParts(r io.Reader) ([][]byte, error) {
	var parts [][]byte
	s := bufio.NewScanner(r)
	var cur bytes.Buffer
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			parts = append(parts, append([]byte(nil), cur.Bytes()...))
			cur.Reset()
			continue
		}
		if cur.Len() > 0 {
			cur.WriteByte('\n')
		}
		cur.Write(line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	parts = append(parts, append([]byte(nil), cur.Bytes()...))
	return parts, nil
}

// ParseTree parses the parenthesized expected-tree notation Tree.Format
// produces: `(Kind "lexeme"? child*)`.
func ParseTree(src []byte) (*Tree, error) {
	p := &treeParser{src: src}
	p.skipSpace()
	t, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("goldentest: unexpected trailing input at offset %d", p.pos)
	}
	return t, nil
}

type treeParser struct {
	src []byte
	pos int
}

func (p *treeParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *treeParser) parseNode() (*Tree, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '(' {
		return nil, fmt.Errorf("goldentest: expected '(' at offset %d", p.pos)
	}
	p.pos++
	p.skipSpace()

	kind, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	var lexeme string
	hasLexeme := false
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '"' {
		lexeme, err = p.parseString()
		if err != nil {
			return nil, err
		}
		hasLexeme = true
	}

	var children []*Tree
	for {
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '(' {
			child, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
			continue
		}
		break
	}

	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != ')' {
		return nil, fmt.Errorf("goldentest: expected ')' at offset %d", p.pos)
	}
	p.pos++

	if hasLexeme {
		return NewLeaf(kind, lexeme), nil
	}
	return NewNode(kind, children...), nil
}

func (p *treeParser) parseIdent() (string, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '(' || c == ')' || c == '"' {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("goldentest: expected an identifier at offset %d", start)
	}
	if p.src[start] == '<' {
		// "<anonymous>" marker, same sentinel the teacher's format uses.
		return "", nil
	}
	return string(p.src[start:p.pos]), nil
}

func (p *treeParser) parseString() (string, error) {
	start := p.pos
	p.pos++ // skip opening quote
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
		case '"':
			p.pos++
			return strconv.Unquote(string(p.src[start:p.pos]))
		default:
			p.pos++
		}
	}
	return "", fmt.Errorf("goldentest: unterminated string starting at offset %d", start)
}
