package goldentest

import (
	"fmt"

	hwpgrt "github.com/nihei9/hwpg/runtime"
)

// Diff reports one mismatch between an expected and an actual parse-tree
// node, named by the path to each within its own tree (which can differ
// when a node count mismatch makes the trees misaligned).
type Diff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newDiff(expected *Tree, actualPath, message string) *Diff {
	return &Diff{ExpectedPath: expected.path(), ActualPath: actualPath, Message: message}
}

// DiffTree compares expected against the real parse tree a generated
// parser produced, depth first, the same short-circuit-per-subtree
// strategy as the teacher's spec/test.DiffTree: a node kind/lexeme/arity
// mismatch stops descending into that subtree (descendant diffs would be
// noise once the shapes have already diverged).
func DiffTree(expected *Tree, actual *hwpgrt.Node) []*Diff {
	return diffTree(expected, actual, actualPath(actual, ""))
}

func diffTree(expected *Tree, actual *hwpgrt.Node, actualPathStr string) []*Diff {
	if expected == nil && actual == nil {
		return nil
	}
	if expected == nil || actual == nil {
		return []*Diff{newDiff(expected, actualPathStr, "one side is nil and the other is not")}
	}

	// "_" matches any rule/token name, same escape hatch as the teacher's
	// DiffTree, for fixtures that only care about shape, not labeling.
	if expected.Kind != "_" && actual.RuleName != expected.Kind {
		msg := fmt.Sprintf("unexpected kind: expected %q but got %q", expected.Kind, actual.RuleName)
		return []*Diff{newDiff(expected, actualPathStr, msg)}
	}
	if expected.Lexeme != actual.Lit {
		msg := fmt.Sprintf("unexpected lexeme: expected %q but got %q", expected.Lexeme, actual.Lit)
		return []*Diff{newDiff(expected, actualPathStr, msg)}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected child count: expected %d but got %d", len(expected.Children), len(actual.Children))
		return []*Diff{newDiff(expected, actualPathStr, msg)}
	}

	var diffs []*Diff
	for i, exp := range expected.Children {
		childPath := actualPath(actual.Children[i], actualPathStr)
		if ds := diffTree(exp, actual.Children[i], childPath); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}

func actualPath(n *hwpgrt.Node, parentPath string) string {
	if n == nil {
		return parentPath + ".<nil>"
	}
	if parentPath == "" {
		return n.RuleName
	}
	return fmt.Sprintf("%s.%s", parentPath, n.RuleName)
}
