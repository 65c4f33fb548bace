package hwpgrt

import (
	"fmt"
	"io"
)

// Node is a parse-tree node a generated parser builds when Config.
// MakeParseTree is true, in place of calling into user actions. Adapted
// from the teacher's driver.Node (driver/parser.go); RuleName replaces
// KindName since a generated parser here has no lexer-kind/rule-kind
// distinction to make.
type Node struct {
	RuleName string
	Lit      string
	Children []*Node
}

// PrintTree renders node and its descendants as an indented tree, same
// layout as the teacher's driver.PrintTree.
func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childPrefix string) {
	if node == nil {
		return
	}

	if node.Lit != "" {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.RuleName, node.Lit)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.RuleName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childPrefix+line, childPrefix+prefix)
	}
}
