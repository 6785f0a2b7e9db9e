package render

import (
	"fmt"
	"strings"
)

// Text serializes the tree with two-space indentation.
func Text(root *Node) string {
	return TextIndent(root, "  ")
}

// TextIndent serializes the tree one line per node, nesting by indent.
// Interior nodes open a brace block; leaves print "label = value". Every
// node below the root carries its effective access as a bracketed tag.
// A root that is itself a leaf prints only its value, so summary objects
// come out as a bare "sc_uint<8>(66)".
func TextIndent(root *Node, indent string) string {
	if root == nil {
		return ""
	}
	if len(root.Children) == 0 {
		if root.Value != "" {
			return root.Value
		}
		return root.Label + " {}"
	}

	var b strings.Builder
	b.WriteString(root.Label)
	b.WriteString(" {\n")
	for _, c := range root.Children {
		writeNode(&b, c, indent, 1)
	}
	b.WriteString("}")
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, indent string, depth int) {
	pad := strings.Repeat(indent, depth)
	if len(n.Children) == 0 {
		if n.Value != "" {
			fmt.Fprintf(b, "%s%s = %s [%s]\n", pad, n.Label, n.Value, n.Access)
		} else {
			fmt.Fprintf(b, "%s%s [%s] {}\n", pad, n.Label, n.Access)
		}
		return
	}
	fmt.Fprintf(b, "%s%s [%s] {\n", pad, n.Label, n.Access)
	for _, c := range n.Children {
		writeNode(b, c, indent, depth+1)
	}
	fmt.Fprintf(b, "%s}\n", pad)
}
