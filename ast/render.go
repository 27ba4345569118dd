package ast

import "strings"

// Render writes the subtree rooted at id back out as stylesheet text. The
// output is normalized (one space after colons, semicolon after every
// declaration), not a byte-for-byte reproduction of the input.
func (t *Tree) Render(id NodeID) string {
	var b strings.Builder
	t.render(&b, id, 0)
	return b.String()
}

// String renders the whole tree.
func (t *Tree) String() string {
	return t.Render(t.root)
}

// isOperator reports whether id is a bare arithmetic operator value such as
// the "-" inside calc().
func (t *Tree) isOperator(id NodeID) bool {
	n := t.Node(id)
	if n == nil || n.Kind != Value {
		return false
	}
	switch n.Value {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

func (t *Tree) render(b *strings.Builder, id NodeID, depth int) {
	n := t.Node(id)
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case Stylesheet:
		for _, c := range n.Children {
			t.render(b, c, depth)
		}
	case Rule:
		data, _ := n.Data.(RuleData)
		b.WriteString(indent)
		b.WriteString(data.Selector)
		b.WriteString(" {\n")
		for _, c := range n.Children {
			t.render(b, c, depth+1)
		}
		b.WriteString(indent)
		b.WriteString("}\n")
	case AtRule:
		data, _ := n.Data.(AtRuleData)
		b.WriteString(indent)
		b.WriteString("@")
		b.WriteString(data.Name)
		if data.Prelude != "" {
			b.WriteString(" ")
			b.WriteString(data.Prelude)
		}
		if len(n.Children) == 0 {
			b.WriteString(";\n")
			return
		}
		b.WriteString(" {\n")
		for _, c := range n.Children {
			t.render(b, c, depth+1)
		}
		b.WriteString(indent)
		b.WriteString("}\n")
	case Declaration:
		data, _ := n.Data.(DeclData)
		b.WriteString(indent)
		b.WriteString(data.Property)
		b.WriteString(": ")
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(" ")
			}
			t.render(b, c, depth)
		}
		if data.Important {
			b.WriteString(" !important")
		}
		b.WriteString(";\n")
	case Value:
		b.WriteString(n.Value)
	case Function:
		data, _ := n.Data.(FunctionData)
		b.WriteString(data.Name)
		b.WriteString("(")
		for i, c := range n.Children {
			if i > 0 {
				// arithmetic operands are space-separated, plain arguments
				// comma-separated
				if t.isOperator(c) || t.isOperator(n.Children[i-1]) {
					b.WriteString(" ")
				} else {
					b.WriteString(", ")
				}
			}
			t.render(b, c, depth)
		}
		b.WriteString(")")
	case Comment:
		b.WriteString(indent)
		b.WriteString(n.Value)
		b.WriteString("\n")
	default:
		b.WriteString(n.Value)
	}
}
