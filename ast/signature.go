package ast

import (
	"fmt"
	"strings"
)

// ComputeSignature builds the refinement key for a node: kind, scalar value,
// type-specific fields, and the kind/value pairs of its immediate children.
// It deliberately looks one level deep only — deeper distinctions propagate
// through iterative partition refinement, not through the signature itself.
func (t *Tree) ComputeSignature(id NodeID) string {
	n := t.Node(id)
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Kind.String())
	b.WriteByte('|')
	b.WriteString(n.Value)
	b.WriteByte('|')
	b.WriteString(dataKey(n.Data))
	for _, c := range n.Children {
		child := t.Node(c)
		fmt.Fprintf(&b, "|%s:%s", child.Kind, child.Value)
	}
	sig := b.String()
	t.nodes[id].Signature = sig
	return sig
}

// dataKey flattens a NodeData variant into a stable string.
func dataKey(data NodeData) string {
	switch d := data.(type) {
	case nil:
		return ""
	case RuleData:
		return "sel=" + d.Selector
	case AtRuleData:
		return "at=" + d.Name + " " + d.Prelude
	case DeclData:
		return fmt.Sprintf("prop=%s!%t", d.Property, d.Important)
	case ValueData:
		return fmt.Sprintf("val=%s/%g", d.Text, d.Number)
	case FunctionData:
		return "fn=" + d.Name
	case CommentData:
		return "c=" + d.Text
	default:
		return fmt.Sprintf("%v", d)
	}
}

// Equivalent reports whether two nodes are behaviorally indistinguishable:
// same kind, scalar value, and type-specific fields, and pairwise-equivalent
// children. Child order is ignored for Rule and AtRule nodes (declaration
// and nested-rule order does not change meaning there) via greedy one-to-one
// matching; everywhere else order is significant.
func (t *Tree) Equivalent(a, b NodeID) bool {
	if a == b {
		return true
	}
	na, nb := t.Node(a), t.Node(b)
	if na == nil || nb == nil {
		return false
	}
	if na.Kind != nb.Kind || na.Value != nb.Value || dataKey(na.Data) != dataKey(nb.Data) {
		return false
	}
	if len(na.Children) != len(nb.Children) {
		return false
	}
	if na.Kind == Rule || na.Kind == AtRule {
		return t.childrenMatchUnordered(na.Children, nb.Children)
	}
	for i := range na.Children {
		if !t.Equivalent(na.Children[i], nb.Children[i]) {
			return false
		}
	}
	return true
}

// childrenMatchUnordered performs greedy one-to-one matching between two
// child lists of equal length.
func (t *Tree) childrenMatchUnordered(as, bs []NodeID) bool {
	used := make([]bool, len(bs))
	for _, a := range as {
		found := false
		for j, b := range bs {
			if used[j] {
				continue
			}
			if t.Equivalent(a, b) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
