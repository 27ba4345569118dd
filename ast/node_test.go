package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTree(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	root := tree.Node(tree.Root())
	require.NotNil(t, root)
	assert.Equal(t, Stylesheet, root.Kind)
	assert.Equal(t, InvalidNode, root.Parent)
	assert.Equal(t, UnassignedClass, root.Class)
	assert.Equal(t, 1, tree.Len())
}

func TestAddChild(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	rule := tree.New(Rule, "a", RuleData{Selector: "a"})

	require.True(t, tree.AddChild(tree.Root(), rule))
	assert.Equal(t, tree.Root(), tree.Node(rule).Parent)
	assert.Equal(t, []NodeID{rule}, tree.Node(tree.Root()).Children)
}

func TestAddChildReparents(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	ruleA := tree.New(Rule, "a", RuleData{Selector: "a"})
	ruleB := tree.New(Rule, "b", RuleData{Selector: "b"})
	decl := tree.New(Declaration, "color", DeclData{Property: "color"})

	require.True(t, tree.AddChild(tree.Root(), ruleA))
	require.True(t, tree.AddChild(tree.Root(), ruleB))
	require.True(t, tree.AddChild(ruleA, decl))

	// moving the declaration detaches it from its old parent
	require.True(t, tree.AddChild(ruleB, decl))
	assert.Empty(t, tree.Node(ruleA).Children)
	assert.Equal(t, []NodeID{decl}, tree.Node(ruleB).Children)
	assert.Equal(t, ruleB, tree.Node(decl).Parent)
}

func TestAddChildRejectsCycles(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	rule := tree.New(Rule, "a", RuleData{Selector: "a"})
	decl := tree.New(Declaration, "color", DeclData{Property: "color"})

	require.True(t, tree.AddChild(tree.Root(), rule))
	require.True(t, tree.AddChild(rule, decl))

	assert.False(t, tree.AddChild(decl, rule), "child must not adopt its ancestor")
	assert.False(t, tree.AddChild(rule, rule), "self edge")
	assert.False(t, tree.AddChild(rule, NodeID(99)), "unknown id")
	assert.False(t, tree.AddChild(NodeID(-5), decl), "invalid parent")
}

func TestRemoveChild(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	rule := tree.New(Rule, "a", RuleData{Selector: "a"})
	require.True(t, tree.AddChild(tree.Root(), rule))

	require.True(t, tree.RemoveChild(tree.Root(), rule))
	assert.Empty(t, tree.Node(tree.Root()).Children)
	assert.Equal(t, InvalidNode, tree.Node(rule).Parent)

	assert.False(t, tree.RemoveChild(tree.Root(), rule), "already detached")
}

func TestReplaceChild(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	old := tree.New(Rule, "a", RuleData{Selector: "a"})
	mid := tree.New(Rule, "b", RuleData{Selector: "b"})
	last := tree.New(Rule, "c", RuleData{Selector: "c"})
	repl := tree.New(Rule, "z", RuleData{Selector: "z"})

	require.True(t, tree.AddChild(tree.Root(), old))
	require.True(t, tree.AddChild(tree.Root(), mid))
	require.True(t, tree.AddChild(tree.Root(), last))

	require.True(t, tree.ReplaceChild(tree.Root(), mid, repl))
	assert.Equal(t, []NodeID{old, repl, last}, tree.Node(tree.Root()).Children, "order preserved")
	assert.Equal(t, InvalidNode, tree.Node(mid).Parent)
	assert.Equal(t, tree.Root(), tree.Node(repl).Parent)

	assert.False(t, tree.ReplaceChild(tree.Root(), mid, repl), "old no longer attached")
}

// Replacing a node with one of its own siblings shrinks the child list while
// it is being searched; the links must stay consistent in both directions.
func TestReplaceChildWithSibling(t *testing.T) {
	t.Parallel()

	build := func(t *testing.T) (*Tree, NodeID, NodeID, NodeID) {
		t.Helper()
		tree := NewTree()
		first := tree.New(Rule, "a", RuleData{Selector: "a"})
		mid := tree.New(Rule, "b", RuleData{Selector: "b"})
		last := tree.New(Rule, "c", RuleData{Selector: "c"})
		require.True(t, tree.AddChild(tree.Root(), first))
		require.True(t, tree.AddChild(tree.Root(), mid))
		require.True(t, tree.AddChild(tree.Root(), last))
		return tree, first, mid, last
	}

	check := func(t *testing.T, tree *Tree, detached NodeID) {
		t.Helper()
		for _, c := range tree.Node(tree.Root()).Children {
			assert.Equal(t, tree.Root(), tree.Node(c).Parent, "listed child must point back")
		}
		assert.Equal(t, InvalidNode, tree.Node(detached).Parent)
		assert.NotContains(t, tree.Node(tree.Root()).Children, detached)
	}

	t.Run("earlier sibling", func(t *testing.T) {
		tree, first, mid, last := build(t)
		require.True(t, tree.ReplaceChild(tree.Root(), last, first))
		assert.Equal(t, []NodeID{mid, first}, tree.Node(tree.Root()).Children)
		check(t, tree, last)
	})

	t.Run("later sibling", func(t *testing.T) {
		tree, first, mid, last := build(t)
		require.True(t, tree.ReplaceChild(tree.Root(), first, last))
		assert.Equal(t, []NodeID{last, mid}, tree.Node(tree.Root()).Children)
		check(t, tree, first)
	})

	t.Run("adjacent siblings", func(t *testing.T) {
		tree, first, mid, _ := build(t)
		require.True(t, tree.ReplaceChild(tree.Root(), mid, first))
		check(t, tree, mid)
	})
}

func TestClone(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	rule := tree.New(Rule, "a", RuleData{Selector: "a"})
	decl := tree.New(Declaration, "color", DeclData{Property: "color"})
	val := tree.New(Value, "red", ValueData{Text: "red"})
	require.True(t, tree.AddChild(tree.Root(), rule))
	require.True(t, tree.AddChild(rule, decl))
	require.True(t, tree.AddChild(decl, val))
	tree.Node(rule).Class = 7

	t.Run("shallow", func(t *testing.T) {
		clone := tree.Clone(rule, false)
		require.NotEqual(t, InvalidNode, clone)
		n := tree.Node(clone)
		assert.Equal(t, Rule, n.Kind)
		assert.Equal(t, 7, n.Class)
		assert.Empty(t, n.Children)
		assert.Equal(t, InvalidNode, n.Parent)
	})

	t.Run("deep", func(t *testing.T) {
		clone := tree.Clone(rule, true)
		require.NotEqual(t, InvalidNode, clone)
		n := tree.Node(clone)
		require.Len(t, n.Children, 1)
		declClone := tree.Node(n.Children[0])
		assert.Equal(t, Declaration, declClone.Kind)
		require.Len(t, declClone.Children, 1)
		assert.Equal(t, "red", tree.Node(declClone.Children[0]).Value)
		// the clone is a fresh subtree, not shared structure
		assert.NotEqual(t, decl, n.Children[0])
	})

	t.Run("invalid id", func(t *testing.T) {
		assert.Equal(t, InvalidNode, tree.Clone(NodeID(99), true))
	})
}

func TestWalkAndReachable(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	rule := tree.New(Rule, "a", RuleData{Selector: "a"})
	decl := tree.New(Declaration, "color", DeclData{Property: "color"})
	detached := tree.New(Rule, "x", RuleData{Selector: "x"})
	require.True(t, tree.AddChild(tree.Root(), rule))
	require.True(t, tree.AddChild(rule, decl))

	reachable := tree.Reachable(tree.Root())
	assert.Equal(t, []NodeID{tree.Root(), rule, decl}, reachable)
	assert.NotContains(t, reachable, detached)

	// Walk can stop early
	var visited []NodeID
	tree.Walk(tree.Root(), func(id NodeID) bool {
		visited = append(visited, id)
		return id == tree.Root()
	})
	assert.Equal(t, []NodeID{tree.Root(), rule}, visited)
}
