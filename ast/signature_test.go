package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRule assembles rule { prop: value } under the root and returns the ids.
func buildRule(t *testing.T, tree *Tree, selector, prop, value string) (rule, decl, val NodeID) {
	t.Helper()
	rule = tree.New(Rule, selector, RuleData{Selector: selector})
	decl = tree.New(Declaration, prop, DeclData{Property: prop})
	val = tree.New(Value, value, ValueData{Text: value})
	require.True(t, tree.AddChild(tree.Root(), rule))
	require.True(t, tree.AddChild(rule, decl))
	require.True(t, tree.AddChild(decl, val))
	return rule, decl, val
}

func TestComputeSignature(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	rule, decl, _ := buildRule(t, tree, "a", "color", "red")

	sig := tree.ComputeSignature(rule)
	assert.Equal(t, "rule|a|sel=a|declaration:color", sig)
	assert.Equal(t, sig, tree.Node(rule).Signature, "signature is stored on the node")

	declSig := tree.ComputeSignature(decl)
	assert.Equal(t, "declaration|color|prop=color!false|value:red", declSig)
}

func TestComputeSignatureIsOneLevelDeep(t *testing.T) {
	t.Parallel()
	// Two rules whose declarations differ only in the value two levels down
	// share a signature; the refinement loop, not the signature, tells them
	// apart.
	tree := NewTree()
	ruleA, _, _ := buildRule(t, tree, "a", "color", "red")
	ruleB, _, _ := buildRule(t, tree, "a", "color", "blue")

	assert.Equal(t, tree.ComputeSignature(ruleA), tree.ComputeSignature(ruleB))
}

func TestEquivalent(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	ruleA, declA, valA := buildRule(t, tree, "a", "color", "red")
	ruleB, declB, valB := buildRule(t, tree, "a", "color", "red")
	ruleC, _, _ := buildRule(t, tree, "a", "color", "blue")

	assert.True(t, tree.Equivalent(ruleA, ruleA), "reflexive")
	assert.True(t, tree.Equivalent(ruleA, ruleB))
	assert.True(t, tree.Equivalent(declA, declB))
	assert.True(t, tree.Equivalent(valA, valB))

	assert.False(t, tree.Equivalent(ruleA, ruleC), "value differs two levels down")
	assert.False(t, tree.Equivalent(ruleA, declA), "kind differs")
	assert.False(t, tree.Equivalent(ruleA, NodeID(99)), "invalid id")
}

func TestEquivalentIgnoresDeclarationOrder(t *testing.T) {
	t.Parallel()
	tree := NewTree()

	build := func(first, second [2]string) NodeID {
		rule := tree.New(Rule, "a", RuleData{Selector: "a"})
		require.True(t, tree.AddChild(tree.Root(), rule))
		for _, pv := range [][2]string{first, second} {
			decl := tree.New(Declaration, pv[0], DeclData{Property: pv[0]})
			val := tree.New(Value, pv[1], ValueData{Text: pv[1]})
			require.True(t, tree.AddChild(rule, decl))
			require.True(t, tree.AddChild(decl, val))
		}
		return rule
	}

	ruleA := build([2]string{"color", "red"}, [2]string{"margin", "0"})
	ruleB := build([2]string{"margin", "0"}, [2]string{"color", "red"})
	assert.True(t, tree.Equivalent(ruleA, ruleB), "declaration order is not significant")
}

func TestEquivalentRespectsValueOrder(t *testing.T) {
	t.Parallel()
	tree := NewTree()

	build := func(values ...string) NodeID {
		decl := tree.New(Declaration, "margin", DeclData{Property: "margin"})
		for _, v := range values {
			val := tree.New(Value, v, ValueData{Text: v})
			require.True(t, tree.AddChild(decl, val))
		}
		return decl
	}

	declA := build("0", "auto")
	declB := build("auto", "0")
	assert.False(t, tree.Equivalent(declA, declB), "value order changes meaning")
}

func TestEquivalentImportantFlag(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	declA := tree.New(Declaration, "color", DeclData{Property: "color", Important: true})
	declB := tree.New(Declaration, "color", DeclData{Property: "color"})
	assert.False(t, tree.Equivalent(declA, declB))
}

func TestRender(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	buildRule(t, tree, "a", "color", "red")

	assert.Equal(t, "a {\n  color: red;\n}\n", tree.String())
}

func TestRenderAtRuleAndFunction(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	at := tree.New(AtRule, "media", AtRuleData{Name: "media", Prelude: "(min-width:1px)"})
	rule := tree.New(Rule, "a", RuleData{Selector: "a"})
	decl := tree.New(Declaration, "color", DeclData{Property: "color", Important: true})
	fn := tree.New(Function, "rgba", FunctionData{Name: "rgba"})
	require.True(t, tree.AddChild(tree.Root(), at))
	require.True(t, tree.AddChild(at, rule))
	require.True(t, tree.AddChild(rule, decl))
	require.True(t, tree.AddChild(decl, fn))
	for _, v := range []string{"0", "0", "0"} {
		val := tree.New(Value, v, ValueData{Text: v})
		require.True(t, tree.AddChild(fn, val))
	}

	want := "@media (min-width:1px) {\n" +
		"  a {\n" +
		"    color: rgba(0, 0, 0) !important;\n" +
		"  }\n" +
		"}\n"
	assert.Equal(t, want, tree.String())
}

func TestRenderFunctionArithmetic(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	rule := tree.New(Rule, "a", RuleData{Selector: "a"})
	decl := tree.New(Declaration, "width", DeclData{Property: "width"})
	fn := tree.New(Function, "calc", FunctionData{Name: "calc"})
	require.True(t, tree.AddChild(tree.Root(), rule))
	require.True(t, tree.AddChild(rule, decl))
	require.True(t, tree.AddChild(decl, fn))
	for _, v := range []string{"100%", "-", "10px"} {
		val := tree.New(Value, v, ValueData{Text: v})
		require.True(t, tree.AddChild(fn, val))
	}

	assert.Equal(t, "a {\n  width: calc(100% - 10px);\n}\n", tree.String())
}

func TestRenderStatementAtRule(t *testing.T) {
	t.Parallel()
	tree := NewTree()
	at := tree.New(AtRule, "charset", AtRuleData{Name: "charset", Prelude: `"utf-8"`})
	require.True(t, tree.AddChild(tree.Root(), at))
	assert.Equal(t, "@charset \"utf-8\";\n", tree.String())
}
