package parser

import (
	"strings"

	"github.com/obinexus/stylecore/ast"
	"github.com/obinexus/stylecore/diag"
	"github.com/obinexus/stylecore/token"
)

// Context is the shared parse state every handler mutates. It is an
// explicit struct threaded through the state handlers rather than captured
// closure state, so each handler stays independently testable.
type Context struct {
	Tree  *ast.Tree
	State State

	// Stack holds the open container nodes, root at the bottom. The stack
	// top decides where rules and at-rules attach and which state a
	// block-end returns to.
	Stack []ast.NodeID

	// FuncStack holds the open function nodes inside a declaration value.
	FuncStack []ast.NodeID

	Depth int // brace depth

	// Selector accumulation for the selector state.
	SelectorParts []string

	// At-rule accumulation for the at-rule-prelude state.
	AtName         string
	AtPreludeParts []string

	// In-progress declaration. Decl is InvalidNode when no declaration is
	// open; ExpectValue flips when the colon is seen.
	Decl          ast.NodeID
	DeclImportant bool
	ExpectValue   bool

	Errors []diag.Diagnostic
}

// NewContext returns a context positioned at the initial state with a fresh
// tree.
func NewContext() *Context {
	t := ast.NewTree()
	return &Context{
		Tree:  t,
		State: StateInitial,
		Stack: []ast.NodeID{t.Root()},
		Decl:  ast.InvalidNode,
	}
}

// Top returns the node the parser is currently building into.
func (c *Context) Top() ast.NodeID {
	return c.Stack[len(c.Stack)-1]
}

// Push opens a container node.
func (c *Context) Push(id ast.NodeID) {
	c.Stack = append(c.Stack, id)
}

// Pop closes the top container. The root is never popped.
func (c *Context) Pop() {
	if len(c.Stack) > 1 {
		c.Stack = c.Stack[:len(c.Stack)-1]
	}
}

// StateForTop returns the state consistent with the current stack top, used
// after closing a block or during resynchronization.
func (c *Context) StateForTop() State {
	if len(c.FuncStack) > 0 {
		return StateFunctionArgs
	}
	top := c.Tree.Node(c.Top())
	switch top.Kind {
	case ast.Rule:
		return StateRuleBlock
	case ast.AtRule:
		return StateAtRuleBlock
	default:
		return StateInitial
	}
}

// Errorf records an error diagnostic at the token's position.
func (c *Context) Errorf(tok token.Token, format string, args ...any) {
	c.Errors = append(c.Errors, diag.Errorf(tok.Pos.Line, tok.Pos.Column, tok.Pos.Start, tok.Pos.End, format, args...))
}

// Warnf records a warning diagnostic at the token's position.
func (c *Context) Warnf(tok token.Token, format string, args ...any) {
	c.Errors = append(c.Errors, diag.Warnf(tok.Pos.Line, tok.Pos.Column, tok.Pos.Start, tok.Pos.End, format, args...))
}

// openDeclaration starts a new declaration for the given property token.
// Any previous unterminated declaration is discarded first.
func (c *Context) openDeclaration(tok token.Token) {
	if c.Decl != ast.InvalidNode {
		c.discardDeclaration(tok)
	}
	c.Decl = c.Tree.New(ast.Declaration, tok.Value, ast.DeclData{Property: tok.Value})
	c.DeclImportant = false
	c.ExpectValue = false
}

// appendValue attaches one value token to the open declaration or, when a
// function is open, to the innermost function node.
func (c *Context) appendValue(tok token.Token) bool {
	if c.Decl == ast.InvalidNode || !c.ExpectValue {
		return false
	}
	node := c.Tree.New(ast.Value, tok.Value, ast.ValueData{Text: tok.Value, Number: tok.Number})
	if len(c.FuncStack) > 0 {
		return c.Tree.AddChild(c.FuncStack[len(c.FuncStack)-1], node)
	}
	return c.Tree.AddChild(c.Decl, node)
}

// openFunction pushes a function node as a value child of the open
// declaration (or the enclosing function when nested).
func (c *Context) openFunction(tok token.Token) bool {
	if c.Decl == ast.InvalidNode || !c.ExpectValue {
		return false
	}
	name := strings.TrimSuffix(tok.Value, "(")
	node := c.Tree.New(ast.Function, name, ast.FunctionData{Name: name})
	parent := c.Decl
	if len(c.FuncStack) > 0 {
		parent = c.FuncStack[len(c.FuncStack)-1]
	}
	if !c.Tree.AddChild(parent, node) {
		return false
	}
	c.FuncStack = append(c.FuncStack, node)
	return true
}

// closeFunction pops one function level.
func (c *Context) closeFunction() bool {
	if len(c.FuncStack) == 0 {
		return false
	}
	c.FuncStack = c.FuncStack[:len(c.FuncStack)-1]
	return true
}

// closeDeclaration attaches the open declaration to the enclosing rule when
// it carries at least one value child; a declaration without a value is
// discarded with a warning (missing-value declarations never reach the
// tree). tok anchors diagnostics.
func (c *Context) closeDeclaration(tok token.Token) {
	if c.Decl == ast.InvalidNode {
		return
	}
	decl := c.Tree.Node(c.Decl)
	if len(decl.Children) == 0 {
		c.discardDeclaration(tok)
		return
	}
	data := decl.Data.(ast.DeclData)
	data.Important = c.DeclImportant
	decl.Data = data
	c.Tree.AddChild(c.Top(), c.Decl)
	c.resetDeclaration()
}

// discardDeclaration drops the open declaration without attaching it.
func (c *Context) discardDeclaration(tok token.Token) {
	if c.Decl == ast.InvalidNode {
		return
	}
	decl := c.Tree.Node(c.Decl)
	data, _ := decl.Data.(ast.DeclData)
	c.Warnf(tok, "declaration %q discarded: missing value", data.Property)
	c.resetDeclaration()
}

// resetDeclaration clears the declaration bookkeeping without touching the
// tree.
func (c *Context) resetDeclaration() {
	c.Decl = ast.InvalidNode
	c.DeclImportant = false
	c.ExpectValue = false
	c.FuncStack = c.FuncStack[:0]
}

// attachRule creates the rule node for the accumulated selector and hangs
// it off the enclosing at-rule or the document root.
func (c *Context) attachRule() ast.NodeID {
	selector := strings.Join(c.SelectorParts, " ")
	rule := c.Tree.New(ast.Rule, selector, ast.RuleData{Selector: selector})
	c.Tree.AddChild(c.Top(), rule)
	c.SelectorParts = c.SelectorParts[:0]
	return rule
}

// attachAtRule creates the at-rule node for the accumulated name/prelude.
func (c *Context) attachAtRule() ast.NodeID {
	prelude := joinPrelude(c.AtPreludeParts)
	node := c.Tree.New(ast.AtRule, c.AtName, ast.AtRuleData{Name: c.AtName, Prelude: prelude})
	c.Tree.AddChild(c.Top(), node)
	c.AtName = ""
	c.AtPreludeParts = c.AtPreludeParts[:0]
	return node
}
