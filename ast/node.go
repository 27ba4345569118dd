// Package ast models the stylesheet tree produced by the parser. Nodes live
// in an arena owned by the Tree and reference each other by index, so the
// parent back-reference is a plain integer rather than an owning pointer:
// parent.Children and each child's Parent field stay mutually consistent
// across every add/remove/replace operation.
package ast

// Kind identifies the structural role of a node.
type Kind int

const (
	Stylesheet Kind = iota
	Rule
	AtRule
	Selector
	Declaration
	Property
	Value
	Function
	Comment
)

var kindNames = map[Kind]string{
	Stylesheet:  "stylesheet",
	Rule:        "rule",
	AtRule:      "at-rule",
	Selector:    "selector",
	Declaration: "declaration",
	Property:    "property",
	Value:       "value",
	Function:    "function",
	Comment:     "comment",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "?"
}

// NodeID is an index into a Tree's arena.
type NodeID int

// InvalidNode marks a missing parent or a failed lookup.
const InvalidNode NodeID = -1

// UnassignedClass is the equivalence class of a node that has not been
// through minimization.
const UnassignedClass = -1

// NodeData carries the type-specific fields of a node as a small sum type
// resolved by type switch. A node without extra fields has nil data.
type NodeData interface {
	isNodeData()
}

// RuleData belongs to Rule nodes.
type RuleData struct {
	Selector string
}

// AtRuleData belongs to AtRule nodes.
type AtRuleData struct {
	Name    string
	Prelude string
}

// DeclData belongs to Declaration nodes.
type DeclData struct {
	Property  string
	Important bool
}

// ValueData belongs to Value nodes.
type ValueData struct {
	Text   string
	Number float64
}

// FunctionData belongs to Function nodes.
type FunctionData struct {
	Name string
}

// CommentData belongs to Comment nodes.
type CommentData struct {
	Text string
}

func (RuleData) isNodeData()     {}
func (AtRuleData) isNodeData()   {}
func (DeclData) isNodeData()     {}
func (ValueData) isNodeData()    {}
func (FunctionData) isNodeData() {}
func (CommentData) isNodeData()  {}

// Node is one tree node. Children are owned (ordered); Parent is a
// back-reference only.
type Node struct {
	Kind     Kind
	Value    string
	Data     NodeData
	Parent   NodeID
	Children []NodeID

	// Automaton metadata, mirrored from the token/state shape.
	Class     int
	Signature string
	Minimized bool
}

// Tree is the arena holding every node of one parse.
type Tree struct {
	nodes []Node
	root  NodeID
}

// NewTree returns a tree holding a single stylesheet root.
func NewTree() *Tree {
	t := &Tree{nodes: make([]Node, 0, 16)}
	t.root = t.New(Stylesheet, "", nil)
	return t
}

// Root returns the stylesheet root.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of nodes in the arena, detached ones included.
func (t *Tree) Len() int { return len(t.nodes) }

// New allocates a detached node and returns its id.
func (t *Tree) New(kind Kind, value string, data NodeData) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Kind:   kind,
		Value:  value,
		Data:   data,
		Parent: InvalidNode,
		Class:  UnassignedClass,
	})
	return id
}

// Node returns a pointer into the arena. The pointer is invalidated by the
// next call to New, so callers must not hold it across allocations.
func (t *Tree) Node(id NodeID) *Node {
	if !t.valid(id) {
		return nil
	}
	return &t.nodes[id]
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// AddChild appends child to parent's child list, re-parenting it if it was
// attached elsewhere. Returns false instead of panicking on invalid ids or
// when the edge would make a node its own ancestor.
func (t *Tree) AddChild(parent, child NodeID) bool {
	if !t.valid(parent) || !t.valid(child) || parent == child {
		return false
	}
	if t.isAncestor(child, parent) {
		return false
	}
	if t.nodes[child].Parent != InvalidNode {
		t.RemoveChild(t.nodes[child].Parent, child)
	}
	t.nodes[parent].Children = append(t.nodes[parent].Children, child)
	t.nodes[child].Parent = parent
	return true
}

// RemoveChild detaches child from parent. Returns false when child is not in
// parent's child list.
func (t *Tree) RemoveChild(parent, child NodeID) bool {
	if !t.valid(parent) || !t.valid(child) {
		return false
	}
	kids := t.nodes[parent].Children
	for i, c := range kids {
		if c == child {
			t.nodes[parent].Children = append(kids[:i:i], kids[i+1:]...)
			t.nodes[child].Parent = InvalidNode
			return true
		}
	}
	return false
}

// ReplaceChild swaps old for repl in place, preserving child order. Returns
// false when old is not a child of parent. repl is detached from its previous
// parent before the child list is searched; when repl is a sibling of old the
// detach shifts the list, so the lookup must come after.
func (t *Tree) ReplaceChild(parent, old, repl NodeID) bool {
	if !t.valid(parent) || !t.valid(old) || !t.valid(repl) || old == repl {
		return false
	}
	if t.isAncestor(repl, parent) {
		return false
	}
	if t.nodes[old].Parent != parent {
		return false
	}
	if t.nodes[repl].Parent != InvalidNode {
		t.RemoveChild(t.nodes[repl].Parent, repl)
	}
	kids := t.nodes[parent].Children
	for i, c := range kids {
		if c == old {
			kids[i] = repl
			t.nodes[old].Parent = InvalidNode
			t.nodes[repl].Parent = parent
			return true
		}
	}
	return false
}

// isAncestor reports whether a is an ancestor of b (or equal to it).
func (t *Tree) isAncestor(a, b NodeID) bool {
	for cur := b; cur != InvalidNode; cur = t.nodes[cur].Parent {
		if cur == a {
			return true
		}
	}
	return false
}

// Clone duplicates a node. A deep clone copies the whole subtree including
// automaton metadata; a shallow clone copies only the node itself. The clone
// is detached.
func (t *Tree) Clone(id NodeID, deep bool) NodeID {
	if !t.valid(id) {
		return InvalidNode
	}
	src := t.nodes[id]
	clone := t.New(src.Kind, src.Value, src.Data)
	t.nodes[clone].Class = src.Class
	t.nodes[clone].Signature = src.Signature
	t.nodes[clone].Minimized = src.Minimized
	if !deep {
		return clone
	}
	for _, c := range src.Children {
		cc := t.Clone(c, true)
		t.AddChild(clone, cc)
	}
	return clone
}

// Walk visits id and its subtree in depth-first order.
func (t *Tree) Walk(id NodeID, visit func(NodeID) bool) {
	if !t.valid(id) {
		return
	}
	if !visit(id) {
		return
	}
	for _, c := range t.nodes[id].Children {
		t.Walk(c, visit)
	}
}

// Reachable returns every node reachable from id in depth-first order.
func (t *Tree) Reachable(id NodeID) []NodeID {
	var out []NodeID
	t.Walk(id, func(n NodeID) bool {
		out = append(out, n)
		return true
	})
	return out
}
