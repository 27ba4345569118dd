package automaton

import (
	"fmt"
	"strings"

	"github.com/obinexus/stylecore/ast"
)

// TreeResult is the output of minimizing an AST: the node partition, every
// node's class, and the run metrics.
type TreeResult struct {
	Partition map[int][]ast.NodeID
	Classes   map[ast.NodeID]int
	Metrics   Metrics
}

// MinimizeTree computes equivalence classes over the nodes reachable from
// the tree root using the same partition-refinement core as state
// minimization. The alphabet is the child-position relation: two nodes stay
// in one block only if their local signatures match and each pair of
// corresponding children lands in the same block.
//
// Every reachable node is stamped with its final class, its signature, and
// the minimized flag. Running the pass again on an already-minimized tree
// produces the identical partition.
func MinimizeTree(t *ast.Tree) (*TreeResult, error) {
	universe := t.Reachable(t.Root())
	if len(universe) == 0 {
		return &TreeResult{
			Partition: map[int][]ast.NodeID{},
			Classes:   map[ast.NodeID]int{},
			Metrics:   newMetrics(0, 0),
		}, nil
	}

	inUniverse := make(map[ast.NodeID]bool, len(universe))
	for _, id := range universe {
		inUniverse[id] = true
	}

	// Initial partition: nodes grouped by local signature (kind, scalar
	// value, type-specific fields). This is the tree analogue of the
	// accepting/non-accepting split — leaves with different values must
	// never share a class, and refinement alone cannot separate them.
	classOf := make(map[ast.NodeID]int, len(universe))
	keyToClass := make(map[string]int)
	for _, id := range universe {
		key := localKey(t, id)
		class, ok := keyToClass[key]
		if !ok {
			class = len(keyToClass)
			keyToClass[key] = class
		}
		classOf[id] = class
	}

	for {
		split := false
		blocks := treeBlocks(universe, classOf)
		next := make(map[ast.NodeID]int, len(universe))
		nextIndex := 0
		for _, block := range blocks {
			if len(block) == 1 {
				next[block[0]] = nextIndex
				nextIndex++
				continue
			}
			groups := make(map[string][]ast.NodeID)
			var order []string
			for _, id := range block {
				sig, err := childSignature(t, id, classOf, inUniverse)
				if err != nil {
					return nil, err
				}
				if _, ok := groups[sig]; !ok {
					order = append(order, sig)
				}
				groups[sig] = append(groups[sig], id)
			}
			if len(groups) > 1 {
				split = true
			}
			for _, sig := range order {
				for _, id := range groups[sig] {
					next[id] = nextIndex
				}
				nextIndex++
			}
		}
		classOf = next
		if !split {
			break
		}
	}

	blocks := treeBlocks(universe, classOf)
	partition := make(map[int][]ast.NodeID, len(blocks))
	for _, block := range blocks {
		partition[classOf[block[0]]] = block
	}

	for _, id := range universe {
		node := t.Node(id)
		node.Class = classOf[id]
		node.Minimized = true
		t.ComputeSignature(id)
	}

	return &TreeResult{
		Partition: partition,
		Classes:   classOf,
		Metrics:   newMetrics(len(universe), len(blocks)),
	}, nil
}

// localKey fingerprints a node without looking at its children, reusing the
// tree's one-level signature minus the child pairs.
func localKey(t *ast.Tree, id ast.NodeID) string {
	full := t.ComputeSignature(id)
	// ComputeSignature is kind|value|data followed by |child pairs; the
	// first three fields are the local part.
	parts := strings.SplitN(full, "|", 4)
	if len(parts) < 4 {
		return full
	}
	return strings.Join(parts[:3], "|")
}

// childSignature fingerprints a node's child behavior against the current
// partition: the ordered (position, child block) list.
func childSignature(t *ast.Tree, id ast.NodeID, classOf map[ast.NodeID]int, inUniverse map[ast.NodeID]bool) (string, error) {
	n := t.Node(id)
	var b strings.Builder
	for i, c := range n.Children {
		if !inUniverse[c] {
			return "", fmt.Errorf("node %d has child %d outside the reachable universe", id, c)
		}
		fmt.Fprintf(&b, "%d:%d;", i, classOf[c])
	}
	return b.String(), nil
}

func treeBlocks(universe []ast.NodeID, classOf map[ast.NodeID]int) [][]ast.NodeID {
	byClass := make(map[int][]ast.NodeID)
	var order []int
	for _, id := range universe {
		c := classOf[id]
		if _, ok := byClass[c]; !ok {
			order = append(order, c)
		}
		byClass[c] = append(byClass[c], id)
	}
	blocks := make([][]ast.NodeID, 0, len(order))
	for _, c := range order {
		blocks = append(blocks, byClass[c])
	}
	return blocks
}
