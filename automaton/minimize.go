package automaton

import (
	"fmt"
	"strings"
)

// Metrics summarizes one minimization run. Ratio is minimized over original
// and therefore always in (0, 1] for a non-empty universe.
type Metrics struct {
	OriginalCount  int
	MinimizedCount int
	Ratio          float64
}

func newMetrics(original, minimized int) Metrics {
	m := Metrics{OriginalCount: original, MinimizedCount: minimized}
	if original > 0 {
		m.Ratio = float64(minimized) / float64(original)
	}
	return m
}

// Result is the output of minimizing a Machine: the final partition, the
// class of every state, and the run metrics.
type Result struct {
	Partition map[int][]string // class index -> member state ids
	Classes   map[string]int   // state id -> class index
	Metrics   Metrics
}

// Minimize computes the coarsest partition of m's states such that states
// in the same block are behaviorally indistinguishable under m's alphabet.
//
// The initial partition splits accepting from non-accepting states. Each
// refinement pass recomputes every member's signature as the alphabet-ordered
// list of (symbol, current block of the target) pairs and splits blocks whose
// members disagree. Partitions only ever split, so the loop reaches a fixed
// point after finitely many passes and the algorithm is idempotent.
//
// A transition pointing outside the state universe is a programming error in
// the caller's machine and is returned as such.
func Minimize(m Machine) (*Result, error) {
	universe := m.States()
	if len(universe) == 0 {
		return &Result{
			Partition: map[int][]string{},
			Classes:   map[string]int{},
			Metrics:   newMetrics(0, 0),
		}, nil
	}

	index := make(map[string]bool, len(universe))
	for _, id := range universe {
		index[id] = true
	}
	alphabet := m.Alphabet()
	for _, id := range universe {
		for _, sym := range alphabet {
			if target, ok := m.Transition(id, sym); ok && !index[target] {
				return nil, fmt.Errorf("dangling transition %s --%s--> %s: target outside state universe", id, sym, target)
			}
		}
	}

	// Initial split: accepting vs non-accepting.
	classOf := make(map[string]int, len(universe))
	for _, id := range universe {
		if m.Accepting(id) {
			classOf[id] = 1
		} else {
			classOf[id] = 0
		}
	}

	blocks := blocksFrom(universe, classOf)
	for {
		split := false
		next := make(map[string]int, len(universe))
		nextIndex := 0
		for _, block := range blocks {
			if len(block) == 1 {
				next[block[0]] = nextIndex
				nextIndex++
				continue
			}
			// Group members by their transition signature against the
			// current partition, not the original one.
			groups := make(map[string][]string)
			var order []string
			for _, id := range block {
				sig := transitionSignature(m, id, alphabet, classOf)
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
		blocks = blocksFrom(universe, classOf)
		if !split {
			break
		}
	}

	partition := make(map[int][]string, len(blocks))
	for _, block := range blocks {
		partition[classOf[block[0]]] = block
	}
	return &Result{
		Partition: partition,
		Classes:   classOf,
		Metrics:   newMetrics(len(universe), len(blocks)),
	}, nil
}

// MinimizeGraph minimizes g and stamps every state's Class field with its
// final equivalence class.
func MinimizeGraph(g *Graph) (*Result, error) {
	res, err := Minimize(g)
	if err != nil {
		return nil, err
	}
	for id, class := range res.Classes {
		g.State(id).Class = class
	}
	return res, nil
}

// transitionSignature fingerprints one state's behavior for a refinement
// pass: the alphabet-ordered list of (symbol, target block) pairs, with
// absent transitions marked distinctly from present ones.
func transitionSignature(m Machine, id string, alphabet []string, classOf map[string]int) string {
	var b strings.Builder
	for _, sym := range alphabet {
		target, ok := m.Transition(id, sym)
		if !ok {
			fmt.Fprintf(&b, "%s:-;", sym)
			continue
		}
		fmt.Fprintf(&b, "%s:%d;", sym, classOf[target])
	}
	return b.String()
}

// blocksFrom groups the universe into blocks by class, preserving universe
// order within each block and ordering blocks by first appearance.
func blocksFrom(universe []string, classOf map[string]int) [][]string {
	byClass := make(map[int][]string)
	var order []int
	for _, id := range universe {
		c := classOf[id]
		if _, ok := byClass[c]; !ok {
			order = append(order, c)
		}
		byClass[c] = append(byClass[c], id)
	}
	blocks := make([][]string, 0, len(order))
	for _, c := range order {
		blocks = append(blocks, byClass[c])
	}
	return blocks
}
