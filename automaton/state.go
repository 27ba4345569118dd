// Package automaton implements the partition-refinement minimizer that
// collapses behaviorally equivalent parser states and AST nodes into
// equivalence classes, along with the state model the refinement runs over.
package automaton

import "sort"

// UnassignedClass marks a state that minimization has not classified yet.
const UnassignedClass = -1

// State is one automaton state: an identifier, an accepting flag, an
// ordered transition table, the equivalence class assigned by minimization,
// and a free-form metadata bag.
type State struct {
	ID        string
	Accepting bool

	symbols     []string          // transition symbols in insertion order
	transitions map[string]string // symbol -> target state id

	Class int
	Meta  map[string]string
}

// NewState returns a non-accepting state with no transitions.
func NewState(id string) *State {
	return &State{
		ID:          id,
		transitions: make(map[string]string),
		Class:       UnassignedClass,
	}
}

// Set records or overwrites the transition for symbol.
func (s *State) Set(symbol, target string) {
	if _, ok := s.transitions[symbol]; !ok {
		s.symbols = append(s.symbols, symbol)
	}
	s.transitions[symbol] = target
}

// Target returns the transition target for symbol.
func (s *State) Target(symbol string) (string, bool) {
	target, ok := s.transitions[symbol]
	return target, ok
}

// Symbols returns the state's transition symbols in insertion order.
func (s *State) Symbols() []string {
	return s.symbols
}

// Machine is the universe a minimization run operates over: a finite set of
// states, their accepting flags, an alphabet of observable input symbols,
// and a (possibly partial) transition function.
type Machine interface {
	States() []string
	Accepting(id string) bool
	Alphabet() []string
	Transition(id, symbol string) (string, bool)
}

// Graph is a concrete Machine built from State values. Insertion order of
// states and alphabet symbols is preserved so runs are deterministic.
type Graph struct {
	order    []string
	states   map[string]*State
	alphabet []string
	seen     map[string]bool
}

// NewGraph returns an empty state graph.
func NewGraph() *Graph {
	return &Graph{
		states: make(map[string]*State),
		seen:   make(map[string]bool),
	}
}

// Add inserts a state, replacing any previous state with the same id.
func (g *Graph) Add(s *State) {
	if _, ok := g.states[s.ID]; !ok {
		g.order = append(g.order, s.ID)
	}
	g.states[s.ID] = s
	for _, sym := range s.symbols {
		g.addSymbol(sym)
	}
}

// AddTransition is a convenience for wiring two existing states.
func (g *Graph) AddTransition(from, symbol, to string) {
	s, ok := g.states[from]
	if !ok {
		s = NewState(from)
		g.Add(s)
	}
	s.Set(symbol, to)
	g.addSymbol(symbol)
}

func (g *Graph) addSymbol(symbol string) {
	if !g.seen[symbol] {
		g.seen[symbol] = true
		g.alphabet = append(g.alphabet, symbol)
	}
}

// State returns the state with the given id, nil when absent.
func (g *Graph) State(id string) *State {
	return g.states[id]
}

// States returns state ids in insertion order.
func (g *Graph) States() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Accepting reports the accepting flag of id.
func (g *Graph) Accepting(id string) bool {
	s, ok := g.states[id]
	return ok && s.Accepting
}

// Alphabet returns the observed symbols, sorted for a stable refinement
// order.
func (g *Graph) Alphabet() []string {
	out := make([]string, len(g.alphabet))
	copy(out, g.alphabet)
	sort.Strings(out)
	return out
}

// Transition resolves one step of the transition function.
func (g *Graph) Transition(id, symbol string) (string, bool) {
	s, ok := g.states[id]
	if !ok {
		return "", false
	}
	return s.Target(symbol)
}

var _ Machine = (*Graph)(nil)
