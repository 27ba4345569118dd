// Package parser builds the stylesheet AST from a token stream using an
// explicit finite automaton: each state owns a handler that consumes one
// token and mutates a shared parse context, and the legal moves between
// states are declared up front in a transition table.
package parser

import (
	"github.com/obinexus/stylecore/automaton"
	"github.com/obinexus/stylecore/token"
)

// State identifies one parser state. The set is closed.
type State int

const (
	StateInitial State = iota
	StateAtRulePrelude
	StateAtRuleBlock
	StateSelector
	StateRuleBlock
	StateFunctionArgs
	StateEOF
)

var stateNames = map[State]string{
	StateInitial:       "initial",
	StateAtRulePrelude: "at-rule-prelude",
	StateAtRuleBlock:   "at-rule-block",
	StateSelector:      "selector",
	StateRuleBlock:     "rule-block",
	StateFunctionArgs:  "function-args",
	StateEOF:           "eof",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "?"
}

// selectorKinds are the token kinds that open or extend a selector run.
var selectorKinds = []token.Kind{
	token.SelectorElement, token.SelectorClass, token.SelectorID, token.SelectorPseudo,
}

// valueKinds are the token kinds that may appear inside a declaration value.
var valueKinds = []token.Kind{
	token.Value, token.Number, token.Unit, token.Color, token.String,
}

// preludeKinds are the token kinds accumulated verbatim into an at-rule
// prelude. A function token here is prelude text, not a state change.
var preludeKinds = []token.Kind{
	token.Value, token.Number, token.Unit, token.Color, token.String,
	token.Function, token.CloseParen, token.Colon, token.Comma, token.Combinator,
	token.SelectorElement, token.SelectorClass, token.SelectorID, token.SelectorPseudo,
}

// transitions is the declared transition table: for each state, the token
// kinds it knows how to consume and the state that follows. Kinds absent
// from a state's row are unexpected there and go through error recovery.
// Block-end transitions are written as their table form (back to initial);
// at run time the parser re-targets them to the state matching the stack
// top, so a rule closing inside an at-rule block returns to at-rule-block.
var transitions = map[State]map[token.Kind]State{
	StateInitial: buildRow(map[token.Kind]State{
		token.AtKeyword: StateAtRulePrelude,
		token.EOF:       StateEOF,
	}, selectorKinds, StateSelector),

	StateAtRulePrelude: buildRow(map[token.Kind]State{
		token.BlockStart: StateAtRuleBlock,
		token.Semicolon:  StateInitial,
		token.EOF:        StateEOF,
	}, preludeKinds, StateAtRulePrelude),

	StateAtRuleBlock: buildRow(map[token.Kind]State{
		token.BlockEnd:  StateInitial,
		token.AtKeyword: StateAtRulePrelude,
		token.EOF:       StateEOF,
	}, selectorKinds, StateSelector),

	StateSelector: buildRow(map[token.Kind]State{
		token.BlockStart: StateRuleBlock,
		token.Comma:      StateSelector,
		token.Combinator: StateSelector,
		token.EOF:        StateEOF,
	}, selectorKinds, StateSelector),

	StateRuleBlock: buildRow(map[token.Kind]State{
		token.BlockEnd:  StateInitial,
		token.Property:  StateRuleBlock,
		token.Colon:     StateRuleBlock,
		token.Important: StateRuleBlock,
		token.Semicolon: StateRuleBlock,
		token.Function:  StateFunctionArgs,
		token.EOF:       StateEOF,
	}, valueKinds, StateRuleBlock),

	StateFunctionArgs: buildRow(map[token.Kind]State{
		token.CloseParen: StateRuleBlock,
		token.Function:   StateFunctionArgs,
		token.Comma:      StateFunctionArgs,
		token.EOF:        StateEOF,
	}, valueKinds, StateFunctionArgs),

	StateEOF: {},
}

// buildRow merges a fixed row with a kind group that shares one target.
func buildRow(row map[token.Kind]State, group []token.Kind, target State) map[token.Kind]State {
	for _, k := range group {
		row[k] = target
	}
	return row
}

// Next resolves the declared transition for (state, kind).
func Next(s State, k token.Kind) (State, bool) {
	next, ok := transitions[s][k]
	return next, ok
}

// StateMachine exposes the parser's transition table as an automaton graph
// with token kind names as the alphabet and eof as the only accepting
// state, so the minimizer can run over the parser itself.
func StateMachine() *automaton.Graph {
	g := automaton.NewGraph()
	order := []State{
		StateInitial, StateAtRulePrelude, StateAtRuleBlock,
		StateSelector, StateRuleBlock, StateFunctionArgs, StateEOF,
	}
	for _, s := range order {
		st := automaton.NewState(s.String())
		st.Accepting = s == StateEOF
		g.Add(st)
	}
	for _, s := range order {
		for kind, next := range transitions[s] {
			g.AddTransition(s.String(), kind.String(), next.String())
		}
	}
	return g
}
