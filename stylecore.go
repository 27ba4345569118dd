// Package stylecore turns raw stylesheet text into an optimized abstract
// syntax tree: a shift-reduce tokenizer, an explicit state-machine parser,
// and a partition-refinement minimizer that collapses behaviorally
// equivalent parse states and tree nodes.
//
// The enclosing tooling consumes only the narrow surface here — Tokenize,
// Parse, Minimize — plus the returned diagnostics and metrics; it never
// reaches into parser internals.
package stylecore

import (
	"github.com/obinexus/stylecore/ast"
	"github.com/obinexus/stylecore/automaton"
	"github.com/obinexus/stylecore/diag"
	"github.com/obinexus/stylecore/parser"
	"github.com/obinexus/stylecore/token"
	"github.com/obinexus/stylecore/tokenizer"
)

// TokenizeResult is the outcome of lexing one input.
type TokenizeResult struct {
	Tokens []token.Token
	Errors []diag.Diagnostic
}

// Tokenize converts source text into a token stream plus diagnostics. The
// stream always ends with an EOF token; lexical errors are collected, never
// fatal.
func Tokenize(src string) TokenizeResult {
	res := tokenizer.Tokenize(src)
	return TokenizeResult{Tokens: res.Tokens, Errors: res.Errors}
}

// ParseResult is the outcome of parsing one input: a best-effort AST and
// everything that went wrong along the way. An empty Errors slice is the
// only signal of full success.
type ParseResult struct {
	Tree   *ast.Tree
	Errors []diag.Diagnostic
}

// Parse tokenizes src and runs the token stream through the state-machine
// parser.
func Parse(src string) ParseResult {
	lexed := tokenizer.Tokenize(src)
	tree, parseErrs := parser.Parse(lexed.Tokens)
	errs := make([]diag.Diagnostic, 0, len(lexed.Errors)+len(parseErrs))
	errs = append(errs, lexed.Errors...)
	errs = append(errs, parseErrs...)
	return ParseResult{Tree: tree, Errors: errs}
}

// Minimize runs the partition-refinement pass over an AST, stamping every
// node with its equivalence class and returning the partition plus metrics.
func Minimize(tree *ast.Tree) (*automaton.TreeResult, error) {
	return automaton.MinimizeTree(tree)
}

// MinimizeStates minimizes an arbitrary state machine, such as the parser's
// own transition graph (parser.StateMachine()).
func MinimizeStates(m automaton.Machine) (*automaton.Result, error) {
	return automaton.Minimize(m)
}
