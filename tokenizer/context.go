package tokenizer

import "github.com/obinexus/stylecore/token"

// Context predicates. Identical lexical shapes ("color" as element selector,
// property, or value keyword) are disambiguated by looking at the last
// meaningful token already emitted, never at parser state.

// lastMeaningful returns the most recent non-trivia token and whether one
// exists.
func (t *Tokenizer) lastMeaningful() (token.Token, bool) {
	for i := len(t.tokens) - 1; i >= 0; i-- {
		if !t.tokens[i].Kind.IsTrivia() {
			return t.tokens[i], true
		}
	}
	return token.Token{}, false
}

// inSelectorContext holds at the start of input and after a block boundary,
// semicolon, comma, or combinator, and while a selector run is in progress.
// It never holds inside function arguments. A semicolon opens both selector
// and property context; the selector pattern defers to the property one when
// the lookahead shows a colon.
func (t *Tokenizer) inSelectorContext() bool {
	if t.parens > 0 {
		return false
	}
	last, ok := t.lastMeaningful()
	if !ok {
		return true
	}
	switch last.Kind {
	case token.BlockStart, token.BlockEnd, token.Semicolon, token.Comma, token.Combinator:
		return true
	}
	return last.Kind.IsSelector()
}

// inPropertyContext holds right after a block-start or semicolon, where a
// declaration may begin.
func (t *Tokenizer) inPropertyContext() bool {
	if t.parens > 0 {
		return false
	}
	last, ok := t.lastMeaningful()
	if !ok {
		return false
	}
	return last.Kind == token.BlockStart || last.Kind == token.Semicolon
}

// inValueContext holds right after a colon or another value-class token,
// inside at-rule preludes, and everywhere inside function arguments.
func (t *Tokenizer) inValueContext() bool {
	if t.parens > 0 {
		return true
	}
	last, ok := t.lastMeaningful()
	if !ok {
		return false
	}
	switch last.Kind {
	case token.Colon, token.Important, token.AtKeyword:
		return true
	}
	return last.Kind.IsValue()
}
