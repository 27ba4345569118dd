// Package reader provides stateless helpers that read higher-level
// stylesheet constructs from a token slice using an explicit cursor. Each
// reader is a pure function of (tokens, start index) and is independently
// testable without any parser state.
package reader

import (
	"strings"

	"github.com/obinexus/stylecore/diag"
	"github.com/obinexus/stylecore/token"
)

// SelectorResult is the outcome of ReadSelector.
type SelectorResult struct {
	Text   string // whitespace-normalized selector text
	End    int    // index of the first unconsumed token
	OK     bool
	Errors []diag.Diagnostic
}

// ReadSelector concatenates selector-class tokens, commas, and combinators
// up to (not including) a block-start. Whitespace between fragments is
// normalized to a single space.
func ReadSelector(toks []token.Token, start int) SelectorResult {
	res := SelectorResult{End: start}
	var parts []string
	i := start
	for ; i < len(toks); i++ {
		tok := toks[i]
		if tok.Kind.IsTrivia() {
			continue
		}
		if tok.Kind == token.BlockStart {
			break
		}
		if tok.Kind.IsSelector() || tok.Kind == token.Comma || tok.Kind == token.Combinator {
			parts = append(parts, tok.Value)
			continue
		}
		res.Errors = append(res.Errors, unexpected(tok, "selector"))
		res.End = i
		return res
	}
	if len(parts) == 0 {
		res.Errors = append(res.Errors, atIndex(toks, start, "empty selector"))
		res.End = i
		return res
	}
	res.Text = strings.Join(parts, " ")
	res.End = i
	res.OK = true
	return res
}

// PropertyResult is the outcome of ReadProperty.
type PropertyResult struct {
	Name   string
	End    int
	OK     bool
	Errors []diag.Diagnostic
}

// ReadProperty reads a property name followed by its colon.
func ReadProperty(toks []token.Token, start int) PropertyResult {
	res := PropertyResult{End: start}
	i := skipTrivia(toks, start)
	if i >= len(toks) || toks[i].Kind != token.Property {
		res.Errors = append(res.Errors, atIndex(toks, i, "expected property name"))
		res.End = i
		return res
	}
	res.Name = toks[i].Value
	i = skipTrivia(toks, i+1)
	if i >= len(toks) || toks[i].Kind != token.Colon {
		res.Errors = append(res.Errors, atIndex(toks, i, "expected ':' after property %q", res.Name))
		res.End = i
		return res
	}
	res.End = i + 1
	res.OK = true
	return res
}

// ValueResult is the outcome of ReadValue.
type ValueResult struct {
	Parts     []token.Token // value-class tokens in order
	Text      string
	Important bool
	End       int
	OK        bool
	Errors    []diag.Diagnostic
}

// ReadValue collects value-class tokens up to a semicolon or block-end,
// capturing a trailing !important flag. The terminating semicolon is
// consumed; a block-end is left for the caller.
func ReadValue(toks []token.Token, start int) ValueResult {
	res := ValueResult{End: start}
	var parts []string
	i := start
	for ; i < len(toks); i++ {
		tok := toks[i]
		if tok.Kind.IsTrivia() {
			continue
		}
		switch {
		case tok.Kind == token.Semicolon:
			i++
			res.End = i
			res.OK = len(res.Parts) > 0
			res.Text = strings.Join(parts, " ")
			return res
		case tok.Kind == token.BlockEnd || tok.Kind == token.EOF:
			res.End = i
			res.OK = len(res.Parts) > 0
			res.Text = strings.Join(parts, " ")
			return res
		case tok.Kind == token.Important:
			res.Important = true
		case tok.Kind.IsValue() || tok.Kind == token.Comma || tok.Kind == token.CloseParen || tok.Kind == token.Colon:
			res.Parts = append(res.Parts, tok)
			parts = append(parts, tok.Value)
		default:
			res.Errors = append(res.Errors, unexpected(tok, "value"))
			res.End = i
			return res
		}
	}
	res.End = i
	res.Text = strings.Join(parts, " ")
	res.OK = len(res.Parts) > 0
	return res
}

// AtRuleResult is the outcome of ReadAtRule.
type AtRuleResult struct {
	Name     string
	Prelude  string
	HasBlock bool
	End      int // first token inside the block, or past the semicolon
	OK       bool
	Errors   []diag.Diagnostic
}

// ReadAtRule reads an at-keyword and its prelude up to a block-start or
// semicolon. Skipping the body of a block-bearing at-rule is delegated to
// ReadBlock by the caller.
func ReadAtRule(toks []token.Token, start int) AtRuleResult {
	res := AtRuleResult{End: start}
	i := skipTrivia(toks, start)
	if i >= len(toks) || toks[i].Kind != token.AtKeyword {
		res.Errors = append(res.Errors, atIndex(toks, i, "expected at-keyword"))
		res.End = i
		return res
	}
	res.Name = strings.TrimPrefix(toks[i].Value, "@")
	var parts []string
	i++
	for ; i < len(toks); i++ {
		tok := toks[i]
		if tok.Kind.IsTrivia() {
			continue
		}
		if tok.Kind == token.BlockStart {
			res.HasBlock = true
			res.End = i + 1
			res.Prelude = strings.Join(parts, " ")
			res.OK = true
			return res
		}
		if tok.Kind == token.Semicolon {
			res.End = i + 1
			res.Prelude = strings.Join(parts, " ")
			res.OK = true
			return res
		}
		if tok.Kind == token.EOF {
			break
		}
		parts = append(parts, tok.Value)
	}
	res.End = i
	res.Errors = append(res.Errors, atIndex(toks, i, "unterminated at-rule %q", res.Name))
	return res
}

// BlockResult is the outcome of ReadBlock.
type BlockResult struct {
	End    int // index just past the matching block-end
	OK     bool
	Errors []diag.Diagnostic
}

// ReadBlock skips a balanced block by nesting-level counting. start must
// point at the opening block-start token.
func ReadBlock(toks []token.Token, start int) BlockResult {
	res := BlockResult{End: start}
	i := skipTrivia(toks, start)
	if i >= len(toks) || toks[i].Kind != token.BlockStart {
		res.Errors = append(res.Errors, atIndex(toks, i, "expected '{'"))
		res.End = i
		return res
	}
	depth := 0
	for ; i < len(toks); i++ {
		switch toks[i].Kind {
		case token.BlockStart:
			depth++
		case token.BlockEnd:
			depth--
			if depth == 0 {
				res.End = i + 1
				res.OK = true
				return res
			}
		case token.EOF:
			res.End = i
			res.Errors = append(res.Errors, atIndex(toks, i, "unclosed block"))
			return res
		}
	}
	res.End = i
	res.Errors = append(res.Errors, atIndex(toks, i, "unclosed block"))
	return res
}

func skipTrivia(toks []token.Token, i int) int {
	for i < len(toks) && toks[i].Kind.IsTrivia() {
		i++
	}
	return i
}

func unexpected(tok token.Token, where string) diag.Diagnostic {
	return diag.Errorf(tok.Pos.Line, tok.Pos.Column, tok.Pos.Start, tok.Pos.End,
		"unexpected %s in %s", tok.Kind, where)
}

// atIndex anchors a diagnostic to the token at i, or to the last token when
// the cursor ran off the end.
func atIndex(toks []token.Token, i int, format string, args ...any) diag.Diagnostic {
	if len(toks) == 0 {
		return diag.Errorf(1, 1, 0, 0, format, args...)
	}
	if i >= len(toks) {
		i = len(toks) - 1
	}
	tok := toks[i]
	return diag.Errorf(tok.Pos.Line, tok.Pos.Column, tok.Pos.Start, tok.Pos.End, format, args...)
}
