package parser

import (
	"strings"

	"github.com/obinexus/stylecore/ast"
	"github.com/obinexus/stylecore/diag"
	"github.com/obinexus/stylecore/token"
)

// Parser drives one token stream through the state machine. Each Parse call
// owns its context exclusively, so separate parses never share state.
type Parser struct {
	toks []token.Token
	i    int
	ctx  *Context
}

// Parse runs the state machine over a token stream and returns the
// best-effort AST plus every diagnostic collected along the way. Syntactic
// errors never abort the run.
func Parse(toks []token.Token) (*ast.Tree, []diag.Diagnostic) {
	p := &Parser{toks: toks, ctx: NewContext()}
	p.run()
	return p.ctx.Tree, p.ctx.Errors
}

// handler consumes one token in a given state, mutating the shared context.
type handler func(p *Parser, tok token.Token)

var handlers = map[State]handler{
	StateInitial:       (*Parser).handleInitial,
	StateAtRulePrelude: (*Parser).handleAtRulePrelude,
	StateAtRuleBlock:   (*Parser).handleAtRuleBlock,
	StateSelector:      (*Parser).handleSelector,
	StateRuleBlock:     (*Parser).handleRuleBlock,
	StateFunctionArgs:  (*Parser).handleFunctionArgs,
	StateEOF:           (*Parser).handleAfterEOF,
}

func (p *Parser) run() {
	for p.i = 0; p.i < len(p.toks); p.i++ {
		tok := p.toks[p.i]
		switch tok.Kind {
		case token.Whitespace:
			continue
		case token.Error:
			continue // already diagnosed by the tokenizer
		case token.Comment:
			p.attachComment(tok)
			continue
		}
		handlers[p.ctx.State](p, tok)
	}
}

// attachComment hangs a comment node off the current container unless a
// declaration is mid-flight, in which case the comment is dropped.
func (p *Parser) attachComment(tok token.Token) {
	if p.ctx.Decl != ast.InvalidNode {
		return
	}
	node := p.ctx.Tree.New(ast.Comment, tok.Value, ast.CommentData{Text: tok.Value})
	p.ctx.Tree.AddChild(p.ctx.Top(), node)
}

func (p *Parser) handleInitial(tok token.Token) {
	switch {
	case tok.Kind == token.AtKeyword:
		p.ctx.AtName = strings.TrimPrefix(tok.Value, "@")
		p.ctx.State = StateAtRulePrelude
	case tok.Kind.IsSelector():
		p.ctx.SelectorParts = append(p.ctx.SelectorParts, tok.Value)
		p.ctx.State = StateSelector
	case tok.Kind == token.EOF:
		p.handleEOFToken(tok)
	default:
		p.recover(tok)
	}
}

func (p *Parser) handleAtRulePrelude(tok token.Token) {
	switch tok.Kind {
	case token.BlockStart:
		node := p.ctx.attachAtRule()
		p.ctx.Push(node)
		p.ctx.Depth++
		p.ctx.State = StateAtRuleBlock
	case token.Semicolon:
		p.ctx.attachAtRule()
		p.ctx.State = p.ctx.StateForTop()
	case token.EOF:
		p.ctx.Warnf(tok, "unterminated at-rule %q", p.ctx.AtName)
		p.ctx.attachAtRule()
		p.handleEOFToken(tok)
	default:
		if _, ok := Next(StateAtRulePrelude, tok.Kind); ok {
			p.ctx.AtPreludeParts = append(p.ctx.AtPreludeParts, tok.Value)
			return
		}
		p.recover(tok)
	}
}

func (p *Parser) handleAtRuleBlock(tok token.Token) {
	switch {
	case tok.Kind == token.BlockEnd:
		p.ctx.Pop()
		if p.ctx.Depth > 0 {
			p.ctx.Depth--
		}
		p.ctx.State = p.ctx.StateForTop()
	case tok.Kind == token.AtKeyword:
		p.ctx.AtName = strings.TrimPrefix(tok.Value, "@")
		p.ctx.State = StateAtRulePrelude
	case tok.Kind.IsSelector():
		p.ctx.SelectorParts = append(p.ctx.SelectorParts, tok.Value)
		p.ctx.State = StateSelector
	case tok.Kind == token.EOF:
		p.handleEOFToken(tok)
	default:
		p.recover(tok)
	}
}

func (p *Parser) handleSelector(tok token.Token) {
	switch {
	case tok.Kind.IsSelector(), tok.Kind == token.Comma, tok.Kind == token.Combinator:
		p.ctx.SelectorParts = append(p.ctx.SelectorParts, tok.Value)
	case tok.Kind == token.BlockStart:
		rule := p.ctx.attachRule()
		p.ctx.Push(rule)
		p.ctx.Depth++
		p.ctx.State = StateRuleBlock
	case tok.Kind == token.EOF:
		p.ctx.Warnf(tok, "selector %q without a block", strings.Join(p.ctx.SelectorParts, " "))
		p.ctx.SelectorParts = p.ctx.SelectorParts[:0]
		p.handleEOFToken(tok)
	default:
		p.recover(tok)
	}
}

func (p *Parser) handleRuleBlock(tok token.Token) {
	switch {
	case tok.Kind == token.Property:
		p.ctx.openDeclaration(tok)
	case tok.Kind == token.Colon:
		if p.ctx.Decl == ast.InvalidNode {
			p.recover(tok)
			return
		}
		p.ctx.ExpectValue = true
	case tok.Kind.IsValue() && tok.Kind != token.Function:
		if !p.ctx.appendValue(tok) {
			p.recover(tok)
		}
	case tok.Kind == token.Function:
		if !p.ctx.openFunction(tok) {
			p.recover(tok)
			return
		}
		p.ctx.State = StateFunctionArgs
	case tok.Kind == token.Important:
		if p.ctx.Decl == ast.InvalidNode {
			p.recover(tok)
			return
		}
		p.ctx.DeclImportant = true
	case tok.Kind == token.Semicolon:
		p.ctx.closeDeclaration(tok)
	case tok.Kind == token.BlockEnd:
		p.ctx.closeDeclaration(tok) // trailing declaration without semicolon
		p.ctx.Pop()
		if p.ctx.Depth > 0 {
			p.ctx.Depth--
		}
		p.ctx.State = p.ctx.StateForTop()
	case tok.Kind == token.EOF:
		p.handleEOFToken(tok)
	default:
		p.recover(tok)
	}
}

func (p *Parser) handleFunctionArgs(tok token.Token) {
	switch {
	case tok.Kind.IsValue() && tok.Kind != token.Function:
		if !p.ctx.appendValue(tok) {
			p.recover(tok)
		}
	case tok.Kind == token.Comma:
		// argument separator, nothing to build
	case tok.Kind == token.Function:
		if !p.ctx.openFunction(tok) {
			p.recover(tok)
		}
	case tok.Kind == token.CloseParen:
		p.ctx.closeFunction()
		if len(p.ctx.FuncStack) == 0 {
			p.ctx.State = StateRuleBlock
		}
	case tok.Kind == token.EOF:
		p.handleEOFToken(tok)
	default:
		p.recover(tok)
	}
}

// handleAfterEOF swallows anything after the EOF token; the tokenizer never
// produces such a stream, but a hand-built one must not crash the parser.
func (p *Parser) handleAfterEOF(tok token.Token) {}

// handleEOFToken finalizes the run: a trailing declaration is attached when
// valid, and a nonzero block depth is reported as unclosed blocks without
// throwing.
func (p *Parser) handleEOFToken(tok token.Token) {
	p.ctx.closeDeclaration(tok)
	if p.ctx.Depth != 0 {
		p.ctx.Errorf(tok, "unclosed block(s): depth %d at end of input", p.ctx.Depth)
	}
	p.ctx.State = StateEOF
}

// joinPrelude reassembles at-rule prelude text from token values with
// punctuation-aware spacing, so "( min-width : 1px )" renders as
// "(min-width:1px)".
func joinPrelude(parts []string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 && needsSpace(parts[i-1], part) {
			b.WriteByte(' ')
		}
		b.WriteString(part)
	}
	return b.String()
}

func needsSpace(prev, cur string) bool {
	if strings.HasSuffix(prev, "(") || prev == ":" {
		return false
	}
	switch cur {
	case ")", ":", ",", ";":
		return false
	}
	return true
}
