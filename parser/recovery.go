package parser

import (
	"github.com/obinexus/stylecore/token"
)

// recover is the error-recovery path: report the unexpected token, then
// resynchronize at the next semicolon or block-end. The in-progress
// declaration is reset, block depth and the node stack are adjusted, and
// the next state is re-selected from the resulting stack top. Recovery is
// best-effort; deeply malformed input may still leave the parser confused,
// which only costs extra diagnostics, never a crash.
func (p *Parser) recover(tok token.Token) {
	p.ctx.Errorf(tok, "unexpected token %s in state %s", tok.Kind, p.ctx.State)

	for j := p.i; j < len(p.toks); j++ {
		switch p.toks[j].Kind {
		case token.Semicolon:
			p.ctx.resetDeclaration()
			p.ctx.State = p.ctx.StateForTop()
			p.i = j // consumed once the main loop advances
			return
		case token.BlockEnd:
			p.ctx.resetDeclaration()
			p.ctx.Pop()
			if p.ctx.Depth > 0 {
				p.ctx.Depth--
			}
			p.ctx.State = p.ctx.StateForTop()
			p.i = j
			return
		case token.EOF:
			p.ctx.resetDeclaration()
			p.i = j - 1 // let the main loop process the EOF token
			return
		}
	}
	p.i = len(p.toks)
}
