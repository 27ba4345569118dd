// Package tokenizer converts raw stylesheet text into a token stream plus
// diagnostics using a shift-reduce strategy: characters are shifted onto an
// accumulation buffer until a priority-ordered pattern reduces the buffer
// into a token. Lexical errors are collected and never abort the run; the
// stream always terminates with an explicit EOF token.
package tokenizer

import (
	"github.com/obinexus/stylecore/diag"
	"github.com/obinexus/stylecore/token"
)

// Result is the outcome of one tokenization run.
type Result struct {
	Tokens []token.Token
	Errors []diag.Diagnostic
}

// Tokenizer holds the state of a single run. Each call to Tokenize owns its
// own instance, so runs are independent and safe to execute concurrently
// from separate goroutines.
type Tokenizer struct {
	src    string
	offset int // first byte past the accumulation buffer

	bufStart  int // start of the accumulation buffer within src
	bufLine   int // line of bufStart, 1-based
	bufColumn int // column of bufStart, 1-based

	brackets []int // byte offsets of unmatched block-starts
	parens   int   // open function-argument depth

	tokens []token.Token
	errors []diag.Diagnostic
}

// New returns a tokenizer over src positioned at the beginning.
func New(src string) *Tokenizer {
	return &Tokenizer{
		src:       src,
		bufLine:   1,
		bufColumn: 1,
		tokens:    make([]token.Token, 0, len(src)/4+1),
	}
}

// Tokenize runs the whole input through the shift-reduce loop.
func Tokenize(src string) Result {
	return New(src).Run()
}

// Run drives the shift-reduce loop to completion. Every byte of input ends
// up covered by some token span; unclassifiable runs become error
// diagnostics rather than aborting.
func (t *Tokenizer) Run() Result {
	for t.offset < len(t.src) || t.bufLen() > 0 {
		if t.tryReduce() {
			continue
		}
		if t.offset < len(t.src) {
			t.shift()
			continue
		}
		// Buffer exhausted the input with no reduction: flush it as a
		// context-dependent identifier or an error diagnostic.
		t.flush()
	}

	t.reportUnclosed()
	t.emit(token.EOF, "")
	return Result{Tokens: t.tokens, Errors: t.errors}
}

// shift moves one more byte of input onto the accumulation buffer.
func (t *Tokenizer) shift() {
	t.offset++
}

// buf returns the current accumulation buffer.
func (t *Tokenizer) buf() string {
	return t.src[t.bufStart:t.offset]
}

func (t *Tokenizer) bufLen() int {
	return t.offset - t.bufStart
}

// peek returns the byte just past the buffer, or 0 at end of input.
func (t *Tokenizer) peek() byte {
	if t.offset >= len(t.src) {
		return 0
	}
	return t.src[t.offset]
}

// peekPastSpace returns the first byte past the buffer that is not
// whitespace, or 0 when only whitespace remains.
func (t *Tokenizer) peekPastSpace() byte {
	for i := t.offset; i < len(t.src); i++ {
		if !isSpace(t.src[i]) {
			return t.src[i]
		}
	}
	return 0
}

// atEOF reports whether no unshifted input remains.
func (t *Tokenizer) atEOF() bool {
	return t.offset >= len(t.src)
}

// emit reduces the current buffer into a token of the given kind and resets
// the buffer to start right after it. For EOF the buffer is empty and the
// token is zero width.
func (t *Tokenizer) emit(kind token.Kind, value string) {
	pos := token.Position{
		Start:  t.bufStart,
		End:    t.offset,
		Line:   t.bufLine,
		Column: t.bufColumn,
	}
	tok, err := token.Build(kind, value, pos)
	if err != nil {
		// Build only fails on alphabet/position violations, which would be
		// a bug in the tokenizer itself rather than bad input.
		t.errors = append(t.errors, diag.Errorf(pos.Line, pos.Column, pos.Start, pos.End,
			"internal: %v", err))
		t.advancePast()
		return
	}
	if kind.IsNumeric() && !token.NumericParses(value) {
		t.errors = append(t.errors, diag.Warnf(pos.Line, pos.Column, pos.Start, pos.End,
			"unparsable numeric value %q, treated as 0", value))
	}
	t.tokens = append(t.tokens, tok)
	switch kind {
	case token.Function:
		t.parens++
	case token.CloseParen:
		if t.parens > 0 {
			t.parens--
		}
	}
	t.advancePast()
}

// emitError records the buffer as an error diagnostic plus an Error token so
// downstream consumers still see the span, then drops the buffer.
func (t *Tokenizer) emitError(msg string) {
	t.errors = append(t.errors, diag.Errorf(t.bufLine, t.bufColumn, t.bufStart, t.offset,
		"%s: %q", msg, t.buf()))
	t.emit(token.Error, t.buf())
}

// advancePast consumes the buffer, updating the line/column bookkeeping for
// the next token.
func (t *Tokenizer) advancePast() {
	for i := t.bufStart; i < t.offset; i++ {
		if t.src[i] == '\n' {
			t.bufLine++
			t.bufColumn = 1
		} else {
			t.bufColumn++
		}
	}
	t.bufStart = t.offset
}

// trackBrackets maintains the block-depth stack. A mismatched close is
// reported but tokenization continues.
func (t *Tokenizer) trackBrackets(kind token.Kind) {
	switch kind {
	case token.BlockStart:
		t.brackets = append(t.brackets, t.bufStart)
	case token.BlockEnd:
		if len(t.brackets) == 0 {
			t.errors = append(t.errors, diag.Errorf(t.bufLine, t.bufColumn, t.bufStart, t.offset,
				"unmatched closing brace"))
			return
		}
		t.brackets = t.brackets[:len(t.brackets)-1]
	}
}

// reportUnclosed flags every block-start still on the stack at end of input.
func (t *Tokenizer) reportUnclosed() {
	for _, off := range t.brackets {
		line, col := locate(t.src, off)
		t.errors = append(t.errors, diag.Errorf(line, col, off, off+1,
			"unclosed block"))
	}
}

// locate recomputes the 1-based line/column of a byte offset.
func locate(src string, offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
