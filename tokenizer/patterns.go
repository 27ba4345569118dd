package tokenizer

import "github.com/obinexus/stylecore/token"

// tryReduce attempts to collapse the accumulation buffer into a token. The
// patterns are checked in a fixed priority order; the first one that both
// matches the buffer and is terminated by the lookahead wins. Returning
// false means the main loop should shift another character.
func (t *Tokenizer) tryReduce() bool {
	if t.bufLen() == 0 {
		return false
	}

	switch {
	case t.reduceComment():
	case t.reduceString():
	case t.reduceAtKeyword():
	case t.reduceFunctionHead():
	case t.reduceHexColor():
	case t.reduceImportant():
	case t.reduceStructural():
	case t.reduceValueOperator():
	case t.reduceSelectorFragment():
	case t.reducePropertyName():
	case t.reduceNumber():
	case t.reduceWhitespace():
	case t.reduceValueWord():
	default:
		return false
	}
	return true
}

// reduceComment matches a complete "/* ... */" run. An open comment keeps
// shifting; no other pattern can fire on a buffer starting with '/'.
func (t *Tokenizer) reduceComment() bool {
	b := t.buf()
	if len(b) < 2 || b[0] != '/' || b[1] != '*' {
		return false
	}
	if len(b) >= 4 && b[len(b)-2] == '*' && b[len(b)-1] == '/' {
		t.emit(token.Comment, b)
		return true
	}
	if t.atEOF() {
		t.emitError("unterminated comment")
		return true
	}
	return false
}

// reduceString matches a complete quoted string with the same quote on both
// ends. A newline inside an open string is a lexical error.
func (t *Tokenizer) reduceString() bool {
	b := t.buf()
	quote := b[0]
	if quote != '"' && quote != '\'' {
		return false
	}
	if len(b) >= 2 && b[len(b)-1] == quote && b[len(b)-2] != '\\' {
		t.emit(token.String, b)
		return true
	}
	if len(b) > 1 && b[len(b)-1] == '\n' {
		t.emitError("unterminated string")
		return true
	}
	if t.atEOF() {
		t.emitError("unterminated string")
		return true
	}
	return false
}

// reduceAtKeyword matches '@' plus an identifier, e.g. "@media".
func (t *Tokenizer) reduceAtKeyword() bool {
	b := t.buf()
	if b[0] != '@' {
		return false
	}
	if len(b) < 2 || !isIdent(b[1:]) {
		return false
	}
	if isNameByte(t.peek()) {
		return false // keep shifting the identifier
	}
	t.emit(token.AtKeyword, b)
	return true
}

// reduceFunctionHead matches an identifier directly followed by '(' such as
// "rgba(" or "url(", and a bare '(' inside at-rule preludes.
func (t *Tokenizer) reduceFunctionHead() bool {
	b := t.buf()
	if b[len(b)-1] != '(' {
		return false
	}
	if len(b) > 1 && !isIdent(b[:len(b)-1]) {
		return false
	}
	t.emit(token.Function, b)
	return true
}

// reduceHexColor matches '#' plus 3 or 6 hex digits in value context. In
// selector context the same shape is an ID selector and is left for the
// selector fragment pattern.
func (t *Tokenizer) reduceHexColor() bool {
	b := t.buf()
	if b[0] != '#' || !t.inValueContext() {
		return false
	}
	digits := b[1:]
	if (len(digits) != 3 && len(digits) != 6) || !isHex(digits) {
		return false
	}
	if isHexByte(t.peek()) {
		return false // a 3-digit prefix of a 6-digit color
	}
	t.emit(token.Color, b)
	return true
}

// reduceImportant matches the "!important" flag.
func (t *Tokenizer) reduceImportant() bool {
	b := t.buf()
	if b[0] != '!' {
		return false
	}
	if b == "!important" && !isNameByte(t.peek()) {
		t.emit(token.Important, b)
		return true
	}
	if len(b) > len("!important") || t.atEOF() {
		t.emitError("unrecognized flag")
		return true
	}
	return false
}

// reduceStructural matches single-character structural symbols. A colon is
// structural everywhere except selector context, where it may begin a
// pseudo-class; combinators only exist between selectors.
func (t *Tokenizer) reduceStructural() bool {
	if t.bufLen() != 1 {
		return false
	}
	var kind token.Kind
	switch t.buf()[0] {
	case '{':
		kind = token.BlockStart
	case '}':
		kind = token.BlockEnd
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case ')':
		kind = token.CloseParen
	case ':':
		if t.inSelectorContext() {
			return false
		}
		kind = token.Colon
	case '>', '+', '~':
		if !t.inSelectorContext() {
			return false
		}
		kind = token.Combinator
	default:
		return false
	}
	t.trackBrackets(kind)
	t.emit(kind, t.buf())
	return true
}

// reduceValueOperator matches a lone arithmetic operator between function
// arguments, as in "calc(100% - 10px)". A sign directly attached to a number
// or identifier keeps shifting so "-10px" and "-webkit-box" stay whole, and
// "/*" is left for the comment pattern.
func (t *Tokenizer) reduceValueOperator() bool {
	if t.parens == 0 || t.bufLen() != 1 {
		return false
	}
	p := t.peek()
	switch t.buf()[0] {
	case '+', '-':
		if isNameByte(p) || p == '.' {
			return false
		}
	case '/':
		if p == '*' {
			return false
		}
	case '*':
	default:
		return false
	}
	t.emit(token.Value, t.buf())
	return true
}

// reduceSelectorFragment matches one selector unit in selector context:
// ".cls", "#id", ":hover", "*", or a bare element name.
func (t *Tokenizer) reduceSelectorFragment() bool {
	if !t.inSelectorContext() {
		return false
	}
	b := t.buf()
	kind, ok := classifySelector(b)
	if !ok {
		return false
	}
	if isNameByte(t.peek()) {
		return false // identifier still growing
	}
	// A bare identifier right after a block-start or semicolon followed by a
	// colon is a property, not a nested selector.
	if kind == token.SelectorElement && b != "*" && t.inPropertyContext() && t.peekPastSpace() == ':' {
		return false
	}
	t.emit(kind, b)
	return true
}

// reducePropertyName matches a declaration property in property context.
// The lookahead (skipping whitespace) must be a colon; otherwise a bare
// identifier after '{' is a nested selector, not a property.
func (t *Tokenizer) reducePropertyName() bool {
	if !t.inPropertyContext() {
		return false
	}
	b := t.buf()
	if !isIdent(b) {
		return false
	}
	if isNameByte(t.peek()) {
		return false
	}
	if t.peekPastSpace() != ':' {
		return false
	}
	t.emit(token.Property, b)
	return true
}

// reduceNumber matches a number with an optional unit or percent suffix:
// "0", "1.5", "10px", "100%".
func (t *Tokenizer) reduceNumber() bool {
	b := t.buf()
	num, unit, ok := splitNumber(b)
	if !ok || num == "" {
		return false
	}
	p := t.peek()
	if isNameByte(p) || isDigitByte(p) || p == '%' || (p == '.' && unit == "") {
		return false // still growing
	}
	if unit == "" {
		t.emit(token.Number, b)
	} else {
		t.emit(token.Unit, b)
	}
	return true
}

// reduceWhitespace matches a maximal whitespace run.
func (t *Tokenizer) reduceWhitespace() bool {
	b := t.buf()
	for i := 0; i < len(b); i++ {
		if !isSpace(b[i]) {
			return false
		}
	}
	if isSpace(t.peek()) {
		return false
	}
	t.emit(token.Whitespace, b)
	return true
}

// reduceValueWord matches a bare identifier in value context, e.g. "red" or
// "sans-serif".
func (t *Tokenizer) reduceValueWord() bool {
	if !t.inValueContext() {
		return false
	}
	b := t.buf()
	if !isIdent(b) {
		return false
	}
	if p := t.peek(); isNameByte(p) || p == '(' {
		return false // may still become a function head
	}
	t.emit(token.Value, b)
	return true
}

// flush classifies a buffer that reached end of input without reducing.
// Context decides between a trailing selector fragment, property, or value;
// anything else becomes an error diagnostic.
func (t *Tokenizer) flush() {
	b := t.buf()
	switch {
	case t.inValueContext() && isIdent(b):
		t.emit(token.Value, b)
	case t.inPropertyContext() && isIdent(b):
		t.emit(token.Property, b)
	case t.inSelectorContext():
		if kind, ok := classifySelector(b); ok {
			t.emit(kind, b)
			return
		}
		t.emitError("unrecognized character run")
	default:
		t.emitError("unrecognized character run")
	}
}

// classifySelector maps a selector-shaped buffer to its token kind.
func classifySelector(b string) (token.Kind, bool) {
	if b == "*" {
		return token.SelectorElement, true
	}
	switch b[0] {
	case '.':
		if len(b) > 1 && isIdent(b[1:]) {
			return token.SelectorClass, true
		}
	case '#':
		if len(b) > 1 && isIdent(b[1:]) {
			return token.SelectorID, true
		}
	case ':':
		if len(b) > 1 && isIdent(b[1:]) {
			return token.SelectorPseudo, true
		}
	default:
		if isIdent(b) {
			return token.SelectorElement, true
		}
	}
	return 0, false
}

// splitNumber separates an optionally signed decimal number from a trailing
// unit. ok is false when the buffer is not number-shaped.
func splitNumber(b string) (num, unit string, ok bool) {
	i := 0
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		i++
	}
	digits := 0
	seenDot := false
	for i < len(b) {
		c := b[i]
		if isDigitByte(c) {
			digits++
			i++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			i++
			continue
		}
		break
	}
	if digits == 0 {
		return "", "", false
	}
	num = b[:i]
	unit = b[i:]
	if unit == "" || unit == "%" {
		return num, unit, true
	}
	if isIdent(unit) {
		return num, unit, true
	}
	return "", "", false
}

// Byte classification. Non-ASCII bytes count as name characters so UTF-8
// identifiers pass through untouched.

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigitByte(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexByte(c byte) bool {
	return isDigitByte(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHexByte(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

func isNameStartByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c >= 0x80
}

func isNameByte(c byte) bool {
	return isNameStartByte(c) || isDigitByte(c) || c == '-'
}

// isIdent reports whether s is a well-formed identifier, allowing the CSS
// custom-property style leading hyphens.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	for i < len(s) && s[i] == '-' {
		i++
	}
	if i == len(s) || !isNameStartByte(s[i]) {
		return false
	}
	for ; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}
	return true
}
