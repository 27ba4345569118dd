// Package token defines the lexical units produced by the tokenizer and the
// validated factory that builds them. Tokens are immutable once built; the
// parser consumes them read-only and they are never mutated afterward.
package token

// Kind identifies the lexical class of a token. The set is closed: the
// builder rejects anything outside it.
type Kind int

const (
	BlockStart Kind = iota // '{'
	BlockEnd               // '}'
	SelectorElement
	SelectorClass
	SelectorID
	SelectorPseudo
	Combinator // '>', '+', '~'
	Comma
	Property
	Colon
	Semicolon
	Value
	Function  // name plus opening '('
	CloseParen
	AtKeyword // '@media', '@import', ...
	String
	Number
	Color // '#fff', '#a1b2c3'
	Unit  // number with trailing unit, e.g. '10px'
	Whitespace
	Comment
	Important // '!important'
	EOF
	Error
)

var kindNames = map[Kind]string{
	BlockStart:      "block-start",
	BlockEnd:        "block-end",
	SelectorElement: "selector-element",
	SelectorClass:   "selector-class",
	SelectorID:      "selector-id",
	SelectorPseudo:  "selector-pseudo",
	Combinator:      "combinator",
	Comma:           "comma",
	Property:        "property",
	Colon:           "colon",
	Semicolon:       "semicolon",
	Value:           "value",
	Function:        "function",
	CloseParen:      "close-paren",
	AtKeyword:       "at-keyword",
	String:          "string",
	Number:          "number",
	Color:           "color",
	Unit:            "unit",
	Whitespace:      "whitespace",
	Comment:         "comment",
	Important:       "important",
	EOF:             "eof",
	Error:           "error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "?"
}

// Valid reports whether the kind belongs to the recognized alphabet.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsSelector reports whether the kind opens or extends a selector run.
func (k Kind) IsSelector() bool {
	switch k {
	case SelectorElement, SelectorClass, SelectorID, SelectorPseudo:
		return true
	}
	return false
}

// IsValue reports whether the kind can appear inside a declaration value.
func (k Kind) IsValue() bool {
	switch k {
	case Value, Number, Unit, Color, String, Function:
		return true
	}
	return false
}

// IsNumeric reports whether the kind carries a parsed numeric value.
func (k Kind) IsNumeric() bool {
	return k == Number || k == Unit
}

// IsTrivia reports whether the kind carries no structural meaning.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}

// Position is a source location. Line and Column are 1-based; Start and End
// delimit the token's byte span in the original input, end exclusive.
type Position struct {
	Start  int
	End    int
	Line   int
	Column int
}

// Valid reports whether the position could come from real input.
func (p Position) Valid() bool {
	return p.Line >= 1 && p.Column >= 1 && p.Start >= 0 && p.End >= p.Start
}

// UnassignedClass is the equivalence class of a token, node, or state that
// has not been through minimization yet.
const UnassignedClass = -1

// Token is a single classified lexical unit. The Class and Signature fields
// mirror the automaton bookkeeping carried by parser states and AST nodes so
// the minimizer can treat all three uniformly.
type Token struct {
	Kind   Kind
	Value  string
	Pos    Position
	Number float64 // parsed value for numeric kinds, 0 otherwise

	Class     int    // equivalence class, UnassignedClass until minimized
	Signature string // refinement fingerprint, empty until computed
}

// IsEOF reports whether the token terminates the stream.
func (t Token) IsEOF() bool { return t.Kind == EOF }

func (t Token) String() string {
	if t.Value == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + "(" + t.Value + ")"
}
