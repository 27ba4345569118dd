package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "block-start", BlockStart.String())
	assert.Equal(t, "selector-class", SelectorClass.String())
	assert.Equal(t, "eof", EOF.String())
	assert.Equal(t, "?", Kind(999).String())
}

func TestKindPredicates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		kind       Kind
		isSelector bool
		isValue    bool
		isNumeric  bool
		isTrivia   bool
	}{
		{"selector element", SelectorElement, true, false, false, false},
		{"selector pseudo", SelectorPseudo, true, false, false, false},
		{"value word", Value, false, true, false, false},
		{"number", Number, false, true, true, false},
		{"unit", Unit, false, true, true, false},
		{"color", Color, false, true, false, false},
		{"function", Function, false, true, false, false},
		{"whitespace", Whitespace, false, false, false, true},
		{"comment", Comment, false, false, false, true},
		{"block start", BlockStart, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isSelector, tt.kind.IsSelector())
			assert.Equal(t, tt.isValue, tt.kind.IsValue())
			assert.Equal(t, tt.isNumeric, tt.kind.IsNumeric())
			assert.Equal(t, tt.isTrivia, tt.kind.IsTrivia())
		})
	}
}

func TestPositionValid(t *testing.T) {
	t.Parallel()
	assert.True(t, Position{Start: 0, End: 0, Line: 1, Column: 1}.Valid())
	assert.True(t, Position{Start: 3, End: 8, Line: 2, Column: 4}.Valid())
	assert.False(t, Position{Line: 0, Column: 1}.Valid())
	assert.False(t, Position{Line: 1, Column: 0}.Valid())
	assert.False(t, Position{Start: 5, End: 2, Line: 1, Column: 1}.Valid())
}

func TestTokenString(t *testing.T) {
	t.Parallel()
	tok := Token{Kind: Value, Value: "red"}
	assert.Equal(t, "value(red)", tok.String())
	assert.Equal(t, "eof", Token{Kind: EOF}.String())
}
