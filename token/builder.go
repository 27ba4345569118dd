package token

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedTokenError is the construction failure returned by Build. It is
// the only hard failure class in the pipeline: it aborts the single
// construction call that triggered it and never corrupts tokens built before.
type MalformedTokenError struct {
	Kind   Kind
	Pos    Position
	Reason string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("malformed token %s at %d:%d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Reason)
}

// Build constructs a validated token from a kind, raw value, and position.
// Kinds outside the recognized alphabet and positions with line or column
// below 1 are rejected. Numeric kinds get their Number field populated;
// unparsable numeric text falls back to zero and is left for the caller to
// flag (the tokenizer attaches a warning diagnostic when that happens).
func Build(kind Kind, value string, pos Position) (Token, error) {
	if !kind.Valid() {
		return Token{}, &MalformedTokenError{Kind: kind, Pos: pos, Reason: "kind outside recognized alphabet"}
	}
	if !pos.Valid() {
		return Token{}, &MalformedTokenError{Kind: kind, Pos: pos, Reason: "invalid position"}
	}

	tok := Token{
		Kind:  kind,
		Value: value,
		Pos:   pos,
		Class: UnassignedClass,
	}
	if kind.IsNumeric() {
		tok.Number = parseNumeric(value)
	}
	return tok, nil
}

// NumericParses reports whether the numeric prefix of value parses cleanly.
// Build never fails on numeric content, so the tokenizer uses this to decide
// whether to attach a fallback-to-zero warning.
func NumericParses(value string) bool {
	num, _ := splitNumericUnit(value)
	if num == "" {
		return false
	}
	_, err := strconv.ParseFloat(num, 64)
	return err == nil
}

// parseNumeric extracts the leading number from a raw numeric value,
// tolerating a trailing unit ("10px" -> 10). Falls back to zero rather than
// failing on garbage.
func parseNumeric(value string) float64 {
	num, _ := splitNumericUnit(value)
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return f
}

// splitNumericUnit separates "12.5em" into ("12.5", "em").
func splitNumericUnit(value string) (num, unit string) {
	i := 0
	if i < len(value) && (value[i] == '+' || value[i] == '-') {
		i++
	}
	seenDot := false
	for i < len(value) {
		c := value[i]
		if c >= '0' && c <= '9' {
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
	return value[:i], strings.TrimSpace(value[i:])
}

// UnitOf returns the unit suffix of a raw numeric value, "" when absent.
func UnitOf(value string) string {
	_, unit := splitNumericUnit(value)
	return unit
}
