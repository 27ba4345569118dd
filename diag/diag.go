// Package diag defines the diagnostic records shared by the tokenizer,
// structural readers, and state-machine parser. Diagnostics are collected,
// never thrown: a run always finishes with a best-effort result plus the
// list of everything that went wrong along the way.
package diag

import "fmt"

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	// SeverityWarning marks input that parsed but looks wrong.
	SeverityWarning Severity = iota
	// SeverityError marks input the pipeline could not interpret.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "?"
	}
}

// Diagnostic describes a single lexical or syntactic problem, anchored to
// the byte span and line/column where it was detected.
type Diagnostic struct {
	Message  string
	Severity Severity
	Line     int
	Column   int
	Start    int // byte offset, inclusive
	End      int // byte offset, exclusive
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
}

// Errorf builds an error-severity diagnostic at the given position.
func Errorf(line, column, start, end int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
		Line:     line,
		Column:   column,
		Start:    start,
		End:      end,
	}
}

// Warnf builds a warning-severity diagnostic at the given position.
func Warnf(line, column, start, end int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityWarning,
		Line:     line,
		Column:   column,
		Start:    start,
		End:      end,
	}
}

// HasErrors reports whether any diagnostic in the list is error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
