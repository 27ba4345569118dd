// Package printer renders diagnostics and minimization metrics for the CLI,
// with source-line context and an arrow pointing at the offending column.
package printer

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/obinexus/stylecore/automaton"
	"github.com/obinexus/stylecore/diag"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	metricStyle  = color.New(color.FgGreen, color.Bold)
)

// SourceCode holds one file's lines for diagnostic rendering.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode loads a file and splits it into lines.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return &SourceCode{Lines: strings.Split(string(content), "\n")}, nil
}

// FromSource wraps in-memory source for rendering.
func FromSource(src string) *SourceCode {
	return &SourceCode{Lines: strings.Split(src, "\n")}
}

// FormatDiagnostics renders every diagnostic with its source line and a
// column arrow.
func FormatDiagnostics(filename string, diags []diag.Diagnostic, source *SourceCode) string {
	var builder strings.Builder
	for _, d := range diags {
		builder.WriteString(formatHeader(filename, d))
		builder.WriteString(formatContext(d, source))
	}
	return builder.String()
}

func formatHeader(filename string, d diag.Diagnostic) string {
	style := errorStyle
	if d.Severity == diag.SeverityWarning {
		style = warningStyle
	}
	return style.Sprintf("%s: ", d.Severity) + d.Message + "\n" +
		lineStyle.Sprint(" --> ") + fileStyle.Sprintf("%s:%d:%d", filename, d.Line, d.Column) + "\n"
}

func formatContext(d diag.Diagnostic, source *SourceCode) string {
	if source == nil || d.Line < 1 || d.Line > len(source.Lines) {
		return "\n"
	}
	var result strings.Builder

	lineNumberStr := fmt.Sprintf("%d", d.Line)
	padding := strings.Repeat(" ", len(lineNumberStr)-1)
	result.WriteString(lineStyle.Sprintf("  %s|\n", padding))

	line := expandTabs(source.Lines[d.Line-1])
	result.WriteString(lineStyle.Sprintf("%d | ", d.Line))
	result.WriteString(line + "\n")

	visualColumn := calculateVisualColumn(source.Lines[d.Line-1], d.Column)
	result.WriteString(lineStyle.Sprintf("  %s| ", padding))
	result.WriteString(strings.Repeat(" ", visualColumn))
	result.WriteString(messageStyle.Sprint("^\n\n"))

	return result.String()
}

// FormatMetrics renders one minimization summary.
func FormatMetrics(filename string, m automaton.Metrics) string {
	return fileStyle.Sprint(filename) + ": " +
		metricStyle.Sprintf("%d -> %d nodes (ratio %.2f)", m.OriginalCount, m.MinimizedCount, m.Ratio) + "\n"
}

func expandTabs(line string) string {
	var expanded strings.Builder
	for i, ch := range line {
		if ch == '\t' {
			spaceCount := tabWidth - (i % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaceCount))
		} else {
			expanded.WriteRune(ch)
		}
	}
	return expanded.String()
}

func calculateVisualColumn(line string, column int) int {
	visualColumn := 0
	for i, ch := range line {
		if i+1 == column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}
