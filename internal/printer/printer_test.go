package printer

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinexus/stylecore/automaton"
	"github.com/obinexus/stylecore/diag"
)

func init() {
	color.NoColor = true
}

func TestFormatDiagnostics(t *testing.T) {
	diags := []diag.Diagnostic{
		diag.Errorf(2, 3, 5, 10, "unexpected token"),
	}
	source := FromSource("a {\n  color red;\n}")

	out := FormatDiagnostics("style.css", diags, source)
	assert.Contains(t, out, "error: unexpected token")
	assert.Contains(t, out, "style.css:2:3")
	assert.Contains(t, out, "  color red;")
	assert.Contains(t, out, "^")

	// the arrow lands under column 3
	lines := strings.Split(out, "\n")
	var arrowLine string
	for _, l := range lines {
		if strings.Contains(l, "^") {
			arrowLine = l
		}
	}
	require.NotEmpty(t, arrowLine)
	assert.Equal(t, "^", strings.TrimSpace(strings.TrimPrefix(arrowLine, "  | ")))
}

func TestFormatDiagnosticsWarningSeverity(t *testing.T) {
	diags := []diag.Diagnostic{
		diag.Warnf(1, 1, 0, 4, "declaration discarded"),
	}
	out := FormatDiagnostics("style.css", diags, FromSource("a{}"))
	assert.Contains(t, out, "warning: declaration discarded")
}

func TestFormatDiagnosticsWithoutSource(t *testing.T) {
	diags := []diag.Diagnostic{
		diag.Errorf(1, 1, 0, 1, "boom"),
	}
	out := FormatDiagnostics("style.css", diags, nil)
	assert.Contains(t, out, "error: boom")
	assert.NotContains(t, out, "^")
}

func TestFormatDiagnosticsOutOfRangeLine(t *testing.T) {
	diags := []diag.Diagnostic{
		diag.Errorf(99, 1, 0, 1, "past the end"),
	}
	out := FormatDiagnostics("style.css", diags, FromSource("a{}"))
	assert.Contains(t, out, "past the end")
	assert.NotContains(t, out, "^")
}

func TestFormatMetrics(t *testing.T) {
	out := FormatMetrics("style.css", automaton.Metrics{
		OriginalCount: 16, MinimizedCount: 4, Ratio: 0.25,
	})
	assert.Contains(t, out, "style.css")
	assert.Contains(t, out, "16 -> 4 nodes (ratio 0.25)")
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "        x", expandTabs("\tx"))
	assert.Equal(t, "abc", expandTabs("abc"))
}

func TestCalculateVisualColumn(t *testing.T) {
	assert.Equal(t, 2, calculateVisualColumn("abcd", 3))
	assert.Equal(t, 8, calculateVisualColumn("\tx", 2))
}
