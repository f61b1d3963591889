package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wonny/valuecalc/internal/calc"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// out 출력 대상 (테스트에서 교체)
var out io.Writer = os.Stdout

// PrintHeader prints a formatted section header
func PrintHeader(title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "  %s\n", title)
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────")
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────")
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Fprintf(out, "⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Fprintf(out, "✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(out, "❌ %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(columns []string, widths []int) {
	PrintTableRow(columns, widths)

	// Separator line
	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Fprintln(out, strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row (right-aligned for numbers)
func PrintTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Fprintf(out, "%*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Fprint(out, "  ")
		}
	}
	fmt.Fprintln(out)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Fprintf(out, "   %-*s : %s\n", keyWidth, key, value)
}

// printJSON writes the wire record
func printJSON(v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// render prints either the wire record (--json) or the human table.
func render(v interface{}, human func()) error {
	if jsonOutput {
		return printJSON(v)
	}
	human()
	return nil
}

// reportCondition prints a calculation condition and passes err through
// so the process exits non-zero.
func reportCondition(err error) error {
	if name := calc.ConditionName(err); name != "" {
		if field := calc.FieldOf(err); field != "" {
			PrintError(fmt.Sprintf("%s [%s]: %v", name, field, err))
		} else {
			PrintError(fmt.Sprintf("%s: %v", name, err))
		}
	}
	return err
}

// formatNumber formats v with thousands separators.
// Example: 11707.53 → "11,707.53"
func formatNumber(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + frac
}

// parseFloats parses a comma-separated flag value. Empty means nil.
// Example: "100, 110,120" → [100 110 120]
func parseFloats(flag, s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("--%s: invalid number %q", flag, p)
		}
		values = append(values, v)
	}
	return values, nil
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

// formatOptionalPct nil이면 N/A
func formatOptionalPct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return formatPct(*v)
}
