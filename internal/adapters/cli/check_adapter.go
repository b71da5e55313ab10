package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/aerobridge/internal/core/recommendation"
)

// PrintCheck reports a mission context that passed schema validation along
// with its consistency findings.
func PrintCheck(out io.Writer, source string, mc *recommendation.MissionContext, findings []recommendation.Finding) {
	fmt.Fprintf(out, "%s %s: %d recommendations\n", color.New(color.FgGreen).Sprint("✓"), source, len(mc.Recommendations))
	if mc.SystemOutput != nil {
		fmt.Fprintf(out, "  output contract %s (%s)\n", mc.SystemOutput.Version, dash(mc.SystemOutput.AnalysisMode))
	}

	if len(findings) == 0 {
		fmt.Fprintln(out, "No consistency findings")
		return
	}

	fmt.Fprintf(out, "\n%d consistency finding(s):\n", len(findings))
	for _, f := range findings {
		fmt.Fprintf(out, "  %s %s %s: %s\n", severityLabel(f.Severity), f.COA, f.Code, f.Message)
	}
}

// PrintSchemaError reports a mission context rejected at load time.
func PrintSchemaError(out io.Writer, source string, err error) {
	fmt.Fprintf(out, "%s %s: %v\n", color.New(color.FgRed, color.Bold).Sprint("✗"), source, err)
}

func severityLabel(s recommendation.Severity) string {
	text := fmt.Sprintf("%-7s", s)
	if s == recommendation.SeverityWarning {
		return color.New(color.FgYellow).Sprint(text)
	}
	return text
}
