// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/example/aerobridge/internal/core/recommendation"
)

// lowRisk is the risk index below which a COA is shown as low risk.
const lowRisk = 0.25

const barWidth = 24

const rule = "────────────────────────────────────────────────────────────────────────"

var stepLabels = []string{"Selection", "Detail", "Simulation"}

// Stepper renders the three-position stepper with the current step bracketed.
func Stepper(step int) string {
	parts := make([]string, len(stepLabels))
	for i, label := range stepLabels {
		text := fmt.Sprintf("%d %s", i+1, label)
		if i+1 == step {
			text = color.New(color.FgHiMagenta, color.Bold).Sprintf("[%s]", text)
		}
		parts[i] = text
	}
	return strings.Join(parts, " > ")
}

// statusBadge colours an operational status, padded to width before colouring.
func statusBadge(status string, width int) string {
	text := fmt.Sprintf("%-*s", width, status)
	switch strings.ToUpper(status) {
	case "GO":
		return color.New(color.FgGreen, color.Bold).Sprint(text)
	case "NO-GO", "NOGO", "NO GO":
		return color.New(color.FgRed, color.Bold).Sprint(text)
	default:
		return color.New(color.FgYellow).Sprint(text)
	}
}

func riskText(risk float64) string {
	text := fmt.Sprintf("%.2f", risk)
	if risk < lowRisk {
		return color.New(color.FgGreen).Sprint(text)
	}
	return color.New(color.FgYellow).Sprint(text)
}

func gateText(g recommendation.Gate) string {
	if g.Passed() {
		return color.New(color.FgGreen).Sprint(g.Status)
	}
	return color.New(color.FgRed).Sprint(g.Status)
}

// bar renders value as a proportion of limit.
func bar(value, limit float64) string {
	if limit <= 0 || value <= 0 {
		return ""
	}
	n := int(value / limit * barWidth)
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", min(n, barWidth))
}

// paddedBar pads before colouring so escape codes do not break alignment.
func paddedBar(c *color.Color, value, limit float64) string {
	return c.Sprint(fmt.Sprintf("%-*s", barWidth, bar(value, limit)))
}

func kg(v float64) string {
	return fmt.Sprintf("%skg", trimFloat(v))
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}

func bullets(items []string) string {
	if len(items) == 0 {
		return "  (none)\n"
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString("  • " + item + "\n")
	}
	return b.String()
}
