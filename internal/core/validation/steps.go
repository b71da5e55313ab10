// Package validation holds the pre-flight validation narrative: the fixed
// step templates and the progress arithmetic used by the sequencer.
// This is part of the Functional Core - no I/O, only pure functions.
package validation

import (
	"fmt"
	"strconv"

	"github.com/example/aerobridge/internal/core/recommendation"
)

// TotalSteps is the fixed length of every validation run.
const TotalSteps = 7

// PayloadStep is the 1-based index of the only interpolated step.
const PayloadStep = 3

var templates = [TotalSteps]string{
	"Initializing tactical simulation environment...",
	"Loading terrain data for TIMIKA - ILAGA - SINAK...",
	"Validating payload mass: %skg against density altitude...",
	"Checking fuel reserves against worst-case wind vectors...",
	"Verifying airspace deconfliction...",
	"Simulating thermal limits on H225M Caracal...",
	"Simulation Complete. Mission Green.",
}

// Steps returns the narrative for a run bound to rec, in emission order.
func Steps(rec recommendation.Recommendation) []string {
	steps := make([]string, TotalSteps)
	for i, tmpl := range templates {
		if i+1 == PayloadStep {
			steps[i] = fmt.Sprintf(tmpl, FormatKg(rec.SummaryGlobal.TotalPayloadDeliveredKg))
			continue
		}
		steps[i] = tmpl
	}
	return steps
}

// FormatKg renders a mass without trailing zeros: 1500 -> "1500", 712.5 -> "712.5".
func FormatKg(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}

// Progress returns the percentage complete after emitted of total steps.
// The result is exactly 100 when emitted == total.
func Progress(emitted, total int) float64 {
	if total <= 0 || emitted <= 0 {
		return 0
	}
	if emitted >= total {
		return 100
	}
	return float64(emitted) * 100 / float64(total)
}
