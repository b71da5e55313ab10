package recommendation

import (
	"fmt"
	"math"
	"slices"
)

// ScoreTolerance is the allowed gap between a precomputed final score and the
// weighted sum of its components before a score-drift finding is raised.
const ScoreTolerance = 0.01

const weightEpsilon = 1e-6

// Severity ranks a consistency finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding codes.
const (
	CodeHardGateMismatch    = "hard-gate-mismatch"
	CodeScoreDrift          = "score-drift"
	CodeWeightsSum          = "weights-sum"
	CodeWeightsDivergent    = "weights-divergent"
	CodeRouteOrigin         = "route-origin"
	CodeServedOffRoute      = "served-off-route"
	CodePayloadDistribution = "payload-distribution"
	CodePayloadTotal        = "payload-total"
	CodeFleetOvercommit     = "fleet-overcommit"
)

// Finding is one diagnostic about upstream data. Findings never block the
// workflow; they flag planning-engine output that looks malformed.
type Finding struct {
	Severity Severity
	COA      string
	Code     string
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s %s: %s", f.Severity, f.COA, f.Code, f.Message)
}

// CheckConsistency runs every diagnostic over the mission context and returns
// findings in recommendation order.
func CheckConsistency(mc *MissionContext) []Finding {
	var findings []Finding
	var reference map[string]float64
	if mc.SystemOutput != nil {
		reference = mc.SystemOutput.PriorityWeights.AsMap()
	}

	for i := range mc.Recommendations {
		r := &mc.Recommendations[i]
		findings = append(findings, checkHardGates(r)...)
		findings = append(findings, checkScore(r)...)

		weights := componentWeights(r)
		if reference == nil {
			reference = weights
		} else if !sameWeights(reference, weights) {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				COA:      r.Name,
				Code:     CodeWeightsDivergent,
				Message:  fmt.Sprintf("component weights %v differ from mission weights %v", weights, reference),
			})
		}

		findings = append(findings, checkAllocation(&mc.MissionBrief, r)...)
	}
	return findings
}

func checkHardGates(r *Recommendation) []Finding {
	overallPass := r.HardGateSummary.HardGateOverallStatus == "PASS"
	if overallPass == r.HardGateSummary.AllGatesPass() {
		return nil
	}
	var failing []string
	for _, g := range r.HardGateSummary.Gates() {
		if !g.Passed() {
			failing = append(failing, g.Name+"="+g.Status)
		}
	}
	return []Finding{{
		Severity: SeverityWarning,
		COA:      r.Name,
		Code:     CodeHardGateMismatch,
		Message:  fmt.Sprintf("overall status %q but failing gates %v", r.HardGateSummary.HardGateOverallStatus, failing),
	}}
}

func checkScore(r *Recommendation) []Finding {
	var findings []Finding
	var total float64
	for _, c := range r.ScoreBreakdown.Components {
		total += c.Weight
	}
	if math.Abs(total-1) > weightEpsilon {
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			COA:      r.Name,
			Code:     CodeWeightsSum,
			Message:  fmt.Sprintf("component weights sum to %.4f, want 1", total),
		})
	}
	sum := r.ScoreBreakdown.WeightedSum()
	if drift := math.Abs(r.ScoreBreakdown.FinalScore - sum); drift > ScoreTolerance {
		findings = append(findings, Finding{
			Severity: SeverityInfo,
			COA:      r.Name,
			Code:     CodeScoreDrift,
			Message:  fmt.Sprintf("final score %.2f differs from weighted sum %.3f by %.3f", r.ScoreBreakdown.FinalScore, sum, drift),
		})
	}
	return findings
}

func checkAllocation(brief *MissionBrief, r *Recommendation) []Finding {
	var findings []Finding
	add := func(sev Severity, code, format string, args ...any) {
		findings = append(findings, Finding{Severity: sev, COA: r.Name, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	origin := PlaceName(brief.Origin)
	fleet := make(map[string]int, len(brief.FleetAvailable))
	for _, f := range brief.FleetAvailable {
		fleet[f.AircraftType] += f.Quantity
	}
	used := make(map[string]int)

	var carried float64
	for _, a := range r.AircraftAllocation {
		carried += a.PayloadCarriedKg
		used[a.AircraftType] += a.QuantityUsed

		if len(a.RouteSequence) > 0 && PlaceName(a.RouteSequence[0]) != origin {
			add(SeverityWarning, CodeRouteOrigin, "%s route starts at %q, mission origin is %q", a.AircraftType, a.RouteSequence[0], brief.Origin)
		}

		route := make([]string, len(a.RouteSequence))
		for i, wp := range a.RouteSequence {
			route[i] = PlaceName(wp)
		}
		for _, sp := range a.ServedPoints {
			if !slices.Contains(route, PlaceName(sp)) {
				add(SeverityWarning, CodeServedOffRoute, "%s serves %q which is not on its route", a.AircraftType, sp)
			}
		}

		if len(a.PayloadDistribution) > 0 {
			var dist float64
			for _, d := range a.PayloadDistribution {
				dist += d.DeliveredKg
			}
			if math.Abs(dist-a.PayloadCarriedKg) > weightEpsilon {
				add(SeverityWarning, CodePayloadDistribution, "%s distributes %.0fkg but carries %.0fkg", a.AircraftType, dist, a.PayloadCarriedKg)
			}
		}
	}

	if math.Abs(carried-r.SummaryGlobal.TotalPayloadDeliveredKg) > weightEpsilon {
		add(SeverityWarning, CodePayloadTotal, "allocations carry %.0fkg, summary reports %.0fkg", carried, r.SummaryGlobal.TotalPayloadDeliveredKg)
	}

	if len(fleet) > 0 {
		types := make([]string, 0, len(used))
		for t := range used {
			types = append(types, t)
		}
		slices.Sort(types)
		for _, t := range types {
			avail, ok := fleet[t]
			switch {
			case !ok:
				add(SeverityWarning, CodeFleetOvercommit, "%s is not in the available fleet", t)
			case used[t] > avail:
				add(SeverityWarning, CodeFleetOvercommit, "%s uses %d units, %d available", t, used[t], avail)
			}
		}
	}
	return findings
}

func componentWeights(r *Recommendation) map[string]float64 {
	w := make(map[string]float64, len(r.ScoreBreakdown.Components))
	for _, c := range r.ScoreBreakdown.Components {
		w[c.Metric] = c.Weight
	}
	return w
}

func sameWeights(a, b map[string]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || math.Abs(v-w) > weightEpsilon {
			return false
		}
	}
	return true
}
