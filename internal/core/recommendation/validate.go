package recommendation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// SupportedOutputContract is the planning-engine output version range this
// workflow understands.
const SupportedOutputContract = "^2"

var embeddedVersion = regexp.MustCompile(`v?(\d+\.\d+\.\d+)`)

// Validate checks the domain constraints of a decoded mission context.
// Structural presence is checked by the loader's JSON Schema; this function
// enforces value domains so programmatically built contexts are held to the
// same contract. Returns the first violation as a *SchemaError.
func Validate(mc *MissionContext) error {
	if mc == nil {
		return schemaErr("", "mission context is nil")
	}
	if mc.SystemOutput != nil {
		if err := validateSystemOutput(mc.SystemOutput, len(mc.Recommendations)); err != nil {
			return err
		}
	}
	if err := validateBrief(&mc.MissionBrief); err != nil {
		return err
	}

	seen := make(map[string]int, len(mc.Recommendations))
	for i := range mc.Recommendations {
		r := &mc.Recommendations[i]
		path := fmt.Sprintf("recommendations[%d]", i)
		if err := validateRecommendation(path, r); err != nil {
			return err
		}
		if prev, dup := seen[r.Name]; dup {
			return schemaErr(path+".name", "duplicate name %q (also recommendations[%d])", r.Name, prev)
		}
		seen[r.Name] = i
	}
	return nil
}

// CheckOutputVersion extracts the semantic version embedded in an output
// version tag ("aerobridge.output.v2.1.3.preflight") and checks it against
// SupportedOutputContract.
func CheckOutputVersion(tag string) (*semver.Version, error) {
	m := embeddedVersion.FindStringSubmatch(tag)
	if m == nil {
		return nil, schemaErr("system_output.version", "no semantic version in %q", tag)
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, &SchemaError{Path: "system_output.version", Reason: "unparseable version", Err: err}
	}
	c, err := semver.NewConstraint(SupportedOutputContract)
	if err != nil {
		return nil, fmt.Errorf("output contract constraint: %w", err)
	}
	if !c.Check(v) {
		return nil, schemaErr("system_output.version", "version %s does not satisfy %s", v, SupportedOutputContract)
	}
	return v, nil
}

func validateSystemOutput(so *SystemOutput, count int) error {
	if _, err := CheckOutputVersion(so.Version); err != nil {
		return err
	}
	if so.GeneratedAtUTC != "" {
		if _, err := time.Parse(time.RFC3339, so.GeneratedAtUTC); err != nil {
			return &SchemaError{Path: "system_output.generated_at_utc", Reason: "not RFC 3339", Err: err}
		}
	}
	if so.RecommendationLimit < 0 {
		return schemaErr("system_output.recommendation_limit", "must not be negative")
	}
	if so.RecommendationLimit > 0 && count > so.RecommendationLimit {
		return schemaErr("recommendations", "%d recommendations exceed limit %d", count, so.RecommendationLimit)
	}
	weights := so.PriorityWeights.AsMap()
	for _, metric := range []string{"delivery", "safety", "efficiency"} {
		if w := weights[metric]; !unit(w) {
			return schemaErr("system_output.priority_weights."+metric, "weight %v not in [0,1]", w)
		}
	}
	return nil
}

func validateBrief(b *MissionBrief) error {
	if blank(b.Origin) {
		return schemaErr("mission_brief.origin", "required")
	}
	if len(b.TargetPoints) == 0 {
		return schemaErr("mission_brief.target_points", "at least one target point required")
	}
	for i, tp := range b.TargetPoints {
		if blank(tp) {
			return schemaErr(fmt.Sprintf("mission_brief.target_points[%d]", i), "required")
		}
	}
	for i, f := range b.FleetAvailable {
		path := fmt.Sprintf("mission_brief.fleet_available[%d]", i)
		if blank(f.AircraftType) {
			return schemaErr(path+".aircraft_type", "required")
		}
		if f.Quantity <= 0 {
			return schemaErr(path+".quantity", "quantity %d is not a positive integer", f.Quantity)
		}
	}
	return nil
}

func validateRecommendation(path string, r *Recommendation) error {
	if blank(r.Name) {
		return schemaErr(path+".name", "required")
	}
	sg := r.SummaryGlobal
	if !unit(sg.TotalRiskIndex) {
		return schemaErr(path+".summary_global.total_risk_index", "risk index %v not in [0,1]", sg.TotalRiskIndex)
	}
	if blank(sg.OperationalStatus) {
		return schemaErr(path+".summary_global.operational_status", "required")
	}
	totals := []struct {
		field string
		v     float64
	}{
		{"total_payload_delivered_kg", sg.TotalPayloadDeliveredKg},
		{"total_fuel_burn_kg", sg.TotalFuelBurnKg},
		{"total_mission_time_min", sg.TotalMissionTimeMin},
		{"total_distance_nm", sg.TotalDistanceNm},
	}
	for _, t := range totals {
		if t.v < 0 {
			return schemaErr(path+".summary_global."+t.field, "must not be negative")
		}
	}

	if len(r.AircraftAllocation) == 0 {
		return schemaErr(path+".aircraft_allocation", "at least one allocation required")
	}
	for i, a := range r.AircraftAllocation {
		ap := fmt.Sprintf("%s.aircraft_allocation[%d]", path, i)
		if blank(a.AircraftType) {
			return schemaErr(ap+".aircraft_type", "required")
		}
		if a.QuantityUsed <= 0 {
			return schemaErr(ap+".quantity_used", "quantity %d is not a positive integer", a.QuantityUsed)
		}
		if len(a.RouteSequence) == 0 {
			return schemaErr(ap+".route_sequence", "at least one waypoint required")
		}
		if a.PayloadCarriedKg < 0 {
			return schemaErr(ap+".payload_carried_kg", "must not be negative")
		}
	}

	if blank(r.HardGateSummary.HardGateOverallStatus) {
		return schemaErr(path+".hard_gate_summary.hard_gate_overall_status", "required")
	}
	for _, g := range r.HardGateSummary.Gates() {
		if blank(g.Status) {
			return schemaErr(path+".hard_gate_summary."+g.Name+"_check", "required")
		}
	}

	sb := r.ScoreBreakdown
	if len(sb.Components) == 0 {
		return schemaErr(path+".score_breakdown.components", "at least one component required")
	}
	for i, c := range sb.Components {
		cp := fmt.Sprintf("%s.score_breakdown.components[%d]", path, i)
		if blank(c.Metric) {
			return schemaErr(cp+".metric", "required")
		}
		if !unit(c.Weight) {
			return schemaErr(cp+".weight", "weight %v not in [0,1]", c.Weight)
		}
		if !unit(c.Value) {
			return schemaErr(cp+".value", "value %v not in [0,1]", c.Value)
		}
	}
	if !unit(sb.FinalScore) {
		return schemaErr(path+".score_breakdown.final_score", "score %v not in [0,1]", sb.FinalScore)
	}
	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
