// Package recommendation contains the mission data contract consumed by the
// decision workflow: the mission brief and the precomputed course-of-action
// (COA) recommendations produced by the planning engine.
// This is part of the Functional Core - no I/O, only pure functions.
package recommendation

import "strings"

// FleetItem is one aircraft type available to the mission.
type FleetItem struct {
	AircraftType string `json:"aircraft_type"`
	Category     string `json:"category"`
	Quantity     int    `json:"quantity"`
}

// MissionBrief is the read-only context displayed alongside recommendations.
type MissionBrief struct {
	Origin           string      `json:"origin"`
	TargetPoints     []string    `json:"target_points"`
	FleetAvailable   []FleetItem `json:"fleet_available"`
	MissionObjective string      `json:"mission_objective"`
}

// PriorityWeights are the objective weights the planning engine scored with.
type PriorityWeights struct {
	Delivery   float64 `json:"delivery"`
	Safety     float64 `json:"safety"`
	Efficiency float64 `json:"efficiency"`
}

// AsMap returns the weights keyed by score metric name.
func (w PriorityWeights) AsMap() map[string]float64 {
	return map[string]float64{
		"delivery":   w.Delivery,
		"safety":     w.Safety,
		"efficiency": w.Efficiency,
	}
}

// SystemOutput is the planning engine's header describing the output contract.
type SystemOutput struct {
	Version             string          `json:"version"`
	AnalysisMode        string          `json:"analysis_mode"`
	GeneratedAtUTC      string          `json:"generated_at_utc"`
	ObjectiveMode       string          `json:"objective_mode"`
	PriorityWeights     PriorityWeights `json:"priority_weights"`
	RecommendationLimit int             `json:"recommendation_limit"`
}

// SummaryGlobal holds the mission-wide totals for one COA.
type SummaryGlobal struct {
	TotalPayloadDeliveredKg float64 `json:"total_payload_delivered_kg"`
	TotalFuelBurnKg         float64 `json:"total_fuel_burn_kg"`
	TotalMissionTimeMin     float64 `json:"total_mission_time_min"`
	TotalDistanceNm         float64 `json:"total_distance_nm"`
	TotalRiskIndex          float64 `json:"total_risk_index"`
	OperationalStatus       string  `json:"operational_status"`
	PrimaryReason           string  `json:"primary_reason"`
	Objective               string  `json:"objective"`
}

// ExecutiveSummary lists the factors behind a recommendation.
type ExecutiveSummary struct {
	SupportingFactors []string `json:"supporting_factors"`
	AttentionFactors  []string `json:"attention_factors"`
	KeyMitigations    []string `json:"key_mitigations"`
}

// PayloadDist is the payload delivered to one location.
type PayloadDist struct {
	Location    string  `json:"location"`
	DeliveredKg float64 `json:"delivered_kg"`
}

// AircraftAllocation assigns an aircraft type to an ordered route.
type AircraftAllocation struct {
	AircraftType        string        `json:"aircraft_type"`
	QuantityUsed        int           `json:"quantity_used"`
	RouteSequence       []string      `json:"route_sequence"`
	ServedPoints        []string      `json:"served_points"`
	PayloadCarriedKg    float64       `json:"payload_carried_kg"`
	PayloadDistribution []PayloadDist `json:"payload_distribution,omitempty"`
}

// MinimumMargin identifies the tightest performance margins and where they occur.
type MinimumMargin struct {
	MinimumClimbMarginPercent       float64 `json:"minimum_climb_margin_percent"`
	MinimumRunwayMarginPercent      float64 `json:"minimum_runway_margin_percent"`
	MinimumOGEMarginPercent         float64 `json:"minimum_oge_margin_percent"`
	MinimumFuelReserveMarginPercent float64 `json:"minimum_fuel_reserve_margin_percent"`
	CriticalLocation                string  `json:"critical_location"`
	CriticalLeg                     string  `json:"critical_leg"`
}

// HardGateSummary carries the pass/fail feasibility checks.
type HardGateSummary struct {
	HardGateOverallStatus string `json:"hard_gate_overall_status"`
	MassCheck             string `json:"mass_check"`
	CGCheck               string `json:"cg_check"`
	RunwayCheck           string `json:"runway_check"`
	ClimbCheck            string `json:"climb_check"`
	OGECheck              string `json:"oge_check"`
	FuelCheck             string `json:"fuel_check"`
	SecurityCheck         string `json:"security_check"`
}

// Gate is one named hard-gate result.
type Gate struct {
	Name   string
	Status string
}

// Passed reports whether the gate status string contains PASS.
func (g Gate) Passed() bool {
	return strings.Contains(g.Status, "PASS")
}

// Gates returns the individual gates in display order.
func (h HardGateSummary) Gates() []Gate {
	return []Gate{
		{Name: "mass", Status: h.MassCheck},
		{Name: "cg", Status: h.CGCheck},
		{Name: "runway", Status: h.RunwayCheck},
		{Name: "climb", Status: h.ClimbCheck},
		{Name: "oge", Status: h.OGECheck},
		{Name: "fuel", Status: h.FuelCheck},
		{Name: "security", Status: h.SecurityCheck},
	}
}

// AllGatesPass reports whether every individual gate contains PASS.
// The overall status is expected to be "PASS" exactly when this is true.
func (h HardGateSummary) AllGatesPass() bool {
	for _, g := range h.Gates() {
		if !g.Passed() {
			return false
		}
	}
	return true
}

// ScoreComponent is one weighted objective term.
type ScoreComponent struct {
	Metric string  `json:"metric"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
}

// ScoreBreakdown is the planning engine's scoring. FinalScore is precomputed
// upstream and is displayed verbatim, never recomputed.
type ScoreBreakdown struct {
	ObjectiveMode string           `json:"objective_mode"`
	Components    []ScoreComponent `json:"components"`
	FinalScore    float64          `json:"final_score"`
}

// WeightedSum returns Σ weight·value over the components. Diagnostic only.
func (s ScoreBreakdown) WeightedSum() float64 {
	var sum float64
	for _, c := range s.Components {
		sum += c.Weight * c.Value
	}
	return sum
}

// TacticalLayer describes threat exposure along the plan.
type TacticalLayer struct {
	HotspotProximityKm float64 `json:"hotspot_proximity_km"`
	SummaryRisk        string  `json:"summary_risk"`
	ThreatLevel        string  `json:"threat_level"`
}

// EnvironmentalConditions describes expected weather and performance conditions.
type EnvironmentalConditions struct {
	TemperatureRangeC    string  `json:"temperature_range_c"`
	MaxDensityAltitudeFt float64 `json:"max_density_altitude_ft"`
	AvgWindKts           float64 `json:"avg_wind_kts"`
	VisibilityKm         float64 `json:"visibility_km"`
	DaylightWindowMin    float64 `json:"daylight_window_min"`
	WeatherTrend         string  `json:"weather_trend"`
}

// Recommendation is one candidate course of action. Values are supplied by the
// planning engine and never mutated.
type Recommendation struct {
	Name                    string                  `json:"name"`
	Detail                  string                  `json:"detail"`
	Purpose                 string                  `json:"purpose"`
	SummaryGlobal           SummaryGlobal           `json:"summary_global"`
	ExecutiveSummary        ExecutiveSummary        `json:"executive_summary"`
	AircraftAllocation      []AircraftAllocation    `json:"aircraft_allocation"`
	MinimumMargin           MinimumMargin           `json:"minimum_margin"`
	HardGateSummary         HardGateSummary         `json:"hard_gate_summary"`
	ScoreBreakdown          ScoreBreakdown          `json:"score_breakdown"`
	TacticalLayer           TacticalLayer           `json:"tactical_layer"`
	EnvironmentalConditions EnvironmentalConditions `json:"environmental_conditions"`
}

// ShortLabel returns the leading token of the name ("COA-1 Payload Dominant" -> "COA-1").
func (r Recommendation) ShortLabel() string {
	if fields := strings.Fields(r.Name); len(fields) > 0 {
		return fields[0]
	}
	return r.Name
}

// MissionContext is the single immutable input supplied by the planning engine.
type MissionContext struct {
	SystemOutput    *SystemOutput    `json:"system_output,omitempty"`
	MissionBrief    MissionBrief     `json:"mission_brief"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Find returns the recommendation with the given name.
func (m *MissionContext) Find(name string) (*Recommendation, bool) {
	for i := range m.Recommendations {
		if m.Recommendations[i].Name == name {
			return &m.Recommendations[i], true
		}
	}
	return nil, false
}

// Contains reports whether name identifies a member of the recommendation set.
func (m *MissionContext) Contains(name string) bool {
	_, ok := m.Find(name)
	return ok
}

// Names returns the recommendation names in input order.
func (m *MissionContext) Names() []string {
	names := make([]string, len(m.Recommendations))
	for i, r := range m.Recommendations {
		names[i] = r.Name
	}
	return names
}

// PlaceName strips a trailing ICAO suffix: "Timika (WAYY)" -> "Timika".
func PlaceName(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		return s[:i]
	}
	return s
}
