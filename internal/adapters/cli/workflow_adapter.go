package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/aerobridge/internal/core/comparison"
	"github.com/example/aerobridge/internal/core/recommendation"
	"github.com/example/aerobridge/internal/core/validation"
	"github.com/example/aerobridge/internal/core/workflow"
	"github.com/example/aerobridge/internal/ports/primary"
)

// ErrValidationIncomplete is returned by Simulate when the run ended without
// unlocking execution.
var ErrValidationIncomplete = errors.New("validation run ended before completion")

// WorkflowAdapter is a thin adapter that renders the decision workflow as text.
// It depends only on the WorkflowService interface, enabling easy testing with mocks.
type WorkflowAdapter struct {
	service primary.WorkflowService
	out     io.Writer
}

// NewWorkflowAdapter creates a new WorkflowAdapter with the given service.
func NewWorkflowAdapter(service primary.WorkflowService, out io.Writer) *WorkflowAdapter {
	return &WorkflowAdapter{
		service: service,
		out:     out,
	}
}

// Brief prints the mission brief.
func (a *WorkflowAdapter) Brief() {
	brief := a.service.Brief()
	fmt.Fprintf(a.out, "\nMission: %s -> %s\n", brief.Origin, strings.Join(brief.TargetPoints, ", "))
	if brief.MissionObjective != "" {
		fmt.Fprintf(a.out, "Objective: %s\n", brief.MissionObjective)
	}
	if len(brief.FleetAvailable) > 0 {
		fleet := make([]string, len(brief.FleetAvailable))
		for i, f := range brief.FleetAvailable {
			fleet[i] = fmt.Sprintf("%dx %s", f.Quantity, f.AircraftType)
			if f.Category != "" {
				fleet[i] += " (" + f.Category + ")"
			}
		}
		fmt.Fprintf(a.out, "Fleet: %s\n", strings.Join(fleet, ", "))
	}
}

// ListCOAs prints the selection stage: brief, recommendation table and the
// comparison series.
func (a *WorkflowAdapter) ListCOAs() {
	a.Brief()
	fmt.Fprintf(a.out, "\n%s\n", Stepper(1))

	recs := a.service.Recommendations()
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "\nNo recommendations available")
		return
	}

	fmt.Fprintf(a.out, "\n%-3s %-34s %-7s %9s %6s %6s\n", "#", "COA", "STATUS", "PAYLOAD", "RISK", "SCORE")
	fmt.Fprintln(a.out, rule)
	for i, r := range recs {
		sg := r.SummaryGlobal
		fmt.Fprintf(a.out, "%-3d %-34s %s %9s %6s %6.2f\n",
			i+1,
			r.Name,
			statusBadge(sg.OperationalStatus, 7),
			kg(sg.TotalPayloadDeliveredKg),
			riskText(sg.TotalRiskIndex),
			r.ScoreBreakdown.FinalScore,
		)
	}

	a.Comparison()
}

// Comparison prints the payload, fuel and time series as bars.
func (a *WorkflowAdapter) Comparison() {
	view := a.service.Comparison()
	if !view.Enabled {
		fmt.Fprintln(a.out, "\nComparison unavailable: fewer than two recommendations")
		return
	}

	extent := comparison.MaxExtent(view.Series)
	payload := color.New(color.FgGreen)
	fuel := color.New(color.FgYellow)
	minutes := color.New(color.FgCyan)

	fmt.Fprintln(a.out, "\nComparison")
	fmt.Fprintln(a.out, rule)
	for _, p := range view.Series {
		fmt.Fprintf(a.out, "%-8s payload %s %s\n", p.Label, paddedBar(payload, p.Payload, extent.Payload), kg(p.Payload))
		fmt.Fprintf(a.out, "%-8s fuel    %s %s\n", "", paddedBar(fuel, p.Fuel, extent.Fuel), kg(p.Fuel))
		fmt.Fprintf(a.out, "%-8s time    %s %s min\n", "", paddedBar(minutes, p.Time, extent.Time), trimFloat(p.Time))
	}
	fmt.Fprintln(a.out)
}

// Show prints the detail view for one recommendation.
func (a *WorkflowAdapter) Show(name string) error {
	rec, err := a.find(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\n%s\n", Stepper(2))
	a.detail(rec)
	return nil
}

// Simulate runs the workflow headlessly: select, validate, stream the
// transcript, then optionally authorize execution.
func (a *WorkflowAdapter) Simulate(ctx context.Context, name string, authorize bool) (*primary.Authorization, error) {
	rec, err := a.find(name)
	if err != nil {
		return nil, err
	}

	snap, err := a.service.Select(ctx, rec.Name)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "\n%s\n", Stepper(snap.Step))
	fmt.Fprintf(a.out, "Selected %s (session %s)\n", rec.Name, snap.SessionID)

	snap, err = a.service.Validate(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "\n%s\n", Stepper(snap.Step))
	fmt.Fprintf(a.out, "Pre-flight validation of %s (run %s, %s per step)\n", rec.Name, snap.RunID, a.service.StepInterval())
	fmt.Fprintln(a.out, rule)

	run := a.service.ActiveRun()
	if run == nil {
		return nil, fmt.Errorf("no validation run active for %s", rec.Name)
	}
	for ev := range run.Events() {
		a.step(ev)
	}
	fmt.Fprintln(a.out, rule)

	if !a.service.ReadyToExecute() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrValidationIncomplete
	}
	fmt.Fprintln(a.out, color.New(color.FgGreen, color.Bold).Sprint("✓ READY TO EXECUTE"))

	if !authorize {
		return nil, nil
	}
	auth, err := a.service.AuthorizeExecution(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Execution of %s authorized by %s at %s\n",
		auth.COA, operatorLabel(auth.Operator), auth.AuthorizedAt.Format("2006-01-02 15:04:05Z07:00"))
	return auth, nil
}

func (a *WorkflowAdapter) step(ev primary.StepEvent) {
	fmt.Fprintf(a.out, "[%s] %d/%d %5.1f%%  %s\n",
		ev.At.Format("15:04:05.000"), ev.Index, validation.TotalSteps, ev.Progress, ev.Message)
}

func (a *WorkflowAdapter) find(name string) (*recommendation.Recommendation, error) {
	recs := a.service.Recommendations()
	for i := range recs {
		if recs[i].Name == name {
			return &recs[i], nil
		}
	}
	// Accept the short label ("COA-2") when it is unambiguous.
	var match *recommendation.Recommendation
	for i := range recs {
		if strings.EqualFold(recs[i].ShortLabel(), name) {
			if match != nil {
				return nil, &workflow.SelectionError{Name: name}
			}
			match = &recs[i]
		}
	}
	if match == nil {
		return nil, &workflow.SelectionError{Name: name}
	}
	return match, nil
}

func (a *WorkflowAdapter) detail(r *recommendation.Recommendation) {
	sg := r.SummaryGlobal
	fmt.Fprintf(a.out, "\n%s  %s\n", color.New(color.Bold).Sprint(r.Name), statusBadge(sg.OperationalStatus, 0))
	if r.Detail != "" {
		fmt.Fprintf(a.out, "%s\n", r.Detail)
	}
	if r.Purpose != "" {
		fmt.Fprintf(a.out, "Purpose: %s\n", r.Purpose)
	}
	if sg.PrimaryReason != "" {
		fmt.Fprintf(a.out, "Reason:  %s\n", sg.PrimaryReason)
	}

	fmt.Fprintln(a.out, "\nSummary")
	fmt.Fprintf(a.out, "  Payload:  %s\n", kg(sg.TotalPayloadDeliveredKg))
	fmt.Fprintf(a.out, "  Fuel:     %s\n", kg(sg.TotalFuelBurnKg))
	fmt.Fprintf(a.out, "  Time:     %s min\n", trimFloat(sg.TotalMissionTimeMin))
	if sg.TotalDistanceNm > 0 {
		fmt.Fprintf(a.out, "  Distance: %s nm\n", trimFloat(sg.TotalDistanceNm))
	}
	fmt.Fprintf(a.out, "  Risk:     %s\n", riskText(sg.TotalRiskIndex))

	fmt.Fprintln(a.out, "\nAircraft allocation")
	for _, alloc := range r.AircraftAllocation {
		fmt.Fprintf(a.out, "  %dx %s  %s  (%s)\n", alloc.QuantityUsed, alloc.AircraftType,
			strings.Join(alloc.RouteSequence, " -> "), kg(alloc.PayloadCarriedKg))
		for _, d := range alloc.PayloadDistribution {
			fmt.Fprintf(a.out, "      %-20s %s\n", d.Location, kg(d.DeliveredKg))
		}
	}

	hg := r.HardGateSummary
	fmt.Fprintf(a.out, "\nHard gates: %s\n", gateText(recommendation.Gate{Name: "overall", Status: hg.HardGateOverallStatus}))
	for _, g := range hg.Gates() {
		fmt.Fprintf(a.out, "  %-9s %s\n", g.Name, gateText(g))
	}

	mm := r.MinimumMargin
	if mm != (recommendation.MinimumMargin{}) {
		fmt.Fprintln(a.out, "\nMinimum margins")
		fmt.Fprintf(a.out, "  Climb %s%%  Runway %s%%  OGE %s%%  Fuel reserve %s%%\n",
			trimFloat(mm.MinimumClimbMarginPercent), trimFloat(mm.MinimumRunwayMarginPercent),
			trimFloat(mm.MinimumOGEMarginPercent), trimFloat(mm.MinimumFuelReserveMarginPercent))
		if mm.CriticalLocation != "" || mm.CriticalLeg != "" {
			fmt.Fprintf(a.out, "  Critical: %s %s\n", mm.CriticalLocation, mm.CriticalLeg)
		}
	}

	env := r.EnvironmentalConditions
	if env != (recommendation.EnvironmentalConditions{}) {
		fmt.Fprintln(a.out, "\nEnvironment")
		fmt.Fprintf(a.out, "  Temperature %s C, density altitude %s ft, wind %s kts, visibility %s km\n",
			env.TemperatureRangeC, trimFloat(env.MaxDensityAltitudeFt), trimFloat(env.AvgWindKts), trimFloat(env.VisibilityKm))
		if env.WeatherTrend != "" {
			fmt.Fprintf(a.out, "  Trend: %s\n", env.WeatherTrend)
		}
	}

	tl := r.TacticalLayer
	if tl != (recommendation.TacticalLayer{}) {
		fmt.Fprintln(a.out, "\nTactical")
		fmt.Fprintf(a.out, "  Threat %s, hotspot %s km\n", tl.ThreatLevel, trimFloat(tl.HotspotProximityKm))
		if tl.SummaryRisk != "" {
			fmt.Fprintf(a.out, "  %s\n", tl.SummaryRisk)
		}
	}

	es := r.ExecutiveSummary
	fmt.Fprintln(a.out, "\nSupporting factors")
	fmt.Fprint(a.out, bullets(es.SupportingFactors))
	fmt.Fprintln(a.out, "Attention factors")
	fmt.Fprint(a.out, bullets(es.AttentionFactors))
	fmt.Fprintln(a.out, "Key mitigations")
	fmt.Fprint(a.out, bullets(es.KeyMitigations))

	sb := r.ScoreBreakdown
	fmt.Fprintf(a.out, "\nScore %.2f", sb.FinalScore)
	if sb.ObjectiveMode != "" {
		fmt.Fprintf(a.out, " (%s)", sb.ObjectiveMode)
	}
	fmt.Fprintln(a.out)
	for _, c := range sb.Components {
		fmt.Fprintf(a.out, "  %-11s weight %.2f  value %.2f\n", c.Metric, c.Weight, c.Value)
	}
	fmt.Fprintln(a.out)
}

func operatorLabel(op string) string {
	if op == "" {
		return "unknown operator"
	}
	return op
}
