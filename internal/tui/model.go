// Package tui implements the interactive operator console for the COA
// decision workflow.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/aerobridge/internal/core/recommendation"
	"github.com/example/aerobridge/internal/core/validation"
	"github.com/example/aerobridge/internal/core/workflow"
	"github.com/example/aerobridge/internal/ports/primary"
)

// Model is the console model. It never holds workflow state of its own:
// every stage change goes through the WorkflowService and the view renders
// the returned snapshot.
type Model struct {
	ctx     context.Context
	service primary.WorkflowService

	keys     KeyMap
	help     help.Model
	progress progress.Model
	theme    *Theme

	width  int
	cursor int

	snap       primary.Snapshot
	transcript []primary.StepEvent
	auth       *primary.Authorization
	status     string
	err        error
	quitting   bool
}

// New creates a console bound to one workflow session.
func New(ctx context.Context, service primary.WorkflowService) *Model {
	m := &Model{
		ctx:      ctx,
		service:  service,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		theme:    DefaultTheme(),
		width:    80,
		snap:     service.Snapshot(),
	}
	m.progress.Width = 40
	m.keys.stageKeys(m.snap.Stage)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = max(10, min(60, msg.Width-20))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stepMsg:
		if msg.RunID != m.snap.RunID {
			return m, nil
		}
		m.transcript = append(m.transcript, msg.Event)
		return m, m.waitForStep()

	case runEndedMsg:
		if msg.RunID != m.snap.RunID {
			return m, nil
		}
		m.refresh()
		if m.snap.Ready {
			m.status = fmt.Sprintf("Pre-flight validation of %s complete", m.snap.COA)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		// Closing the session cancels any run so no goroutine outlives the console.
		if err := m.service.Close(m.ctx); err != nil {
			m.err = err
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.snap.Stage {
	case workflow.StageSelecting:
		recs := m.service.Recommendations()
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(recs)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(recs) == 0 {
				return m, nil
			}
			m.apply(m.service.Select(m.ctx, recs[m.cursor].Name))
		}

	case workflow.StageReviewing:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.apply(m.service.Back(m.ctx))
		case key.Matches(msg, m.keys.Validate):
			m.transcript = nil
			m.auth = nil
			if m.apply(m.service.Validate(m.ctx)) {
				return m, m.waitForStep()
			}
		}

	case workflow.StageValidating:
		switch {
		case key.Matches(msg, m.keys.Reset):
			if m.apply(m.service.Reset(m.ctx)) {
				m.transcript = nil
				m.auth = nil
				m.status = "Validation reset"
			}
		case key.Matches(msg, m.keys.Execute):
			m.authorize()
		}
	}
	return m, nil
}

// apply records the outcome of a workflow operation.
func (m *Model) apply(snap primary.Snapshot, err error) bool {
	if err != nil {
		m.err = err
		return false
	}
	m.snap = snap
	m.status = ""
	m.keys.stageKeys(snap.Stage)
	return true
}

func (m *Model) refresh() {
	m.snap = m.service.Snapshot()
	m.keys.stageKeys(m.snap.Stage)
}

func (m *Model) authorize() {
	auth, err := m.service.AuthorizeExecution(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.auth = auth
	m.status = fmt.Sprintf("Execution of %s authorized", auth.COA)
}

// waitForStep reads the next event from the active run.
func (m *Model) waitForStep() tea.Cmd {
	run := m.service.ActiveRun()
	if run == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-run.Events()
		if !ok {
			return runEndedMsg{RunID: run.ID()}
		}
		return stepMsg{RunID: run.ID(), Event: ev}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.TitleStyle.Render("AEROBRIDGE // COA DECISION SUPPORT"))
	b.WriteString("\n")
	b.WriteString(m.stepper())
	b.WriteString("\n\n")
	b.WriteString(m.briefView())
	b.WriteString("\n")

	switch m.snap.Stage {
	case workflow.StageSelecting:
		b.WriteString(m.selectionView())
	case workflow.StageReviewing:
		b.WriteString(m.detailView())
	case workflow.StageValidating:
		b.WriteString(m.simulationView())
	}

	if m.status != "" {
		b.WriteString("\n" + m.theme.MutedStyle.Render(m.status) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + m.theme.ErrorStyle.Render(errorText(m.err)) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

var stepLabels = []string{"Selection", "Detail", "Simulation"}

func (m *Model) stepper() string {
	parts := make([]string, len(stepLabels))
	for i, label := range stepLabels {
		text := fmt.Sprintf("%d %s", i+1, label)
		if i+1 == m.snap.Step {
			parts[i] = m.theme.ActiveStep.Render(text)
		} else {
			parts[i] = m.theme.InactiveStep.Render(text)
		}
	}
	return strings.Join(parts, m.theme.MutedStyle.Render("  ›  "))
}

func (m *Model) briefView() string {
	brief := m.service.Brief()
	lines := []string{
		fmt.Sprintf("Origin   %s", brief.Origin),
		fmt.Sprintf("Targets  %s", strings.Join(brief.TargetPoints, ", ")),
	}
	if brief.MissionObjective != "" {
		lines = append(lines, m.theme.MutedStyle.Render(brief.MissionObjective))
	}
	return m.theme.PanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) selectionView() string {
	recs := m.service.Recommendations()
	if len(recs) == 0 {
		return "No recommendations available\n"
	}

	var b strings.Builder
	for i, r := range recs {
		cursor := "  "
		name := r.Name
		if i == m.cursor {
			cursor = m.theme.CursorStyle.Render("▸ ")
			name = m.theme.CursorStyle.Render(name)
		}
		sg := r.SummaryGlobal
		fmt.Fprintf(&b, "%s%d. %s  %s  %skg  risk %.2f  score %.2f\n",
			cursor, i+1, name, m.theme.Status(sg.OperationalStatus),
			validation.FormatKg(sg.TotalPayloadDeliveredKg), sg.TotalRiskIndex, r.ScoreBreakdown.FinalScore)
	}

	view := m.service.Comparison()
	if view.Enabled {
		b.WriteString("\n" + m.theme.TitleStyle.Render("Comparison") + "\n")
		for _, p := range view.Series {
			fmt.Fprintf(&b, "  %-6s payload %5skg  fuel %5skg  time %4s min\n",
				p.Label, validation.FormatKg(p.Payload), validation.FormatKg(p.Fuel), validation.FormatKg(p.Time))
		}
	}
	return b.String()
}

func (m *Model) detailView() string {
	r := m.snap.Selected
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.TitleStyle.Render(r.Name) + "  " + m.theme.Status(r.SummaryGlobal.OperationalStatus) + "\n")
	if r.Detail != "" {
		b.WriteString(r.Detail + "\n")
	}
	sg := r.SummaryGlobal
	fmt.Fprintf(&b, "\nPayload %skg  Fuel %skg  Time %s min  Risk %.2f\n",
		validation.FormatKg(sg.TotalPayloadDeliveredKg), validation.FormatKg(sg.TotalFuelBurnKg),
		validation.FormatKg(sg.TotalMissionTimeMin), sg.TotalRiskIndex)

	b.WriteString("\n")
	for _, a := range r.AircraftAllocation {
		fmt.Fprintf(&b, "  %dx %s  %s\n", a.QuantityUsed, a.AircraftType, strings.Join(a.RouteSequence, " → "))
	}

	b.WriteString("\n")
	gates := make([]string, 0, 7)
	for _, g := range r.HardGateSummary.Gates() {
		gates = append(gates, m.gate(g))
	}
	b.WriteString(strings.Join(gates, "  "))
	b.WriteString("\n")

	if factors := r.ExecutiveSummary.AttentionFactors; len(factors) > 0 {
		b.WriteString("\n" + m.theme.MutedStyle.Render("Attention") + "\n")
		for _, f := range factors {
			b.WriteString("  • " + f + "\n")
		}
	}
	fmt.Fprintf(&b, "\nScore %.2f\n", r.ScoreBreakdown.FinalScore)
	return b.String()
}

func (m *Model) gate(g recommendation.Gate) string {
	if g.Passed() {
		return m.theme.PassStyle.Render(g.Name + " ✓")
	}
	return m.theme.FailStyle.Render(g.Name + " ✗")
}

func (m *Model) simulationView() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pre-flight validation: %s\n\n", m.snap.COA)

	for _, ev := range m.transcript {
		fmt.Fprintf(&b, "%s  %s\n", m.theme.TimestampText.Render(ev.At.Format("15:04:05.000")), ev.Message)
	}

	percent := 0.0
	if n := len(m.transcript); n > 0 {
		percent = m.transcript[n-1].Progress / 100
	}
	fmt.Fprintf(&b, "\n%s %3.0f%%  (%d/%d)\n", m.progress.ViewAs(percent), percent*100, len(m.transcript), validation.TotalSteps)

	b.WriteString("\n")
	switch {
	case m.auth != nil:
		b.WriteString(m.theme.ReadyStyle.Render("EXECUTION AUTHORIZED"))
	case m.snap.Ready:
		b.WriteString(m.theme.ReadyStyle.Render("EXECUTE MISSION [x]"))
	default:
		b.WriteString(m.theme.LockedStyle.Render("EXECUTE MISSION (locked)"))
	}
	b.WriteString("\n")
	return b.String()
}

func errorText(err error) string {
	var selErr *workflow.SelectionError
	if errors.As(err, &selErr) {
		return fmt.Sprintf("%s is not a current recommendation", selErr.Name)
	}
	return err.Error()
}
