package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/aerobridge/internal/core/comparison"
	"github.com/example/aerobridge/internal/core/effects"
	"github.com/example/aerobridge/internal/core/recommendation"
	"github.com/example/aerobridge/internal/core/workflow"
	"github.com/example/aerobridge/internal/ctxutil"
	"github.com/example/aerobridge/internal/observability"
	"github.com/example/aerobridge/internal/ports/primary"
	"github.com/example/aerobridge/internal/ports/secondary"
)

var (
	// ErrExecutionLocked is returned when execution is requested before a
	// validation run has completed.
	ErrExecutionLocked = errors.New("execution locked")

	// ErrSessionClosed is returned by every operation after Close.
	ErrSessionClosed = errors.New("workflow session closed")
)

// WorkflowOptions carries per-session settings.
type WorkflowOptions struct {
	MissionSource string // recorded in the journal
	Operator      string // used when the context carries no operator
}

// WorkflowServiceImpl implements the WorkflowService interface. It is the only
// owner of workflow state: the stage, the selected COA and the active run.
type WorkflowServiceImpl struct {
	mission   *recommendation.MissionContext
	sequencer *Sequencer
	executor  EffectExecutor
	observer  observability.Observer
	clock     secondary.Clock
	sessionID string
	operator  string

	mu     sync.Mutex
	state  workflow.State
	run    *Run
	closed bool
}

var _ primary.WorkflowService = (*WorkflowServiceImpl)(nil)

// NewWorkflowService creates a session over an already validated mission
// context and opens its journal session.
func NewWorkflowService(
	ctx context.Context,
	mission *recommendation.MissionContext,
	sequencer *Sequencer,
	executor EffectExecutor,
	observer observability.Observer,
	clock secondary.Clock,
	opts WorkflowOptions,
) (*WorkflowServiceImpl, error) {
	if mission == nil {
		return nil, fmt.Errorf("mission context is required")
	}
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	s := &WorkflowServiceImpl{
		mission:   mission,
		sequencer: sequencer,
		executor:  executor,
		observer:  observer,
		clock:     clock,
		sessionID: uuid.NewString(),
		operator:  opts.Operator,
		state:     workflow.Initial(),
	}

	ctx = s.scope(ctx)
	if err := s.executor.Execute(ctx, []effects.Effect{
		effects.SessionEffect{Operation: "open", MissionSource: opts.MissionSource},
	}); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	s.observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventMissionLoaded,
		Level:     observability.LevelInfo,
		Timestamp: clock.Now(),
		Source:    "app.WorkflowService",
		Data: map[string]any{
			"session_id":      s.sessionID,
			"source":          opts.MissionSource,
			"recommendations": len(mission.Recommendations),
		},
	})
	return s, nil
}

// SessionID returns the ID of this workflow session.
func (s *WorkflowServiceImpl) SessionID() string {
	return s.sessionID
}

// Brief returns the mission brief.
func (s *WorkflowServiceImpl) Brief() recommendation.MissionBrief {
	return s.mission.MissionBrief
}

// Recommendations returns a copy of the recommendation set in input order.
func (s *WorkflowServiceImpl) Recommendations() []recommendation.Recommendation {
	out := make([]recommendation.Recommendation, len(s.mission.Recommendations))
	copy(out, s.mission.Recommendations)
	return out
}

// Comparison derives the comparison series. It is disabled with fewer than
// two recommendations.
func (s *WorkflowServiceImpl) Comparison() primary.ComparisonView {
	recs := s.mission.Recommendations
	return primary.ComparisonView{
		Enabled: comparison.Comparable(recs),
		Series:  comparison.DeriveComparisonSeries(recs),
	}
}

// Snapshot returns the current workflow state.
func (s *WorkflowServiceImpl) Snapshot() primary.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Select moves Selecting -> Reviewing(name). A name outside the
// recommendation set fails with workflow.ErrInvalidSelection.
func (s *WorkflowServiceImpl) Select(ctx context.Context, name string) (primary.Snapshot, error) {
	return s.dispatch(ctx, workflow.Select{Name: name})
}

// Back moves Reviewing -> Selecting.
func (s *WorkflowServiceImpl) Back(ctx context.Context) (primary.Snapshot, error) {
	return s.dispatch(ctx, workflow.Back{})
}

// Validate moves Reviewing -> Validating and starts a validation run bound
// to ctx: cancelling ctx cancels the run.
func (s *WorkflowServiceImpl) Validate(ctx context.Context) (primary.Snapshot, error) {
	return s.dispatch(ctx, workflow.Validate{})
}

// Reset cancels the active run and returns to Selecting. When Reset returns,
// the cancelled run delivers no further events.
func (s *WorkflowServiceImpl) Reset(ctx context.Context) (primary.Snapshot, error) {
	return s.dispatch(ctx, workflow.Reset{})
}

// ActiveRun returns the run bound to the current Validating state, or nil.
func (s *WorkflowServiceImpl) ActiveRun() primary.ValidationRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil {
		return nil
	}
	return s.run
}

// ReadyToExecute reports whether the execute affordance is unlocked.
func (s *WorkflowServiceImpl) ReadyToExecute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.executeGuardLocked().Allowed
}

// StepInterval returns the sequencer's pacing between validation steps.
func (s *WorkflowServiceImpl) StepInterval() time.Duration {
	return s.sequencer.Interval()
}

// AuthorizeExecution records an execution authorization for the validated
// COA. Before the run completes it fails with ErrExecutionLocked.
func (s *WorkflowServiceImpl) AuthorizeExecution(ctx context.Context) (*primary.Authorization, error) {
	ctx = s.scope(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	if result := s.executeGuardLocked(); !result.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrExecutionLocked, result.Reason)
	}

	auth := &primary.Authorization{
		SessionID:    s.sessionID,
		RunID:        s.run.ID(),
		COA:          s.state.COA(),
		Operator:     ctxutil.OperatorFromContext(ctx),
		AuthorizedAt: s.clock.Now().UTC(),
	}

	stage := string(s.state.Stage())
	if err := s.executor.Execute(ctx, []effects.Effect{effects.JournalEffect{
		Kind:   "authorization",
		From:   stage,
		To:     stage,
		COA:    auth.COA,
		RunID:  auth.RunID,
		Detail: "execution authorized",
	}}); err != nil {
		return nil, fmt.Errorf("failed to record authorization: %w", err)
	}

	s.observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventExecutionAuthorized,
		Level:     observability.LevelInfo,
		Timestamp: auth.AuthorizedAt,
		Source:    "app.WorkflowService",
		Data: map[string]any{
			"session_id": auth.SessionID,
			"run_id":     auth.RunID,
			"coa":        auth.COA,
			"operator":   auth.Operator,
		},
	})
	return auth, nil
}

// Close cancels any active run and closes the journal session. Closing twice
// is a no-op.
func (s *WorkflowServiceImpl) Close(ctx context.Context) error {
	ctx = s.scope(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	if s.run != nil {
		s.run.Cancel()
	}
	s.closed = true

	return s.executor.Execute(ctx, []effects.Effect{effects.SessionEffect{Operation: "close"}})
}

// dispatch applies one event. On error the state is left unchanged.
func (s *WorkflowServiceImpl) dispatch(ctx context.Context, ev workflow.Event) (primary.Snapshot, error) {
	ctx = s.scope(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.snapshotLocked(), ErrSessionClosed
	}

	from := s.state
	result, err := workflow.Apply(from, ev, s.mission.Contains)
	if err != nil {
		s.observer.OnEvent(ctx, observability.Event{
			Type:      observability.EventWorkflowRejected,
			Level:     observability.LevelWarning,
			Timestamp: s.clock.Now(),
			Source:    "app.WorkflowService",
			Data: map[string]any{
				"session_id": s.sessionID,
				"stage":      string(from.Stage()),
				"event":      ev.EventName(),
				"error":      err.Error(),
			},
		})
		return s.snapshotLocked(), err
	}

	run := s.run
	for _, eff := range result.Effects {
		switch typed := eff.(type) {
		case effects.StartValidationEffect:
			rec, ok := s.mission.Find(typed.COA)
			if !ok {
				return s.snapshotLocked(), &workflow.SelectionError{Name: typed.COA}
			}
			started, err := s.sequencer.Start(ctx, *rec)
			if err != nil {
				return s.snapshotLocked(), fmt.Errorf("failed to start validation: %w", err)
			}
			run = started
		case effects.CancelValidationEffect:
			if run != nil {
				run.Cancel()
			}
			run = nil
		default:
			if err := s.executor.Execute(ctx, []effects.Effect{eff}); err != nil {
				return s.snapshotLocked(), err
			}
		}
	}

	s.state = result.Next
	s.run = run

	s.observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventWorkflowTransition,
		Level:     observability.LevelInfo,
		Timestamp: s.clock.Now(),
		Source:    "app.WorkflowService",
		Data: map[string]any{
			"session_id": s.sessionID,
			"from":       string(from.Stage()),
			"to":         string(s.state.Stage()),
			"event":      ev.EventName(),
			"coa":        s.state.COA(),
		},
	})
	return s.snapshotLocked(), nil
}

func (s *WorkflowServiceImpl) executeGuardLocked() workflow.GuardResult {
	return workflow.CanExecute(workflow.ExecuteContext{
		Stage:          s.state.Stage(),
		COA:            s.state.COA(),
		ReadyToExecute: s.run != nil && s.run.Ready(),
	})
}

func (s *WorkflowServiceImpl) snapshotLocked() primary.Snapshot {
	snap := primary.Snapshot{
		SessionID: s.sessionID,
		Stage:     s.state.Stage(),
		Step:      workflow.StepNumber(s.state),
		COA:       s.state.COA(),
	}
	if snap.COA != "" {
		if rec, ok := s.mission.Find(snap.COA); ok {
			selected := *rec
			snap.Selected = &selected
		}
	}
	if s.run != nil {
		snap.RunID = s.run.ID()
		snap.Ready = s.run.Ready()
	}
	return snap
}

// scope attaches the session ID, and the configured operator when the
// caller supplied none.
func (s *WorkflowServiceImpl) scope(ctx context.Context) context.Context {
	ctx = ctxutil.WithSessionID(ctx, s.sessionID)
	if ctxutil.OperatorFromContext(ctx) == "" && s.operator != "" {
		ctx = ctxutil.WithOperator(ctx, s.operator)
	}
	return ctx
}
