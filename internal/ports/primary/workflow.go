// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"
	"time"

	"github.com/example/aerobridge/internal/core/comparison"
	"github.com/example/aerobridge/internal/core/recommendation"
	"github.com/example/aerobridge/internal/core/workflow"
)

// WorkflowService defines the primary port for the COA decision workflow.
// One service instance is one operator session; it owns the workflow state.
type WorkflowService interface {
	// Brief returns the mission brief shown alongside every stage.
	Brief() recommendation.MissionBrief

	// Recommendations returns the recommendation set in input order.
	Recommendations() []recommendation.Recommendation

	// Comparison returns the cross-COA comparison series for the selection stage.
	Comparison() ComparisonView

	// Snapshot returns the current workflow state.
	Snapshot() Snapshot

	// Select moves Selecting -> Reviewing(name).
	Select(ctx context.Context, name string) (Snapshot, error)

	// Back moves Reviewing -> Selecting.
	Back(ctx context.Context) (Snapshot, error)

	// Validate moves Reviewing -> Validating and starts a validation run.
	Validate(ctx context.Context) (Snapshot, error)

	// Reset cancels any validation run and returns to Selecting.
	Reset(ctx context.Context) (Snapshot, error)

	// ActiveRun returns the validation run bound to the current Validating
	// state, or nil outside Validating.
	ActiveRun() ValidationRun

	// ReadyToExecute reports whether the execute affordance is unlocked.
	ReadyToExecute() bool

	// StepInterval returns the pacing between validation steps.
	StepInterval() time.Duration

	// AuthorizeExecution records an execution authorization for the validated COA.
	AuthorizeExecution(ctx context.Context) (*Authorization, error)

	// Close tears the session down, cancelling any active run.
	Close(ctx context.Context) error
}

// Snapshot is a read-only view of the workflow state.
type Snapshot struct {
	SessionID string
	Stage     workflow.StageName
	Step      int    // stepper position: 1 selection, 2 detail, 3 simulation
	COA       string // empty while selecting
	Selected  *recommendation.Recommendation
	RunID     string // active validation run, empty outside validating
	Ready     bool
}

// ComparisonView is the comparison series plus whether it should be shown.
type ComparisonView struct {
	Enabled bool
	Series  []comparison.Point
}

// ValidationRun is a handle on one finite, non-restartable validation run.
type ValidationRun interface {
	// ID identifies the run.
	ID() string

	// COA is the recommendation name the run is bound to.
	COA() string

	// Events yields step events in order and is closed when the run ends.
	Events() <-chan StepEvent

	// Done is closed once the run has completed or been cancelled.
	Done() <-chan struct{}

	// Progress returns the progress of the last emitted step.
	Progress() float64

	// Transcript returns the steps emitted so far.
	Transcript() []StepEvent

	// Ready reports whether every step has been emitted.
	Ready() bool
}

// StepEvent is one emitted validation step.
type StepEvent struct {
	RunID    string
	Index    int // 1-based
	Message  string
	Progress float64
	At       time.Time
}

// Authorization is the record produced when an operator authorizes execution.
type Authorization struct {
	SessionID    string
	RunID        string
	COA          string
	Operator     string
	AuthorizedAt time.Time
}
