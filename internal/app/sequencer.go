package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/aerobridge/internal/core/recommendation"
	"github.com/example/aerobridge/internal/core/validation"
	"github.com/example/aerobridge/internal/observability"
	"github.com/example/aerobridge/internal/ports/primary"
	"github.com/example/aerobridge/internal/ports/secondary"
)

// DefaultStepInterval is the pacing between validation steps.
const DefaultStepInterval = 800 * time.Millisecond

// ErrDuplicateRun is returned when a run is started while another is active.
var ErrDuplicateRun = errors.New("validation run already active")

// RunState is the lifecycle state of a validation run.
type RunState string

const (
	RunRunning   RunState = "running"
	RunComplete  RunState = "complete"
	RunCancelled RunState = "cancelled"
)

// Sequencer starts paced validation runs. At most one run is active at a time.
type Sequencer struct {
	interval time.Duration
	clock    secondary.Clock
	observer observability.Observer

	mu     sync.Mutex
	active *Run
}

// NewSequencer creates a Sequencer emitting one step per interval.
// A non-positive interval is rejected.
func NewSequencer(interval time.Duration, clock secondary.Clock, observer observability.Observer) (*Sequencer, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("step interval must be positive, got %s", interval)
	}
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	return &Sequencer{
		interval: interval,
		clock:    clock,
		observer: observer,
	}, nil
}

// Interval returns the configured step pacing.
func (s *Sequencer) Interval() time.Duration {
	return s.interval
}

// Start begins a run bound to rec. The ticker is acquired before Start
// returns and released when the run completes or is cancelled.
// Cancelling ctx cancels the run.
func (s *Sequencer) Start(ctx context.Context, rec recommendation.Recommendation) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && s.active.State() == RunRunning {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateRun, s.active.ID())
	}

	run := &Run{
		id:       uuid.NewString(),
		coa:      rec.Name,
		steps:    validation.Steps(rec),
		interval: s.interval,
		clock:    s.clock,
		observer: s.observer,
		events:   make(chan primary.StepEvent),
		cancel:   make(chan struct{}),
		done:     make(chan struct{}),
		state:    RunRunning,
	}
	ticker := s.clock.NewTicker(s.interval)
	s.active = run

	s.observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventValidationStart,
		Level:     observability.LevelInfo,
		Timestamp: s.clock.Now(),
		Source:    "app.Sequencer",
		Data: map[string]any{
			"run_id":   run.id,
			"coa":      run.coa,
			"steps":    len(run.steps),
			"interval": s.interval.String(),
		},
	})

	go run.loop(ctx, ticker)
	return run, nil
}

// Run is one finite, non-restartable validation run. Events are delivered on
// an unbuffered channel: a slow consumer delays later steps, never drops them.
type Run struct {
	id       string
	coa      string
	steps    []string
	interval time.Duration
	clock    secondary.Clock
	observer observability.Observer

	events chan primary.StepEvent
	cancel chan struct{}
	done   chan struct{}

	mu         sync.Mutex
	state      RunState
	sending    bool
	transcript []primary.StepEvent
}

var _ primary.ValidationRun = (*Run)(nil)

func (r *Run) ID() string                       { return r.id }
func (r *Run) COA() string                      { return r.coa }
func (r *Run) Events() <-chan primary.StepEvent { return r.events }
func (r *Run) Done() <-chan struct{}            { return r.done }

// State returns the run's lifecycle state.
func (r *Run) State() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Ready reports whether the final step has been issued. It is true by the
// time the consumer receives the final event.
func (r *Run) Ready() bool {
	return r.State() == RunComplete
}

// Progress returns the progress of the last issued step.
func (r *Run) Progress() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return validation.Progress(len(r.transcript), len(r.steps))
}

// Transcript returns the steps issued so far.
func (r *Run) Transcript() []primary.StepEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]primary.StepEvent, len(r.transcript))
	copy(out, r.transcript)
	return out
}

// Cancel stops the run and waits for its goroutine to exit. Once Cancel
// returns, no further event is delivered and the ticker has been released.
// Cancelling a finished run is a no-op.
func (r *Run) Cancel() {
	r.mu.Lock()
	if r.state == RunRunning || (r.sending && r.state == RunComplete) {
		r.state = RunCancelled
		close(r.cancel)
	}
	r.mu.Unlock()
	<-r.done
}

func (r *Run) loop(ctx context.Context, ticker secondary.Ticker) {
	// Observer events outlive a cancelled ctx so the cancel is still recorded.
	obsCtx := context.WithoutCancel(ctx)
	defer close(r.done)
	defer close(r.events)
	defer ticker.Stop()

	for i, msg := range r.steps {
		var at time.Time
		select {
		case <-r.cancel:
			r.emitCancel(obsCtx, "cancelled")
			return
		case <-ctx.Done():
			r.abort(obsCtx, ctx.Err())
			return
		case at = <-ticker.C():
		}

		ev := primary.StepEvent{
			RunID:    r.id,
			Index:    i + 1,
			Message:  msg,
			Progress: validation.Progress(i+1, len(r.steps)),
			At:       at,
		}
		last := ev.Index == len(r.steps)

		// The step is recorded before the send, and the final step completes
		// the run, so a consumer holding the event never sees stale state.
		// An abandoned send is rolled back.
		r.mu.Lock()
		if r.state != RunRunning {
			// A tick and a cancel were ready together; cancel wins.
			r.mu.Unlock()
			r.emitCancel(obsCtx, "cancelled")
			return
		}
		r.transcript = append(r.transcript, ev)
		if last {
			r.state = RunComplete
		}
		r.sending = true
		r.mu.Unlock()

		select {
		case r.events <- ev:
			r.mu.Lock()
			r.sending = false
			cancelled := r.state == RunCancelled
			r.mu.Unlock()
			if cancelled {
				r.emitCancel(obsCtx, "cancelled")
				return
			}
		case <-r.cancel:
			r.retract(RunCancelled)
			r.emitCancel(obsCtx, "cancelled")
			return
		case <-ctx.Done():
			r.retract(RunCancelled)
			r.emitCancel(obsCtx, ctx.Err().Error())
			return
		}

		r.observer.OnEvent(obsCtx, observability.Event{
			Type:      observability.EventValidationStep,
			Level:     observability.LevelVerbose,
			Timestamp: at,
			Source:    "app.Sequencer",
			Data: map[string]any{
				"run_id":   r.id,
				"coa":      r.coa,
				"index":    ev.Index,
				"message":  ev.Message,
				"progress": ev.Progress,
			},
		})

		if !last {
			// Pacing restarts after delivery so a slow consumer never causes
			// two steps back to back.
			ticker.Reset(r.interval)
		}
	}

	r.observer.OnEvent(obsCtx, observability.Event{
		Type:      observability.EventValidationComplete,
		Level:     observability.LevelInfo,
		Timestamp: r.clock.Now(),
		Source:    "app.Sequencer",
		Data: map[string]any{
			"run_id": r.id,
			"coa":    r.coa,
			"steps":  len(r.steps),
		},
	})
}

// retract drops the step whose send was abandoned.
func (r *Run) retract(state RunState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sending = false
	r.state = state
	r.transcript = r.transcript[:len(r.transcript)-1]
}

func (r *Run) abort(ctx context.Context, cause error) {
	r.mu.Lock()
	if r.state == RunRunning {
		r.state = RunCancelled
	}
	r.mu.Unlock()
	r.emitCancel(ctx, cause.Error())
}

func (r *Run) emitCancel(ctx context.Context, reason string) {
	r.mu.Lock()
	emitted := len(r.transcript)
	r.mu.Unlock()

	r.observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventValidationCancel,
		Level:     observability.LevelInfo,
		Timestamp: r.clock.Now(),
		Source:    "app.Sequencer",
		Data: map[string]any{
			"run_id":        r.id,
			"coa":           r.coa,
			"reason":        reason,
			"steps_emitted": emitted,
		},
	})
}
