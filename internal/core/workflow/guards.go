package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is a programmer/integration error: the named COA is
	// not in the active recommendation set.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrIllegalTransition means the event is not accepted in the current stage.
	ErrIllegalTransition = errors.New("illegal transition")
)

// SelectionError names the rejected COA. It matches ErrInvalidSelection.
type SelectionError struct {
	Name string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s: %q is not in the active recommendation set", ErrInvalidSelection, e.Name)
}

func (e *SelectionError) Is(target error) bool { return target == ErrInvalidSelection }

// TransitionError names the stage and event that were rejected. It matches
// ErrIllegalTransition.
type TransitionError struct {
	From  StageName
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s is not accepted while %s", ErrIllegalTransition, e.Event, e.From)
}

func (e *TransitionError) Is(target error) bool { return target == ErrIllegalTransition }

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// SelectContext provides context for the selection guard.
type SelectContext struct {
	Name     string
	IsMember bool // Name is in the active recommendation set
}

// CanSelect evaluates whether a COA may be selected.
// Rule: only members of the active recommendation set can be selected.
func CanSelect(ctx SelectContext) GuardResult {
	if !ctx.IsMember {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("COA %q is not in the active recommendation set", ctx.Name),
		}
	}
	return GuardResult{Allowed: true}
}

// ExecuteContext provides context for the execution gate.
type ExecuteContext struct {
	Stage          StageName
	COA            string
	ReadyToExecute bool
}

// CanExecute evaluates whether the execute-mission affordance is unlocked.
// Rule: only while validating, and only once the validation run is complete.
func CanExecute(ctx ExecuteContext) GuardResult {
	if ctx.Stage != StageValidating {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("execution requires a validated COA (stage: %s)", ctx.Stage),
		}
	}
	if !ctx.ReadyToExecute {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("pre-flight validation of %s has not completed", ctx.COA),
		}
	}
	return GuardResult{Allowed: true}
}
