// Package workflow contains the pure decision-workflow state machine:
// Selecting -> Reviewing(coa) -> Validating(coa) -> Selecting.
// This is part of the Functional Core - no I/O, only pure functions.
package workflow

// StageName names a workflow stage.
type StageName string

const (
	StageSelecting  StageName = "selecting"
	StageReviewing  StageName = "reviewing"
	StageValidating StageName = "validating"
)

// State is one of Selecting, Reviewing or Validating. The set is closed:
// reviewing or validating without a COA cannot be constructed through the
// transition table.
type State interface {
	Stage() StageName
	// COA returns the selected recommendation name, or "" when selecting.
	COA() string
	isState()
}

// Selecting is the initial stage; no COA is selected.
type Selecting struct{}

func (Selecting) Stage() StageName { return StageSelecting }
func (Selecting) COA() string      { return "" }
func (Selecting) isState()         {}

// Reviewing shows one COA in detail.
type Reviewing struct {
	Name string
}

func (s Reviewing) Stage() StageName { return StageReviewing }
func (s Reviewing) COA() string      { return s.Name }
func (Reviewing) isState()           {}

// Validating runs the pre-flight validation narrative for one COA.
type Validating struct {
	Name string
}

func (s Validating) Stage() StageName { return StageValidating }
func (s Validating) COA() string      { return s.Name }
func (Validating) isState()           {}

// Initial returns the starting state of every session.
func Initial() State {
	return Selecting{}
}

// StepNumber maps a state to the operator-facing stepper position (1-3).
func StepNumber(s State) int {
	switch s.Stage() {
	case StageReviewing:
		return 2
	case StageValidating:
		return 3
	default:
		return 1
	}
}

// Event is operator intent that may trigger a transition.
type Event interface {
	EventName() string
	isEvent()
}

// Select picks a recommendation by name.
type Select struct {
	Name string
}

func (Select) EventName() string { return "select" }
func (Select) isEvent()          {}

// Back returns from the detail view to selection.
type Back struct{}

func (Back) EventName() string { return "back" }
func (Back) isEvent()          {}

// Validate starts the pre-flight validation of the reviewed COA.
type Validate struct{}

func (Validate) EventName() string { return "validate" }
func (Validate) isEvent()          {}

// Reset abandons validation and returns to selection.
type Reset struct{}

func (Reset) EventName() string { return "reset" }
func (Reset) isEvent()          {}
