package tui

import (
	"github.com/example/aerobridge/internal/ports/primary"
)

// stepMsg carries one validation step from the run bound to RunID.
type stepMsg struct {
	RunID string
	Event primary.StepEvent
}

// runEndedMsg is sent when a run's event channel closes.
type runEndedMsg struct {
	RunID string
}
