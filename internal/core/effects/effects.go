// Package effects holds the side effects a workflow transition asks for.
// Transitions return them as values; the app layer runs them.
package effects

// Effect is one requested side effect.
type Effect interface {
	// EffectType names the effect for logs and error messages.
	EffectType() string
}

// StartValidationEffect asks the shell to start exactly one validation run
// bound to the named COA.
type StartValidationEffect struct {
	COA string
}

func (e StartValidationEffect) EffectType() string { return "start_validation" }

// CancelValidationEffect asks the shell to cancel the active validation run.
// Cancelling when no run is active is a no-op.
type CancelValidationEffect struct {
	Reason string
}

func (e CancelValidationEffect) EffectType() string { return "cancel_validation" }

// JournalEffect records a workflow fact in the session journal.
type JournalEffect struct {
	Kind   string // e.g., "transition", "authorization"
	From   string
	To     string
	COA    string
	RunID  string
	Detail string
}

func (e JournalEffect) EffectType() string { return "journal" }

// SessionEffect opens or closes the journal session carried by the context.
type SessionEffect struct {
	Operation     string // "open", "close"
	MissionSource string // recorded on open
}

func (e SessionEffect) EffectType() string { return "session" }

// LogEffect emits an observer event at the given level ("debug", "info",
// "warn", "error").
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// CompositeEffect runs its effects in order, stopping at the first failure.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect does nothing.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }
