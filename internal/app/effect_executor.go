// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/aerobridge/internal/core/effects"
	"github.com/example/aerobridge/internal/ctxutil"
	"github.com/example/aerobridge/internal/observability"
	"github.com/example/aerobridge/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
// Journal writes are best effort: a failure is reported to the observer and
// never fails the workflow.
type DefaultEffectExecutor struct {
	journal  secondary.JournalRepository // nil disables journaling
	observer observability.Observer
	clock    secondary.Clock
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(journal secondary.JournalRepository, observer observability.Observer, clock secondary.Clock) *DefaultEffectExecutor {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	return &DefaultEffectExecutor{
		journal:  journal,
		observer: observer,
		clock:    clock,
	}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.JournalEffect:
		e.executeJournal(ctx, typed)
		return nil
	case effects.SessionEffect:
		return e.executeSession(ctx, typed)
	case effects.LogEffect:
		e.observer.OnEvent(ctx, observability.Event{
			Type:      observability.EventType(typed.Message),
			Level:     levelFromName(typed.Level),
			Timestamp: e.clock.Now(),
			Source:    "app.EffectExecutor",
			Data:      typed.Fields,
		})
		return nil
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.NoEffect:
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeJournal(ctx context.Context, eff effects.JournalEffect) {
	if e.journal == nil {
		return
	}
	record := &secondary.JournalRecord{
		SessionID: ctxutil.SessionFromContext(ctx),
		Kind:      eff.Kind,
		FromStage: eff.From,
		ToStage:   eff.To,
		COA:       eff.COA,
		RunID:     eff.RunID,
		Detail:    eff.Detail,
		Operator:  ctxutil.OperatorFromContext(ctx),
		CreatedAt: e.clock.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := e.journal.Append(ctx, record); err != nil {
		e.journalFailed(ctx, "append", err)
	}
}

func (e *DefaultEffectExecutor) executeSession(ctx context.Context, eff effects.SessionEffect) error {
	if e.journal == nil {
		return nil
	}
	sessionID := ctxutil.SessionFromContext(ctx)
	switch eff.Operation {
	case "open":
		err := e.journal.CreateSession(ctx, &secondary.SessionRecord{
			ID:            sessionID,
			Operator:      ctxutil.OperatorFromContext(ctx),
			MissionSource: eff.MissionSource,
			StartedAt:     e.clock.Now().UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			e.journalFailed(ctx, "open session", err)
		}
		return nil
	case "close":
		if err := e.journal.CloseSession(ctx, sessionID, e.clock.Now().UTC()); err != nil {
			e.journalFailed(ctx, "close session", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown session operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) journalFailed(ctx context.Context, op string, err error) {
	e.observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventJournalError,
		Level:     observability.LevelWarning,
		Timestamp: e.clock.Now(),
		Source:    "app.EffectExecutor",
		Data: map[string]any{
			"operation":  op,
			"session_id": ctxutil.SessionFromContext(ctx),
			"error":      err.Error(),
		},
	})
}

func levelFromName(name string) observability.Level {
	switch name {
	case "debug":
		return observability.LevelVerbose
	case "warn", "warning":
		return observability.LevelWarning
	case "error":
		return observability.LevelError
	default:
		return observability.LevelInfo
	}
}
