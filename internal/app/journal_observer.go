package app

import (
	"context"
	"fmt"

	"github.com/example/aerobridge/internal/core/effects"
	"github.com/example/aerobridge/internal/observability"
)

// JournalObserver turns validation events into journal effects so every
// delivered step, cancellation and completion lands in the session journal.
// Other event types are ignored.
type JournalObserver struct {
	executor EffectExecutor
}

// NewJournalObserver creates a JournalObserver writing through executor.
func NewJournalObserver(executor EffectExecutor) *JournalObserver {
	return &JournalObserver{executor: executor}
}

func (o *JournalObserver) OnEvent(ctx context.Context, event observability.Event) {
	eff, ok := journalEffectFor(event)
	if !ok {
		return
	}
	// Journal failures are already reported by the executor.
	_ = o.executor.Execute(ctx, []effects.Effect{eff})
}

func journalEffectFor(event observability.Event) (effects.JournalEffect, bool) {
	str := func(key string) string {
		if v, ok := event.Data[key]; ok {
			return fmt.Sprint(v)
		}
		return ""
	}

	eff := effects.JournalEffect{
		Kind:  "validation",
		COA:   str("coa"),
		RunID: str("run_id"),
	}
	switch event.Type {
	case observability.EventValidationStart:
		eff.Detail = "start"
	case observability.EventValidationStep:
		eff.Detail = fmt.Sprintf("step %s: %s", str("index"), str("message"))
	case observability.EventValidationComplete:
		eff.Detail = "complete"
	case observability.EventValidationCancel:
		eff.Detail = fmt.Sprintf("cancel after %s steps (%s)", str("steps_emitted"), str("reason"))
	default:
		return effects.JournalEffect{}, false
	}
	return eff, true
}
