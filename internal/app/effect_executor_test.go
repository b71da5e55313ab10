package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/aerobridge/internal/core/effects"
	"github.com/example/aerobridge/internal/ctxutil"
	"github.com/example/aerobridge/internal/observability"
)

func scopedContext() context.Context {
	ctx := ctxutil.WithSessionID(context.Background(), "session-1")
	return ctxutil.WithOperator(ctx, "ops-lead")
}

func TestEffectExecutor_JournalEffect(t *testing.T) {
	repo := newMockJournalRepository()
	clk := newFakeClock()
	executor := NewEffectExecutor(repo, nil, clk)

	err := executor.Execute(scopedContext(), []effects.Effect{
		effects.JournalEffect{Kind: "transition", From: "selecting", To: "reviewing", COA: "COA-1", Detail: "select"},
	})
	require.NoError(t, err)

	entries := repo.snapshot()
	require.Len(t, entries, 1)
	assert.Equal(t, "session-1", entries[0].SessionID)
	assert.Equal(t, "ops-lead", entries[0].Operator)
	assert.Equal(t, "selecting", entries[0].FromStage)
	assert.Equal(t, "reviewing", entries[0].ToStage)
	assert.Equal(t, "2026-03-14T06:00:00Z", entries[0].CreatedAt)
}

func TestEffectExecutor_SessionLifecycle(t *testing.T) {
	repo := newMockJournalRepository()
	executor := NewEffectExecutor(repo, nil, newFakeClock())
	ctx := scopedContext()

	require.NoError(t, executor.Execute(ctx, []effects.Effect{effects.SessionEffect{Operation: "open", MissionSource: "mission.yaml"}}))
	session, err := repo.GetSession(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "mission.yaml", session.MissionSource)
	assert.Empty(t, session.ClosedAt)

	require.NoError(t, executor.Execute(ctx, []effects.Effect{effects.SessionEffect{Operation: "close"}}))
	assert.NotEmpty(t, session.ClosedAt)

	err = executor.Execute(ctx, []effects.Effect{effects.SessionEffect{Operation: "archive"}})
	assert.Error(t, err)
}

func TestEffectExecutor_JournalErrorsAreReported(t *testing.T) {
	repo := newMockJournalRepository()
	repo.appendErr = errors.New("database is locked")
	repo.createErr = errors.New("database is locked")
	obs := &recordingObserver{}
	executor := NewEffectExecutor(repo, obs, newFakeClock())

	err := executor.Execute(scopedContext(), []effects.Effect{
		effects.SessionEffect{Operation: "open"},
		effects.JournalEffect{Kind: "transition"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, obs.count(observability.EventJournalError))
}

func TestEffectExecutor_NilJournalSkipsWrites(t *testing.T) {
	executor := NewEffectExecutor(nil, nil, newFakeClock())
	err := executor.Execute(scopedContext(), []effects.Effect{
		effects.SessionEffect{Operation: "open"},
		effects.JournalEffect{Kind: "transition"},
		effects.NoEffect{},
	})
	assert.NoError(t, err)
}

func TestEffectExecutor_CompositeAndLog(t *testing.T) {
	repo := newMockJournalRepository()
	obs := &recordingObserver{}
	executor := NewEffectExecutor(repo, obs, newFakeClock())

	err := executor.Execute(scopedContext(), []effects.Effect{
		effects.CompositeEffect{Effects: []effects.Effect{
			effects.JournalEffect{Kind: "transition", Detail: "a"},
			effects.JournalEffect{Kind: "transition", Detail: "b"},
		}},
		effects.LogEffect{Level: "warn", Message: "workflow.rejected"},
	})
	require.NoError(t, err)

	assert.Len(t, repo.snapshot(), 2)
	require.Equal(t, 1, obs.count(observability.EventWorkflowRejected))
	assert.Equal(t, observability.LevelWarning, obs.events[0].Level)
}

type unknownEffect struct{}

func (unknownEffect) EffectType() string { return "unknown" }

func TestEffectExecutor_UnknownEffect(t *testing.T) {
	executor := NewEffectExecutor(nil, nil, newFakeClock())
	err := executor.Execute(context.Background(), []effects.Effect{unknownEffect{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute unknown effect")
}

func TestJournalObserver_TranslatesValidationEvents(t *testing.T) {
	repo := newMockJournalRepository()
	obs := NewJournalObserver(NewEffectExecutor(repo, nil, newFakeClock()))
	ctx := scopedContext()

	events := []observability.Event{
		{Type: observability.EventValidationStart, Data: map[string]any{"run_id": "run-1", "coa": "COA-2"}},
		{Type: observability.EventValidationStep, Data: map[string]any{"run_id": "run-1", "coa": "COA-2", "index": 3, "message": "Validating payload mass: 1500kg against density altitude..."}},
		{Type: observability.EventValidationCancel, Data: map[string]any{"run_id": "run-1", "coa": "COA-2", "steps_emitted": 3, "reason": "cancelled"}},
		{Type: observability.EventWorkflowTransition, Data: map[string]any{"from": "selecting"}},
	}
	for _, ev := range events {
		obs.OnEvent(ctx, ev)
	}

	entries := repo.snapshot()
	require.Len(t, entries, 3, "non-validation events are ignored")
	assert.Equal(t, "start", entries[0].Detail)
	assert.Equal(t, "step 3: Validating payload mass: 1500kg against density altitude...", entries[1].Detail)
	assert.Equal(t, "cancel after 3 steps (cancelled)", entries[2].Detail)
	for _, e := range entries {
		assert.Equal(t, "validation", e.Kind)
		assert.Equal(t, "run-1", e.RunID)
		assert.Equal(t, "COA-2", e.COA)
		assert.Equal(t, "session-1", e.SessionID)
	}
}
