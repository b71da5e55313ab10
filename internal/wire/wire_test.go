package wire

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/aerobridge/internal/config"
)

func TestWire_SessionIsJournaled(t *testing.T) {
	c := config.DefaultConfig()
	c.StepInterval = "1ms"
	c.JournalPath = filepath.Join(t.TempDir(), "journal.db")
	c.Operator = "wire-test"
	c.LogLevel = "error"
	Configure(c)
	t.Cleanup(func() { _ = Shutdown() })

	assert.Same(t, c, Config())

	ctx := context.Background()
	svc, err := WorkflowService(ctx)
	require.NoError(t, err)

	_, err = svc.Select(ctx, "COA-3 Staged Buffer Strategy")
	require.NoError(t, err)
	_, err = svc.Validate(ctx)
	require.NoError(t, err)

	run := svc.ActiveRun()
	require.NotNil(t, run)
	timeout := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case _, ok := <-run.Events():
			done = !ok
		case <-timeout:
			t.Fatal("run did not complete")
		}
	}

	auth, err := svc.AuthorizeExecution(ctx)
	require.NoError(t, err)
	assert.Equal(t, "wire-test", auth.Operator)
	require.NoError(t, svc.Close(ctx))

	journal, err := JournalService()
	require.NoError(t, err)

	sessions, err := journal.ListSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, svc.SessionID(), sessions[0].ID)
	assert.NotEmpty(t, sessions[0].ClosedAt)

	session, entries, err := journal.Replay(ctx, svc.SessionID())
	require.NoError(t, err)
	assert.Equal(t, "embedded:aerobridge.yaml", session.MissionSource)
	require.Len(t, entries, 12)
	assert.Equal(t, "transition", entries[0].Kind)
	assert.Equal(t, "authorization", entries[len(entries)-1].Kind)
	for _, e := range entries {
		assert.Equal(t, "wire-test", e.Operator)
	}
}

func TestWire_ShutdownReinitializes(t *testing.T) {
	first := config.DefaultConfig()
	first.JournalPath = filepath.Join(t.TempDir(), "first.db")
	first.LogLevel = "error"
	Configure(first)
	t.Cleanup(func() { _ = Shutdown() })

	ctx := context.Background()
	svc, err := WorkflowService(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Close(ctx))
	require.NoError(t, Shutdown())
	require.NoError(t, Shutdown(), "second shutdown is a no-op")

	second := config.DefaultConfig()
	second.JournalPath = filepath.Join(t.TempDir(), "second.db")
	second.LogLevel = "error"
	Configure(second)

	svc, err = WorkflowService(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Close(ctx))

	journal, err := JournalService()
	require.NoError(t, err)
	sessions, err := journal.ListSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, svc.SessionID(), sessions[0].ID)
}
