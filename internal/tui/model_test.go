package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/aerobridge/internal/adapters/clock"
	"github.com/example/aerobridge/internal/adapters/filesystem"
	"github.com/example/aerobridge/internal/app"
	"github.com/example/aerobridge/internal/core/validation"
	"github.com/example/aerobridge/internal/core/workflow"
)

func newTestModel(t *testing.T) (*Model, *app.WorkflowServiceImpl) {
	t.Helper()
	ctx := context.Background()
	clk := clock.New()

	mission, err := filesystem.NewEmbeddedMissionLoader().Load(ctx)
	require.NoError(t, err)

	seq, err := app.NewSequencer(time.Millisecond, clk, nil)
	require.NoError(t, err)

	svc, err := app.NewWorkflowService(ctx, mission, seq, app.NewEffectExecutor(nil, nil, clk), nil, clk, app.WorkflowOptions{
		MissionSource: "embedded",
		Operator:      "console-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close(context.Background()) })

	return New(ctx, svc), svc
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

// drain feeds run messages back into the model until the run ends.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for cmd != nil {
		msgs := make(chan tea.Msg, 1)
		go func(c tea.Cmd) { msgs <- c() }(cmd)
		select {
		case msg := <-msgs:
			_, cmd = m.Update(msg)
		case <-deadline:
			t.Fatal("validation run did not finish")
		}
	}
}

func TestModel_InitialView(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Nil(t, m.Init())
	assert.Equal(t, workflow.StageSelecting, m.snap.Stage)

	view := m.View()
	assert.Contains(t, view, "1 Selection")
	assert.Contains(t, view, "Timika (WAYY)")
	assert.Contains(t, view, "COA-1 Payload Dominant")
	assert.Contains(t, view, "COA-3 Staged Buffer Strategy")
	assert.Contains(t, view, "Comparison")
}

func TestModel_SelectAndBack(t *testing.T) {
	m, svc := newTestModel(t)

	press(m, "down", "down", "up", "enter")
	require.Equal(t, workflow.StageReviewing, m.snap.Stage)
	assert.Equal(t, "COA-2 Safety-Buffered Rotary", m.snap.COA)
	assert.Equal(t, 2, m.snap.Step)
	assert.Contains(t, m.View(), "COA-2 Safety-Buffered Rotary")

	press(m, "esc")
	assert.Equal(t, workflow.StageSelecting, m.snap.Stage)
	assert.Equal(t, workflow.StageSelecting, svc.Snapshot().Stage)
}

func TestModel_CursorStaysInBounds(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "up", "up")
	assert.Equal(t, 0, m.cursor)

	press(m, "down", "down", "down", "down", "down")
	assert.Equal(t, 2, m.cursor)
}

func TestModel_ValidateStreamsTranscriptAndUnlocksExecution(t *testing.T) {
	m, svc := newTestModel(t)

	press(m, "down", "enter")
	cmd := press(m, "v")
	require.NotNil(t, cmd, "validate starts reading the run")
	require.Equal(t, workflow.StageValidating, m.snap.Stage)
	assert.Contains(t, m.View(), "EXECUTE MISSION (locked)")

	drain(t, m, cmd)

	require.Len(t, m.transcript, validation.TotalSteps)
	assert.Equal(t, "Validating payload mass: 1500kg against density altitude...", m.transcript[2].Message)
	assert.True(t, m.snap.Ready)
	assert.True(t, svc.ReadyToExecute())

	view := m.View()
	assert.Contains(t, view, "Simulation Complete. Mission Green.")
	assert.Contains(t, view, "EXECUTE MISSION [x]")
	assert.Contains(t, view, "(7/7)")

	press(m, "x")
	require.NoError(t, m.err)
	require.NotNil(t, m.auth)
	assert.Equal(t, "COA-2 Safety-Buffered Rotary", m.auth.COA)
	assert.Equal(t, "console-test", m.auth.Operator)
	assert.Contains(t, m.View(), "EXECUTION AUTHORIZED")
}

func TestModel_ExecuteLockedBeforeCompletion(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "enter", "v")
	press(m, "x")

	assert.True(t, errors.Is(m.err, app.ErrExecutionLocked))
	assert.Nil(t, m.auth)
}

func TestModel_ResetDiscardsStaleSteps(t *testing.T) {
	m, svc := newTestModel(t)

	press(m, "enter")
	cmd := press(m, "v")
	require.NotNil(t, cmd)
	runID := m.snap.RunID

	pending := cmd()
	step, ok := pending.(stepMsg)
	require.True(t, ok)
	assert.Equal(t, runID, step.RunID)

	press(m, "r")
	require.Equal(t, workflow.StageSelecting, m.snap.Stage)
	assert.Empty(t, m.transcript)

	// A step read before the reset arrives late and is dropped.
	m.Update(pending)
	m.Update(runEndedMsg{RunID: runID})
	assert.Empty(t, m.transcript)
	assert.Equal(t, workflow.StageSelecting, m.snap.Stage)
	assert.Nil(t, svc.ActiveRun())
}

func TestModel_IgnoresKeysOutsideStage(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "v", "r", "x", "esc")
	assert.Equal(t, workflow.StageSelecting, m.snap.Stage)
	assert.NoError(t, m.err)
}

func TestModel_QuitTearsDownRun(t *testing.T) {
	m, svc := newTestModel(t)

	press(m, "enter", "v")
	run := svc.ActiveRun()
	require.NotNil(t, run)

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())

	select {
	case <-run.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("run still active after quit")
	}
	assert.False(t, run.Ready())

	_, err := svc.Select(context.Background(), "COA-1 Payload Dominant")
	assert.ErrorIs(t, err, app.ErrSessionClosed)
}

func TestModel_HelpAndResize(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "?")
	assert.True(t, m.help.ShowAll)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 60, m.progress.Width)
}

func TestKeyMap_StageKeys(t *testing.T) {
	k := DefaultKeyMap()

	k.stageKeys(workflow.StageSelecting)
	assert.True(t, k.Select.Enabled())
	assert.False(t, k.Validate.Enabled())
	assert.False(t, k.Reset.Enabled())

	k.stageKeys(workflow.StageReviewing)
	assert.True(t, k.Back.Enabled())
	assert.True(t, k.Validate.Enabled())
	assert.False(t, k.Select.Enabled())

	k.stageKeys(workflow.StageValidating)
	assert.True(t, k.Reset.Enabled())
	assert.True(t, k.Execute.Enabled())
	assert.False(t, k.Validate.Enabled())
	assert.True(t, k.Quit.Enabled())
}
