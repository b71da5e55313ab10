package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/example/aerobridge/internal/core/workflow"
)

// KeyMap defines all keyboard bindings for the console.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Back     key.Binding
	Validate key.Binding
	Reset    key.Binding
	Execute  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns a KeyMap with default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select COA"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Validate: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "validate"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Execute: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "execute"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Back, k.Validate, k.Reset, k.Execute, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Validate, k.Reset, k.Execute},
		{k.Help, k.Quit},
	}
}

// stageKeys enables only the bindings that apply to the current stage.
func (k *KeyMap) stageKeys(stage workflow.StageName) {
	selecting := stage == workflow.StageSelecting
	reviewing := stage == workflow.StageReviewing
	validating := stage == workflow.StageValidating

	k.Up.SetEnabled(selecting)
	k.Down.SetEnabled(selecting)
	k.Select.SetEnabled(selecting)
	k.Back.SetEnabled(reviewing)
	k.Validate.SetEnabled(reviewing)
	k.Reset.SetEnabled(validating)
	k.Execute.SetEnabled(validating)
}
