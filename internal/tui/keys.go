package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start      key.Binding
	Reset      key.Binding
	Mode       key.Binding
	Difficulty key.Binding
	Blocked    key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Reset: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "new passage"),
		),
		Mode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "mode"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "difficulty"),
		),
		// Cursor movement would let typed text diverge from position order.
		Blocked: key.NewBinding(
			key.WithKeys("left", "right", "delete", "home", "end", "ctrl+left", "ctrl+right", "alt+left", "alt+right"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Reset, k.Mode, k.Difficulty, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
