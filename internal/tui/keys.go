package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the routine editor.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Save  key.Binding
	Reset key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "shift+tab"),
			key.WithHelp("↑/shift+tab", "previous skill"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "tab", "enter"),
			key.WithHelp("↓/tab", "next skill"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "canonical notation"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// helpLine renders the enabled bindings as "key action" pairs.
func (k KeyMap) helpLine() string {
	var out string
	for i, b := range []key.Binding{k.Up, k.Down, k.Save, k.Reset, k.Quit} {
		if !b.Enabled() {
			continue
		}
		if i > 0 {
			out += "  "
		}
		out += b.Help().Key + " " + b.Help().Desc
	}
	return out
}
