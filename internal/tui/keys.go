package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab         key.Binding
	ShiftTab    key.Binding
	Quit        key.Binding
	Help        key.Binding
	Hydration   key.Binding
	Movement    key.Binding
	ToggleToday key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Quit, k.Help},
		{k.Hydration, k.Movement, k.ToggleToday},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Hydration: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "drank water"),
		),
		Movement: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "moved"),
		),
		ToggleToday: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mark today"),
		),
	}
}
