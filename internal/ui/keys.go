package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding of the form screen
type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Increase  key.Binding
	Decrease  key.Binding
	HourUp    key.Binding
	HourDown  key.Binding
	Calculate key.Binding
	Dismiss   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Increase: key.NewBinding(
			key.WithKeys("up", "k", "+"),
			key.WithHelp("↑/k", "increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("↓/j", "decrease"),
		),
		HourUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "+1 hour"),
		),
		HourDown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "-1 hour"),
		),
		Calculate: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter/c", "calculate"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter", "OK"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Increase, k.Decrease, k.Calculate, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Increase, k.Decrease, k.HourUp, k.HourDown},
		{k.Calculate, k.Help, k.Quit},
	}
}
