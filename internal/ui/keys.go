package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap collects every binding the presenter handles. Menu bindings only
// apply while the menu overlay is open.
type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	First      key.Binding
	Last       key.Binding
	Menu       key.Binding
	Fullscreen key.Binding
	Help       key.Binding
	Quit       key.Binding
	Escape     key.Binding

	MenuUp     key.Binding
	MenuDown   key.Binding
	MenuSelect key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "down", " ", "pgdown"),
			key.WithHelp("→/space", "next slide"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "up", "pgup"),
			key.WithHelp("←", "previous slide"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "first slide"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "last slide"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "slide menu"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle fullscreen"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close menu"),
		),
		MenuUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		MenuDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		MenuSelect: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go to slide"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Menu, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last},
		{k.Menu, k.MenuUp, k.MenuDown, k.MenuSelect},
		{k.Fullscreen, k.Help, k.Escape, k.Quit},
	}
}
