package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Sliders
	Decrease key.Binding
	Increase key.Binding

	// Actions
	Reset     key.Binding
	Randomize key.Binding
	Occasion  key.Binding
	Favorite  key.Binding

	// Application
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "previous mood"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next mood"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("h", "left", "-"),
			key.WithHelp("←/h", "lower"),
		),
		Increase: key.NewBinding(
			key.WithKeys("l", "right", "+"),
			key.WithHelp("→/l", "raise"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset"),
		),
		Randomize: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "randomize"),
		),
		Occasion: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "next occasion"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite top pick"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increase, k.Decrease, k.Occasion, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Decrease, k.Increase},
		{k.Reset, k.Randomize, k.Occasion, k.Favorite},
		{k.Help, k.Quit},
	}
}
