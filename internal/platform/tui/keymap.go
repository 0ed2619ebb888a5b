package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the seed finder.
// Printable keys go to the focused input, so actions use control keys.
type KeyMap struct {
	NextField  key.Binding
	PrevField  key.Binding
	Toggle     key.Binding
	Left       key.Binding
	Right      key.Binding
	FindNext   key.Binding
	FindSeed   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Top        key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.FindNext, k.FindSeed, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Toggle, k.Left, k.Right},
		{k.FindNext, k.FindSeed},
		{k.ScrollUp, k.ScrollDown, k.Top},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle serenity / next spell"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "prev spell"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "next spell"),
		),
		FindNext: key.NewBinding(
			key.WithKeys("enter", "ctrl+n"),
			key.WithHelp("enter", "find next"),
		),
		FindSeed: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "search seed"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "pgup"),
			key.WithHelp("up/pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "pgdown"),
			key.WithHelp("down/pgdn", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "top"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}
