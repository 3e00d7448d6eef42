package update

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Open     key.Binding
	Add      key.Binding
	Tap      key.Binding
	Undo     key.Binding
	Hold     key.Binding
	Continue key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Restart  key.Binding
	Next     key.Binding
	Prev     key.Binding
	Select   key.Binding
	Back     key.Binding
	Goals    key.Binding
	History  key.Binding
	Settings key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
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
		MoveUp: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("shift+↑/K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("shift+↓/J", "move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open goal"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add goal"),
		),
		Tap: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "tap"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo last tap"),
		),
		Hold: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hold over"),
		),
		Continue: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "continue"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "change parameters"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "delete"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "start again"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→/n", "next goal"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "previous goal"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Goals: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "goals"),
		),
		History: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "history"),
		),
		Settings: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "settings"),
		),
		Palette: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "command"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
