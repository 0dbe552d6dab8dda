package shared

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Left           key.Binding
	Right          key.Binding
	Grab           key.Binding
	Drop           key.Binding
	Advance        key.Binding
	Reject         key.Binding
	Withdraw       key.Binding
	History        key.Binding
	HiringResult   key.Binding
	Filters        key.Binding
	Reload         key.Binding
	ToggleActivity key.Binding
	Help           key.Binding
	Quit           key.Binding
	Escape         key.Binding
}

var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	Grab: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "grab card"),
	),
	Drop: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "drop card"),
	),
	Advance: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "advance stage"),
	),
	Reject: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reject"),
	),
	Withdraw: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "withdraw"),
	),
	History: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "stage history"),
	),
	HiringResult: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "hiring result"),
	),
	Filters: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filters"),
	),
	Reload: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reload board"),
	),
	ToggleActivity: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "toggle activity"),
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
		key.WithHelp("esc", "cancel"),
	),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Grab, k.Advance, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Grab, k.Drop, k.Escape},
		{k.Advance, k.Reject, k.Withdraw, k.HiringResult},
		{k.History, k.Filters, k.Reload},
		{k.ToggleActivity, k.Help, k.Quit},
	}
}
