package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Up      key.Binding
	Down    key.Binding
	Back    key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Done    key.Binding
	Note    key.Binding
	History key.Binding

	// Column layout
	PrevColumn key.Binding
	NextColumn key.Binding
	Wider      key.Binding
	Narrower   key.Binding
	MoveLeft   key.Binding
	MoveRight  key.Binding

	// History pane
	PrevMonth key.Binding
	NextMonth key.Binding

	Yes key.Binding
	No  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit habit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("D", "delete"),
			key.WithHelp("D", "delete habit"),
		),
		Done: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "mark done"),
		),
		Note: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "done with note"),
		),
		History: key.NewBinding(
			key.WithKeys("enter", "h"),
			key.WithHelp("enter", "history"),
		),
		PrevColumn: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[/]", "select column"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys("]"),
		),
		Wider: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "resize column"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("-"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("</>", "move column"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys(">", "."),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("right", "N"),
			key.WithHelp("→/N", "next month"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Done, k.Add, k.History, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Done, k.Note},
		{k.Add, k.Edit, k.Delete, k.History},
		{k.PrevColumn, k.Wider, k.MoveLeft},
		{k.Help, k.Quit},
	}
}

// historyKeys is the help shown on the history pane
type historyKeys struct {
	k KeyMap
}

func (h historyKeys) ShortHelp() []key.Binding {
	return []key.Binding{h.k.PrevMonth, h.k.NextMonth, h.k.Back, h.k.Quit}
}

func (h historyKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
