package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the fixed hotkey table for a review session. It is active
// only while a record is loaded and no modal is open; while a text
// input has focus every binding is suppressed so free-text entry is
// never hijacked.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Approve    key.Binding
	ApproveAll key.Binding
	Flag       key.Binding
	Reject     key.Binding
	Edit       key.Binding
	Undo       key.Binding
	ClearEdits key.Binding
	Save       key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the session hotkeys. Shift+A is the only
// load-bearing modifier chord: it maps approve to the bulk form.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "row up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "row down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "field left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "field right"),
		),
		Approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve row"),
		),
		ApproveAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "approve all pending"),
		),
		Flag: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "flag row"),
		),
		Reject: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reject row"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit cell"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		ClearEdits: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear corrections"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save & advance"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "previous record"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "exit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Approve, k.Flag, k.Reject, k.Edit, k.Undo, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Approve, k.ApproveAll, k.Flag, k.Reject},
		{k.Edit, k.ClearEdits, k.Undo},
		{k.Save, k.Back, k.Help, k.Quit},
	}
}
