package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Expand     key.Binding
	NewList    key.Binding
	DeleteList key.Binding
	Focus      key.Binding
	AddTask    key.Binding
	EditTask   key.Binding
	DeleteTask key.Binding
	Toggle     key.Binding
	Reload     key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Expand:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand")),
		NewList:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new list")),
		DeleteList: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete list")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "tasks")),
		AddTask:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		EditTask:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		DeleteTask: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "done")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// listHelp is shown while the list column has focus.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Expand, k.Focus, k.NewList, k.DeleteList, k.Reload, k.Quit}
}

// taskHelp is shown while the task panel has focus.
func (k keyMap) taskHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.AddTask, k.EditTask, k.Toggle, k.DeleteTask, k.Back, k.Quit}
}
