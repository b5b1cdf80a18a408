package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"todolist/internal/service"
	"todolist/internal/todo"
)

// Results of the network operations. The state machines already hold the
// outcome; the messages tell Update which one finished.
type (
	listsLoadedMsg struct{ err error }
	tasksLoadedMsg struct {
		listID string
		err    error
	}
	listCreatedMsg struct {
		list service.List
		err  error
	}
	listDeletedMsg struct {
		result todo.DeleteResult
		err    error
	}
	taskSavedMsg struct {
		task service.Task
		err  error
	}
	taskToggledMsg struct {
		task service.Task
		err  error
	}
	taskDeletedMsg struct {
		taskID string
		err    error
	}
)

func (m Model) loadLists() tea.Cmd {
	lists := m.lists
	ctx := m.ctx
	return func() tea.Msg {
		return listsLoadedMsg{err: lists.Load(ctx)}
	}
}

func (m Model) loadTasks(p *todo.TaskPanel) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return tasksLoadedMsg{listID: p.ListID(), err: p.Load(ctx)}
	}
}

func (m Model) createList(title string) tea.Cmd {
	lists := m.lists
	ctx := m.ctx
	return func() tea.Msg {
		l, err := lists.Create(ctx, title)
		return listCreatedMsg{list: l, err: err}
	}
}

func (m Model) deleteList(listID string) tea.Cmd {
	lists := m.lists
	ctx := m.ctx
	return func() tea.Msg {
		r, err := lists.Delete(ctx, listID)
		return listDeletedMsg{result: r, err: err}
	}
}

func (m Model) saveTask(p *todo.TaskPanel) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		t, err := p.Save(ctx)
		return taskSavedMsg{task: t, err: err}
	}
}

func (m Model) toggleTask(p *todo.TaskPanel, taskID string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		t, err := p.ToggleCompleted(ctx, taskID)
		return taskToggledMsg{task: t, err: err}
	}
}

func (m Model) deleteTask(p *todo.TaskPanel, taskID string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return taskDeletedMsg{taskID: taskID, err: p.Delete(ctx, taskID)}
	}
}
