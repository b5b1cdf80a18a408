// Package tui is the interactive terminal UI. It drives the same
// todo.ListManager and todo.TaskPanel state machines as the CLI: every
// network call runs as a tea.Cmd and the view re-reads their snapshots.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todolist/internal/logging"
	"todolist/internal/service"
	"todolist/internal/todo"
)

type focus int

const (
	focusLists focus = iota
	focusTasks
)

// Model is the root Bubble Tea model.
type Model struct {
	ctx   context.Context
	lists *todo.ListManager
	log   *log.Logger

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	focus      focus
	cursor     int
	taskCursor int

	listInput     textinput.Model
	form          *taskForm
	confirmDelete string
	busy          bool
	status        string

	width  int
	height int
}

// Options configures the UI.
type Options struct {
	Logger            *log.Logger
	DeleteConcurrency int
}

// New creates the root model over svc.
func New(ctx context.Context, svc service.Service, opts Options) Model {
	logger := logging.OrDiscard(opts.Logger)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	return Model{
		ctx: ctx,
		lists: todo.NewListManager(svc,
			todo.WithLogger(logger),
			todo.WithDeleteConcurrency(opts.DeleteConcurrency),
		),
		log:       logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   s,
		listInput: newListInput(),
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, svc service.Service, opts Options) error {
	_, err := tea.NewProgram(New(ctx, svc, opts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadLists())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case listsLoadedMsg:
		m.busy = false
		m.clampCursor()
		if msg.err != nil {
			m.log.Debug("loading lists failed", "err", msg.err)
		}
		return m, nil

	case tasksLoadedMsg:
		m.busy = false
		m.clampTaskCursor()
		return m, nil

	case listCreatedMsg:
		m.busy = false
		if msg.err == nil {
			m.listInput.Reset()
			m.listInput.Blur()
			m.status = fmt.Sprintf("Created %q", msg.list.Title)
			m.selectList(msg.list.ID)
		}
		return m, nil

	case listDeletedMsg:
		m.busy = false
		if msg.err == nil {
			m.status = fmt.Sprintf("Deleted list and %d tasks", msg.result.Succeeded)
			m.focus = focusLists
			m.clampCursor()
		}
		return m, nil

	case taskSavedMsg:
		m.busy = false
		if msg.err == nil {
			m.status = fmt.Sprintf("Saved %q", msg.task.Title)
		}
		m.clampTaskCursor()
		return m, nil

	case taskToggledMsg:
		m.busy = false
		return m, nil

	case taskDeletedMsg:
		m.busy = false
		if msg.err == nil {
			m.status = "Task deleted"
		}
		m.clampTaskCursor()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	st := m.lists.State()
	switch {
	case st.Creating && st.Phase != todo.PhaseFailed:
		return m.handleListDialog(msg)
	case m.form != nil:
		return m.handleTaskForm(msg)
	case m.confirmDelete != "":
		return m.handleConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}

	if st.Phase == todo.PhaseFailed {
		return m, nil
	}
	if m.focus == focusTasks {
		return m.handleTaskKeys(msg)
	}
	return m.handleListKeys(msg, st)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.status = ""
	m.lists.CloseCreate()
	m.listInput.Blur()
	cmds := []tea.Cmd{m.loadLists()}
	if p := m.lists.Panel(); p != nil {
		cmds = append(cmds, m.loadTasks(p))
	}
	m.busy = true
	return m, sequence(cmds...)
}

func (m Model) handleListKeys(msg tea.KeyMsg, st todo.ListsState) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(st.Lists)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Expand):
		if len(st.Lists) == 0 {
			return m, nil
		}
		m.taskCursor = 0
		if p := m.lists.ToggleExpand(st.Lists[m.cursor].ID); p != nil {
			return m, m.loadTasks(p)
		}
	case key.Matches(msg, m.keys.Focus):
		if m.lists.Panel() != nil {
			m.focus = focusTasks
		}
	case key.Matches(msg, m.keys.NewList):
		m.status = ""
		m.lists.OpenCreate()
		m.listInput.Reset()
		return m, m.listInput.Focus()
	case key.Matches(msg, m.keys.DeleteList):
		if len(st.Lists) > 0 {
			m.confirmDelete = st.Lists[m.cursor].ID
		}
	}
	return m, nil
}

func (m Model) handleTaskKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.lists.Panel()
	if p == nil {
		m.focus = focusLists
		return m, nil
	}
	ts := p.State()
	if ts.Phase == todo.PhaseLoading {
		if key.Matches(msg, m.keys.Back, m.keys.Focus) {
			m.focus = focusLists
		}
		return m, nil
	}

	selected, hasSelection := "", m.taskCursor < len(ts.Tasks)
	if hasSelection {
		selected = ts.Tasks[m.taskCursor].ID
	}

	switch {
	case key.Matches(msg, m.keys.Back, m.keys.Focus):
		m.focus = focusLists
	case key.Matches(msg, m.keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.taskCursor < len(ts.Tasks)-1 {
			m.taskCursor++
		}
	case key.Matches(msg, m.keys.AddTask):
		p.OpenNew()
		f := newTaskForm(p.State().Draft, false)
		m.form = &f
		m.status = ""
	case key.Matches(msg, m.keys.EditTask):
		if !hasSelection {
			return m, nil
		}
		if err := p.OpenEdit(selected); err != nil {
			m.status = err.Error()
			return m, nil
		}
		f := newTaskForm(p.State().Draft, true)
		m.form = &f
		m.status = ""
	case key.Matches(msg, m.keys.Toggle):
		if hasSelection {
			m.busy = true
			return m, m.toggleTask(p, selected)
		}
	case key.Matches(msg, m.keys.DeleteTask):
		if hasSelection {
			m.busy = true
			return m, m.deleteTask(p, selected)
		}
	}
	return m, nil
}

func (m Model) handleListDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.lists.CloseCreate()
		m.listInput.Blur()
		return m, nil
	case "enter":
		m.busy = true
		return m, m.createList(m.listInput.Value())
	}
	var cmd tea.Cmd
	m.listInput, cmd = m.listInput.Update(msg)
	return m, cmd
}

func (m Model) handleTaskForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.lists.Panel()
	if p == nil {
		m.form = nil
		return m, nil
	}
	switch msg.String() {
	case "esc":
		p.CloseForm()
		m.form = nil
		return m, nil
	case "enter":
		d, err := m.form.draft()
		if err != nil {
			f := *m.form
			f.err = err.Error()
			m.form = &f
			return m, nil
		}
		p.SetDraft(d)
		m.form = nil
		m.busy = true
		return m, m.saveTask(p)
	}
	f, cmd := m.form.update(msg)
	m.form = &f
	return m, cmd
}

func (m Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmDelete
	m.confirmDelete = ""
	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}
	m.busy = true
	m.status = ""
	return m, m.deleteList(id)
}

func (m *Model) selectList(id string) {
	for i, l := range m.lists.State().Lists {
		if l.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.lists.State().Lists)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) clampTaskCursor() {
	p := m.lists.Panel()
	if p == nil {
		m.taskCursor = 0
		return
	}
	n := len(p.State().Tasks)
	if m.taskCursor >= n {
		m.taskCursor = n - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

// sequence runs cmds one after another and reports the last message.
// Messages of earlier commands are dropped; the state machines keep the
// outcome.
func sequence(cmds ...tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		var msg tea.Msg
		for _, c := range cmds {
			msg = c()
		}
		return msg
	}
}
