package tui

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todolist/internal/service"
	"todolist/internal/todo"
)

// dueInputLayout is how the form shows a due date for editing.
const dueInputLayout = "02-01-2006"

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldPriority
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Due date", "Priority"}

// taskForm edits a todo.Draft. Text fields are textinputs; the priority
// cycles through service.Priorities.
type taskForm struct {
	editing  bool
	inputs   [fieldPriority]textinput.Model
	priority int
	field    int
	err      string

	// due is the seeded due date, kept at full precision. dueText is how
	// it was shown; the field is parsed again only once it differs.
	due     time.Time
	dueText string
}

func newTaskForm(d todo.Draft, editing bool) taskForm {
	f := taskForm{editing: editing, due: d.DueDate}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		in.Width = 40
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].Placeholder = "What needs doing"
	f.inputs[fieldDescription].Placeholder = "optional"
	f.inputs[fieldDue].Placeholder = "dd-mm-yyyy"
	f.inputs[fieldDue].CharLimit = 25

	f.inputs[fieldTitle].SetValue(d.Title)
	f.inputs[fieldDescription].SetValue(d.Description)
	if !d.DueDate.IsZero() {
		f.dueText = d.DueDate.Local().Format(dueInputLayout)
		f.inputs[fieldDue].SetValue(f.dueText)
	}
	f.priority = max(slices.Index(service.Priorities, d.Priority), 0)
	f.inputs[fieldTitle].Focus()
	return f
}

// draft converts the fields back into a draft. Text is taken as typed.
func (f taskForm) draft() (todo.Draft, error) {
	d := todo.Draft{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		DueDate:     f.due,
		Priority:    service.Priorities[f.priority],
	}
	text := f.inputs[fieldDue].Value()
	if text == f.dueText {
		return d, nil
	}
	d.DueDate = time.Time{}
	if strings.TrimSpace(text) != "" {
		due, err := todo.ParseDueDate(text, time.Local)
		if err != nil {
			return d, err
		}
		d.DueDate = due
	}
	return d, nil
}

func (f taskForm) focus(field int) taskForm {
	f.field = (field + fieldCount) % fieldCount
	for i := range f.inputs {
		if i == f.field {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return f
}

// update handles keys other than submit and cancel.
func (f taskForm) update(msg tea.KeyMsg) (taskForm, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return f.focus(f.field + 1), nil
	case "shift+tab", "up":
		return f.focus(f.field - 1), nil
	}
	if f.field == fieldPriority {
		switch msg.String() {
		case "left", "h":
			f.priority = (f.priority + len(service.Priorities) - 1) % len(service.Priorities)
		case "right", "l", " ", "space":
			f.priority = (f.priority + 1) % len(service.Priorities)
		}
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.field], cmd = f.inputs[f.field].Update(msg)
	f.err = ""
	return f, cmd
}

func (f taskForm) view() string {
	title := "New task"
	if f.editing {
		title = "Edit task"
	}
	rows := []string{headerStyle.Render(title)}
	for i := 0; i < fieldCount; i++ {
		label := labelStyle
		if i == f.field {
			label = focusLabel
		}
		var value string
		if i == fieldPriority {
			p := service.Priorities[f.priority]
			name := string(p)
			if p == service.PriorityNone {
				name = "none"
			}
			value = "‹ " + priorityStyle(string(p)).Render(name) + " ›"
		} else {
			value = f.inputs[i].View()
		}
		rows = append(rows, label.Render(fieldLabels[i])+value)
	}
	if f.err != "" {
		rows = append(rows, "", errorStyle.Render(f.err))
	}
	rows = append(rows, "", mutedStyle.Render("tab next • enter save • esc cancel"))
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func newListInput() textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "List title"
	in.CharLimit = 100
	in.Width = 40
	return in
}
