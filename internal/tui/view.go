package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"todolist/internal/output"
	"todolist/internal/service"
	"todolist/internal/todo"
)

const appTitle = "Work that should be done"

// View implements tea.Model.
func (m Model) View() string {
	st := m.lists.State()

	var body string
	switch {
	case st.Phase == todo.PhaseFailed:
		body = m.errorView(st.Err)
	case st.Phase == todo.PhaseLoading && len(st.Lists) == 0:
		body = m.spinner.View() + " Loading lists…"
	case st.Creating:
		body = m.listDialogView()
	case m.form != nil:
		body = m.form.view()
	default:
		body = m.listsView(st)
	}

	parts := []string{headerStyle.Render(appTitle), body}
	if footer := m.footerView(st); footer != "" {
		parts = append(parts, footer)
	}
	return m.clip(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) errorView(err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render("Something went wrong"),
		msg,
		"",
		mutedStyle.Render("r reload • q quit"),
	)
}

func (m Model) listDialogView() string {
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("New list"),
		focusLabel.Render("Title")+m.listInput.View(),
		"",
		mutedStyle.Render("enter create • esc cancel"),
	))
}

func (m Model) listsView(st todo.ListsState) string {
	if len(st.Lists) == 0 {
		return mutedStyle.Render("No lists yet. Press n to create one.")
	}

	var b strings.Builder
	for i, l := range st.Lists {
		marker := "▸"
		if l.ID == st.Expanded {
			marker = "▾"
		}
		letter := " "
		if r := output.Letter(i); r != 0 {
			letter = string(r)
		}
		row := fmt.Sprintf("%s %s  %s", marker, letter, displayTitle(l.Title))
		if i == m.cursor && m.focus == focusLists {
			row = selectedStyle.Render(row)
		}
		if l.ID == m.confirmDelete {
			row += "  " + errorStyle.Render("delete this list and all its tasks? y/N")
		}
		b.WriteString(row)
		b.WriteString("\n")

		if l.ID == st.Expanded {
			if p := m.lists.Panel(); p != nil {
				b.WriteString(m.panelView(p.State()))
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) panelView(ts todo.TasksState) string {
	const indent = "     "
	switch ts.Phase {
	case todo.PhaseLoading:
		return indent + m.spinner.View() + " Loading tasks…\n"
	case todo.PhaseFailed:
		msg := "unknown error"
		if ts.Err != nil {
			msg = ts.Err.Error()
		}
		return indent + errorStyle.Render("Something went wrong: ") + msg + "\n" +
			indent + mutedStyle.Render("r reload") + "\n"
	}
	if len(ts.Tasks) == 0 {
		return indent + mutedStyle.Render("No tasks. Press tab, then a to add one.") + "\n"
	}

	var b strings.Builder
	for i, t := range ts.Tasks {
		row := taskRow(t)
		if m.focus == focusTasks && i == m.taskCursor {
			row = selectedStyle.Render(row)
		}
		b.WriteString(indent)
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func taskRow(t service.Task) string {
	title := displayTitle(t.Title)
	if t.Completed {
		title = doneStyle.Render(title)
	}
	row := output.Checkbox(t.Completed) + " " + title
	if t.Priority != service.PriorityNone {
		row += "  " + priorityStyle(string(t.Priority)).Render(strings.ToLower(string(t.Priority)))
	}
	if due := todo.FormatDueDate(t.DueDate); due != "" {
		row += "  " + mutedStyle.Render(due)
	}
	return row
}

func (m Model) footerView(st todo.ListsState) string {
	var lines []string
	if m.busy {
		lines = append(lines, m.spinner.View()+" Working…")
	} else if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	if st.Phase != todo.PhaseFailed && !st.Creating && m.form == nil {
		bindings := m.keys.listHelp()
		if m.focus == focusTasks {
			bindings = m.keys.taskHelp()
		}
		lines = append(lines, m.help.ShortHelpView(bindings))
	}
	if len(lines) == 0 {
		return ""
	}
	return footerStyle.Render(strings.Join(lines, "\n"))
}

// clip truncates every line to the window width.
func (m Model) clip(s string) string {
	if m.width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, m.width, "…")
	}
	return strings.Join(lines, "\n")
}

func displayTitle(s string) string {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
