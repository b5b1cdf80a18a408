// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todolist/internal/service"
	"todolist/internal/todo"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// MaxLetters is the number of lists that can be addressed by letter.
	MaxLetters = 26
)

// Letter returns the reference letter of the list at index i in API order,
// or 0 when i is past 'z'.
func Letter(i int) rune {
	if i < 0 || i >= MaxLetters {
		return 0
	}
	return rune('a' + i)
}

// FormatList formats a list line for the lists command.
// Format: "{L}  {TITLE}\n", where lists past 'z' get a blank letter column.
func FormatList(w io.Writer, letter rune, list service.List) {
	l := " "
	if letter != 0 {
		l = string(letter)
	}
	fmt.Fprintf(w, "%s  %s\n", l, normalizeTitle(list.Title))
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, letter rune, list service.List) {
	title := normalizeTitle(list.Title)
	if letter != 0 {
		title = fmt.Sprintf("%c  %s", letter, title)
	}
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, ListSeparator)
}

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {TITLE}[  {PRIORITY}][  {DUE}]\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s%s\n", num, Checkbox(task.Completed), normalizeTitle(task.Title), taskSuffix(task))
}

// Checkbox renders the completion marker.
func Checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func taskSuffix(task service.Task) string {
	var b strings.Builder
	if task.Priority != service.PriorityNone {
		b.WriteString("  !")
		b.WriteString(strings.ToLower(string(task.Priority)))
	}
	if due := todo.FormatDueDate(task.DueDate); due != "" {
		b.WriteString("  due ")
		b.WriteString(due)
	}
	return b.String()
}

// TaskMarkdown renders a task as a markdown document for the show command.
func TaskMarkdown(list service.List, task service.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", normalizeTitle(task.Title))
	fmt.Fprintf(&b, "- **List:** %s\n", normalizeTitle(list.Title))
	status := "open"
	if task.Completed {
		status = "done"
	}
	fmt.Fprintf(&b, "- **Status:** %s\n", status)
	if task.Priority != service.PriorityNone {
		fmt.Fprintf(&b, "- **Priority:** %s\n", task.Priority)
	}
	if due := todo.FormatDueDate(task.DueDate); due != "" {
		fmt.Fprintf(&b, "- **Due:** %s\n", due)
	}
	if desc := strings.TrimSpace(task.Description); desc != "" {
		fmt.Fprintf(&b, "\n%s\n", desc)
	}
	return b.String()
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
