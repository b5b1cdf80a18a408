package todo

import (
	"fmt"
	"strings"
	"time"

	"todolist/internal/service"
)

// Draft is the working draft behind the create/edit task form.
type Draft struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    service.Priority
}

// NewDraft returns the form defaults: empty title and description, due now,
// priority unset.
func NewDraft(now time.Time) Draft {
	return Draft{DueDate: now}
}

// DraftFromTask seeds a draft from an existing task.
func DraftFromTask(t service.Task) Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
	}
}

// Input converts the draft to a create payload.
func (d Draft) Input() service.TaskInput {
	return service.TaskInput{
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    d.Priority,
	}
}

// ApplyTo returns t with the draft's fields written over it. Identity and
// completion are kept, which makes the result a full replacement record.
func (d Draft) ApplyTo(t service.Task) service.Task {
	t.Title = d.Title
	t.Description = d.Description
	t.DueDate = d.DueDate
	t.Priority = d.Priority
	return t
}

// DateLayout is how due dates are displayed.
const DateLayout = "02/01/2006"

// inputLayouts are the accepted due date spellings, tried in order.
var inputLayouts = []string{
	"02-01-2006",
	"2006-01-02",
	DateLayout,
	time.RFC3339,
}

// ParseDueDate parses a due date typed by the user. Calendar dates are
// taken in loc.
func ParseDueDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date: %q (use dd-mm-yyyy)", s)
}

// FormatDueDate renders a due date as dd/mm/yyyy, or "" for the zero time.
func FormatDueDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}
