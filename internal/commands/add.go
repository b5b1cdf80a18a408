package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
	"todolist/internal/todo"
)

func init() {
	Register(&AddCmd{})
}

// fieldFlags collects optional task field flags. A nil field was not given.
type fieldFlags struct {
	title    *string
	desc     *string
	due      *string
	priority *string
}

func (f *fieldFlags) register(fs *flag.FlagSet, withTitle bool) {
	set := func(dst **string) func(string) error {
		return func(s string) error {
			*dst = &s
			return nil
		}
	}
	if withTitle {
		fs.Func("title", "", set(&f.title))
		fs.Func("t", "", set(&f.title))
	}
	fs.Func("desc", "", set(&f.desc))
	fs.Func("d", "", set(&f.desc))
	fs.Func("due", "", set(&f.due))
	fs.Func("priority", "", set(&f.priority))
	fs.Func("p", "", set(&f.priority))
}

func (f *fieldFlags) empty() bool {
	return f.title == nil && f.desc == nil && f.due == nil && f.priority == nil
}

// apply writes the given flags over d.
func (f *fieldFlags) apply(d todo.Draft) (todo.Draft, error) {
	if f.title != nil {
		d.Title = *f.title
	}
	if f.desc != nil {
		d.Description = *f.desc
	}
	if f.due != nil {
		due, err := todo.ParseDueDate(*f.due, time.Local)
		if err != nil {
			return d, usageErrorf("%v", err)
		}
		d.DueDate = due
	}
	if f.priority != nil {
		p, ok := service.ParsePriority(*f.priority)
		if !ok {
			return d, usageErrorf("invalid priority: %s (use high, medium, low or none)", *f.priority)
		}
		d.Priority = p
	}
	return d, nil
}

// AddCmd implements the add command.
type AddCmd struct {
	listName string
	fields   fieldFlags
}

// SetListName sets the list name (for testing).
func (c *AddCmd) SetListName(name string) {
	c.listName = name
}

// SetField sets a field flag by name (for testing).
func (c *AddCmd) SetField(name, value string) {
	setField(&c.fields, name, value)
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "todolist add [common flags] --list <list> [--desc <text>] [--due <date>] [--priority <p>] <title...>"
}
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	c.fields = fieldFlags{}
	c.fields.register(fs, false)
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := joinArgs(args)
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	if c.listName == "" {
		fmt.Fprintln(errOut, "error: list required (use --list)")
		return exitcode.UserError
	}

	list, err := resolveList(ctx, svc, c.listName)
	if err != nil {
		return report(errOut, err)
	}

	panel := todo.NewTaskPanel(svc, list.ID, todo.WithPanelLogger(log.FromContext(ctx)))
	panel.OpenNew()
	draft, err := c.fields.apply(panel.State().Draft)
	if err != nil {
		panel.CloseForm()
		return report(errOut, err)
	}
	draft.Title = title
	panel.SetDraft(draft)

	task, err := panel.Save(ctx)
	if err != nil {
		return report(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (id %s)\n", task.ID)
	}
	return exitcode.Success
}

func setField(f *fieldFlags, name, value string) {
	v := value
	switch name {
	case "title":
		f.title = &v
	case "desc":
		f.desc = &v
	case "due":
		f.due = &v
	case "priority":
		f.priority = &v
	}
}
