package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. The form is seeded from the
// existing task and the whole record is sent back.
type EditCmd struct {
	listName string
	fields   fieldFlags
}

// SetListName sets the list name (for testing).
func (c *EditCmd) SetListName(name string) {
	c.listName = name
}

// SetField sets a field flag by name (for testing).
func (c *EditCmd) SetField(name, value string) {
	setField(&c.fields, name, value)
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "todolist edit [common flags] [--list <list>] [--title <t>] [--desc <text>] [--due <date>] [--priority <p>] <ref>"
}
func (c *EditCmd) NeedsService() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	c.fields = fieldFlags{}
	c.fields.register(fs, true)
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.fields.empty() {
		fmt.Fprintln(errOut, "error: nothing to edit (use --title, --desc, --due or --priority)")
		return exitcode.UserError
	}

	target, err := resolveTask(ctx, svc, c.listName, args)
	if err != nil {
		return report(errOut, err)
	}

	panel := target.Panel
	if err := panel.OpenEdit(target.Task.ID); err != nil {
		return report(errOut, err)
	}
	draft, err := c.fields.apply(panel.State().Draft)
	if err != nil {
		panel.CloseForm()
		return report(errOut, err)
	}
	panel.SetDraft(draft)

	if _, err := panel.Save(ctx); err != nil {
		return report(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
