package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/output"
	"todolist/internal/service"
	"todolist/internal/todo"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command: the tasks of one list.
type ListCmd struct{}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "todolist list [common flags] <list>" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := joinArgs(args)
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	lists, err := svc.ListLists(ctx)
	if err != nil {
		return report(errOut, err)
	}
	list, err := matchList(lists, name)
	if err != nil {
		return report(errOut, err)
	}

	m := todo.NewListManager(svc, todo.WithLogger(log.FromContext(ctx)))
	panel := m.ToggleExpand(list.ID)
	if err := panel.Load(ctx); err != nil {
		return report(errOut, err)
	}

	letter := rune(0)
	for i, l := range lists {
		if l.ID == list.ID {
			letter = output.Letter(i)
		}
	}
	output.FormatListHeader(out, letter, list)

	tasks := panel.State().Tasks
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks")
		}
		return exitcode.Success
	}
	for i, task := range tasks {
		output.FormatTask(out, i+1, task)
	}
	return exitcode.Success
}
