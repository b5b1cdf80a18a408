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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. Running it on a completed task
// reopens it.
type DoneCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *DoneCmd) SetListName(name string) {
	c.listName = name
}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string   { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string      { return "todolist done [common flags] [--list <list>] <ref>" }
func (c *DoneCmd) NeedsService() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	target, err := resolveTask(ctx, svc, c.listName, args)
	if err != nil {
		return report(errOut, err)
	}

	task, err := target.Panel.ToggleCompleted(ctx, target.Task.ID)
	if err != nil {
		return report(errOut, err)
	}

	if !cfg.Quiet {
		if task.Completed {
			fmt.Fprintln(out, "ok (done)")
		} else {
			fmt.Fprintln(out, "ok (reopened)")
		}
	}
	return exitcode.Success
}
