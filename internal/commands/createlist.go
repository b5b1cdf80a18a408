package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
	"todolist/internal/todo"
)

func init() {
	Register(&CreateListCmd{})
}

// CreateListCmd implements the createlist command.
type CreateListCmd struct{}

func (c *CreateListCmd) Name() string       { return "createlist" }
func (c *CreateListCmd) Aliases() []string  { return []string{"addlist"} }
func (c *CreateListCmd) Synopsis() string   { return "Create a new list" }
func (c *CreateListCmd) Usage() string      { return "todolist createlist [common flags] <title...>" }
func (c *CreateListCmd) NeedsService() bool { return true }

func (c *CreateListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CreateListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := joinArgs(args)
	if title == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	m := todo.NewListManager(svc, todo.WithLogger(log.FromContext(ctx)))
	if err := m.Load(ctx); err != nil {
		return report(errOut, err)
	}
	for _, l := range m.State().Lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), title) {
			fmt.Fprintf(errOut, "error: list already exists: %s\n", title)
			return exitcode.UserError
		}
	}

	m.OpenCreate()
	list, err := m.Create(ctx, title)
	if err != nil {
		return report(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (id %s)\n", list.ID)
	}
	return exitcode.Success
}
