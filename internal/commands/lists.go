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
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command. It also runs for `todolist`
// with no arguments.
type ListsCmd struct{}

func (c *ListsCmd) Name() string       { return "lists" }
func (c *ListsCmd) Aliases() []string  { return nil }
func (c *ListsCmd) Synopsis() string   { return "Print all lists" }
func (c *ListsCmd) Usage() string      { return "todolist lists [common flags]" }
func (c *ListsCmd) NeedsService() bool { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	m := todo.NewListManager(svc, todo.WithLogger(log.FromContext(ctx)))
	if err := m.Load(ctx); err != nil {
		return report(errOut, err)
	}

	lists := m.State().Lists
	if len(lists) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no lists found")
		}
		return exitcode.Success
	}
	for i, list := range lists {
		output.FormatList(out, output.Letter(i), list)
	}
	return exitcode.Success
}
