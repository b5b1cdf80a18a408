package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
	"todolist/internal/todo"
)

func init() {
	Register(&RmListCmd{})
}

// RmListCmd implements the rmlist command.
type RmListCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *RmListCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmListCmd) Name() string       { return "rmlist" }
func (c *RmListCmd) Aliases() []string  { return nil }
func (c *RmListCmd) Synopsis() string   { return "Delete a list and its tasks" }
func (c *RmListCmd) Usage() string      { return "todolist rmlist [common flags] [--force] <list>" }
func (c *RmListCmd) NeedsService() bool { return true }

func (c *RmListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *RmListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	name := joinArgs(args)
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	list, err := resolveList(ctx, svc, name)
	if err != nil {
		return report(errOut, err)
	}

	plan, err := todo.PlanDeletion(ctx, svc, list.ID)
	if err != nil {
		return report(errOut, err)
	}
	if len(plan.Tasks) > 0 && !c.force {
		fmt.Fprintf(errOut, "error: list not empty: %d tasks (use --force)\n", len(plan.Tasks))
		return exitcode.UserError
	}

	result, err := todo.ExecuteDeletion(ctx, svc, plan, cfg.DeleteConcurrency)
	if err != nil {
		var partial *todo.PartialDeleteError
		if errors.As(err, &partial) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
		return report(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok (%d tasks deleted)\n", result.Succeeded)
	}
	return exitcode.Success
}
