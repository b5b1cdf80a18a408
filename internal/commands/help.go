package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todolist help [command]" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		cmd, ok := DefaultRegistry.Find(args[0])
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
			return exitcode.UserError
		}
		fmt.Fprintf(out, "%s\n\nUsage:\n  %s\n", cmd.Synopsis(), cmd.Usage())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(out, "\nAliases: %v\n", aliases)
		}
		return exitcode.Success
	}
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range DefaultRegistry.All() {
		line := fmt.Sprintf("  %-11s %s", cmd.Name(), cmd.Synopsis())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += fmt.Sprintf(" (alias: %s)", strings.Join(aliases, ", "))
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprint(out, notesText)
	return exitcode.Success
}

const helpText = `Usage:
  todolist                                           Print all lists
  todolist lists [common flags]
  todolist list [common flags] <list>
  todolist createlist [common flags] <title...>      (alias: addlist)
  todolist rmlist [common flags] [--force] <list>
  todolist add [common flags] --list <list> [--desc <text>] [--due <date>] [--priority <p>] <title...>
  todolist edit [common flags] [--list <list>] [--title <t>] [--desc <text>] [--due <date>] [--priority <p>] <ref>
  todolist done [common flags] [--list <list>] <ref>
  todolist rm [common flags] [--list <list>] <ref>
  todolist show [common flags] [--list <list>] [--raw] <ref>
  todolist ui [common flags]
  todolist serve [common flags] [--addr <host:port>] [--db <path>]
  todolist help [command]
  todolist version
`

const notesText = `
Lists are named by id, title or letter (see todolist lists).
Task references are <letter><n> (b2), <letter> <n>, or <n> with --list.
Due dates: dd-mm-yyyy, yyyy-mm-dd or RFC 3339. Priorities: high, medium, low, none.

createlist refuses a title already in use (case-insensitive); the ui
does not. rmlist deletes a list's tasks first and needs --force when
there are any; the ui asks for confirmation instead.

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override the API base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr (debug.log for ui)
`
