package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/service"
	"todolist/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
type UICmd struct{}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"tui"} }
func (c *UICmd) Synopsis() string   { return "Open the interactive terminal UI" }
func (c *UICmd) Usage() string      { return "todolist ui [common flags]" }
func (c *UICmd) NeedsService() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

// LogWriter sends logs to debug.log while the UI owns the terminal, and
// nowhere unless --debug is set.
func (c *UICmd) LogWriter(cfg *config.Config) (io.WriteCloser, error) {
	if !cfg.Debug {
		return nopCloser{io.Discard}, nil
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(cfg.DebugLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	err := tui.Run(ctx, svc, tui.Options{
		Logger:            log.FromContext(ctx),
		DeleteConcurrency: cfg.DeleteConcurrency,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
