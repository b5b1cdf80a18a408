// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todolist/internal/config"
	"todolist/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsService returns true if the command talks to the API.
	// Commands like help, version and serve return false.
	NeedsService() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths).
	// svc is nil if NeedsService() returns false.
	// The logger travels in ctx (log.FromContext).
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// LogRedirector is implemented by commands that own the terminal. The
// dispatcher builds the logger on the returned writer instead of stderr.
type LogRedirector interface {
	LogWriter(cfg *config.Config) (io.WriteCloser, error)
}
