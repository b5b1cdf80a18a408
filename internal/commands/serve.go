package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"path/filepath"

	"github.com/charmbracelet/log"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/server"
	"todolist/internal/service"
	"todolist/internal/store/sqlite"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command: the list/task API on a local
// SQLite database.
type ServeCmd struct {
	addr string
	db   string
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Run the API locally" }
func (c *ServeCmd) Usage() string      { return "todolist serve [common flags] [--addr <host:port>] [--db <path>]" }
func (c *ServeCmd) NeedsService() bool { return false }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "")
	fs.StringVar(&c.db, "db", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.addr != "" {
		cfg.ServeAddr = c.addr
	}
	if c.db != "" {
		cfg.ServeDB = c.db
	}

	dbPath := cfg.ServeDBPath()
	if dbPath != ":memory:" && filepath.Dir(dbPath) == cfg.Dir {
		if err := cfg.EnsureDir(); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
	}

	logger := log.FromContext(ctx)
	store, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	defer store.Close()

	ln, err := net.Listen("tcp", cfg.ServeAddr)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "serving http://%s (db %s)\n", ln.Addr(), dbPath)
	}
	if err := server.New(store, logger).Run(ctx, ln); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
