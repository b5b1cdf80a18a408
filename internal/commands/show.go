package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"todolist/internal/config"
	"todolist/internal/exitcode"
	"todolist/internal/output"
	"todolist/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command: one task rendered as markdown.
type ShowCmd struct {
	listName string
	raw      bool
	style    string
	width    int
}

// SetListName sets the list name (for testing).
func (c *ShowCmd) SetListName(name string) {
	c.listName = name
}

// SetRaw prints markdown source instead of rendering it (for testing).
func (c *ShowCmd) SetRaw(raw bool) {
	c.raw = raw
}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show a task" }
func (c *ShowCmd) Usage() string {
	return "todolist show [common flags] [--list <list>] [--raw] [--style <name>] [--width <n>] <ref>"
}
func (c *ShowCmd) NeedsService() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.raw, "raw", false, "")
	fs.StringVar(&c.style, "style", styles.DarkStyle, "")
	fs.IntVar(&c.width, "width", 80, "")
}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	target, err := resolveTask(ctx, svc, c.listName, args)
	if err != nil {
		return report(errOut, err)
	}

	md := output.TaskMarkdown(target.List, target.Task)
	if c.raw {
		fmt.Fprint(out, md)
		return exitcode.Success
	}

	rendered, err := renderMarkdown(md, c.style, c.width)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintln(out, rendered)
	return exitcode.Success
}

func renderMarkdown(md, style string, width int) (string, error) {
	if style == "" {
		style = styles.DarkStyle
	}
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	s, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering task: %w", err)
	}
	return strings.TrimRight(s, "\n"), nil
}
