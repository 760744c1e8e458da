package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/output"
	"taskdash/internal/service"
	"taskdash/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskdash` (no args) and `taskdash list`.
type ListCmd struct {
	status string
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tickets" }
func (c *ListCmd) Usage() string     { return "taskdash list [common flags] [--status <status>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	var filter service.Status
	if c.status != "" {
		filter = service.NormalizeStatus(c.status)
		if string(filter) != c.status {
			fmt.Fprintf(errOut, "error: unknown status: %s\n", c.status)
			return exitcode.UserError
		}
	}

	tasks := store.NewTasks(svc)
	if !tasks.Fetch(ctx) {
		fmt.Fprintf(errOut, "error: backend error: %s\n", tasks.State().Err)
		return exitcode.BackendError
	}

	var shown int
	state := tasks.State()
	for _, t := range state.Tickets {
		if filter != "" && t.Status != filter {
			continue
		}
		if shown == 0 {
			output.FormatHeader(out)
		}
		output.FormatTicket(out, t)
		shown++
	}

	if shown == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tickets found")
	}
	return exitcode.Success
}
