package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
	"taskdash/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd launches the interactive terminal UI. It does not require a stored
// session: the UI's own guard validates the session and falls back to its
// login view.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"dash"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive dashboard" }
func (c *UICmd) Usage() string     { return "taskdash ui [common flags]" }
func (c *UICmd) NeedsAuth() bool   { return false }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := tui.Run(ctx, cfg, svc); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
