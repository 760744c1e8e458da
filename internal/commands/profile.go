package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
)

func init() {
	Register(&ProfileCmd{})
}

// ProfileCmd implements the profile command (update name and/or password).
type ProfileCmd struct {
	name     string
	password string
}

func (c *ProfileCmd) Name() string      { return "profile" }
func (c *ProfileCmd) Aliases() []string { return nil }
func (c *ProfileCmd) Synopsis() string  { return "Update profile name or password" }
func (c *ProfileCmd) Usage() string {
	return "taskdash profile [common flags] [--name <name>] [--password <password>]"
}
func (c *ProfileCmd) NeedsAuth() bool { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *ProfileCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.name == "" && c.password == "" {
		fmt.Fprintln(errOut, "error: nothing to update (use --name or --password)")
		return exitcode.UserError
	}

	if err := svc.UpdateProfile(ctx, service.Profile{Name: c.name, Password: c.password}); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", service.Message(err, "failed to update profile"))
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
