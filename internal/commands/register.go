package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
	"taskdash/internal/store"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	name     string
	email    string
	password string
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "taskdash register [common flags] --name <name> --email <email> --password <password>"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.name == "" || c.email == "" || c.password == "" {
		fmt.Fprintln(errOut, "error: --name, --email, and --password required")
		return exitcode.UserError
	}

	sess := store.NewSession(svc, cfg)
	res := sess.Register(ctx, service.Registration{Name: c.name, Email: c.email, Password: c.password})

	if !res.OK {
		fmt.Fprintf(errOut, "error: %s\n", res.Message)
		// Field-level validation errors, one per line, stable order.
		fields := make([]string, 0, len(res.FieldErrors))
		for f := range res.FieldErrors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(errOut, "  %s: %s\n", f, res.FieldErrors[f])
		}
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, res.Message)
	}
	return exitcode.Success
}
