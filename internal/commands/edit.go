package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskdash/internal/config"
	"taskdash/internal/exitcode"
	"taskdash/internal/service"
	"taskdash/internal/store"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the fields given as flags
// change; everything else keeps its server-side value.
type EditCmd struct {
	name        string
	description string
	status      string
	priority    string
	due         string

	flagSet *flag.FlagSet
	set     map[string]bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Update a ticket" }
func (c *EditCmd) Usage() string {
	return "taskdash edit [common flags] [--name <name>] [--desc <text>] [--status <status>] [--due <YYYY-MM-DD>|none] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.due, "due", "", "")

	// Track which flags were explicitly set so empty values can be told
	// apart from omitted ones.
	c.flagSet = fs
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintln(errOut, "error: ticket id required")
		return exitcode.UserError
	}
	id := args[0]

	c.set = make(map[string]bool)
	c.flagSet.Visit(func(f *flag.Flag) { c.set[f.Name] = true })

	tasks := store.NewTasks(svc)
	ticket, err := findTicket(ctx, tasks, id)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			fmt.Fprintf(errOut, "error: ticket not found: %s\n", id)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if c.set["name"] {
		ticket.Name = c.name
	}
	if c.set["desc"] || c.set["d"] {
		ticket.Description = c.description
	}
	if c.set["status"] || c.set["s"] {
		ticket.Status = service.NormalizeStatus(c.status)
	}
	if c.set["priority"] {
		ticket.Priority = c.priority
	}
	if c.set["due"] {
		if c.due == "none" {
			ticket.DueDate = ""
		} else {
			due, err := service.ParseDate(c.due)
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				return exitcode.UserError
			}
			ticket.DueDate = due
		}
	}

	if err := tasks.Save(ctx, ticket); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
