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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskdash help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskdash                                           List tickets
  taskdash list [common flags] [--status <status>]
  taskdash add [common flags] [--desc <text>] [--status <status>] [--due <YYYY-MM-DD>] <name...>
  taskdash edit [common flags] [--name <name>] [--desc <text>] [--status <status>] [--due <YYYY-MM-DD>|none] <id>
  taskdash done [common flags] <id>
  taskdash rm [common flags] <id>
  taskdash ui [common flags]
  taskdash login [common flags] --email <email> --password <password>
  taskdash logout [common flags]
  taskdash register [common flags] --name <name> --email <email> --password <password>
  taskdash whoami [common flags]
  taskdash profile [common flags] [--name <name>] [--password <password>]
  taskdash theme [common flags] <light|dark>
  taskdash help
  taskdash version

Statuses: Pending, "In Progress", Completed, Blocked

Common flags:
  --config <dir>   Override config directory
  --server <url>   Override dashboard server URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
