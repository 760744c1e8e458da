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
	Register(&ThemeCmd{})
}

// ThemeCmd implements the theme command. The preference is stored on the
// server and mirrored into local settings so the UI starts with the right
// palette.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Set the theme preference" }
func (c *ThemeCmd) Usage() string     { return "taskdash theme [common flags] <light|dark>" }
func (c *ThemeCmd) NeedsAuth() bool   { return true }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 || (args[0] != "light" && args[0] != "dark") {
		fmt.Fprintln(errOut, "error: theme must be light or dark")
		return exitcode.UserError
	}
	theme := args[0]

	if err := svc.UpdatePreferences(ctx, theme); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", service.Message(err, "failed to update theme preference"))
		return exitcode.BackendError
	}

	settings, _ := cfg.LoadSettings()
	settings.Theme = theme
	if err := cfg.SaveSettings(settings); err != nil && cfg.Debug {
		fmt.Fprintf(errOut, "debug: failed to save local settings: %v\n", err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
