package commands

import (
	"context"
	"fmt"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/marks/internal/core/styles"
	"github.com/colonyops/marks/internal/marks"
	"github.com/colonyops/marks/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *marks.App

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *marks.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "ls",
		Usage:       "List all bookmarks",
		UsageText:   "marks ls [--json]",
		Description: "Displays every bookmark key with its path, ordered by key.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as a JSON array of {key, path}",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	entries := cmd.app.Bookmarks.Entries()
	out := c.Root().Writer

	if cmd.jsonOutput {
		if err := iojson.Write(out, c.Root().ErrWriter, entries); err != nil {
			return fmt.Errorf("encode bookmarks: %w", err)
		}
		return nil
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No bookmarks found")
		return nil
	}

	for _, e := range entries {
		_, _ = lipgloss.Fprintln(out, styles.KeyStyle.Render(string(e.Key))+"  "+styles.PathStyle.Render(e.Path))
	}
	return nil
}
