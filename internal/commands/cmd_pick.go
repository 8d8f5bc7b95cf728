package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/marks/internal/marks"
	"github.com/colonyops/marks/internal/tui/bookmarks"
)

type PickCmd struct {
	flags *Flags
	app   *marks.App

	// flags
	cwd string
}

// NewPickCmd creates a new pick command
func NewPickCmd(flags *Flags, app *marks.App) *PickCmd {
	return &PickCmd{flags: flags, app: app}
}

// Register adds the pick command to the application
func (cmd *PickCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "pick",
		Usage:     "Choose a bookmarked directory",
		UsageText: "marks pick [--cwd DIR]",
		Description: `Opens the bookmark overlay at the bottom of the terminal. Press a bookmark's
key to print its path, or the sentinel key to print the offered directory.
Ctrl+C cancels and exits with status 1.

Typical shell usage: cd "$(marks pick)"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "cwd",
				Usage:       "directory offered under the sentinel key (defaults to the working directory)",
				Destination: &cmd.cwd,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PickCmd) run(ctx context.Context, c *cli.Command) error {
	cwd := cmd.cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		cwd = wd
	}

	path, err := cmd.app.Overlay.Pick(ctx, cwd)
	if errors.Is(err, bookmarks.ErrCancelled) {
		return cli.Exit("no bookmark selected", 1)
	}
	if err != nil {
		return fmt.Errorf("pick bookmark: %w", err)
	}

	_, err = fmt.Fprintln(c.Root().Writer, path)
	return err
}
