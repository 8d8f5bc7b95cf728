package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/marks/internal/marks"
	"github.com/colonyops/marks/internal/printer"
	"github.com/colonyops/marks/internal/tui/bookmarks"
)

type AddCmd struct {
	flags *Flags
	app   *marks.App
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *marks.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Bookmark a directory",
		UsageText: "marks add [PATH]",
		Description: `Opens the bookmark overlay and binds PATH (defaults to the working directory)
to the next key pressed. An existing bookmark on that key is replaced.
The sentinel key or Ctrl+C cancels without changes.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	path, err := resolveTarget(c.Args().First())
	if err != nil {
		return err
	}

	err = cmd.app.Overlay.Add(ctx, path)
	if errors.Is(err, bookmarks.ErrCancelled) {
		p.Infof("Cancelled, no bookmark added")
		return nil
	}
	if err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}

	p.Successf("Bookmarked %s", path)
	return nil
}

// resolveTarget makes path absolute, defaulting to the working directory.
func resolveTarget(path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}
